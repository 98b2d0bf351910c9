package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	codeMin  = 100000
	codeSpan = 900000
)

// CodeGenerator issues email verification codes.
type CodeGenerator interface {
	Generate() (string, error)
}

type sixDigitGenerator struct{}

// NewCodeGenerator returns a generator producing 6-digit numeric codes
// drawn uniformly from 100000-999999.
func NewCodeGenerator() CodeGenerator {
	return sixDigitGenerator{}
}

func (sixDigitGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+codeMin), nil
}
