package email

import (
	"context"
)

// Service delivers transactional mail. Implementations must report send
// failures to the caller; registration depends on that.
type Service interface {
	SendVerification(ctx context.Context, to, name, code string) error
	SendWelcome(ctx context.Context, to, name string) error
}
