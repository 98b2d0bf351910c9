package model

// Transaction records a money movement initiated by a user.
type Transaction struct {
	TransactionID int64  `json:"transactionId" db:"transaction_id"`
	UserID        int64  `json:"userId" db:"user_id"`
	Description   string `json:"description" db:"description"`
	Amount        string `json:"amount" db:"amount"`
	Status        bool   `json:"status" db:"status"`
}

type CreateTransactionRequest struct {
	UserID      int64  `json:"userId" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	Status      *bool  `json:"status"`
}

type TransactionPatch struct {
	Description *string `json:"description"`
	Amount      *string `json:"amount"`
	Status      *bool   `json:"status"`
}

func (p *TransactionPatch) Empty() bool {
	return p.Description == nil && p.Amount == nil && p.Status == nil
}
