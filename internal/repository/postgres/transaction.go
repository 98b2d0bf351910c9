package postgres

import (
	"context"
	"fmt"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const transactionColumns = `
	transaction_id, user_id, description, amount, status
`

type transactionRepository struct {
	BaseRepository
}

func NewTransactionRepository(base BaseRepository) repository.TransactionRepository {
	return &transactionRepository{base}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) (*model.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, description, amount, status)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + transactionColumns

	var created model.Transaction
	err := r.db.GetContext(ctx, &created, query,
		transaction.UserID,
		transaction.Description,
		transaction.Amount,
		transaction.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", translateError(err))
	}
	return &created, nil
}

func (r *transactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY transaction_id`

	transactions := []*model.Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, query); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *transactionRepository) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`

	var transaction model.Transaction
	if err := r.db.GetContext(ctx, &transaction, query, id); err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

func (r *transactionRepository) Update(ctx context.Context, id int64, patch *model.TransactionPatch) (*model.Transaction, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := buildPatchQuery("transactions", "transaction_id", sets, &args, id) + " RETURNING " + transactionColumns

	var updated model.Transaction
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", translateError(err))
	}
	return &updated, nil
}

func (r *transactionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", translateError(err))
	}
	return requireRowsAffected(result, "transaction")
}
