package memory

import (
	"context"
	"database/sql"
	"sync"

	"github.com/medportal/portal-api/internal/model"
)

type TransactionRepository struct {
	mu           sync.Mutex
	transactions map[int64]*model.Transaction
	nextID       int64
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{transactions: make(map[int64]*model.Transaction), nextID: 1}
}

func (r *TransactionRepository) Create(_ context.Context, transaction *model.Transaction) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *transaction
	stored.TransactionID = r.nextID
	r.nextID++

	r.transactions[stored.TransactionID] = &stored
	copied := stored
	return &copied, nil
}

func (r *TransactionRepository) List(_ context.Context) ([]*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Transaction, 0, len(r.transactions))
	for id := int64(1); id < r.nextID; id++ {
		if tr, ok := r.transactions[id]; ok {
			copied := *tr
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *TransactionRepository) Get(_ context.Context, id int64) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.transactions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *tr
	return &copied, nil
}

func (r *TransactionRepository) Update(_ context.Context, id int64, patch *model.TransactionPatch) (*model.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.transactions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.Description != nil {
		tr.Description = *patch.Description
	}
	if patch.Amount != nil {
		tr.Amount = *patch.Amount
	}
	if patch.Status != nil {
		tr.Status = *patch.Status
	}

	copied := *tr
	return &copied, nil
}

func (r *TransactionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.transactions, id)
	return nil
}
