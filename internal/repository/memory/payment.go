package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository/postgres"
)

type PaymentRepository struct {
	mu       sync.Mutex
	payments map[int64]*model.Payment
	nextID   int64
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{payments: make(map[int64]*model.Payment), nextID: 1}
}

func (r *PaymentRepository) Create(_ context.Context, payment *model.Payment) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.payments {
		if existing.AppointmentID == payment.AppointmentID {
			return nil, postgres.ErrDuplicate
		}
	}

	stored := *payment
	stored.PaymentID = r.nextID
	r.nextID++
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.payments[stored.PaymentID] = &stored
	copied := stored
	return &copied, nil
}

func (r *PaymentRepository) List(_ context.Context) ([]*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Payment, 0, len(r.payments))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.payments[id]; ok {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *PaymentRepository) Get(_ context.Context, id int64) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (r *PaymentRepository) Update(_ context.Context, id int64, patch *model.PaymentPatch) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.PaymentDate != nil {
		p.PaymentDate = *patch.PaymentDate
	}
	p.UpdatedAt = time.Now()

	copied := *p
	return &copied, nil
}

func (r *PaymentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.payments, id)
	return nil
}
