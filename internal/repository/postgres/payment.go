package postgres

import (
	"context"
	"fmt"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const paymentColumns = `
	payment_id, appointment_id, amount, status, transaction_id,
	payment_date, created_at, updated_at
`

type paymentRepository struct {
	BaseRepository
}

func NewPaymentRepository(base BaseRepository) repository.PaymentRepository {
	return &paymentRepository{base}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) (*model.Payment, error) {
	query := `
		INSERT INTO payments (
			appointment_id, amount, status, transaction_id, payment_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + paymentColumns

	var created model.Payment
	err := r.db.GetContext(ctx, &created, query,
		payment.AppointmentID,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.PaymentDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", translateError(err))
	}
	return &created, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_id`

	payments := []*model.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) Get(ctx context.Context, id int64) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE payment_id = $1`

	var payment model.Payment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, id int64, patch *model.PaymentPatch) (*model.Payment, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Amount != nil {
		add("amount", *patch.Amount)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.PaymentDate != nil {
		add("payment_date", *patch.PaymentDate)
	}

	sets = append(sets, "updated_at = NOW()")
	query := buildPatchQuery("payments", "payment_id", sets, &args, id) + " RETURNING " + paymentColumns

	var updated model.Payment
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", translateError(err))
	}
	return &updated, nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE payment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", translateError(err))
	}
	return requireRowsAffected(result, "payment")
}
