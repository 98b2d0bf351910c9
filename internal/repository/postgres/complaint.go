package postgres

import (
	"context"
	"fmt"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const complaintColumns = `
	complaint_id, user_id, appointment_id, subject, description, status,
	created_at, updated_at
`

type complaintRepository struct {
	BaseRepository
}

func NewComplaintRepository(base BaseRepository) repository.ComplaintRepository {
	return &complaintRepository{base}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) (*model.Complaint, error) {
	query := `
		INSERT INTO complaints (
			user_id, appointment_id, subject, description, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + complaintColumns

	var created model.Complaint
	err := r.db.GetContext(ctx, &created, query,
		complaint.UserID,
		complaint.AppointmentID,
		complaint.Subject,
		complaint.Description,
		complaint.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", translateError(err))
	}
	return &created, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]*model.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints ORDER BY complaint_id`

	complaints := []*model.Complaint{}
	if err := r.db.SelectContext(ctx, &complaints, query); err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (r *complaintRepository) Get(ctx context.Context, id int64) (*model.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE complaint_id = $1`

	var complaint model.Complaint
	if err := r.db.GetContext(ctx, &complaint, query, id); err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return &complaint, nil
}

func (r *complaintRepository) Update(ctx context.Context, id int64, patch *model.ComplaintPatch) (*model.Complaint, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Subject != nil {
		add("subject", *patch.Subject)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	sets = append(sets, "updated_at = NOW()")
	query := buildPatchQuery("complaints", "complaint_id", sets, &args, id) + " RETURNING " + complaintColumns

	var updated model.Complaint
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", translateError(err))
	}
	return &updated, nil
}

func (r *complaintRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM complaints WHERE complaint_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete complaint: %w", translateError(err))
	}
	return requireRowsAffected(result, "complaint")
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE user_id = $1 ORDER BY complaint_id`

	complaints := []*model.Complaint{}
	if err := r.db.SelectContext(ctx, &complaints, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list complaints for user: %w", err)
	}
	return complaints, nil
}
