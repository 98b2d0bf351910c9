package postgres

import (
	"context"
	"fmt"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const prescriptionColumns = `
	prescription_id, appointment_id, doctor_id, patient_id, notes,
	created_at, updated_at
`

type prescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(base BaseRepository) repository.PrescriptionRepository {
	return &prescriptionRepository{base}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) (*model.Prescription, error) {
	query := `
		INSERT INTO prescriptions (
			appointment_id, doctor_id, patient_id, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING ` + prescriptionColumns

	var created model.Prescription
	err := r.db.GetContext(ctx, &created, query,
		prescription.AppointmentID,
		prescription.DoctorID,
		prescription.PatientID,
		prescription.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", translateError(err))
	}
	return &created, nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions ORDER BY prescription_id`

	prescriptions := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &prescriptions, query); err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions WHERE prescription_id = $1`

	var prescription model.Prescription
	if err := r.db.GetContext(ctx, &prescription, query, id); err != nil {
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, id int64, patch *model.PrescriptionPatch) (*model.Prescription, error) {
	sets := []string{}
	args := []interface{}{}

	if patch.Notes != nil {
		args = append(args, *patch.Notes)
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}

	sets = append(sets, "updated_at = NOW()")
	query := buildPatchQuery("prescriptions", "prescription_id", sets, &args, id) + " RETURNING " + prescriptionColumns

	var updated model.Prescription
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", translateError(err))
	}
	return &updated, nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE prescription_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", translateError(err))
	}
	return requireRowsAffected(result, "prescription")
}
