package postgres

import (
	"context"
	"fmt"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const doctorColumns = `
	doctor_id, user_id, specialization, available_days, created_at, updated_at
`

type doctorRepository struct {
	BaseRepository
}

func NewDoctorRepository(base BaseRepository) repository.DoctorRepository {
	return &doctorRepository{base}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	query := `
		INSERT INTO doctors (user_id, specialization, available_days, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING ` + doctorColumns

	var created model.Doctor
	err := r.db.GetContext(ctx, &created, query,
		doctor.UserID,
		doctor.Specialization,
		doctor.AvailableDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", translateError(err))
	}
	return &created, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors ORDER BY doctor_id`

	doctors := []*model.Doctor{}
	if err := r.db.SelectContext(ctx, &doctors, query); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM doctors WHERE doctor_id = $1`

	var doctor model.Doctor
	if err := r.db.GetContext(ctx, &doctor, query, id); err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) Update(ctx context.Context, id int64, patch *model.DoctorPatch) (*model.Doctor, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Specialization != nil {
		add("specialization", *patch.Specialization)
	}
	if patch.AvailableDays != nil {
		add("available_days", *patch.AvailableDays)
	}

	sets = append(sets, "updated_at = NOW()")
	query := buildPatchQuery("doctors", "doctor_id", sets, &args, id) + " RETURNING " + doctorColumns

	var updated model.Doctor
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", translateError(err))
	}
	return &updated, nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM doctors WHERE doctor_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", translateError(err))
	}
	return requireRowsAffected(result, "doctor")
}
