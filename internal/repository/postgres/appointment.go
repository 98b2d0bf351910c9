package postgres

import (
	"context"
	"fmt"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

const appointmentColumns = `
	appointment_id, user_id, doctor_id, appointment_date, time,
	total_amount, status, created_at, updated_at
`

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) (*model.Appointment, error) {
	query := `
		INSERT INTO appointments (
			user_id, doctor_id, appointment_date, time, total_amount,
			status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING ` + appointmentColumns

	var created model.Appointment
	err := r.db.GetContext(ctx, &created, query,
		appointment.UserID,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.Time,
		appointment.TotalAmount,
		appointment.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", translateError(err))
	}
	return &created, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments ORDER BY appointment_id`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE appointment_id = $1`

	var appointment model.Appointment
	if err := r.db.GetContext(ctx, &appointment, query, id); err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &appointment, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id int64, patch *model.AppointmentPatch) (*model.Appointment, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.AppointmentDate != nil {
		add("appointment_date", *patch.AppointmentDate)
	}
	if patch.Time != nil {
		add("time", *patch.Time)
	}
	if patch.TotalAmount != nil {
		add("total_amount", *patch.TotalAmount)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.DoctorID != nil {
		add("doctor_id", *patch.DoctorID)
	}

	sets = append(sets, "updated_at = NOW()")
	query := buildPatchQuery("appointments", "appointment_id", sets, &args, id) + " RETURNING " + appointmentColumns

	var updated model.Appointment
	if err := r.db.GetContext(ctx, &updated, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", translateError(err))
	}
	return &updated, nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE appointment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", translateError(err))
	}
	return requireRowsAffected(result, "appointment")
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE user_id = $1 ORDER BY appointment_id`

	appointments := []*model.Appointment{}
	if err := r.db.SelectContext(ctx, &appointments, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list appointments for user: %w", err)
	}
	return appointments, nil
}
