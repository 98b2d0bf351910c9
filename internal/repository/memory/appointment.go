package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/medportal/portal-api/internal/model"
)

type AppointmentRepository struct {
	mu           sync.Mutex
	appointments map[int64]*model.Appointment
	nextID       int64
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{appointments: make(map[int64]*model.Appointment), nextID: 1}
}

func (r *AppointmentRepository) Create(_ context.Context, appointment *model.Appointment) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *appointment
	stored.AppointmentID = r.nextID
	r.nextID++
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.appointments[stored.AppointmentID] = &stored
	copied := stored
	return &copied, nil
}

func (r *AppointmentRepository) List(_ context.Context) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Appointment, 0, len(r.appointments))
	for id := int64(1); id < r.nextID; id++ {
		if a, ok := r.appointments[id]; ok {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *AppointmentRepository) Get(_ context.Context, id int64) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (r *AppointmentRepository) Update(_ context.Context, id int64, patch *model.AppointmentPatch) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.AppointmentDate != nil {
		a.AppointmentDate = *patch.AppointmentDate
	}
	if patch.Time != nil {
		a.Time = patch.Time
	}
	if patch.TotalAmount != nil {
		a.TotalAmount = *patch.TotalAmount
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.DoctorID != nil {
		a.DoctorID = *patch.DoctorID
	}
	a.UpdatedAt = time.Now()

	copied := *a
	return &copied, nil
}

func (r *AppointmentRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.appointments, id)
	return nil
}

func (r *AppointmentRepository) ListByUser(_ context.Context, userID int64) ([]*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Appointment, 0)
	for id := int64(1); id < r.nextID; id++ {
		if a, ok := r.appointments[id]; ok && a.UserID == userID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}
