package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/medportal/portal-api/internal/model"
)

type DoctorRepository struct {
	mu      sync.Mutex
	doctors map[int64]*model.Doctor
	nextID  int64
}

func NewDoctorRepository() *DoctorRepository {
	return &DoctorRepository{doctors: make(map[int64]*model.Doctor), nextID: 1}
}

func (r *DoctorRepository) Create(_ context.Context, doctor *model.Doctor) (*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *doctor
	stored.DoctorID = r.nextID
	r.nextID++
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.doctors[stored.DoctorID] = &stored
	copied := stored
	return &copied, nil
}

func (r *DoctorRepository) List(_ context.Context) ([]*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Doctor, 0, len(r.doctors))
	for id := int64(1); id < r.nextID; id++ {
		if d, ok := r.doctors[id]; ok {
			copied := *d
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *DoctorRepository) Get(_ context.Context, id int64) (*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *d
	return &copied, nil
}

func (r *DoctorRepository) Update(_ context.Context, id int64, patch *model.DoctorPatch) (*model.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.Specialization != nil {
		d.Specialization = *patch.Specialization
	}
	if patch.AvailableDays != nil {
		d.AvailableDays = *patch.AvailableDays
	}
	d.UpdatedAt = time.Now()

	copied := *d
	return &copied, nil
}

func (r *DoctorRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.doctors[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.doctors, id)
	return nil
}
