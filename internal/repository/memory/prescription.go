package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/medportal/portal-api/internal/model"
)

type PrescriptionRepository struct {
	mu            sync.Mutex
	prescriptions map[int64]*model.Prescription
	nextID        int64
}

func NewPrescriptionRepository() *PrescriptionRepository {
	return &PrescriptionRepository{prescriptions: make(map[int64]*model.Prescription), nextID: 1}
}

func (r *PrescriptionRepository) Create(_ context.Context, prescription *model.Prescription) (*model.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *prescription
	stored.PrescriptionID = r.nextID
	r.nextID++
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.prescriptions[stored.PrescriptionID] = &stored
	copied := stored
	return &copied, nil
}

func (r *PrescriptionRepository) List(_ context.Context) ([]*model.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Prescription, 0, len(r.prescriptions))
	for id := int64(1); id < r.nextID; id++ {
		if p, ok := r.prescriptions[id]; ok {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *PrescriptionRepository) Get(_ context.Context, id int64) (*model.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prescriptions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *p
	return &copied, nil
}

func (r *PrescriptionRepository) Update(_ context.Context, id int64, patch *model.PrescriptionPatch) (*model.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prescriptions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	p.UpdatedAt = time.Now()

	copied := *p
	return &copied, nil
}

func (r *PrescriptionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.prescriptions[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.prescriptions, id)
	return nil
}
