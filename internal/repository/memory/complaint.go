package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/medportal/portal-api/internal/model"
)

type ComplaintRepository struct {
	mu         sync.Mutex
	complaints map[int64]*model.Complaint
	nextID     int64
}

func NewComplaintRepository() *ComplaintRepository {
	return &ComplaintRepository{complaints: make(map[int64]*model.Complaint), nextID: 1}
}

func (r *ComplaintRepository) Create(_ context.Context, complaint *model.Complaint) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *complaint
	stored.ComplaintID = r.nextID
	r.nextID++
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.complaints[stored.ComplaintID] = &stored
	copied := stored
	return &copied, nil
}

func (r *ComplaintRepository) List(_ context.Context) ([]*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Complaint, 0, len(r.complaints))
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.complaints[id]; ok {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *ComplaintRepository) Get(_ context.Context, id int64) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.complaints[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

func (r *ComplaintRepository) Update(_ context.Context, id int64, patch *model.ComplaintPatch) (*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.complaints[id]
	if !ok {
		return nil, sql.ErrNoRows
	}

	if patch.Subject != nil {
		c.Subject = *patch.Subject
	}
	if patch.Description != nil {
		c.Description = *patch.Description
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	c.UpdatedAt = time.Now()

	copied := *c
	return &copied, nil
}

func (r *ComplaintRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.complaints[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.complaints, id)
	return nil
}

func (r *ComplaintRepository) ListByUser(_ context.Context, userID int64) ([]*model.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Complaint, 0)
	for id := int64(1); id < r.nextID; id++ {
		if c, ok := r.complaints[id]; ok && c.UserID == userID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}
