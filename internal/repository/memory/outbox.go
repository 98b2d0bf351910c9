package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/medportal/portal-api/internal/model"
)

type OutboxRepository struct {
	mu     sync.Mutex
	events []*model.OutboxEvent
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{}
}

func (r *OutboxRepository) Create(_ context.Context, event *model.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *event
	stored.ID = uuid.New()
	stored.Status = model.OutboxStatusPending
	stored.CreatedAt = time.Now()

	r.events = append(r.events, &stored)
	return nil
}

func (r *OutboxRepository) GetPendingEvents(_ context.Context, limit int) ([]*model.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.OutboxEvent, 0, limit)
	for _, e := range r.events {
		if e.Status != model.OutboxStatusPending {
			continue
		}
		copied := *e
		out = append(out, &copied)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) UpdateStatus(_ context.Context, id uuid.UUID, status string, errMsg *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.events {
		if e.ID != id {
			continue
		}
		e.Status = status
		e.ErrorMessage = errMsg
		switch status {
		case model.OutboxStatusProcessed:
			now := time.Now()
			e.ProcessedAt = &now
		case model.OutboxStatusFailed:
			e.RetryCount++
		}
		return nil
	}
	return sql.ErrNoRows
}

// Events returns a snapshot of everything recorded, newest last.
func (r *OutboxRepository) Events() []*model.OutboxEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.OutboxEvent, 0, len(r.events))
	for _, e := range r.events {
		copied := *e
		out = append(out, &copied)
	}
	return out
}
