package event

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/medportal/portal-api/internal/model"
	"github.com/medportal/portal-api/internal/repository"
)

// Event types emitted by the CRUD services.
const (
	TypeAppointmentCreated = "appointment.created"
	TypeAppointmentUpdated = "appointment.updated"
	TypeAppointmentDeleted = "appointment.deleted"
	TypePaymentCreated     = "payment.created"
	TypePaymentUpdated     = "payment.updated"
	TypePaymentDeleted     = "payment.deleted"
	TypeComplaintCreated   = "complaint.created"
	TypeComplaintUpdated   = "complaint.updated"
	TypeComplaintDeleted   = "complaint.deleted"
	TypeUserRegistered     = "user.registered"
	TypeUserVerified       = "user.verified"
)

// Service stages domain events in the outbox table for the worker to
// publish. Recording is best effort: a failed write is logged and never
// fails the calling operation.
type Service struct {
	outboxRepo repository.OutboxRepository
}

func NewService(outboxRepo repository.OutboxRepository) *Service {
	return &Service{outboxRepo: outboxRepo}
}

func (s *Service) Record(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to record event")
	}
}
