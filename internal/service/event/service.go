package event

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/repository"
)

// Service records domain events in the transactional outbox; a background
// worker publishes them to the broker. Recording failures are logged, never
// propagated: an event that cannot be written must not fail the user-facing
// operation that produced it.
type Service struct {
	outboxRepo repository.OutboxRepository
}

func NewService(outboxRepo repository.OutboxRepository) *Service {
	return &Service{outboxRepo: outboxRepo}
}

func (s *Service) Emit(ctx context.Context, eventType string, payload interface{}) {
	if s == nil || s.outboxRepo == nil {
		return
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}

	event := &model.OutboxEvent{
		EventType: eventType,
		Payload:   payloadJSON,
	}
	if err := s.outboxRepo.Create(ctx, event); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to record outbox event")
	}
}
