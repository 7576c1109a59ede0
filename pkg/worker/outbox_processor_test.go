package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/pkg/logger"
	"github.com/randevuhq/randevu-api/pkg/metrics"
)

type stubOutboxRepo struct {
	pending  []*model.OutboxEvent
	statuses map[uuid.UUID]model.OutboxStatus
	errMsgs  map[uuid.UUID]string
}

func newStubOutboxRepo(events ...*model.OutboxEvent) *stubOutboxRepo {
	return &stubOutboxRepo{
		pending:  events,
		statuses: make(map[uuid.UUID]model.OutboxStatus),
		errMsgs:  make(map[uuid.UUID]string),
	}
}

func (r *stubOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	r.pending = append(r.pending, event)
	return nil
}

func (r *stubOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	if len(r.pending) > limit {
		return r.pending[:limit], nil
	}
	return r.pending, nil
}

func (r *stubOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error {
	r.statuses[id] = status
	if errMsg != nil {
		r.errMsgs[id] = *errMsg
	}
	return nil
}

func (r *stubOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type stubBroker struct {
	published map[string][]interface{}
	failFor   map[string]error
	calls     int
}

func newStubBroker() *stubBroker {
	return &stubBroker{
		published: make(map[string][]interface{}),
		failFor:   make(map[string]error),
	}
}

func (b *stubBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.calls++
	if err, ok := b.failFor[channel]; ok {
		return err
	}
	b.published[channel] = append(b.published[channel], message)
	return nil
}

func (b *stubBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *stubBroker) Close() error { return nil }

func pendingEvent(eventType string) *model.OutboxEvent {
	return &model.OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   json.RawMessage(`{"id":"x"}`),
		Status:    string(model.OutboxStatusPending),
		CreatedAt: time.Now(),
	}
}

func testProcessor(repo *stubOutboxRepo, broker *stubBroker, attempts int) *OutboxProcessor {
	return NewOutboxProcessor(repo, broker, OutboxProcessorConfig{
		BatchSize:     10,
		PollInterval:  time.Millisecond,
		RetryAttempts: attempts,
		RetryDelay:    time.Millisecond,
	}, logger.NewLogger(nil), metrics.NewMetrics("test", uuid.NewString()[:8]))
}

func TestProcessEventsPublishesAndMarksProcessed(t *testing.T) {
	created := pendingEvent(model.EventAppointmentCreated)
	rescheduled := pendingEvent(model.EventAppointmentRescheduled)
	repo := newStubOutboxRepo(created, rescheduled)
	broker := newStubBroker()

	p := testProcessor(repo, broker, 3)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Len(t, broker.published[model.EventAppointmentCreated], 1)
	assert.Len(t, broker.published[model.EventAppointmentRescheduled], 1)
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[created.ID])
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[rescheduled.ID])
}

func TestProcessEventsMarksFailedAfterRetries(t *testing.T) {
	event := pendingEvent(model.EventAppointmentCancelled)
	repo := newStubOutboxRepo(event)
	broker := newStubBroker()
	broker.failFor[model.EventAppointmentCancelled] = errors.New("broker down")

	p := testProcessor(repo, broker, 3)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, 3, broker.calls)
	assert.Equal(t, model.OutboxStatusFailed, repo.statuses[event.ID])
	assert.Contains(t, repo.errMsgs[event.ID], "broker down")
}

func TestProcessEventsFailureDoesNotBlockBatch(t *testing.T) {
	failing := pendingEvent(model.EventAppointmentDeleted)
	healthy := pendingEvent(model.EventAppointmentUpdated)
	repo := newStubOutboxRepo(failing, healthy)
	broker := newStubBroker()
	broker.failFor[model.EventAppointmentDeleted] = errors.New("broker down")

	p := testProcessor(repo, broker, 1)
	require.NoError(t, p.processEvents(context.Background()))

	assert.Equal(t, model.OutboxStatusFailed, repo.statuses[failing.ID])
	assert.Equal(t, model.OutboxStatusProcessed, repo.statuses[healthy.ID])
}

func TestNewOutboxProcessorValidatesConfig(t *testing.T) {
	assert.Panics(t, func() {
		NewOutboxProcessor(newStubOutboxRepo(), newStubBroker(), OutboxProcessorConfig{}, logger.NewLogger(nil), nil)
	})
}
