package schedule_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/schedule"
)

// writeRecorder counts commits so rejection paths can assert zero writes.
type writeRecorder struct {
	calls int
	id    uuid.UUID
	date  time.Time
	err   error
}

func (w *writeRecorder) write(_ context.Context, id uuid.UUID, date time.Time) error {
	w.calls++
	w.id = id
	w.date = date
	return w.err
}

func fixedNow(t *testing.T) func() time.Time {
	t.Helper()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func newCoordinator(t *testing.T, appointments []*model.Appointment, w *writeRecorder) *schedule.Coordinator {
	t.Helper()
	read := func(context.Context) ([]*model.Appointment, error) {
		return appointments, nil
	}
	c := schedule.NewCoordinator(read, w.write)
	c.Now = fixedNow(t)
	return c
}

func at(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", date, time.UTC)
	require.NoError(t, err)
	return parsed
}

func TestRescheduleCommits(t *testing.T) {
	staff := uuid.New()
	apt := newAppointment(t, staff, "2025-03-10 14:00")
	other := newAppointment(t, staff, "2025-03-10 15:00")

	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{apt, other}, w)

	target := at(t, "2025-03-10 14:15")
	updated, err := c.Reschedule(context.Background(), apt.ID, target)
	require.NoError(t, err)

	assert.Equal(t, 1, w.calls)
	assert.Equal(t, apt.ID, w.id)
	assert.Equal(t, target, w.date)
	assert.Equal(t, target, updated.Date)

	// Only the date changes; the rest of the record is untouched.
	assert.Equal(t, apt.StaffID, updated.StaffID)
	assert.Equal(t, apt.ServiceID, updated.ServiceID)
	assert.Equal(t, apt.CustomerID, updated.CustomerID)
	assert.Equal(t, apt.Status, updated.Status)
}

func TestRescheduleConflictRejected(t *testing.T) {
	staff := uuid.New()
	apt := newAppointment(t, staff, "2025-03-10 14:00")
	occupant := newAppointment(t, staff, "2025-03-11 10:00")

	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{apt, occupant}, w)

	_, err := c.Reschedule(context.Background(), apt.ID, at(t, "2025-03-11 10:00"))
	assert.ErrorIs(t, err, schedule.ErrSlotConflict)
	assert.Zero(t, w.calls, "rejected attempts must cause no writes")
}

func TestReschedulePastDateRejected(t *testing.T) {
	apt := newAppointment(t, uuid.New(), "2025-03-10 14:00")

	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{apt}, w)

	_, err := c.Reschedule(context.Background(), apt.ID, at(t, "2025-03-01 09:00"))
	assert.ErrorIs(t, err, schedule.ErrPastDate)
	assert.Zero(t, w.calls)
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{newAppointment(t, uuid.New(), "2025-03-10 14:00")}, w)

	_, err := c.Reschedule(context.Background(), uuid.New(), at(t, "2025-03-11 10:00"))
	assert.ErrorIs(t, err, schedule.ErrAppointmentNotFound)
	assert.Zero(t, w.calls)
}

func TestRescheduleOntoOwnSlotSucceeds(t *testing.T) {
	staff := uuid.New()
	apt := newAppointment(t, staff, "2025-03-10 14:00")

	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{apt}, w)

	_, err := c.Reschedule(context.Background(), apt.ID, at(t, "2025-03-10 14:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, w.calls)
}

func TestRescheduleToCancelledSlotSucceeds(t *testing.T) {
	staff := uuid.New()
	apt := newAppointment(t, staff, "2025-03-10 14:00")
	cancelled := newAppointment(t, staff, "2025-03-11 10:00")
	cancelled.Status = model.AppointmentStatusCancelled

	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{apt, cancelled}, w)

	_, err := c.Reschedule(context.Background(), apt.ID, at(t, "2025-03-11 10:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, w.calls)
}

func TestReschedulePersistenceFailure(t *testing.T) {
	apt := newAppointment(t, uuid.New(), "2025-03-10 14:00")

	w := &writeRecorder{err: errors.New("connection reset")}
	c := newCoordinator(t, []*model.Appointment{apt}, w)

	_, err := c.Reschedule(context.Background(), apt.ID, at(t, "2025-03-11 10:00"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, schedule.ErrSlotConflict)
	assert.NotErrorIs(t, err, schedule.ErrPastDate)
	assert.Equal(t, 1, w.calls)
}

func TestRescheduleReadFailure(t *testing.T) {
	w := &writeRecorder{}
	read := func(context.Context) ([]*model.Appointment, error) {
		return nil, errors.New("db down")
	}
	c := schedule.NewCoordinator(read, w.write)

	_, err := c.Reschedule(context.Background(), uuid.New(), time.Now().Add(time.Hour))
	require.Error(t, err)
	assert.Zero(t, w.calls)
}

func TestRescheduleConflictCheckedBeforePastDate(t *testing.T) {
	// A candidate that is both in the past and conflicting reports the
	// conflict, mirroring the validation order of the drag handler.
	staff := uuid.New()
	apt := newAppointment(t, staff, "2025-03-10 14:00")
	occupant := newAppointment(t, staff, "2025-03-01 09:00")

	w := &writeRecorder{}
	c := newCoordinator(t, []*model.Appointment{apt, occupant}, w)

	_, err := c.Reschedule(context.Background(), apt.ID, at(t, "2025-03-01 09:00"))
	assert.ErrorIs(t, err, schedule.ErrSlotConflict)
	assert.Zero(t, w.calls)
}

func TestNoDoubleBookingAfterReschedule(t *testing.T) {
	// Property: after any successful reschedule, no two non-cancelled
	// appointments of the same staff member share a day and slot label.
	staff := uuid.New()
	appointments := []*model.Appointment{
		newAppointment(t, staff, "2025-03-10 14:00"),
		newAppointment(t, staff, "2025-03-10 15:00"),
		newAppointment(t, staff, "2025-03-11 09:30"),
	}

	w := &writeRecorder{}
	c := newCoordinator(t, appointments, w)

	targets := []string{
		"2025-03-10 15:00", // occupied, rejected
		"2025-03-12 10:00", // free, committed
		"2025-03-11 09:30", // occupied, rejected
	}
	for _, target := range targets {
		moved, err := c.Reschedule(context.Background(), appointments[0].ID, at(t, target))
		if err == nil {
			appointments[0] = moved
		}
	}

	seen := make(map[string]uuid.UUID)
	for _, apt := range appointments {
		if apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		key := apt.StaffID.String() + schedule.DayKey(apt.Date) + schedule.SlotLabel(apt.Date)
		prev, dup := seen[key]
		assert.False(t, dup, "staff double-booked: %s and %s", prev, apt.ID)
		seen[key] = apt.ID
	}
}
