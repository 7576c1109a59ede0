package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

// Rejection reasons for a reschedule attempt. Callers branch on these with
// errors.Is to render the right message.
var (
	ErrSlotConflict        = errors.New("another appointment exists for this staff member at that time")
	ErrPastDate            = errors.New("appointments cannot be moved to a past date")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// ReadAppointments lists the current appointment collection the conflict
// check validates against.
type ReadAppointments func(ctx context.Context) ([]*model.Appointment, error)

// WriteAppointmentDate persists a validated date-time change. It is the only
// mutation the coordinator issues.
type WriteAppointmentDate func(ctx context.Context, id uuid.UUID, date time.Time) error

// Coordinator validates and commits candidate placements. It holds no
// appointment state of its own; every attempt reads a fresh collection
// through the accessor, so validation always runs against the store's
// current view rather than a client snapshot.
type Coordinator struct {
	read  ReadAppointments
	write WriteAppointmentDate

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewCoordinator(read ReadAppointments, write WriteAppointmentDate) *Coordinator {
	return &Coordinator{read: read, write: write, Now: time.Now}
}

// Reschedule validates the candidate placement and, only if valid, commits
// the new date-time. On any rejection no write is issued. A persistence
// failure after successful validation is returned wrapped; there is nothing
// to roll back because no state was mutated before the write.
func (c *Coordinator) Reschedule(ctx context.Context, appointmentID uuid.UUID, newDate time.Time) (*model.Appointment, error) {
	appointments, err := c.read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}

	var target *model.Appointment
	for _, apt := range appointments {
		if apt != nil && apt.ID == appointmentID {
			target = apt
			break
		}
	}
	if target == nil {
		return nil, ErrAppointmentNotFound
	}

	candidate := Candidate{
		AppointmentID: appointmentID,
		StaffID:       target.StaffID,
		Date:          newDate,
	}
	if HasConflict(candidate, appointments) {
		return nil, ErrSlotConflict
	}
	if newDate.Before(c.now()) {
		return nil, ErrPastDate
	}

	if err := c.write(ctx, appointmentID, newDate); err != nil {
		return nil, fmt.Errorf("failed to save appointment: %w", err)
	}

	updated := *target
	updated.Date = newDate
	return &updated, nil
}

func (c *Coordinator) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
