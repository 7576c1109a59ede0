package schedule_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/schedule"
)

func candidateAt(t *testing.T, staffID uuid.UUID, date string) schedule.Candidate {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", date, time.UTC)
	require.NoError(t, err)
	return schedule.Candidate{AppointmentID: uuid.New(), StaffID: staffID, Date: parsed}
}

func TestHasConflictSameStaffSameSlot(t *testing.T) {
	staff := uuid.New()
	existing := newAppointment(t, staff, "2025-03-10 14:00")

	candidate := candidateAt(t, staff, "2025-03-10 14:00")
	assert.True(t, schedule.HasConflict(candidate, []*model.Appointment{existing}))
}

func TestHasConflictDifferentStaff(t *testing.T) {
	existing := newAppointment(t, uuid.New(), "2025-03-10 14:00")

	candidate := candidateAt(t, uuid.New(), "2025-03-10 14:00")
	assert.False(t, schedule.HasConflict(candidate, []*model.Appointment{existing}))
}

func TestHasConflictDifferentSlotOrDay(t *testing.T) {
	staff := uuid.New()
	existing := newAppointment(t, staff, "2025-03-10 14:00")

	assert.False(t, schedule.HasConflict(candidateAt(t, staff, "2025-03-10 14:15"), []*model.Appointment{existing}))
	assert.False(t, schedule.HasConflict(candidateAt(t, staff, "2025-03-11 14:00"), []*model.Appointment{existing}))
}

func TestHasConflictIgnoresSelf(t *testing.T) {
	staff := uuid.New()
	existing := newAppointment(t, staff, "2025-03-10 14:00")

	// Re-placing an appointment onto its own current slot is not a conflict
	// with itself.
	candidate := schedule.Candidate{
		AppointmentID: existing.ID,
		StaffID:       staff,
		Date:          existing.Date,
	}
	assert.False(t, schedule.HasConflict(candidate, []*model.Appointment{existing}))
}

func TestHasConflictIgnoresCancelled(t *testing.T) {
	staff := uuid.New()
	cancelled := newAppointment(t, staff, "2025-03-10 14:00")
	cancelled.Status = model.AppointmentStatusCancelled

	candidate := candidateAt(t, staff, "2025-03-10 14:00")
	assert.False(t, schedule.HasConflict(candidate, []*model.Appointment{cancelled}))
}

func TestHasConflictSubMinutePrecision(t *testing.T) {
	staff := uuid.New()
	existing := newAppointment(t, staff, "2025-03-10 14:00")
	existing.Date = existing.Date.Add(30 * time.Second)

	// 14:00:30 still formats to 14:00, so a 14:00 candidate conflicts.
	candidate := candidateAt(t, staff, "2025-03-10 14:00")
	assert.True(t, schedule.HasConflict(candidate, []*model.Appointment{existing}))
}

func TestHasConflictScanOrderIndependent(t *testing.T) {
	staff := uuid.New()
	occupied := newAppointment(t, staff, "2025-03-10 14:00")
	others := []*model.Appointment{
		newAppointment(t, staff, "2025-03-10 09:00"),
		newAppointment(t, uuid.New(), "2025-03-10 14:00"),
	}

	candidate := candidateAt(t, staff, "2025-03-10 14:00")

	forward := append([]*model.Appointment{occupied}, others...)
	backward := append(append([]*model.Appointment{}, others...), occupied)
	assert.True(t, schedule.HasConflict(candidate, forward))
	assert.True(t, schedule.HasConflict(candidate, backward))
}

func TestHasConflictMultipleStaffSameTime(t *testing.T) {
	// Two staff members holding the same slot is legal; a third appointment
	// conflicts only with the occupant sharing its staff reference.
	s1, s2 := uuid.New(), uuid.New()
	appointments := []*model.Appointment{
		newAppointment(t, s1, "2025-03-10 14:00"),
		newAppointment(t, s2, "2025-03-10 14:00"),
	}

	assert.True(t, schedule.HasConflict(candidateAt(t, s2, "2025-03-10 14:00"), appointments))
	assert.False(t, schedule.HasConflict(candidateAt(t, s1, "2025-03-10 15:00"), appointments))
}
