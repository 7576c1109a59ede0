package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
)

// Candidate is a proposed (staff, date-time) placement for an appointment,
// produced by a drag gesture or a manual edit and not yet committed.
type Candidate struct {
	AppointmentID uuid.UUID
	StaffID       uuid.UUID
	Date          time.Time
}

// HasConflict reports whether committing the candidate would double-book its
// staff member: some other non-cancelled appointment with the same staff on
// the same calendar day at the same HH:MM. Equality is minute-granular by
// design; sub-minute differences never conflict. Pure predicate, O(n) over
// the collection.
func HasConflict(candidate Candidate, appointments []*model.Appointment) bool {
	label := SlotLabel(candidate.Date)
	for _, apt := range appointments {
		if apt == nil || apt.ID == candidate.AppointmentID {
			continue
		}
		if apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		if apt.StaffID != candidate.StaffID {
			continue
		}
		if SameDay(apt.Date, candidate.Date) && SlotLabel(apt.Date) == label {
			return true
		}
	}
	return false
}
