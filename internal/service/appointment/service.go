package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/repository"
	"github.com/randevuhq/randevu-api/internal/schedule"
	"github.com/randevuhq/randevu-api/internal/service/event"
	"github.com/randevuhq/randevu-api/internal/service/notification"
)

// CalendarWeek is the grid the dashboard renders: seven days, the working-day
// slot labels, and the appointments placed into their cells.
type CalendarWeek struct {
	Days  []string                        `json:"days"`
	Slots []string                        `json:"slots"`
	Cells map[string][]*model.Appointment `json:"cells"` // "2006-01-02T15:04"
}

type Service struct {
	repo        repository.AppointmentRepository
	coordinator *schedule.Coordinator
	events      *event.Service
	notifier    notification.Service

	startHour   int
	endHour     int
	granularity time.Duration
	weekStart   time.Weekday
}

func NewService(repo repository.AppointmentRepository, events *event.Service, notifier notification.Service) *Service {
	s := &Service{
		repo:        repo,
		events:      events,
		notifier:    notifier,
		startHour:   schedule.DefaultStartHour,
		endHour:     schedule.DefaultEndHour,
		granularity: schedule.DefaultGranularity,
		weekStart:   time.Monday,
	}
	s.coordinator = schedule.NewCoordinator(s.listAll, repo.UpdateDate)
	return s
}

// SetWorkingHours overrides the default grid bounds.
func (s *Service) SetWorkingHours(startHour, endHour int, granularity time.Duration) {
	s.startHour = startHour
	s.endHour = endHour
	s.granularity = granularity
}

func (s *Service) listAll(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx, nil)
}

func (s *Service) CreateAppointment(ctx context.Context, apt *model.Appointment) error {
	if err := s.validateAppointment(ctx, apt); err != nil {
		return err
	}

	apt.ID = uuid.New()
	if apt.Status == "" {
		apt.Status = model.AppointmentStatusPending
	}
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, apt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	s.events.Emit(ctx, model.EventAppointmentCreated, apt)
	s.notifier.AppointmentCreated(ctx, apt)
	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	appointments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment applies a manual edit. Status and notes are unconditional
// writes; a date change is a candidate placement and goes through the
// coordinator first, so its validation cannot be bypassed from the edit form.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, schedule.ErrAppointmentNotFound
	}

	if req.Date != nil {
		newDate, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date format: %w", err)
		}
		if _, err := s.coordinator.Reschedule(ctx, id, newDate); err != nil {
			return nil, err
		}
		apt.Date = newDate
	}

	if req.Status != nil {
		// Transitions are unconstrained: any status may follow any other.
		if !model.ValidStatus(*req.Status) {
			return nil, fmt.Errorf("unknown status %q", *req.Status)
		}
		apt.Status = *req.Status
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if req.Status != nil || req.Notes != nil {
		if err := s.repo.Update(ctx, apt); err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
	}

	s.events.Emit(ctx, model.EventAppointmentUpdated, apt)
	return apt, nil
}

// Reschedule validates and commits a drag-and-drop move to the given grid
// cell. Rejections surface as the coordinator's typed errors.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, day, slot string) (*model.Appointment, error) {
	newDate, err := schedule.ParseCell(day, slot, time.Local)
	if err != nil {
		return nil, err
	}

	apt, err := s.coordinator.Reschedule(ctx, id, newDate)
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, model.EventAppointmentRescheduled, apt)
	s.notifier.AppointmentRescheduled(ctx, apt)
	return apt, nil
}

func (s *Service) CancelAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return schedule.ErrAppointmentNotFound
	}

	apt.Status = model.AppointmentStatusCancelled
	if err := s.repo.Update(ctx, apt); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.events.Emit(ctx, model.EventAppointmentCancelled, apt)
	return nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	s.events.Emit(ctx, model.EventAppointmentDeleted, map[string]interface{}{"id": id})
	return nil
}

// Calendar builds the weekly grid containing ref.
func (s *Service) Calendar(ctx context.Context, ref time.Time) (*CalendarWeek, error) {
	week := schedule.WeekOf(ref, s.weekStart)

	appointments, err := s.repo.List(ctx, &model.AppointmentFilters{
		StartDate: week[0],
		EndDate:   week[6].AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	grid := schedule.Place(appointments, week)

	view := &CalendarWeek{
		Days:  make([]string, len(week)),
		Slots: schedule.Slots(s.startHour, s.endHour, s.granularity),
		Cells: make(map[string][]*model.Appointment, len(grid)),
	}
	for i, day := range week {
		view.Days[i] = schedule.DayKey(day)
	}
	for cell, occupants := range grid {
		view.Cells[cell.Day+"T"+cell.Slot] = occupants
	}
	return view, nil
}

func (s *Service) validateAppointment(ctx context.Context, apt *model.Appointment) error {
	if apt.BusinessID == uuid.Nil {
		return fmt.Errorf("business ID is required")
	}
	if apt.ServiceID == uuid.Nil {
		return fmt.Errorf("service ID is required")
	}
	if apt.StaffID == uuid.Nil {
		return fmt.Errorf("staff ID is required")
	}
	if apt.CustomerID == uuid.Nil {
		return fmt.Errorf("customer ID is required")
	}
	if apt.Date.Before(time.Now()) {
		return schedule.ErrPastDate
	}

	appointments, err := s.listAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check conflicts: %w", err)
	}
	candidate := schedule.Candidate{
		AppointmentID: apt.ID,
		StaffID:       apt.StaffID,
		Date:          apt.Date,
	}
	if schedule.HasConflict(candidate, appointments) {
		return schedule.ErrSlotConflict
	}
	return nil
}
