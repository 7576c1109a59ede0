package appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randevuhq/randevu-api/internal/model"
	"github.com/randevuhq/randevu-api/internal/schedule"
	"github.com/randevuhq/randevu-api/internal/service/notification"
)

// stubRepo is an in-memory AppointmentRepository that counts mutations.
type stubRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	dateWrites   int
	updates      int
}

func newStubRepo() *stubRepo {
	return &stubRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *stubRepo) Create(_ context.Context, apt *model.Appointment) error {
	r.appointments[apt.ID] = apt
	return nil
}

func (r *stubRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, fmt.Errorf("appointment not found")
	}
	return apt, nil
}

func (r *stubRepo) Update(_ context.Context, apt *model.Appointment) error {
	if _, ok := r.appointments[apt.ID]; !ok {
		return fmt.Errorf("appointment not found")
	}
	r.updates++
	r.appointments[apt.ID] = apt
	return nil
}

func (r *stubRepo) UpdateDate(_ context.Context, id uuid.UUID, date time.Time) error {
	apt, ok := r.appointments[id]
	if !ok {
		return fmt.Errorf("appointment not found")
	}
	r.dateWrites++
	apt.Date = date
	return nil
}

func (r *stubRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.appointments, id)
	return nil
}

func (r *stubRepo) List(_ context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range r.appointments {
		if filters != nil {
			if !filters.StartDate.IsZero() && apt.Date.Before(filters.StartDate) {
				continue
			}
			if !filters.EndDate.IsZero() && !apt.Date.Before(filters.EndDate) {
				continue
			}
		}
		out = append(out, apt)
	}
	return out, nil
}

func seedAppointment(t *testing.T, repo *stubRepo, staffID uuid.UUID, date string) *model.Appointment {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", date, time.Local)
	require.NoError(t, err)

	apt := &model.Appointment{
		BusinessID: uuid.New(),
		ServiceID:  uuid.New(),
		StaffID:    staffID,
		CustomerID: uuid.New(),
		Date:       parsed,
		Status:     model.AppointmentStatusPending,
	}
	apt.ID = uuid.New()
	repo.appointments[apt.ID] = apt
	return apt
}

func newTestService(repo *stubRepo) *Service {
	return NewService(repo, nil, notification.Noop{})
}

func futureDay(days int) string {
	return time.Now().AddDate(0, 0, days).Format("2006-01-02")
}

func TestRescheduleCommitsAndWritesOnce(t *testing.T) {
	repo := newStubRepo()
	staffID := uuid.New()
	apt := seedAppointment(t, repo, staffID, futureDay(2)+" 14:00")

	svc := newTestService(repo)
	updated, err := svc.Reschedule(context.Background(), apt.ID, futureDay(2), "14:15")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.dateWrites)
	assert.Equal(t, "14:15", schedule.SlotLabel(updated.Date))
	assert.Equal(t, staffID, updated.StaffID)
}

func TestRescheduleConflictWritesNothing(t *testing.T) {
	repo := newStubRepo()
	staffID := uuid.New()
	apt := seedAppointment(t, repo, staffID, futureDay(2)+" 14:00")
	seedAppointment(t, repo, staffID, futureDay(3)+" 10:00")

	svc := newTestService(repo)
	_, err := svc.Reschedule(context.Background(), apt.ID, futureDay(3), "10:00")

	assert.ErrorIs(t, err, schedule.ErrSlotConflict)
	assert.Zero(t, repo.dateWrites)
}

func TestReschedulePastDateWritesNothing(t *testing.T) {
	repo := newStubRepo()
	apt := seedAppointment(t, repo, uuid.New(), futureDay(2)+" 14:00")

	svc := newTestService(repo)
	past := time.Now().AddDate(0, 0, -7).Format("2006-01-02")
	_, err := svc.Reschedule(context.Background(), apt.ID, past, "09:00")

	assert.ErrorIs(t, err, schedule.ErrPastDate)
	assert.Zero(t, repo.dateWrites)
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	repo := newStubRepo()
	seedAppointment(t, repo, uuid.New(), futureDay(2)+" 14:00")

	svc := newTestService(repo)
	_, err := svc.Reschedule(context.Background(), uuid.New(), futureDay(3), "10:00")

	assert.ErrorIs(t, err, schedule.ErrAppointmentNotFound)
	assert.Zero(t, repo.dateWrites)
}

func TestRescheduleInvalidCell(t *testing.T) {
	repo := newStubRepo()
	apt := seedAppointment(t, repo, uuid.New(), futureDay(2)+" 14:00")

	svc := newTestService(repo)
	_, err := svc.Reschedule(context.Background(), apt.ID, "not-a-day", "14:00")

	assert.Error(t, err)
	assert.Zero(t, repo.dateWrites)
}

func TestCreateAppointmentRejectsConflict(t *testing.T) {
	repo := newStubRepo()
	staffID := uuid.New()
	existing := seedAppointment(t, repo, staffID, futureDay(2)+" 14:00")

	svc := newTestService(repo)
	apt := &model.Appointment{
		BusinessID: existing.BusinessID,
		ServiceID:  existing.ServiceID,
		StaffID:    staffID,
		CustomerID: uuid.New(),
		Date:       existing.Date,
	}

	err := svc.CreateAppointment(context.Background(), apt)
	assert.ErrorIs(t, err, schedule.ErrSlotConflict)
	assert.Len(t, repo.appointments, 1)
}

func TestCreateAppointmentDefaultsToPending(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(repo)

	apt := &model.Appointment{
		BusinessID: uuid.New(),
		ServiceID:  uuid.New(),
		StaffID:    uuid.New(),
		CustomerID: uuid.New(),
		Date:       time.Now().AddDate(0, 0, 2),
	}
	require.NoError(t, svc.CreateAppointment(context.Background(), apt))
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.NotEqual(t, uuid.Nil, apt.ID)
}

func TestUpdateAppointmentStatusAndNotes(t *testing.T) {
	repo := newStubRepo()
	apt := seedAppointment(t, repo, uuid.New(), futureDay(2)+" 14:00")

	svc := newTestService(repo)
	status := model.AppointmentStatusConfirmed
	notes := "geldi"
	updated, err := svc.UpdateAppointment(context.Background(), apt.ID, &model.UpdateAppointmentRequest{
		Status: &status,
		Notes:  &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)
	assert.Equal(t, "geldi", updated.Notes)
	assert.Equal(t, 1, repo.updates)
	assert.Zero(t, repo.dateWrites, "status edits must not touch the date path")
}

func TestUpdateAppointmentDateGoesThroughValidation(t *testing.T) {
	repo := newStubRepo()
	staffID := uuid.New()
	apt := seedAppointment(t, repo, staffID, futureDay(2)+" 14:00")
	occupant := seedAppointment(t, repo, staffID, futureDay(3)+" 10:00")

	svc := newTestService(repo)
	conflicting := occupant.Date.Format(time.RFC3339)
	_, err := svc.UpdateAppointment(context.Background(), apt.ID, &model.UpdateAppointmentRequest{
		Date: &conflicting,
	})

	assert.ErrorIs(t, err, schedule.ErrSlotConflict)
	assert.Zero(t, repo.dateWrites)
}

func TestCalendarPlacesAppointments(t *testing.T) {
	repo := newStubRepo()
	apt := seedAppointment(t, repo, uuid.New(), futureDay(1)+" 10:00")

	svc := newTestService(repo)
	view, err := svc.Calendar(context.Background(), time.Now().AddDate(0, 0, 1))
	require.NoError(t, err)

	require.Len(t, view.Days, 7)
	assert.Equal(t, schedule.Slots(schedule.DefaultStartHour, schedule.DefaultEndHour, schedule.DefaultGranularity), view.Slots)

	key := schedule.DayKey(apt.Date) + "T" + schedule.SlotLabel(apt.Date)
	require.Contains(t, view.Cells, key)
	assert.Equal(t, apt.ID, view.Cells[key][0].ID)
}
