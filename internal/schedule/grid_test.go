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

func newAppointment(t *testing.T, staffID uuid.UUID, date string) *model.Appointment {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02 15:04", date, time.UTC)
	require.NoError(t, err)

	apt := &model.Appointment{
		StaffID: staffID,
		Date:    parsed,
		Status:  model.AppointmentStatusPending,
	}
	apt.ID = uuid.New()
	return apt
}

func TestSlots(t *testing.T) {
	slots := schedule.Slots(9, 18, 15*time.Minute)

	require.Len(t, slots, 40)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:15", slots[1])
	assert.Equal(t, "18:45", slots[len(slots)-1])

	// Restartable: a second enumeration is identical.
	assert.Equal(t, slots, schedule.Slots(9, 18, 15*time.Minute))
}

func TestSlotsGranularity(t *testing.T) {
	slots := schedule.Slots(9, 10, 30*time.Minute)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, slots)
}

func TestWeekOf(t *testing.T) {
	// 2025-03-12 is a Wednesday.
	ref := time.Date(2025, 3, 12, 15, 30, 0, 0, time.UTC)
	week := schedule.WeekOf(ref, time.Monday)

	require.Len(t, week, 7)
	assert.Equal(t, "2025-03-10", week[0].Format("2006-01-02"))
	assert.Equal(t, "2025-03-16", week[6].Format("2006-01-02"))
	for _, day := range week {
		assert.Equal(t, 0, day.Hour())
	}

	// A reference already on the week start maps to itself.
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, schedule.WeekOf(monday, time.Monday)[0])

	// Sunday-start convention shifts the window.
	sunWeek := schedule.WeekOf(ref, time.Sunday)
	assert.Equal(t, "2025-03-09", sunWeek[0].Format("2006-01-02"))
}

func TestPlaceGroupsByDayAndSlot(t *testing.T) {
	staff := uuid.New()
	a := newAppointment(t, staff, "2025-03-10 14:00")
	b := newAppointment(t, staff, "2025-03-10 14:15")
	c := newAppointment(t, uuid.New(), "2025-03-12 09:00")

	week := schedule.WeekOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Monday)
	grid := schedule.Place([]*model.Appointment{a, b, c}, week)

	require.Len(t, grid, 3)
	assert.Equal(t, []*model.Appointment{a}, grid[schedule.Cell{Day: "2025-03-10", Slot: "14:00"}])
	assert.Equal(t, []*model.Appointment{b}, grid[schedule.Cell{Day: "2025-03-10", Slot: "14:15"}])
	assert.Equal(t, []*model.Appointment{c}, grid[schedule.Cell{Day: "2025-03-12", Slot: "09:00"}])
}

func TestPlaceIsPure(t *testing.T) {
	appointments := []*model.Appointment{
		newAppointment(t, uuid.New(), "2025-03-10 10:00"),
		newAppointment(t, uuid.New(), "2025-03-11 11:30"),
	}
	week := schedule.WeekOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Monday)

	first := schedule.Place(appointments, week)
	second := schedule.Place(appointments, week)
	assert.Equal(t, first, second)
}

func TestPlaceOffRasterTimesShareNoCell(t *testing.T) {
	// 14:02 and 14:03 format to different labels, so they never collapse into
	// one cell; slot membership is label equality, not interval containment.
	staff := uuid.New()
	a := newAppointment(t, staff, "2025-03-10 14:02")
	b := newAppointment(t, staff, "2025-03-10 14:03")

	week := schedule.WeekOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Monday)
	grid := schedule.Place([]*model.Appointment{a, b}, week)

	require.Len(t, grid, 2)
	assert.Len(t, grid[schedule.Cell{Day: "2025-03-10", Slot: "14:02"}], 1)
	assert.Len(t, grid[schedule.Cell{Day: "2025-03-10", Slot: "14:03"}], 1)
}

func TestPlaceSkipsBadRecords(t *testing.T) {
	valid := newAppointment(t, uuid.New(), "2025-03-10 10:00")
	zero := &model.Appointment{Status: model.AppointmentStatusPending} // no date
	zero.ID = uuid.New()

	week := schedule.WeekOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Monday)
	grid := schedule.Place([]*model.Appointment{zero, valid, nil}, week)

	require.Len(t, grid, 1)
	assert.Equal(t, []*model.Appointment{valid}, grid[schedule.Cell{Day: "2025-03-10", Slot: "10:00"}])
}

func TestPlaceExcludesOtherWeeks(t *testing.T) {
	inWeek := newAppointment(t, uuid.New(), "2025-03-10 10:00")
	outOfWeek := newAppointment(t, uuid.New(), "2025-03-20 10:00")

	week := schedule.WeekOf(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), time.Monday)
	grid := schedule.Place([]*model.Appointment{inWeek, outOfWeek}, week)

	require.Len(t, grid, 1)
	_, ok := grid[schedule.Cell{Day: "2025-03-20", Slot: "10:00"}]
	assert.False(t, ok)
}

func TestParseCell(t *testing.T) {
	got, err := schedule.ParseCell("2025-03-10", "14:15", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 15, 0, 0, time.UTC), got)

	_, err = schedule.ParseCell("2025-03-10", "25:99", time.UTC)
	assert.Error(t, err)
}
