package schedule

import (
	"fmt"
	"time"

	"github.com/randevuhq/randevu-api/internal/model"
)

// Grid layout defaults, matching the dashboard's working day.
const (
	DefaultStartHour   = 9
	DefaultEndHour     = 18
	DefaultGranularity = 15 * time.Minute

	dayKeyFormat  = "2006-01-02"
	slotKeyFormat = "15:04"
)

// Cell addresses a single slot in the weekly grid.
type Cell struct {
	Day  string // 2006-01-02
	Slot string // 15:04
}

// Grid maps cells to the appointments rendered in them.
type Grid map[Cell][]*model.Appointment

// Slots enumerates the slot labels of one working day: every granularity step
// of every hour from startHour through endHour inclusive. With the defaults
// that is 09:00, 09:15, ... 18:45. Deterministic, no side effects.
func Slots(startHour, endHour int, granularity time.Duration) []string {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	step := int(granularity.Minutes())
	if step <= 0 || step > 60 {
		step = 15
	}

	var labels []string
	for hour := startHour; hour <= endHour; hour++ {
		for minute := 0; minute < 60; minute += step {
			labels = append(labels, fmt.Sprintf("%02d:%02d", hour, minute))
		}
	}
	return labels
}

// WeekOf returns the seven consecutive days containing ref, starting on
// weekStart. The dashboard follows the Turkish convention of weeks starting
// on Monday.
func WeekOf(ref time.Time, weekStart time.Weekday) []time.Time {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())

	offset := int(day.Weekday()) - int(weekStart)
	if offset < 0 {
		offset += 7
	}
	start := day.AddDate(0, 0, -offset)

	week := make([]time.Time, 7)
	for i := range week {
		week[i] = start.AddDate(0, 0, i)
	}
	return week
}

// Place groups appointments into grid cells for the given week. Day membership
// is exact calendar-day equality and slot membership is formatted-label
// equality, so an appointment created off the slot raster simply does not
// appear in any cell. Records with a zero date are skipped rather than
// aborting the whole placement.
func Place(appointments []*model.Appointment, week []time.Time) Grid {
	byDay := make(map[string]bool, len(week))
	for _, day := range week {
		byDay[day.Format(dayKeyFormat)] = true
	}

	grid := make(Grid)
	for _, apt := range appointments {
		if apt == nil || apt.Date.IsZero() {
			continue
		}
		cell := Cell{
			Day:  apt.Date.Format(dayKeyFormat),
			Slot: apt.Date.Format(slotKeyFormat),
		}
		if !byDay[cell.Day] {
			continue
		}
		grid[cell] = append(grid[cell], apt)
	}
	return grid
}

// SameDay reports exact calendar-day equality.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SlotLabel formats t to the minute-precision label used for slot addressing
// and conflict comparison.
func SlotLabel(t time.Time) string {
	return t.Format(slotKeyFormat)
}

// DayKey formats t to the grid's day key.
func DayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}

// ParseCell combines a day key and slot label into a concrete instant in loc.
func ParseCell(day, slot string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayKeyFormat+" "+slotKeyFormat, day+" "+slot, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid grid cell %q %q: %w", day, slot, err)
	}
	return t, nil
}
