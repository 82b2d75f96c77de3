package calendar

import (
	"time"

	"github.com/kalendo/kalendo/pkg/event"
)

// VisibleEventsPerDay caps how many events a day cell shows; the rest are
// summarized as a count. Presentation only: the cell still carries the full
// bucket.
const VisibleEventsPerDay = 3

// DayCell is one numbered day in the month grid.
type DayCell struct {
	Day    int
	Date   time.Time // midnight, local
	Today  bool
	Events []event.Event // every event starting on this local date
}

// Visible returns the capped slice of events for display.
func (c DayCell) Visible() []event.Event {
	if len(c.Events) <= VisibleEventsPerDay {
		return c.Events
	}
	return c.Events[:VisibleEventsPerDay]
}

// Overflow is the number of events hidden by the display cap.
func (c DayCell) Overflow() int {
	if len(c.Events) <= VisibleEventsPerDay {
		return 0
	}
	return len(c.Events) - VisibleEventsPerDay
}

// MonthGrid is the rendered matrix for one calendar month: LeadingBlanks
// placeholder cells (week starts Sunday) followed by one cell per day.
type MonthGrid struct {
	Year          int
	Month         time.Month
	LeadingBlanks int
	Cells         []DayCell
}

// BuildMonthGrid lays out year/month and buckets each event into the cell
// matching the local calendar date of its start instant. Multi-day events are
// attributed to their start date only. The today argument is the current
// instant in the same location as the bucketed events; exactly one cell is
// marked Today when the grid shows the current month.
func BuildMonthGrid(year int, month time.Month, today time.Time, events []event.Event) MonthGrid {
	loc := today.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	byDay := make(map[int][]event.Event)
	for _, e := range events {
		start := e.StartTime.In(loc)
		if start.Year() == year && start.Month() == month {
			byDay[start.Day()] = append(byDay[start.Day()], e)
		}
	}

	todayYear, todayMonth, todayDay := today.Date()

	cells := make([]DayCell, 0, daysInMonth)
	for day := 1; day <= daysInMonth; day++ {
		cells = append(cells, DayCell{
			Day:    day,
			Date:   time.Date(year, month, day, 0, 0, 0, 0, loc),
			Today:  year == todayYear && month == todayMonth && day == todayDay,
			Events: byDay[day],
		})
	}

	return MonthGrid{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Cells:         cells,
	}
}

// NextMonth returns the month after year/month, rolling the year over.
func NextMonth(year int, month time.Month) (int, time.Month) {
	next := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC)
	return next.Year(), next.Month()
}

// PreviousMonth returns the month before year/month, rolling the year over.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	prev := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	return prev.Year(), prev.Month()
}
