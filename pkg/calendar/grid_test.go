package calendar

import (
	"testing"
	"time"

	"github.com/kalendo/kalendo/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventAt(id string, start time.Time) event.Event {
	return event.Event{
		ID:        id,
		Title:     "Event " + id,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Color:     event.DefaultColor,
	}
}

func TestBuildMonthGrid_January2024(t *testing.T) {
	// given: January 2024 starts on a Monday and has 31 days
	today := time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)

	// when
	grid := BuildMonthGrid(2024, time.January, today, nil)

	// then
	assert.Equal(t, 1, grid.LeadingBlanks)
	require.Len(t, grid.Cells, 31)
	assert.Equal(t, 1, grid.Cells[0].Day)
	assert.Equal(t, 31, grid.Cells[30].Day)
	assert.True(t, grid.Cells[9].Today)
	for i, cell := range grid.Cells {
		if i != 9 {
			assert.False(t, cell.Today)
		}
	}
}

func TestBuildMonthGrid_LeadingBlanksMatchFirstWeekday(t *testing.T) {
	today := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	for month := time.January; month <= time.December; month++ {
		grid := BuildMonthGrid(2024, month, today, nil)

		first := time.Date(2024, month, 1, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, int(first.Weekday()), grid.LeadingBlanks)
		assert.Len(t, grid.Cells, time.Date(2024, month+1, 0, 0, 0, 0, 0, time.UTC).Day())
	}
}

func TestBuildMonthGrid_BucketsEventByStartDate(t *testing.T) {
	// given
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	events := []event.Event{
		eventAt("a", time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)),
	}

	// when
	grid := BuildMonthGrid(2024, time.March, today, events)

	// then: exactly one cell holds the event
	for _, cell := range grid.Cells {
		if cell.Day == 15 {
			require.Len(t, cell.Events, 1)
			assert.Equal(t, "a", cell.Events[0].ID)
		} else {
			assert.Empty(t, cell.Events)
		}
	}
}

func TestBuildMonthGrid_MultiDayEventAppearsOnStartDateOnly(t *testing.T) {
	// given: an event spanning March 10-12
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	spanning := event.Event{
		ID:        "span",
		Title:     "Conference",
		StartTime: time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, time.March, 12, 17, 0, 0, 0, time.UTC),
	}

	// when
	grid := BuildMonthGrid(2024, time.March, today, []event.Event{spanning})

	// then
	assert.Len(t, grid.Cells[9].Events, 1)
	assert.Empty(t, grid.Cells[10].Events)
	assert.Empty(t, grid.Cells[11].Events)
}

func TestBuildMonthGrid_BucketsInLocalTime(t *testing.T) {
	// given: 23:30 UTC on the 15th is already the 16th in Warsaw
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc)
	events := []event.Event{
		eventAt("late", time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)),
	}

	// when
	grid := BuildMonthGrid(2024, time.March, today, events)

	// then
	assert.Empty(t, grid.Cells[14].Events)
	assert.Len(t, grid.Cells[15].Events, 1)
}

func TestBuildMonthGrid_IgnoresEventsOutsideTheMonth(t *testing.T) {
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	events := []event.Event{
		eventAt("before", time.Date(2024, time.February, 29, 9, 0, 0, 0, time.UTC)),
		eventAt("after", time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)),
		eventAt("prior-year", time.Date(2023, time.March, 15, 9, 0, 0, 0, time.UTC)),
	}

	grid := BuildMonthGrid(2024, time.March, today, events)

	for _, cell := range grid.Cells {
		assert.Empty(t, cell.Events)
	}
}

func TestBuildMonthGrid_NoTodayInOtherMonths(t *testing.T) {
	today := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	grid := BuildMonthGrid(2024, time.April, today, nil)

	for _, cell := range grid.Cells {
		assert.False(t, cell.Today)
	}
}

func TestDayCell_VisibleAndOverflow(t *testing.T) {
	// given: five events on the same day
	today := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	var events []event.Event
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		events = append(events, eventAt(id, time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)))
	}

	// when
	grid := BuildMonthGrid(2024, time.March, today, events)

	// then: the cap is presentation only, the full bucket stays on the cell
	cell := grid.Cells[4]
	assert.Len(t, cell.Events, 5)
	assert.Len(t, cell.Visible(), VisibleEventsPerDay)
	assert.Equal(t, 2, cell.Overflow())
}

func TestMonthNavigation(t *testing.T) {
	t.Run("should roll the year forward from December", func(t *testing.T) {
		year, month := NextMonth(2024, time.December)
		assert.Equal(t, 2025, year)
		assert.Equal(t, time.January, month)
	})

	t.Run("should roll the year back from January", func(t *testing.T) {
		year, month := PreviousMonth(2024, time.January)
		assert.Equal(t, 2023, year)
		assert.Equal(t, time.December, month)
	})

	t.Run("should move within the year", func(t *testing.T) {
		year, month := NextMonth(2024, time.May)
		assert.Equal(t, 2024, year)
		assert.Equal(t, time.June, month)

		year, month = PreviousMonth(2024, time.May)
		assert.Equal(t, 2024, year)
		assert.Equal(t, time.April, month)
	})
}
