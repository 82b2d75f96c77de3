package calendar

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/user"
	log "github.com/sirupsen/logrus"
)

// YearMonth is a navigation target.
type YearMonth struct {
	Year  int
	Month time.Month
}

// MonthView is the grid plus where the prev/next/today controls lead.
type MonthView struct {
	Grid     MonthGrid
	Previous YearMonth
	Next     YearMonth
	Today    YearMonth
}

// ViewService builds the month view for the signed-in user. The grid builder
// itself is stateless; the requested year/month comes with every call.
type ViewService struct {
	events event.Service
	clock  utils.Clock
}

func NewViewService(events event.Service, clock utils.Clock) *ViewService {
	return &ViewService{events: events, clock: clock}
}

// MonthView loads the user's full event list and lays out the requested
// month. A failing read renders an empty month rather than an error page; the
// failure is logged. Events are re-sorted by start time because the store
// contract leaves list order unspecified.
func (s *ViewService) MonthView(ctx context.Context, year int, month time.Month) (MonthView, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return MonthView{}, fmt.Errorf("failed to get current user: %w", err)
	}

	loc, err := time.LoadLocation(currentUser.Timezone)
	if err != nil {
		log.Debugf("unknown timezone %q, falling back to UTC", currentUser.Timezone)
		loc = time.UTC
	}

	now := s.clock.Now().In(loc)
	if year == 0 {
		year, month = now.Year(), now.Month()
	}

	events, err := s.events.List(ctx)
	if err != nil {
		log.Errorf("failed to load events, rendering empty month: %v", err)
		events = nil
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})

	prevYear, prevMonth := PreviousMonth(year, month)
	nextYear, nextMonth := NextMonth(year, month)

	return MonthView{
		Grid:     BuildMonthGrid(year, month, now, events),
		Previous: YearMonth{Year: prevYear, Month: prevMonth},
		Next:     YearMonth{Year: nextYear, Month: nextMonth},
		Today:    YearMonth{Year: now.Year(), Month: now.Month()},
	}, nil
}
