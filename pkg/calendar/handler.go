package calendar

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/user"
)

type DayCellDTO struct {
	Day      int              `json:"day"`
	Date     string           `json:"date"`
	Today    bool             `json:"today"`
	Events   []event.EventDTO `json:"events"`
	Overflow int              `json:"overflow"`
}

type YearMonthDTO struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type MonthViewDTO struct {
	Year          int          `json:"year"`
	Month         int          `json:"month"`
	LeadingBlanks int          `json:"leadingBlanks"`
	Cells         []DayCellDTO `json:"cells"`
	Previous      YearMonthDTO `json:"previous"`
	Next          YearMonthDTO `json:"next"`
	Today         YearMonthDTO `json:"today"`
}

type Handler struct {
	view *ViewService
}

func NewHandler(view *ViewService) *Handler {
	return &Handler{view: view}
}

// GetMonth renders the month grid for ?year=&month=. Both parameters must be
// given together; when absent the current month in the user's timezone is
// rendered.
func (h *Handler) GetMonth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	year, month, err := parseYearMonth(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := h.view.MonthView(r.Context(), year, month)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(viewToDTO(view)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func parseYearMonth(r *http.Request) (int, time.Month, error) {
	yearParam := r.URL.Query().Get("year")
	monthParam := r.URL.Query().Get("month")
	if yearParam == "" && monthParam == "" {
		return 0, 0, nil
	}

	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return 0, 0, errors.New("invalid year parameter")
	}
	month, err := strconv.Atoi(monthParam)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, errors.New("invalid month parameter")
	}
	return year, time.Month(month), nil
}

func viewToDTO(view MonthView) MonthViewDTO {
	cells := make([]DayCellDTO, 0, len(view.Grid.Cells))
	for _, cell := range view.Grid.Cells {
		visible := cell.Visible()
		events := make([]event.EventDTO, 0, len(visible))
		for _, e := range visible {
			events = append(events, event.EventDTO{
				ID:          e.ID,
				Title:       e.Title,
				Description: e.Description,
				StartTime:   e.StartTime,
				EndTime:     e.EndTime,
				Color:       e.Color,
			})
		}
		cells = append(cells, DayCellDTO{
			Day:      cell.Day,
			Date:     cell.Date.Format("2006-01-02"),
			Today:    cell.Today,
			Events:   events,
			Overflow: cell.Overflow(),
		})
	}

	return MonthViewDTO{
		Year:          view.Grid.Year,
		Month:         int(view.Grid.Month),
		LeadingBlanks: view.Grid.LeadingBlanks,
		Cells:         cells,
		Previous:      YearMonthDTO{Year: view.Previous.Year, Month: int(view.Previous.Month)},
		Next:          YearMonthDTO{Year: view.Next.Year, Month: int(view.Next.Month)},
		Today:         YearMonthDTO{Year: view.Today.Year, Month: int(view.Today.Month)},
	}
}
