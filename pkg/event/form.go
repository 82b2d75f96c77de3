package event

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMissingField   = errors.New("required field is missing")
	ErrInvalidInstant = errors.New("invalid date or time")
	ErrEndBeforeStart = errors.New("end is before start")
)

const (
	formDateLayout    = "2006-01-02"
	formTimeLayout    = "15:04"
	formInstantLayout = formDateLayout + "T" + formTimeLayout
)

// Form is the event dialog payload: separate date and time inputs for start
// and end, combined into instants in the user's timezone on submit.
type Form struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	StartTime   string `json:"startTime"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime"`
	Color       string `json:"color"`
}

// Fields validates the form and assembles the full field set. Title and the
// four date/time inputs are required; description defaults to empty and color
// to the first palette entry. A range with end before start is rejected.
func (f Form) Fields(loc *time.Location) (Fields, error) {
	if f.Title == "" {
		return Fields{}, ErrTitleRequired
	}
	for name, value := range map[string]string{
		"startDate": f.StartDate,
		"startTime": f.StartTime,
		"endDate":   f.EndDate,
		"endTime":   f.EndTime,
	} {
		if value == "" {
			return Fields{}, fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	start, err := time.ParseInLocation(formInstantLayout, f.StartDate+"T"+f.StartTime, loc)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: start", ErrInvalidInstant)
	}
	end, err := time.ParseInLocation(formInstantLayout, f.EndDate+"T"+f.EndTime, loc)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: end", ErrInvalidInstant)
	}

	if end.Before(start) {
		return Fields{}, ErrEndBeforeStart
	}

	color := f.Color
	if color == "" {
		color = DefaultColor
	} else if !ValidColor(color) {
		return Fields{}, ErrInvalidColor
	}

	return Fields{
		Title:       f.Title,
		Description: f.Description,
		StartTime:   start,
		EndTime:     end,
		Color:       color,
	}, nil
}
