package event

import (
	"errors"
	"time"
)

// Event is a titled, colored, time-ranged record owned by one user.
// StartTime <= EndTime is expected but not enforced by the store; the form
// rejects reversed ranges before they get here.
type Event struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Color       string
}

// The fixed display palette. Values are what the frontend renders with.
const (
	ColorBlue   = "#3b82f6"
	ColorGreen  = "#10b981"
	ColorRed    = "#ef4444"
	ColorPurple = "#8b5cf6"
	ColorOrange = "#f97316"
	ColorPink   = "#ec4899"
)

var Colors = []string{ColorBlue, ColorGreen, ColorRed, ColorPurple, ColorOrange, ColorPink}

// DefaultColor is used when a payload omits the color.
const DefaultColor = ColorBlue

func ValidColor(color string) bool {
	for _, c := range Colors {
		if c == color {
			return true
		}
	}
	return false
}

var (
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidColor  = errors.New("color is not in the palette")
)

// Fields is the full user-editable field set, assembled by the form.
type Fields struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Color       string
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
	Color       *string
}

// Apply merges the patch into the event. ID and OwnerID are never touched.
func (p Patch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Color != nil {
		e.Color = *p.Color
	}
	return e
}

// FieldsPatch turns a full field set into a patch touching every field.
func FieldsPatch(f Fields) Patch {
	return Patch{
		Title:       &f.Title,
		Description: &f.Description,
		StartTime:   &f.StartTime,
		EndTime:     &f.EndTime,
		Color:       &f.Color,
	}
}
