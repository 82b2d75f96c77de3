package event

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/rest"
	"github.com/kalendo/kalendo/pkg/user"
	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start"`
	EndTime     time.Time `json:"end"`
	Color       string    `json:"color"`
}

// PatchDTO mirrors the store's partial update: omitted fields stay unchanged.
type PatchDTO struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartTime   *time.Time `json:"start,omitempty"`
	EndTime     *time.Time `json:"end,omitempty"`
	Color       *string    `json:"color,omitempty"`
}

type Handler struct {
	events Service
}

func NewHandler(events Service) *Handler {
	return &Handler{events: events}
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events, err := h.events.List(r.Context())
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, eventToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CreateEvent accepts the event form, assembles the instants in the user's
// timezone and stores a new event. Nothing is persisted when validation or
// the store fails, so the client can re-show the form with its data intact.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	fields, err := form.Fields(locationFor(currentUser))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	created, err := h.events.Create(r.Context(), fields)
	if err != nil {
		if isValidationError(err) {
			writeValidationError(w, err)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(eventToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateEvent is the form's edit path: the full field set replaces the stored
// event's user-editable fields.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	fields, err := form.Fields(locationFor(currentUser))
	if err != nil {
		writeValidationError(w, err)
		return
	}

	eventId := mux.Vars(r)["eventId"]
	updated, err := h.events.Update(r.Context(), eventId, FieldsPatch(fields))
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// PatchEvent merges a partial field set into the stored event.
func (h *Handler) PatchEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto PatchDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	eventId := mux.Vars(r)["eventId"]
	updated, err := h.events.Update(r.Context(), eventId, Patch{
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		Color:       dto.Color,
	})
	if err != nil {
		h.writeUpdateError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(eventToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	eventId := mux.Vars(r)["eventId"]
	err := h.events.Delete(r.Context(), eventId)
	if err != nil {
		if errors.Is(err, user.ErrNoUser) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeUpdateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrNoUser):
		w.WriteHeader(http.StatusUnauthorized)
	case errors.Is(err, ErrEventNotFound):
		w.WriteHeader(http.StatusNotFound)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Event not found",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
	case isValidationError(err):
		writeValidationError(w, err)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrTitleRequired) ||
		errors.Is(err, ErrInvalidColor) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidInstant) ||
		errors.Is(err, ErrEndBeforeStart)
}

func writeValidationError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
		Error: err.Error(),
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func locationFor(u user.User) *time.Location {
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		log.Debugf("unknown timezone %q, falling back to UTC", u.Timezone)
		return time.UTC
	}
	return loc
}

func eventToDTO(e Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Color:       e.Color,
	}
}
