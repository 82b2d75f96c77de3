package event

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, Service, context.Context) {
	service := NewService(NewStubStore(), nil)
	return NewHandler(service), service, user.WithUser(context.Background(), testUser)
}

func postJSON(ctx context.Context, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(ctx)
}

func TestHandler_GetEvents(t *testing.T) {
	t.Run("should return the owner's events", func(t *testing.T) {
		// given
		handler, service, ctx := setupHandlerTest(t)
		created, err := service.Create(ctx, testFields("Team Standup"))
		require.NoError(t, err)

		// when
		req := httptest.NewRequest(http.MethodGet, "/api/event", nil).WithContext(ctx)
		w := httptest.NewRecorder()
		handler.GetEvents(w, req)

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		var dtos []EventDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dtos))
		require.Len(t, dtos, 1)
		assert.Equal(t, created.ID, dtos[0].ID)
		assert.Equal(t, "Team Standup", dtos[0].Title)
	})

	t.Run("should return 401 without a session", func(t *testing.T) {
		// given
		handler, _, _ := setupHandlerTest(t)

		// when
		req := httptest.NewRequest(http.MethodGet, "/api/event", nil)
		w := httptest.NewRecorder()
		handler.GetEvents(w, req)

		// then
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_CreateEvent(t *testing.T) {
	t.Run("should create an event from the form", func(t *testing.T) {
		// given
		handler, service, ctx := setupHandlerTest(t)

		// when
		w := httptest.NewRecorder()
		handler.CreateEvent(w, postJSON(ctx, "/api/event", validForm()))

		// then
		assert.Equal(t, http.StatusCreated, w.Code)
		var dto EventDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.NotEmpty(t, dto.ID)
		assert.Equal(t, "Team Standup", dto.Title)
		assert.Equal(t, ColorGreen, dto.Color)
		assert.Equal(t, time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC).Unix(), dto.StartTime.Unix())

		events, err := service.List(ctx)
		require.NoError(t, err)
		assert.Len(t, events, 1)
	})

	t.Run("should return 400 and keep the store untouched on validation failure", func(t *testing.T) {
		// given
		handler, service, ctx := setupHandlerTest(t)
		form := validForm()
		form.EndDate = "2024-03-14"

		// when
		w := httptest.NewRecorder()
		handler.CreateEvent(w, postJSON(ctx, "/api/event", form))

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var errResponse struct {
			Error string `json:"error"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&errResponse))
		assert.Contains(t, errResponse.Error, "end is before start")

		events, err := service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("should return 401 without a session", func(t *testing.T) {
		// given
		handler, _, _ := setupHandlerTest(t)

		// when
		w := httptest.NewRecorder()
		handler.CreateEvent(w, postJSON(context.Background(), "/api/event", validForm()))

		// then
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_UpdateEvent(t *testing.T) {
	t.Run("should replace the editable fields", func(t *testing.T) {
		// given
		handler, service, ctx := setupHandlerTest(t)
		created, err := service.Create(ctx, testFields("Old Title"))
		require.NoError(t, err)
		form := validForm()
		form.Title = "New Title"

		// when
		req := postJSON(ctx, "/api/event/"+created.ID, form)
		req = mux.SetURLVars(req, map[string]string{"eventId": created.ID})
		w := httptest.NewRecorder()
		handler.UpdateEvent(w, req)

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		var dto EventDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, created.ID, dto.ID)
		assert.Equal(t, "New Title", dto.Title)
	})

	t.Run("should return 404 for a missing event", func(t *testing.T) {
		// given
		handler, _, ctx := setupHandlerTest(t)

		// when
		req := postJSON(ctx, "/api/event/missing-id", validForm())
		req = mux.SetURLVars(req, map[string]string{"eventId": "missing-id"})
		w := httptest.NewRecorder()
		handler.UpdateEvent(w, req)

		// then
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_PatchEvent(t *testing.T) {
	t.Run("should merge a partial payload", func(t *testing.T) {
		// given
		handler, service, ctx := setupHandlerTest(t)
		created, err := service.Create(ctx, testFields("Keep Title"))
		require.NoError(t, err)
		newColor := ColorPink

		// when
		req := postJSON(ctx, "/api/event/"+created.ID, PatchDTO{Color: &newColor})
		req = mux.SetURLVars(req, map[string]string{"eventId": created.ID})
		w := httptest.NewRecorder()
		handler.PatchEvent(w, req)

		// then
		assert.Equal(t, http.StatusOK, w.Code)
		var dto EventDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
		assert.Equal(t, "Keep Title", dto.Title)
		assert.Equal(t, ColorPink, dto.Color)
	})

	t.Run("should reject an invalid color", func(t *testing.T) {
		// given
		handler, service, ctx := setupHandlerTest(t)
		created, err := service.Create(ctx, testFields("Keep Color"))
		require.NoError(t, err)
		badColor := "#000000"

		// when
		req := postJSON(ctx, "/api/event/"+created.ID, PatchDTO{Color: &badColor})
		req = mux.SetURLVars(req, map[string]string{"eventId": created.ID})
		w := httptest.NewRecorder()
		handler.PatchEvent(w, req)

		// then
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_DeleteEvent(t *testing.T) {
	// given
	handler, service, ctx := setupHandlerTest(t)
	created, err := service.Create(ctx, testFields("Doomed"))
	require.NoError(t, err)

	// when
	req := httptest.NewRequest(http.MethodDelete, "/api/event/"+created.ID, nil).WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"eventId": created.ID})
	w := httptest.NewRecorder()
	handler.DeleteEvent(w, req)

	// then
	assert.Equal(t, http.StatusNoContent, w.Code)
	events, err := service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)
}
