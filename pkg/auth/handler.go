package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/kalendo/kalendo/internal/rest"
	"github.com/kalendo/kalendo/pkg/user"
	log "github.com/sirupsen/logrus"
)

type credentialsDTO struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

type sessionDTO struct {
	Id          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Handler struct {
	sessions *Service
}

func NewHandler(sessions *Service) *Handler {
	return &Handler{sessions: sessions}
}

// SignIn authenticates an email/password pair and sets the session cookie.
// Invalid credentials are reported inline; no state changes on failure.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	session, err := h.sessions.SignIn(r.Context(), creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			w.WriteHeader(http.StatusUnauthorized)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Invalid email or password",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, session.Token, h.sessions.validity)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sessionToDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SignUp registers a new account and signs it in.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds credentialsDTO
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Invalid request body format",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	if creds.Email == "" || creds.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Email and password are required",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	session, err := h.sessions.SignUp(r.Context(), creds.Email, creds.Password, creds.DisplayName)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			w.WriteHeader(http.StatusConflict)
			encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error: "Email is already registered",
			})
			if encodeErr != nil {
				http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
			}
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	setSessionCookie(w, session.Token, h.sessions.validity)
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(sessionToDTO(session)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// SignOut clears the session cookie.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	log.Trace("Signing out")
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// Session returns the currently signed-in user, or 401.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	currentUser, err := user.CurrentUser(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(sessionDTO{
		Id:          currentUser.Id,
		Email:       currentUser.Email,
		DisplayName: currentUser.DisplayName,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func sessionToDTO(s Session) sessionDTO {
	return sessionDTO{
		Id:          s.User.Id,
		Email:       s.User.Email,
		DisplayName: s.User.DisplayName,
	}
}

func setSessionCookie(w http.ResponseWriter, token string, validity time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
