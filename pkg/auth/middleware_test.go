package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kalendo/kalendo/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func currentUserProbe(t *testing.T) (http.Handler, *user.User) {
	resolved := &user.User{}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if u, err := user.CurrentUser(r.Context()); err == nil {
			*resolved = u
		}
		w.WriteHeader(http.StatusOK)
	}), resolved
}

func TestMiddleware_ResolvesSessionCookie(t *testing.T) {
	// given
	ctx, sessions, _ := setupSessionService(t)
	session, err := sessions.SignUp(ctx, "anna@example.com", "s3cret", "Anna")
	require.NoError(t, err)

	probe, resolved := currentUserProbe(t)
	req := httptest.NewRequest(http.MethodGet, "/api/event", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.Token})
	w := httptest.NewRecorder()

	// when
	Middleware(sessions)(probe).ServeHTTP(w, req)

	// then
	assert.Equal(t, session.User.Id, resolved.Id)
	assert.Equal(t, "anna@example.com", resolved.Email)
}

func TestMiddleware_PassesThroughWithoutCookie(t *testing.T) {
	// given
	_, sessions, _ := setupSessionService(t)
	probe, resolved := currentUserProbe(t)
	req := httptest.NewRequest(http.MethodGet, "/api/event", nil)
	w := httptest.NewRecorder()

	// when
	Middleware(sessions)(probe).ServeHTTP(w, req)

	// then
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resolved.Id)
}

func TestMiddleware_ClearsInvalidCookie(t *testing.T) {
	// given
	_, sessions, _ := setupSessionService(t)
	probe, resolved := currentUserProbe(t)
	req := httptest.NewRequest(http.MethodGet, "/api/event", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "garbage"})
	w := httptest.NewRecorder()

	// when
	Middleware(sessions)(probe).ServeHTTP(w, req)

	// then
	assert.Empty(t, resolved.Id)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
