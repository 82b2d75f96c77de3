package auth

import (
	"net/http"

	"github.com/kalendo/kalendo/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Middleware resolves the session cookie into a context user. Requests without
// a valid session pass through without a user; protected handlers reject them.
func Middleware(sessions *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := sessions.UserFromToken(r.Context(), cookie.Value)
			if err != nil {
				log.Debugf("session cookie rejected: %v", err)
				clearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := user.WithUser(r.Context(), u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
