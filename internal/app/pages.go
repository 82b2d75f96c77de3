package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/rest"
	"github.com/kalendo/kalendo/pkg/user"
)

// RegisterPages serves the frontend and enforces the page-level redirects:
// signed-in users are sent from the landing and login pages to the calendar,
// anonymous visitors are sent from the calendar to the login page.
func RegisterPages(r *mux.Router) {
	frontend := rest.NewFrontendHandler("frontend", "index.html")

	signedOutOnly := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if _, err := user.CurrentId(req.Context()); err == nil {
				http.Redirect(w, req, "/calendar", http.StatusFound)
				return
			}
			next.ServeHTTP(w, req)
		})
	}
	signedInOnly := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if _, err := user.CurrentId(req.Context()); err != nil {
				http.Redirect(w, req, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, req)
		})
	}

	r.Handle("/", signedOutOnly(frontend)).Methods("GET")
	r.Handle("/login", signedOutOnly(frontend)).Methods("GET")
	r.PathPrefix("/calendar").Handler(signedInOnly(frontend)).Methods("GET")
	r.PathPrefix("/").Handler(frontend)
}
