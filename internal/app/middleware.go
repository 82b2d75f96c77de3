package app

import (
	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/pkg/auth"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies) {
	// Resolve the session cookie into a context user for every request.
	// Handlers decide themselves whether an anonymous request is acceptable.
	r.Use(auth.Middleware(deps.Sessions))
}
