package app

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/database"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	// The database is only opened for the postgres backend; the local backend
	// keeps everything in JSON files under cfg.Storage.LocalDir.
	var db *sql.DB
	if cfg.Storage.Backend == config.BackendPostgres {
		db, err = database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
	}

	deps, err := BuildDependencies(db, cfg)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	SetupMiddleware(r, deps)
	RegisterRoutes(r, deps)

	if cfg.Frontend.Enabled {
		RegisterPages(r)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.HTTP.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv}, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}
