package app

import (
	"database/sql"
	"fmt"

	"github.com/kalendo/kalendo/internal/config"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/internal/utils"
	"github.com/kalendo/kalendo/pkg/auth"
	"github.com/kalendo/kalendo/pkg/calendar"
	"github.com/kalendo/kalendo/pkg/event"
	"github.com/kalendo/kalendo/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	UserRepo    user.Repository
	UserService user.Service
	UserHandler *user.Handler

	Sessions    *auth.Service
	AuthHandler *auth.Handler
	GoogleAuth  *auth.GoogleAuth

	EventStore   event.Store
	EventService event.Service
	EventHandler *event.Handler

	CalendarView    *calendar.ViewService
	CalendarHandler *calendar.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and
// handlers. The storage backend is chosen here, once; everything downstream
// works against the Store and Repository interfaces.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	subscribeAuditLog(deps.EventBus)

	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		deps.UserRepo = user.NewUserRepo(db)
		deps.EventStore = event.NewRepository(db)
	case config.BackendLocal:
		userRepo, err := user.NewLocalUserRepo(cfg.Storage.LocalDir)
		if err != nil {
			return nil, err
		}
		eventStore, err := event.NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			return nil, err
		}
		deps.UserRepo = userRepo
		deps.EventStore = eventStore
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}

	deps.UserService = user.NewUserService(deps.UserRepo)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.Sessions = auth.NewService(deps.UserService, cfg.Auth)
	deps.AuthHandler = auth.NewHandler(deps.Sessions)
	deps.GoogleAuth = auth.NewGoogleAuth(deps.Sessions, cfg)

	deps.EventService = event.NewService(deps.EventStore, deps.EventBus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.Clock = &utils.SystemClock{}
	deps.CalendarView = calendar.NewViewService(deps.EventService, deps.Clock)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarView)

	return deps, nil
}

// subscribeAuditLog logs every confirmed event mutation. Kept as a bus
// subscriber so future consumers (webhooks, sync) can hook the same types.
func subscribeAuditLog(bus *event_bus.EventBus) {
	logChange := func(action string) func(e event_bus.EventT[event_bus.EventChanged]) error {
		return func(e event_bus.EventT[event_bus.EventChanged]) error {
			log.WithFields(log.Fields{
				"eventId": e.Data.EventId,
				"ownerId": e.Data.OwnerId,
			}).Infof("calendar event %s", action)
			return nil
		}
	}
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventCreated, logChange("created"))
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventUpdated, logChange("updated"))
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventDeleted, logChange("deleted"))
}
