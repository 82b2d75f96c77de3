package event

import (
	"context"
	"errors"
)

// ErrEventNotFound is returned by Update when the id does not exist for the
// owner. Delete of a missing id is a no-op, not an error.
var ErrEventNotFound = errors.New("event not found")

// Store is the persistence contract for events. Two implementations exist:
// the SQL repository (events table) and the local file store (one JSON blob
// per owner). The backend is selected once at startup from configuration.
//
// List order is unspecified by the contract: the SQL backend returns events in
// start-time ascending order, the local backend in insertion order. Callers
// must re-sort when order matters.
type Store interface {
	List(ctx context.Context, ownerId string) ([]Event, error)
	Create(ctx context.Context, event Event) (Event, error)
	Update(ctx context.Context, ownerId string, id string, patch Patch) (Event, error)
	Delete(ctx context.Context, ownerId string, id string) error
}
