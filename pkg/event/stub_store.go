package event

import (
	"context"
	"sync"
)

// StubStore is an in-memory Store for tests. Insertion order is preserved,
// like the local backend.
type StubStore struct {
	mu     sync.RWMutex
	events []Event
	// FailNext makes the next mutating call fail with this error, once.
	FailNext error
}

func NewStubStore() *StubStore {
	return &StubStore{}
}

func (s *StubStore) takeFailure() error {
	err := s.FailNext
	s.FailNext = nil
	return err
}

func (s *StubStore) List(ctx context.Context, ownerId string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Event, 0, len(s.events))
	for _, e := range s.events {
		if e.OwnerID == ownerId {
			result = append(result, e)
		}
	}
	return result, nil
}

func (s *StubStore) Create(ctx context.Context, event Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return Event{}, err
	}
	s.events = append(s.events, event)
	return event, nil
}

func (s *StubStore) Update(ctx context.Context, ownerId string, id string, patch Patch) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return Event{}, err
	}
	for i, e := range s.events {
		if e.ID == id && e.OwnerID == ownerId {
			merged := patch.Apply(e)
			s.events[i] = merged
			return merged, nil
		}
	}
	return Event{}, ErrEventNotFound
}

func (s *StubStore) Delete(ctx context.Context, ownerId string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.takeFailure(); err != nil {
		return err
	}
	kept := s.events[:0]
	for _, e := range s.events {
		if e.ID == id && e.OwnerID == ownerId {
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	return nil
}
