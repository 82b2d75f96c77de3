package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// LocalStore keeps each owner's events in a single JSON document at
// <dir>/events_<ownerId>.json, read in full and rewritten in full on every
// mutation. Insertion order is preserved.
type LocalStore struct {
	mu  sync.Mutex
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create data directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

type localEventRecord struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start"`
	EndTime     time.Time `json:"end"`
	Color       string    `json:"color"`
}

func (s *LocalStore) path(ownerId string) string {
	return filepath.Join(s.dir, "events_"+ownerId+".json")
}

func (s *LocalStore) readAll(ownerId string) ([]localEventRecord, error) {
	data, err := os.ReadFile(s.path(ownerId))
	if errors.Is(err, os.ErrNotExist) {
		return []localEventRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read events file: %w", err)
	}
	var records []localEventRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("could not decode events file: %w", err)
	}
	return records, nil
}

func (s *LocalStore) writeAll(ownerId string, records []localEventRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("could not encode events: %w", err)
	}
	if err := os.WriteFile(s.path(ownerId), data, 0o600); err != nil {
		return fmt.Errorf("could not write events file: %w", err)
	}
	return nil
}

func (s *LocalStore) List(ctx context.Context, ownerId string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll(ownerId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	events := make([]Event, 0, len(records))
	for _, rec := range records {
		events = append(events, recordToEvent(rec))
	}
	return events, nil
}

func (s *LocalStore) Create(ctx context.Context, event Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll(event.OwnerID)
	if err != nil {
		log.Error(err)
		return Event{}, err
	}
	records = append(records, eventToRecord(event))
	if err := s.writeAll(event.OwnerID, records); err != nil {
		log.Error(err)
		return Event{}, err
	}
	return event, nil
}

func (s *LocalStore) Update(ctx context.Context, ownerId string, id string, patch Patch) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll(ownerId)
	if err != nil {
		log.Error(err)
		return Event{}, err
	}
	for i, rec := range records {
		if rec.ID == id {
			merged := patch.Apply(recordToEvent(rec))
			records[i] = eventToRecord(merged)
			if err := s.writeAll(ownerId, records); err != nil {
				log.Error(err)
				return Event{}, err
			}
			return merged, nil
		}
	}
	return Event{}, ErrEventNotFound
}

func (s *LocalStore) Delete(ctx context.Context, ownerId string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll(ownerId)
	if err != nil {
		log.Error(err)
		return err
	}
	kept := records[:0]
	found := false
	for _, rec := range records {
		if rec.ID == id {
			found = true
			continue
		}
		kept = append(kept, rec)
	}
	if !found {
		// no-op by contract
		return nil
	}
	if err := s.writeAll(ownerId, kept); err != nil {
		log.Error(err)
		return err
	}
	return nil
}

func recordToEvent(rec localEventRecord) Event {
	return Event{
		ID:          rec.ID,
		OwnerID:     rec.OwnerID,
		Title:       rec.Title,
		Description: rec.Description,
		StartTime:   rec.StartTime,
		EndTime:     rec.EndTime,
		Color:       rec.Color,
	}
}

func eventToRecord(e Event) localEventRecord {
	return localEventRecord{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Color:       e.Color,
	}
}
