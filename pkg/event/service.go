package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/kalendo/kalendo/internal/event_bus"
	"github.com/kalendo/kalendo/pkg/user"
)

type Service interface {
	List(ctx context.Context) ([]Event, error)
	Create(ctx context.Context, fields Fields) (Event, error)
	Update(ctx context.Context, id string, patch Patch) (Event, error)
	Delete(ctx context.Context, id string) error
}

// ServiceImpl owns the event lifecycle rules: owner resolution from the
// session context, field validation, id assignment, and bus publication.
// Nothing is published or returned until the store confirmed the write, so
// callers never observe state the backend did not accept.
type ServiceImpl struct {
	store Store
	bus   *event_bus.EventBus
}

func NewService(store Store, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{store: store, bus: bus}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Event, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, ownerId)
}

func (s *ServiceImpl) Create(ctx context.Context, fields Fields) (Event, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, err
	}

	if fields.Title == "" {
		return Event{}, ErrTitleRequired
	}
	if fields.Color == "" {
		fields.Color = DefaultColor
	} else if !ValidColor(fields.Color) {
		return Event{}, ErrInvalidColor
	}

	event := Event{
		ID:          uuid.New().String(),
		OwnerID:     ownerId,
		Title:       fields.Title,
		Description: fields.Description,
		StartTime:   fields.StartTime,
		EndTime:     fields.EndTime,
		Color:       fields.Color,
	}

	created, err := s.store.Create(ctx, event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to store event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventCreated, created)
	return created, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, patch Patch) (Event, error) {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return Event{}, err
	}

	if patch.Title != nil && *patch.Title == "" {
		return Event{}, ErrTitleRequired
	}
	if patch.Color != nil && !ValidColor(*patch.Color) {
		return Event{}, ErrInvalidColor
	}

	updated, err := s.store.Update(ctx, ownerId, id, patch)
	if err != nil {
		return Event{}, err
	}

	s.publish(ctx, event_bus.CalendarEventUpdated, updated)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	ownerId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, ownerId, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.publish(ctx, event_bus.CalendarEventDeleted, Event{ID: id, OwnerID: ownerId})
	return nil
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, e Event) {
	if s.bus == nil {
		return
	}
	// Subscriber failures must not fail the user action; Publish logs them.
	_ = s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.EventChanged{
		EventId: e.ID,
		OwnerId: e.OwnerID,
		Title:   e.Title,
	}))
}
