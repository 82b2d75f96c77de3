package event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Repository is the SQL-backed Store. Instants are stored as Unix
// milliseconds; every query is scoped by owner_id.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) List(ctx context.Context, ownerId string) ([]Event, error) {
	query := `SELECT id, owner_id, title, description, start_time, end_time, color
              FROM events
              WHERE owner_id = $1
              ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, ownerId)
	if err != nil {
		err := fmt.Errorf("could not query events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 10)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *Repository) Create(ctx context.Context, event Event) (Event, error) {
	query := `INSERT INTO events (
                            id,
                            owner_id,
                            title,
                            description,
                            start_time,
                            end_time,
                            color
						) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return Event{}, err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, event.ID, event.OwnerID, event.Title, event.Description,
		event.StartTime.UnixMilli(), event.EndTime.UnixMilli(), event.Color)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Event{}, err
	}

	return event, nil
}

func (r *Repository) Update(ctx context.Context, ownerId string, id string, patch Patch) (Event, error) {
	current, err := r.findOne(ctx, ownerId, id)
	if err != nil {
		return Event{}, err
	}

	merged := patch.Apply(current)

	query := `UPDATE events SET title = $1, description = $2, start_time = $3, end_time = $4, color = $5
              WHERE id = $6 AND owner_id = $7`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return Event{}, err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, merged.Title, merged.Description,
		merged.StartTime.UnixMilli(), merged.EndTime.UnixMilli(), merged.Color, id, ownerId)
	if err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return Event{}, err
	}
	return merged, nil
}

func (r *Repository) Delete(ctx context.Context, ownerId string, id string) error {
	query := `DELETE FROM events WHERE id = $1 AND owner_id = $2`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %v", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	// Deleting a missing id is a no-op by contract, so the affected row count
	// is deliberately not checked.
	if _, err := stmt.ExecContext(ctx, id, ownerId); err != nil {
		err := fmt.Errorf("could not execute query: %v", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, ownerId string, id string) (Event, error) {
	query := `SELECT id, owner_id, title, description, start_time, end_time, color
              FROM events WHERE id = $1 AND owner_id = $2`

	row := r.db.QueryRowContext(ctx, query, id, ownerId)
	var event Event
	var startMillis, endMillis int64
	err := row.Scan(&event.ID, &event.OwnerID, &event.Title, &event.Description, &startMillis, &endMillis, &event.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrEventNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not scan row: %w", err)
		log.Error(err)
		return Event{}, err
	}
	event.StartTime = time.UnixMilli(startMillis)
	event.EndTime = time.UnixMilli(endMillis)
	return event, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var event Event
	var startMillis, endMillis int64
	err := rows.Scan(&event.ID, &event.OwnerID, &event.Title, &event.Description, &startMillis, &endMillis, &event.Color)
	if err != nil {
		err := fmt.Errorf("could not scan row: %w", err)
		log.Error(err)
		return Event{}, err
	}
	event.StartTime = time.UnixMilli(startMillis)
	event.EndTime = time.UnixMilli(endMillis)
	return event, nil
}
