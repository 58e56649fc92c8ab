package repository

import (
	"context"
	"fmt"
	"time"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles database operations for calendar events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, couple_id, title, description, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		event.ID, event.CoupleID, event.Title, event.Description, event.Date, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// ListByCouple retrieves a couple's events in chronological order
func (r *EventRepository) ListByCouple(ctx context.Context, coupleID string) ([]*models.Event, error) {
	query := `
		SELECT id, couple_id, title, description, date, created_at
		FROM events
		WHERE couple_id = $1
		ORDER BY date
	`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID, &event.CoupleID, &event.Title,
			&event.Description, &event.Date, &event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// Update changes the editable fields of an event
func (r *EventRepository) Update(ctx context.Context, coupleID, eventID string, title, description *string, date *time.Time) error {
	query := `
		UPDATE events
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    date = COALESCE($3, date)
		WHERE id = $4 AND couple_id = $5
	`
	result, err := r.db.Exec(ctx, query, title, description, date, eventID, coupleID)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an event
func (r *EventRepository) Delete(ctx context.Context, coupleID, eventID string) error {
	query := `DELETE FROM events WHERE id = $1 AND couple_id = $2`
	result, err := r.db.Exec(ctx, query, eventID, coupleID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
