package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/google/uuid"
)

// EventRepository is the calendar store contract.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	ListByCouple(ctx context.Context, coupleID string) ([]*models.Event, error)
	Update(ctx context.Context, coupleID, eventID string, title, description *string, date *time.Time) error
	Delete(ctx context.Context, coupleID, eventID string) error
}

// EventService handles the couple's shared calendar
type EventService struct {
	events EventRepository
}

// NewEventService creates a new event service
func NewEventService(events EventRepository) *EventService {
	return &EventService{events: events}
}

// Add creates a calendar event for the couple
func (s *EventService) Add(ctx context.Context, coupleID, title, description string, date time.Time) (*models.Event, error) {
	if title == "" {
		return nil, ErrEmptyText
	}

	event := &models.Event{
		ID:          uuid.New().String(),
		CoupleID:    coupleID,
		Title:       title,
		Description: description,
		Date:        date,
		CreatedAt:   time.Now(),
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

// List returns the couple's events in chronological order
func (s *EventService) List(ctx context.Context, coupleID string) ([]*models.Event, error) {
	events, err := s.events.ListByCouple(ctx, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if events == nil {
		events = []*models.Event{}
	}
	return events, nil
}

// Update changes an event's editable fields
func (s *EventService) Update(ctx context.Context, coupleID, eventID string, title, description *string, date *time.Time) error {
	if title != nil && *title == "" {
		return ErrEmptyText
	}
	if err := s.events.Update(ctx, coupleID, eventID, title, description, date); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

// Delete removes an event
func (s *EventService) Delete(ctx context.Context, coupleID, eventID string) error {
	if err := s.events.Delete(ctx, coupleID, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
