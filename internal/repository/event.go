package repository

import (
	"context"

	"event-planner/internal/domain"
)

// EventRepository exposes persistence operations for Event records.
// Get, Update and Delete match on (id, userID); an event belonging to
// another user is indistinguishable from a missing one.
type EventRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, event *domain.Event) (int64, error)
	Get(ctx context.Context, id, userID int64) (*domain.Event, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, id, userID int64) error
}
