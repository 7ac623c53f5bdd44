package memory

import (
	"context"
	"sync"

	"event-planner/internal/domain"
	"event-planner/internal/repository"
)

// EventRepository keeps event records in process memory. Records stay
// in insertion order; ids come from a monotonic counter independent of
// the current size, so deletions never cause id reuse.
type EventRepository struct {
	mu     sync.Mutex
	events []domain.Event
	nextID int64
}

func NewEventRepository() repository.EventRepository {
	return &EventRepository{nextID: 1}
}

func (r *EventRepository) Init(ctx context.Context) error {
	return nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = r.nextID
	r.nextID++
	r.events = append(r.events, *event)
	return event.ID, nil
}

func (r *EventRepository) Get(ctx context.Context, id, userID int64) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id, userID); i >= 0 {
		ev := r.events[i]
		return &ev, nil
	}
	return nil, repository.ErrNotFound
}

func (r *EventRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Event
	for i := range r.events {
		if r.events[i].UserID == userID {
			out = append(out, r.events[i])
		}
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(event.ID, event.UserID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.events[i] = *event
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id, userID)
	if i < 0 {
		return repository.ErrNotFound
	}
	r.events = append(r.events[:i], r.events[i+1:]...)
	return nil
}

// indexOf must be called with the mutex held.
func (r *EventRepository) indexOf(id, userID int64) int {
	for i := range r.events {
		if r.events[i].ID == id && r.events[i].UserID == userID {
			return i
		}
	}
	return -1
}
