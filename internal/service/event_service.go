package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"event-planner/internal/domain"
	"event-planner/internal/repository"
)

var (
	// ErrEventNotFound is returned when the target event does not exist
	// or belongs to another user; the two cases are indistinguishable.
	ErrEventNotFound = errors.New("event not found")
	// ErrMalformedDateTime indicates the date/time inputs do not combine
	// into a parseable timestamp.
	ErrMalformedDateTime = errors.New("malformed date/time")
)

// Sort orders accepted by List. Anything else preserves insertion order.
const (
	SortByDate     = "date"
	SortByCategory = "category"
	SortByReminder = "reminder"
)

// EventInput carries the client-supplied fields of an event. Date and
// Time arrive separately and are combined into a single timestamp.
type EventInput struct {
	Name        string
	Description string
	Date        string
	Time        string
	Category    string
	Reminder    int
}

// EventFilter narrows and orders a listing.
type EventFilter struct {
	Category string
	Sort     string
}

// ReminderEntry is an event annotated with its computed reminder time.
type ReminderEntry struct {
	Event        domain.Event
	ReminderTime time.Time
}

// EventService coordinates event operations scoped to an authenticated user.
type EventService interface {
	Create(ctx context.Context, userID int64, in EventInput) (*domain.Event, error)
	List(ctx context.Context, userID int64, filter EventFilter) ([]domain.Event, error)
	ListUpcomingReminders(ctx context.Context, userID int64) ([]ReminderEntry, error)
	Update(ctx context.Context, userID, eventID int64, in EventInput) (*domain.Event, error)
	Delete(ctx context.Context, userID, eventID int64) error
}

type eventService struct {
	events repository.EventRepository
	now    func() time.Time
}

func NewEventService(events repository.EventRepository) EventService {
	return &eventService{
		events: events,
		now:    time.Now,
	}
}

func (s *eventService) Create(ctx context.Context, userID int64, in EventInput) (*domain.Event, error) {
	datetime, err := combineDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if in.Reminder < 0 {
		return nil, errors.New("reminder must be non-negative")
	}

	event := &domain.Event{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Datetime:    datetime,
		Reminder:    in.Reminder,
		CreatedAt:   s.now(),
	}

	if _, err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *eventService) List(ctx context.Context, userID int64, filter EventFilter) ([]domain.Event, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if filter.Category != "" {
		filtered := events[:0]
		for _, ev := range events {
			if ev.Category == filter.Category {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}

	switch filter.Sort {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Datetime.Before(events[j].Datetime)
		})
	case SortByCategory:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Category < events[j].Category
		})
	case SortByReminder:
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].Reminder < events[j].Reminder
		})
	}

	return events, nil
}

func (s *eventService) ListUpcomingReminders(ctx context.Context, userID int64) ([]ReminderEntry, error) {
	events, err := s.events.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var entries []ReminderEntry
	for _, ev := range events {
		reminderTime := ev.ReminderTime()
		// strictly past is excluded; equal to now still counts
		if reminderTime.Before(now) {
			continue
		}
		entries = append(entries, ReminderEntry{Event: ev, ReminderTime: reminderTime})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ReminderTime.Before(entries[j].ReminderTime)
	})

	return entries, nil
}

func (s *eventService) Update(ctx context.Context, userID, eventID int64, in EventInput) (*domain.Event, error) {
	datetime, err := combineDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	if in.Reminder < 0 {
		return nil, errors.New("reminder must be non-negative")
	}

	event, err := s.events.Get(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	// id, userID and created stay untouched
	event.Name = in.Name
	event.Description = in.Description
	event.Category = in.Category
	event.Datetime = datetime
	event.Reminder = in.Reminder

	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, userID, eventID int64) error {
	if err := s.events.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

// combineDateTime joins separate date and time inputs into one local
// timestamp. Seconds are optional in the time part.
func combineDateTime(date, timeOfDay string) (time.Time, error) {
	raw := strings.TrimSpace(date) + "T" + strings.TrimSpace(timeOfDay)
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, ErrMalformedDateTime
}
