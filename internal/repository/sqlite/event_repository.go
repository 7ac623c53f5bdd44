package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"event-planner/internal/domain"
	"event-planner/internal/repository"
)

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT NOT NULL,
	category TEXT NOT NULL,
	datetime DATETIME NOT NULL,
	reminder INTEGER NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_user_id ON events(user_id);
`

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) repository.EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createEventsTable); err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

func (r *EventRepository) Create(ctx context.Context, event *domain.Event) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO events (user_id, name, description, category, datetime, reminder, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.UserID,
		event.Name,
		event.Description,
		event.Category,
		event.Datetime,
		event.Reminder,
		event.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("event last insert id: %w", err)
	}
	event.ID = id
	return id, nil
}

func (r *EventRepository) Get(ctx context.Context, id, userID int64) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, name, description, category, datetime, reminder, created_at
FROM events
WHERE id = ? AND user_id = ?`,
		id, userID,
	)

	var event domain.Event
	if err := scanEvent(row.Scan, &event); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, name, description, category, datetime, reminder, created_at
FROM events
WHERE user_id = ?
ORDER BY id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := scanEvent(rows.Scan, &event); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, event *domain.Event) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE events
SET name = ?, description = ?, category = ?, datetime = ?, reminder = ?
WHERE id = ? AND user_id = ?`,
		event.Name,
		event.Description,
		event.Category,
		event.Datetime,
		event.Reminder,
		event.ID,
		event.UserID,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update event rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM events
WHERE id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete event rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanEvent(scan func(dest ...any) error, event *domain.Event) error {
	return scan(
		&event.ID,
		&event.UserID,
		&event.Name,
		&event.Description,
		&event.Category,
		&event.Datetime,
		&event.Reminder,
		&event.CreatedAt,
	)
}
