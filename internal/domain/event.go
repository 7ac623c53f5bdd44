package domain

import "time"

// Event is a scheduled entry owned by exactly one user.
type Event struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
	Category    string
	Datetime    time.Time
	Reminder    int // minutes before Datetime
	CreatedAt   time.Time
}

// ReminderTime returns the instant the reminder becomes due:
// Datetime minus Reminder minutes. Derived on read, never stored.
func (e Event) ReminderTime() time.Time {
	return e.Datetime.Add(-time.Duration(e.Reminder) * time.Minute)
}
