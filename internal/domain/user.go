package domain

import "time"

// User represents a registered account. PasswordHash is opaque and is
// never exposed outward.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
