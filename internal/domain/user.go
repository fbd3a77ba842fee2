package domain

import "time"

// User represents a registered user.
// Authentication is handled outside this service; only identity,
// display name and the admin flag matter here.
type User struct {
	ID        int64
	Name      string
	Email     string
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
