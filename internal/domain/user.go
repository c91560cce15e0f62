package domain

import "time"

// User is the domain model for registered students. Courses and Availability
// are duplicate-free sets kept in insertion order; the order carries no
// meaning beyond keeping results deterministic.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Name         string
	Major        string
	Courses      []string
	Availability []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
