package entity

import (
	"time"
)

// Note is a personal note owned by exactly one user. OwnerEmail is the
// scoping key: every read and mutation filters on it together with ID.
type Note struct {
	ID         string
	OwnerEmail string
	Title      string
	Content    string
	Category   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
