package model

import (
	"github.com/google/uuid"
)

// Notification is a queryable inbox row; there is no push, email or
// SMS delivery behind it.
type Notification struct {
	Base
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Message     string     `json:"message" db:"message"`
	Type        string     `json:"type" db:"type"`
	ReferenceID *uuid.UUID `json:"reference_id,omitempty" db:"reference_id"`
	IsRead      bool       `json:"is_read" db:"is_read"`
}
