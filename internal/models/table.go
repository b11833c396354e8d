package models

import "github.com/google/uuid"

// Table is a physical restaurant table a diner orders from.
type Table struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Number int       `json:"number" db:"number"`
	Label  string    `json:"label" db:"label"`
	Active bool      `json:"active" db:"active"`
}
