package models

import "github.com/google/uuid"

// Status is a directory entry mapping a numeric status value to its label,
// scoped by module (clients use the "lead" module).
type Status struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Module string    `json:"module" db:"module"`
	Key    string    `json:"key" db:"key"`
	Value  int       `json:"value" db:"value"`
}
