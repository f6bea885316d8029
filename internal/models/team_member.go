package models

import (
	"time"

	"github.com/google/uuid"
)

// TeamMember is the team_user pivot. Role carries a denormalized copy of the
// role name taken at assignment time; renaming the role later does not touch
// existing rows.
type TeamMember struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TeamID    uuid.UUID `json:"team_id" db:"team_id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
