package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	TeamID        uuid.UUID `json:"team_id" db:"team_id"`
	FirstName     string    `json:"first_name" db:"first_name"`
	LastName      string    `json:"last_name" db:"last_name"`
	Email         string    `json:"email" db:"email"`
	MobileNo      string    `json:"mobile_no" db:"mobile_no"`
	StreetAddress string    `json:"street_address" db:"street_address"`
	City          string    `json:"city" db:"city"`
	Region        string    `json:"region" db:"region"`
	PostalCode    string    `json:"postal_code" db:"postal_code"`
	Status        int       `json:"status" db:"status"`
	Note          *string   `json:"note" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
