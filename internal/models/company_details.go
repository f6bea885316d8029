package models

import (
	"time"

	"github.com/google/uuid"
)

type CompanyDetails struct {
	ID             uuid.UUID `json:"id" db:"id"`
	TeamID         uuid.UUID `json:"team_id" db:"team_id"`
	BusinessName   *string   `json:"business_name" db:"business_name"`
	BusinessNumber *string   `json:"business_number" db:"business_number"`
	PhoneNumber    *string   `json:"phone_number" db:"phone_number"`
	StaffsNo       *int      `json:"staffs_no" db:"staffs_no"`
	CurrentRevenue *string   `json:"current_revenue" db:"current_revenue"`
	StreetLine1    *string   `json:"street_line_1" db:"street_line_1"`
	StreetLine2    *string   `json:"street_line_2" db:"street_line_2"`
	City           *string   `json:"city" db:"city"`
	ZipCode        *string   `json:"zip_code" db:"zip_code"`
	Country        *string   `json:"country" db:"country"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
