package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
)

type CompanyDetailsRepository interface {
	WithTx(tx DBTX) CompanyDetailsRepository
	Create(ctx context.Context, details *models.CompanyDetails) error
	GetByTeamID(ctx context.Context, teamID uuid.UUID) (*models.CompanyDetails, error)
}

type companyDetailsRepo struct {
	db DBTX
}

func NewCompanyDetailsRepo(db DBTX) CompanyDetailsRepository {
	return &companyDetailsRepo{db: db}
}

func (r *companyDetailsRepo) WithTx(tx DBTX) CompanyDetailsRepository {
	return &companyDetailsRepo{db: tx}
}

func (r *companyDetailsRepo) Create(ctx context.Context, d *models.CompanyDetails) error {
	query := `
		INSERT INTO company_details (id, team_id, business_name, business_number, phone_number, staffs_no, current_revenue, street_line_1, street_line_2, city, zip_code, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, d.ID, d.TeamID, d.BusinessName, d.BusinessNumber, d.PhoneNumber,
		d.StaffsNo, d.CurrentRevenue, d.StreetLine1, d.StreetLine2, d.City, d.ZipCode, d.Country)
	return err
}

func (r *companyDetailsRepo) GetByTeamID(ctx context.Context, teamID uuid.UUID) (*models.CompanyDetails, error) {
	d := &models.CompanyDetails{}
	query := `
		SELECT id, team_id, business_name, business_number, phone_number, staffs_no, current_revenue, street_line_1, street_line_2, city, zip_code, country, created_at, updated_at
		FROM company_details
		WHERE team_id = $1
	`
	err := r.db.QueryRow(ctx, query, teamID).Scan(&d.ID, &d.TeamID, &d.BusinessName, &d.BusinessNumber,
		&d.PhoneNumber, &d.StaffsNo, &d.CurrentRevenue, &d.StreetLine1, &d.StreetLine2, &d.City, &d.ZipCode,
		&d.Country, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
