package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ClientRepository interface {
	WithTx(tx DBTX) ClientRepository
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Client, error)
	Count(ctx context.Context) (int, error)
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
}

type clientRepo struct {
	db DBTX
}

func NewClientRepo(db DBTX) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) WithTx(tx DBTX) ClientRepository {
	return &clientRepo{db: tx}
}

const clientColumns = `id, user_id, team_id, first_name, last_name, email, mobile_no, street_address, city, region, postal_code, status, note, created_at, updated_at`

func (r *clientRepo) scanClient(row pgx.Row) (*models.Client, error) {
	client := &models.Client{}
	err := row.Scan(&client.ID, &client.UserID, &client.TeamID, &client.FirstName, &client.LastName,
		&client.Email, &client.MobileNo, &client.StreetAddress, &client.City, &client.Region,
		&client.PostalCode, &client.Status, &client.Note, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (id, user_id, team_id, first_name, last_name, email, mobile_no, street_address, city, region, postal_code, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, c.ID, c.UserID, c.TeamID, c.FirstName, c.LastName, c.Email,
		c.MobileNo, c.StreetAddress, c.City, c.Region, c.PostalCode, c.Status, c.Note)
	return err
}

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.scanClient(r.db.QueryRow(ctx, query, id))
}

func (r *clientRepo) Update(ctx context.Context, c *models.Client) error {
	query := `
		UPDATE clients
		SET first_name = $1, last_name = $2, email = $3, mobile_no = $4, street_address = $5, city = $6, region = $7, postal_code = $8, status = $9, note = $10, updated_at = NOW()
		WHERE id = $11
	`
	_, err := r.db.Exec(ctx, query, c.FirstName, c.LastName, c.Email, c.MobileNo, c.StreetAddress,
		c.City, c.Region, c.PostalCode, c.Status, c.Note, c.ID)
	return err
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *clientRepo) List(ctx context.Context, limit, offset int) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		client, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, client)
	}
	return clients, rows.Err()
}

func (r *clientRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count)
	return count, err
}

func (r *clientRepo) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM clients WHERE email = $1 AND id != $2`
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
