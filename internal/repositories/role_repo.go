package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
)

type RoleRepository interface {
	WithTx(tx DBTX) RoleRepository
	GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error)
	List(ctx context.Context) ([]*models.Role, error)
}

type roleRepo struct {
	db DBTX
}

func NewRoleRepo(db DBTX) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) WithTx(tx DBTX) RoleRepository {
	return &roleRepo{db: tx}
}

func (r *roleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	role := &models.Role{}
	query := `SELECT id, name, created_at, updated_at FROM roles WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (r *roleRepo) List(ctx context.Context) ([]*models.Role, error) {
	query := `SELECT id, name, created_at, updated_at FROM roles ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		role := &models.Role{}
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt, &role.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}
