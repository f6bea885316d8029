package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
)

type UserRoleRepository interface {
	WithTx(tx DBTX) UserRoleRepository
	Create(ctx context.Context, userRole *models.UserRole) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error)
}

type userRoleRepo struct {
	db DBTX
}

func NewUserRoleRepo(db DBTX) UserRoleRepository {
	return &userRoleRepo{db: db}
}

func (r *userRoleRepo) WithTx(tx DBTX) UserRoleRepository {
	return &userRoleRepo{db: tx}
}

func (r *userRoleRepo) Create(ctx context.Context, ur *models.UserRole) error {
	query := `
		INSERT INTO user_roles (user_id, role_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, role_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, ur.UserID, ur.RoleID)
	return err
}

func (r *userRoleRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM user_roles WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *userRoleRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.UserRole, error) {
	query := `SELECT user_id, role_id, created_at FROM user_roles WHERE user_id = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userRoles []*models.UserRole
	for rows.Next() {
		ur := &models.UserRole{}
		if err := rows.Scan(&ur.UserID, &ur.RoleID, &ur.CreatedAt); err != nil {
			return nil, err
		}
		userRoles = append(userRoles, ur)
	}
	return userRoles, rows.Err()
}
