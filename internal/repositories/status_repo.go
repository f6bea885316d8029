package repositories

import (
	"context"

	"jobbify/internal/models"
)

type StatusRepository interface {
	ListByModule(ctx context.Context, module string) ([]*models.Status, error)
}

type statusRepo struct {
	db DBTX
}

func NewStatusRepo(db DBTX) StatusRepository {
	return &statusRepo{db: db}
}

func (r *statusRepo) ListByModule(ctx context.Context, module string) ([]*models.Status, error) {
	query := `SELECT id, module, key, value FROM statuses WHERE module = $1 ORDER BY value`
	rows, err := r.db.Query(ctx, query, module)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		status := &models.Status{}
		if err := rows.Scan(&status.ID, &status.Module, &status.Key, &status.Value); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}
