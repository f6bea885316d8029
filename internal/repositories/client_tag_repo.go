package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
)

type ClientTagRepository interface {
	WithTx(tx DBTX) ClientTagRepository
	Create(ctx context.Context, tag *models.ClientTag) error
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.ClientTag, error)
	DeleteByClient(ctx context.Context, clientID uuid.UUID) error
}

type clientTagRepo struct {
	db DBTX
}

func NewClientTagRepo(db DBTX) ClientTagRepository {
	return &clientTagRepo{db: db}
}

func (r *clientTagRepo) WithTx(tx DBTX) ClientTagRepository {
	return &clientTagRepo{db: tx}
}

func (r *clientTagRepo) Create(ctx context.Context, tag *models.ClientTag) error {
	query := `
		INSERT INTO client_tags (id, client_id, tag, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	_, err := r.db.Exec(ctx, query, tag.ID, tag.ClientID, tag.Tag)
	return err
}

func (r *clientTagRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]*models.ClientTag, error) {
	query := `SELECT id, client_id, tag, created_at FROM client_tags WHERE client_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.ClientTag
	for rows.Next() {
		tag := &models.ClientTag{}
		if err := rows.Scan(&tag.ID, &tag.ClientID, &tag.Tag, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (r *clientTagRepo) DeleteByClient(ctx context.Context, clientID uuid.UUID) error {
	query := `DELETE FROM client_tags WHERE client_id = $1`
	_, err := r.db.Exec(ctx, query, clientID)
	return err
}
