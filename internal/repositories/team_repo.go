package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
)

type TeamRepository interface {
	WithTx(tx DBTX) TeamRepository
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error)
	GetPersonalTeamByOwner(ctx context.Context, userID uuid.UUID) (*models.Team, error)
	DeleteByOwner(ctx context.Context, userID uuid.UUID) error
}

type teamRepo struct {
	db DBTX
}

func NewTeamRepo(db DBTX) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) WithTx(tx DBTX) TeamRepository {
	return &teamRepo{db: tx}
}

func (r *teamRepo) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, user_id, name, personal_team, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, team.ID, team.UserID, team.Name, team.PersonalTeam)
	return err
}

func (r *teamRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	team := &models.Team{}
	query := `
		SELECT id, user_id, name, personal_team, created_at, updated_at
		FROM teams
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&team.ID, &team.UserID, &team.Name, &team.PersonalTeam, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *teamRepo) GetPersonalTeamByOwner(ctx context.Context, userID uuid.UUID) (*models.Team, error) {
	team := &models.Team{}
	query := `
		SELECT id, user_id, name, personal_team, created_at, updated_at
		FROM teams
		WHERE user_id = $1 AND personal_team = true
	`
	err := r.db.QueryRow(ctx, query, userID).Scan(&team.ID, &team.UserID, &team.Name, &team.PersonalTeam, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return team, nil
}

// DeleteByOwner removes every team whose owning user_id matches. Staff
// offboarding calls this with the staff member's id, mirroring the upstream
// behavior of deleting owned teams rather than memberships.
func (r *teamRepo) DeleteByOwner(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM teams WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
