package repositories

import (
	"context"

	"jobbify/internal/models"

	"github.com/google/uuid"
)

type TeamMemberRepository interface {
	WithTx(tx DBTX) TeamMemberRepository
	Attach(ctx context.Context, member *models.TeamMember) error
	Upsert(ctx context.Context, teamID, userID uuid.UUID, role string) error
	GetPivot(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error)
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (*models.User, error)
	ListMembers(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*models.User, error)
	CountMembers(ctx context.Context, teamID uuid.UUID) (int, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type teamMemberRepo struct {
	db DBTX
}

func NewTeamMemberRepo(db DBTX) TeamMemberRepository {
	return &teamMemberRepo{db: db}
}

func (r *teamMemberRepo) WithTx(tx DBTX) TeamMemberRepository {
	return &teamMemberRepo{db: tx}
}

func (r *teamMemberRepo) Attach(ctx context.Context, m *models.TeamMember) error {
	query := `
		INSERT INTO team_members (id, team_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, m.ID, m.TeamID, m.UserID, m.Role)
	return err
}

// Upsert attaches the user to the team or refreshes the stored role label,
// without touching the user's memberships in other teams.
func (r *teamMemberRepo) Upsert(ctx context.Context, teamID, userID uuid.UUID, role string) error {
	query := `
		INSERT INTO team_members (id, team_id, user_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (team_id, user_id) DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, uuid.New(), teamID, userID, role)
	return err
}

func (r *teamMemberRepo) GetPivot(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	m := &models.TeamMember{}
	query := `
		SELECT id, team_id, user_id, role, created_at, updated_at
		FROM team_members
		WHERE team_id = $1 AND user_id = $2
	`
	err := r.db.QueryRow(ctx, query, teamID, userID).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *teamMemberRepo) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT u.id, u.name, u.first_name, u.last_name, u.birthday, u.email, u.password_hash, u.mobile_no, u.note, u.trial_ends_at, u.created_at, u.updated_at
		FROM users u
		JOIN team_members tm ON tm.user_id = u.id
		WHERE tm.team_id = $1 AND u.id = $2
	`
	err := r.db.QueryRow(ctx, query, teamID, userID).Scan(&user.ID, &user.Name, &user.FirstName, &user.LastName,
		&user.Birthday, &user.Email, &user.PasswordHash, &user.MobileNo, &user.Note, &user.TrialEndsAt,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *teamMemberRepo) ListMembers(ctx context.Context, teamID uuid.UUID, limit, offset int) ([]*models.User, error) {
	query := `
		SELECT u.id, u.name, u.first_name, u.last_name, u.birthday, u.email, u.password_hash, u.mobile_no, u.note, u.trial_ends_at, u.created_at, u.updated_at
		FROM users u
		JOIN team_members tm ON tm.user_id = u.id
		WHERE tm.team_id = $1
		ORDER BY tm.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, teamID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.FirstName, &user.LastName, &user.Birthday,
			&user.Email, &user.PasswordHash, &user.MobileNo, &user.Note, &user.TrialEndsAt,
			&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *teamMemberRepo) CountMembers(ctx context.Context, teamID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID).Scan(&count)
	return count, err
}

func (r *teamMemberRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM team_members WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}
