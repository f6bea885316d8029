package repositories

import (
	"context"
	"time"

	"jobbify/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	WithTx(tx DBTX) UserRepository
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, user *models.User) error
	SetTrialEndsAt(ctx context.Context, id uuid.UUID, endsAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListTrialEndingBetween(ctx context.Context, from, to time.Time) ([]*models.User, error)
}

type userRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) WithTx(tx DBTX) UserRepository {
	return &userRepo{db: tx}
}

const userColumns = `id, name, first_name, last_name, birthday, email, password_hash, mobile_no, note, trial_ends_at, created_at, updated_at`

func (r *userRepo) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.FirstName, &user.LastName, &user.Birthday, &user.Email,
		&user.PasswordHash, &user.MobileNo, &user.Note, &user.TrialEndsAt, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, first_name, last_name, birthday, email, password_hash, mobile_no, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Name, user.FirstName, user.LastName, user.Birthday,
		user.Email, user.PasswordHash, user.MobileNo, user.Note)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *userRepo) EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE email = $1 AND id != $2`
	if err := r.db.QueryRow(ctx, query, email, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, mobile_no = $4, note = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, user.Name, user.Email, user.PasswordHash, user.MobileNo, user.Note, user.ID)
	return err
}

func (r *userRepo) SetTrialEndsAt(ctx context.Context, id uuid.UUID, endsAt time.Time) error {
	query := `UPDATE users SET trial_ends_at = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, endsAt, id)
	return err
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *userRepo) ListTrialEndingBetween(ctx context.Context, from, to time.Time) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE trial_ends_at >= $1 AND trial_ends_at < $2 ORDER BY trial_ends_at`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
