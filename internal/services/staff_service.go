package services

import (
	"context"
	"errors"
	"fmt"

	"jobbify/internal/models"
	"jobbify/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/gommon/random"
	"golang.org/x/crypto/bcrypt"
)

const staffPageSize = 50

type CreateStaffInput struct {
	Name     string
	Email    string
	MobileNo string
	RoleID   uuid.UUID
	Note     *string
}

type UpdateStaffInput struct {
	Name     string
	Email    string
	MobileNo string
	RoleID   uuid.UUID
	Note     *string
	Password *string
}

// StaffService manages subordinate users on the caller's personal team.
// Every operation takes the acting owner's id explicitly; there is no
// ambient current-user state.
type StaffService interface {
	List(ctx context.Context, ownerID uuid.UUID, page int) ([]*models.User, int, error)
	Get(ctx context.Context, ownerID, staffID uuid.UUID) (*models.User, error)
	Create(ctx context.Context, ownerID uuid.UUID, in *CreateStaffInput) (*models.User, string, error)
	Update(ctx context.Context, ownerID, staffID uuid.UUID, in *UpdateStaffInput) (*models.User, error)
	Delete(ctx context.Context, staffID uuid.UUID) error
}

type staffService struct {
	db             DB
	userRepo       repositories.UserRepository
	teamRepo       repositories.TeamRepository
	roleRepo       repositories.RoleRepository
	userRoleRepo   repositories.UserRoleRepository
	teamMemberRepo repositories.TeamMemberRepository
	tokenSvc       TokenService
	appURL         string
}

func NewStaffService(db DB, userRepo repositories.UserRepository, teamRepo repositories.TeamRepository,
	roleRepo repositories.RoleRepository, userRoleRepo repositories.UserRoleRepository,
	teamMemberRepo repositories.TeamMemberRepository, tokenSvc TokenService, appURL string) StaffService {
	return &staffService{
		db:             db,
		userRepo:       userRepo,
		teamRepo:       teamRepo,
		roleRepo:       roleRepo,
		userRoleRepo:   userRoleRepo,
		teamMemberRepo: teamMemberRepo,
		tokenSvc:       tokenSvc,
		appURL:         appURL,
	}
}

func (s *staffService) personalTeam(ctx context.Context, ownerID uuid.UUID) (*models.Team, error) {
	team, err := s.teamRepo.GetPersonalTeamByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPersonalTeam
		}
		return nil, err
	}
	return team, nil
}

func (s *staffService) List(ctx context.Context, ownerID uuid.UUID, page int) ([]*models.User, int, error) {
	team, err := s.personalTeam(ctx, ownerID)
	if err != nil {
		return nil, 0, err
	}
	if page < 1 {
		page = 1
	}
	members, err := s.teamMemberRepo.ListMembers(ctx, team.ID, staffPageSize, (page-1)*staffPageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.teamMemberRepo.CountMembers(ctx, team.ID)
	if err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (s *staffService) Get(ctx context.Context, ownerID, staffID uuid.UUID) (*models.User, error) {
	team, err := s.personalTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	staff, err := s.teamMemberRepo.GetMember(ctx, team.ID, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

// Create provisions a staff user: random initial secret, one role, membership
// on the owner's personal team with the role name denormalized onto the
// pivot, and a single-use password-reset link instead of a delivered secret.
func (s *staffService) Create(ctx context.Context, ownerID uuid.UUID, in *CreateStaffInput) (*models.User, string, error) {
	team, err := s.personalTeam(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}

	taken, err := s.userRepo.EmailExists(ctx, in.Email, uuid.Nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return nil, "", ErrEmailTaken
	}

	role, err := s.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", ErrRoleNotFound
		}
		return nil, "", err
	}

	initialPassword := random.String(12)
	hashed, err := bcrypt.GenerateFromPassword([]byte(initialPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	user := &models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		MobileNo:     &in.MobileNo,
		Note:         in.Note,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create staff user: %w", err)
	}

	if err := s.userRoleRepo.WithTx(tx).Create(ctx, &models.UserRole{UserID: user.ID, RoleID: role.ID}); err != nil {
		return nil, "", fmt.Errorf("failed to assign role: %w", err)
	}

	member := &models.TeamMember{
		ID:     uuid.New(),
		TeamID: team.ID,
		UserID: user.ID,
		Role:   role.Name,
	}
	if err := s.teamMemberRepo.WithTx(tx).Attach(ctx, member); err != nil {
		return nil, "", fmt.Errorf("failed to attach staff to team: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to commit staff creation: %w", err)
	}

	resetToken, err := s.tokenSvc.CreateResetToken(ctx, user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, s.tokenSvc.ResetURL(s.appURL, resetToken, user.Email), nil
}

// Update re-validates, optionally re-hashes a supplied password, replaces all
// previously held roles with the single new one and upserts the pivot label
// without detaching the user from other teams.
func (s *staffService) Update(ctx context.Context, ownerID, staffID uuid.UUID, in *UpdateStaffInput) (*models.User, error) {
	team, err := s.personalTeam(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}

	taken, err := s.userRepo.EmailExists(ctx, in.Email, staffID)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	role, err := s.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.MobileNo = &in.MobileNo
	if in.Note != nil {
		user.Note = in.Note
	}
	if in.Password != nil && *in.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.userRepo.WithTx(tx).Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update staff user: %w", err)
	}

	userRoles := s.userRoleRepo.WithTx(tx)
	if err := userRoles.DeleteByUser(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to clear roles: %w", err)
	}
	if err := userRoles.Create(ctx, &models.UserRole{UserID: user.ID, RoleID: role.ID}); err != nil {
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}

	if err := s.teamMemberRepo.WithTx(tx).Upsert(ctx, team.ID, user.ID, role.Name); err != nil {
		return nil, fmt.Errorf("failed to update team membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit staff update: %w", err)
	}
	return user, nil
}

// Delete removes teams owned by the staff user id (not teams they are merely
// a member of, matching upstream), their memberships and roles, then the user.
func (s *staffService) Delete(ctx context.Context, staffID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrStaffNotFound
		}
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.teamRepo.WithTx(tx).DeleteByOwner(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete owned teams: %w", err)
	}
	if err := s.teamMemberRepo.WithTx(tx).DeleteByUser(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete memberships: %w", err)
	}
	if err := s.userRoleRepo.WithTx(tx).DeleteByUser(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete roles: %w", err)
	}
	if err := s.userRepo.WithTx(tx).Delete(ctx, staffID); err != nil {
		return fmt.Errorf("failed to delete staff user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit staff deletion: %w", err)
	}
	return nil
}
