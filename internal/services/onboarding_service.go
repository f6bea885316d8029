package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobbify/internal/models"
	"jobbify/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const trialPeriod = 14 * 24 * time.Hour

// RegisterInput carries the onboarding payload after request validation.
// Address fields keep the request naming; the mapping to the persistence
// columns (street_line_1/street_line_2/zip_code) happens here, in one place.
type RegisterInput struct {
	FirstName      string
	LastName       string
	Birthday       time.Time
	Email          string
	Password       string
	CompanyName    string
	StaffsNo       *int
	CurrentRevenue *string
	Business       *string
	PhoneNumber    *string
	Address        *string
	AddressLine2   *string
	City           *string
	PostalCode     *string
	Country        *string
}

// OnboardingService creates a user, their personal team, the trial window and
// the company profile as one unit.
type OnboardingService interface {
	Register(ctx context.Context, in *RegisterInput) (*models.User, error)
}

type onboardingService struct {
	db          DB
	userRepo    repositories.UserRepository
	teamRepo    repositories.TeamRepository
	companyRepo repositories.CompanyDetailsRepository
}

func NewOnboardingService(db DB, userRepo repositories.UserRepository, teamRepo repositories.TeamRepository, companyRepo repositories.CompanyDetailsRepository) OnboardingService {
	return &onboardingService{
		db:          db,
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		companyRepo: companyRepo,
	}
}

// Register runs the whole onboarding chain inside one transaction so a
// failure partway through cannot leave an orphaned user or team behind.
func (s *onboardingService) Register(ctx context.Context, in *RegisterInput) (*models.User, error) {
	taken, err := s.userRepo.EmailExists(ctx, in.Email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	users := s.userRepo.WithTx(tx)
	teams := s.teamRepo.WithTx(tx)
	companies := s.companyRepo.WithTx(tx)

	now := time.Now()
	birthday := in.Birthday
	user := &models.User{
		ID:           uuid.New(),
		Name:         in.FirstName + " " + in.LastName,
		FirstName:    &in.FirstName,
		LastName:     &in.LastName,
		Birthday:     &birthday,
		Email:        in.Email,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	team := &models.Team{
		ID:           uuid.New(),
		UserID:       user.ID,
		Name:         teamName(user.Name, in.CompanyName),
		PersonalTeam: true,
	}
	if err := teams.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create personal team: %w", err)
	}

	trialEndsAt := now.Add(trialPeriod)
	if err := users.SetTrialEndsAt(ctx, user.ID, trialEndsAt); err != nil {
		return nil, fmt.Errorf("failed to start trial: %w", err)
	}
	user.TrialEndsAt = &trialEndsAt

	details := &models.CompanyDetails{
		ID:             uuid.New(),
		TeamID:         team.ID,
		BusinessName:   in.Business,
		BusinessNumber: in.PhoneNumber, // the profile stores the phone number in both columns
		PhoneNumber:    in.PhoneNumber,
		StaffsNo:       in.StaffsNo,
		CurrentRevenue: in.CurrentRevenue,
		StreetLine1:    in.Address,
		StreetLine2:    in.AddressLine2,
		City:           in.City,
		ZipCode:        in.PostalCode,
		Country:        in.Country,
	}
	if err := companies.Create(ctx, details); err != nil {
		return nil, fmt.Errorf("failed to create company details: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}
	return user, nil
}

// teamName falls back to "<first name>'s Team" when no company name was given.
func teamName(displayName, companyName string) string {
	if companyName != "" {
		return companyName
	}
	first := strings.SplitN(displayName, " ", 2)[0]
	return first + "'s Team"
}
