package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobbify/internal/repositories"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ValidateToken(token string) (*TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*TokenClaims), args.Error(1)
}

func (m *MockTokenService) CreateResetToken(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	args := m.Called(ctx, userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) ConsumeResetToken(ctx context.Context, token, email string) (uuid.UUID, error) {
	args := m.Called(ctx, token, email)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) ResetURL(appURL, token, email string) string {
	args := m.Called(appURL, token, email)
	return args.String(0)
}

type StaffServiceTestSuite struct {
	suite.Suite
	mock     pgxmock.PgxPoolIface
	tokenSvc *MockTokenService
	service  StaffService
	ownerID  uuid.UUID
	teamID   uuid.UUID
	roleID   uuid.UUID
	context  context.Context
}

func (suite *StaffServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.tokenSvc = &MockTokenService{}
	suite.tokenSvc.Test(suite.T())

	userRepo := repositories.NewUserRepo(mock)
	teamRepo := repositories.NewTeamRepo(mock)
	roleRepo := repositories.NewRoleRepo(mock)
	userRoleRepo := repositories.NewUserRoleRepo(mock)
	teamMemberRepo := repositories.NewTeamMemberRepo(mock)
	suite.service = NewStaffService(mock, userRepo, teamRepo, roleRepo, userRoleRepo, teamMemberRepo,
		suite.tokenSvc, "http://localhost:8080")

	suite.ownerID = uuid.New()
	suite.teamID = uuid.New()
	suite.roleID = uuid.New()
	suite.context = context.Background()
}

func (suite *StaffServiceTestSuite) TearDownTest() {
	suite.tokenSvc.AssertExpectations(suite.T())
	suite.mock.Close()
}

func TestStaffServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StaffServiceTestSuite))
}

func (suite *StaffServiceTestSuite) expectPersonalTeam() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT (.+) FROM teams\s+WHERE user_id = \$1 AND personal_team = true`).
		WithArgs(suite.ownerID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "personal_team", "created_at", "updated_at"}).
			AddRow(suite.teamID, suite.ownerID, "Jane's Team", true, now, now))
}

func (suite *StaffServiceTestSuite) expectRoleLookup(name string) {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM roles WHERE id = \$1`).
		WithArgs(suite.roleID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(suite.roleID, name, now, now))
}

func (suite *StaffServiceTestSuite) TestCreate_ProvisionsUserRoleAndMembership() {
	suite.expectPersonalTeam()

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1 AND id != \$2`).
		WithArgs("staff@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	suite.expectRoleLookup("staff")

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "New Staffer", pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), "staff@example.com", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(pgxmock.AnyArg(), suite.roleID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(pgxmock.AnyArg(), suite.teamID, pgxmock.AnyArg(), "staff").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	suite.tokenSvc.On("CreateResetToken", suite.context, mock.AnythingOfType("uuid.UUID"), "staff@example.com").
		Return("reset-token", nil)
	suite.tokenSvc.On("ResetURL", "http://localhost:8080", "reset-token", "staff@example.com").
		Return("http://localhost:8080/reset-password?token=reset-token&email=staff%40example.com")

	user, resetURL, err := suite.service.Create(suite.context, suite.ownerID, &CreateStaffInput{
		Name:     "New Staffer",
		Email:    "staff@example.com",
		MobileNo: "5550004444",
		RoleID:   suite.roleID,
	})
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "New Staffer", user.Name)
	assert.NotEmpty(suite.T(), user.PasswordHash)
	assert.Contains(suite.T(), resetURL, "reset-password")
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StaffServiceTestSuite) TestCreate_UnknownRoleFailsLoudly() {
	suite.expectPersonalTeam()

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1 AND id != \$2`).
		WithArgs("staff@example.com", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	suite.mock.ExpectQuery(`SELECT id, name, created_at, updated_at FROM roles WHERE id = \$1`).
		WithArgs(suite.roleID).
		WillReturnError(pgx.ErrNoRows)

	user, resetURL, err := suite.service.Create(suite.context, suite.ownerID, &CreateStaffInput{
		Name:     "New Staffer",
		Email:    "staff@example.com",
		MobileNo: "5550004444",
		RoleID:   suite.roleID,
	})
	assert.Nil(suite.T(), user)
	assert.Empty(suite.T(), resetURL)
	assert.True(suite.T(), errors.Is(err, ErrRoleNotFound))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StaffServiceTestSuite) TestUpdate_ReplacesRolesAndUpsertsPivot() {
	staffID := uuid.New()
	now := time.Now()

	suite.expectPersonalTeam()

	suite.mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(staffID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "first_name", "last_name", "birthday", "email",
			"password_hash", "mobile_no", "note", "trial_ends_at", "created_at", "updated_at"}).
			AddRow(staffID, "Old Name", nil, nil, nil, "old@example.com", "oldhash", nil, nil, nil, now, now))

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1 AND id != \$2`).
		WithArgs("new@example.com", staffID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))

	suite.expectRoleLookup("manager")

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`UPDATE users`).
		WithArgs("New Name", "new@example.com", "oldhash", pgxmock.AnyArg(), pgxmock.AnyArg(), staffID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectExec(`DELETE FROM user_roles WHERE user_id = \$1`).
		WithArgs(staffID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`INSERT INTO user_roles`).
		WithArgs(staffID, suite.roleID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO team_members (.+) ON CONFLICT`).
		WithArgs(pgxmock.AnyArg(), suite.teamID, staffID, "manager").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	user, err := suite.service.Update(suite.context, suite.ownerID, staffID, &UpdateStaffInput{
		Name:     "New Name",
		Email:    "new@example.com",
		MobileNo: "5550005555",
		RoleID:   suite.roleID,
	})
	assert.NoError(suite.T(), err)
	// no password supplied, hash untouched
	assert.Equal(suite.T(), "oldhash", user.PasswordHash)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StaffServiceTestSuite) TestDelete_RemovesOwnedTeamsMembershipsRolesAndUser() {
	staffID := uuid.New()
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT (.+) FROM users WHERE id = \$1`).
		WithArgs(staffID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "first_name", "last_name", "birthday", "email",
			"password_hash", "mobile_no", "note", "trial_ends_at", "created_at", "updated_at"}).
			AddRow(staffID, "Leaving Staffer", nil, nil, nil, "leaving@example.com", "hash", nil, nil, nil, now, now))

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(`DELETE FROM teams WHERE user_id = \$1`).
		WithArgs(staffID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(`DELETE FROM team_members WHERE user_id = \$1`).
		WithArgs(staffID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`DELETE FROM user_roles WHERE user_id = \$1`).
		WithArgs(staffID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(staffID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	suite.mock.ExpectCommit()

	err := suite.service.Delete(suite.context, staffID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *StaffServiceTestSuite) TestGet_NotOnTeam() {
	staffID := uuid.New()

	suite.expectPersonalTeam()

	suite.mock.ExpectQuery(`SELECT (.+) FROM users u\s+JOIN team_members tm`).
		WithArgs(suite.teamID, staffID).
		WillReturnError(pgx.ErrNoRows)

	staff, err := suite.service.Get(suite.context, suite.ownerID, staffID)
	assert.Nil(suite.T(), staff)
	assert.True(suite.T(), errors.Is(err, ErrStaffNotFound))
}
