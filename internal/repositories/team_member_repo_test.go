package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobbify/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type TeamMemberRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    TeamMemberRepository
	teamID  uuid.UUID
	userID  uuid.UUID
	context context.Context
}

func (suite *TeamMemberRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewTeamMemberRepo(mock)
	suite.teamID = uuid.New()
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *TeamMemberRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestTeamMemberRepoTestSuite(t *testing.T) {
	suite.Run(t, new(TeamMemberRepoTestSuite))
}

func (suite *TeamMemberRepoTestSuite) TestAttach_Success() {
	member := &models.TeamMember{
		ID:     uuid.New(),
		TeamID: suite.teamID,
		UserID: suite.userID,
		Role:   "staff",
	}

	suite.mock.ExpectExec(`INSERT INTO team_members`).
		WithArgs(member.ID, member.TeamID, member.UserID, member.Role).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Attach(suite.context, member)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TeamMemberRepoTestSuite) TestUpsert_RefreshesRoleLabel() {
	suite.mock.ExpectExec(`INSERT INTO team_members (.+) ON CONFLICT \(team_id, user_id\) DO UPDATE SET role = EXCLUDED.role`).
		WithArgs(pgxmock.AnyArg(), suite.teamID, suite.userID, "manager").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Upsert(suite.context, suite.teamID, suite.userID, "manager")
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *TeamMemberRepoTestSuite) TestGetMember_NotOnTeam() {
	suite.mock.ExpectQuery(`SELECT (.+) FROM users u\s+JOIN team_members tm ON tm.user_id = u.id`).
		WithArgs(suite.teamID, suite.userID).
		WillReturnError(pgx.ErrNoRows)

	user, err := suite.repo.GetMember(suite.context, suite.teamID, suite.userID)
	assert.Nil(suite.T(), user)
	assert.True(suite.T(), errors.Is(err, pgx.ErrNoRows))
}

func (suite *TeamMemberRepoTestSuite) TestListMembers_Success() {
	now := time.Now()
	rows := pgxmock.NewRows([]string{"id", "name", "first_name", "last_name", "birthday", "email",
		"password_hash", "mobile_no", "note", "trial_ends_at", "created_at", "updated_at"}).
		AddRow(suite.userID, "Grace Hopper", strPtr("Grace"), strPtr("Hopper"), nil, "grace@example.com",
			"hashed", strPtr("5550002222"), nil, nil, now, now)

	suite.mock.ExpectQuery(`SELECT (.+) FROM users u\s+JOIN team_members tm ON tm.user_id = u.id\s+WHERE tm.team_id = \$1`).
		WithArgs(suite.teamID, 50, 0).
		WillReturnRows(rows)

	members, err := suite.repo.ListMembers(suite.context, suite.teamID, 50, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), members, 1)
	assert.Equal(suite.T(), "grace@example.com", members[0].Email)
}

func (suite *TeamMemberRepoTestSuite) TestCountMembers_Success() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM team_members WHERE team_id = \$1`).
		WithArgs(suite.teamID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.CountMembers(suite.context, suite.teamID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}

func (suite *TeamMemberRepoTestSuite) TestDeleteByUser_Success() {
	suite.mock.ExpectExec(`DELETE FROM team_members WHERE user_id = \$1`).
		WithArgs(suite.userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	err := suite.repo.DeleteByUser(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
}
