package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"jobbify/internal/common"
	"jobbify/internal/models"
	"jobbify/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockStaffService struct {
	mock.Mock
}

func (m *MockStaffService) List(ctx context.Context, ownerID uuid.UUID, page int) ([]*models.User, int, error) {
	args := m.Called(ctx, ownerID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.User), args.Int(1), args.Error(2)
}

func (m *MockStaffService) Get(ctx context.Context, ownerID, staffID uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, ownerID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStaffService) Create(ctx context.Context, ownerID uuid.UUID, in *services.CreateStaffInput) (*models.User, string, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockStaffService) Update(ctx context.Context, ownerID, staffID uuid.UUID, in *services.UpdateStaffInput) (*models.User, error) {
	args := m.Called(ctx, ownerID, staffID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStaffService) Delete(ctx context.Context, staffID uuid.UUID) error {
	args := m.Called(ctx, staffID)
	return args.Error(0)
}

func TestGetStaff_NotFound(t *testing.T) {
	ownerID := uuid.New()
	staffID := uuid.New()

	staffSvc := &MockStaffService{}
	staffSvc.On("Get", mock.Anything, ownerID, staffID).Return(nil, services.ErrStaffNotFound)

	h := NewStaffHandlers(staffSvc)

	c, rec := newTestContext(t, http.MethodGet, "/staffs/"+staffID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(staffID.String())
	c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), ownerID)))

	assert.NoError(t, h.GetStaff(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"Staff member not found"}`, rec.Body.String())
}

func TestCreateStaff_Success(t *testing.T) {
	ownerID := uuid.New()
	roleID := uuid.New()
	user := &models.User{ID: uuid.New(), Name: "New Staffer", Email: "staff@example.com"}

	staffSvc := &MockStaffService{}
	staffSvc.On("Create", mock.Anything, ownerID, mock.AnythingOfType("*services.CreateStaffInput")).
		Return(user, "http://localhost:8080/reset-password?token=tok&email=staff%40example.com", nil).
		Run(func(args mock.Arguments) {
			in := args.Get(2).(*services.CreateStaffInput)
			assert.Equal(t, roleID, in.RoleID)
			assert.Equal(t, "+1 (555) 000-4444", in.MobileNo)
		})

	h := NewStaffHandlers(staffSvc)

	c, rec := newTestContext(t, http.MethodPost, "/staffs",
		`{"name":"New Staffer","email":"staff@example.com","mobile_no":"+1 (555) 000-4444","role":"`+roleID.String()+`"}`)
	c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), ownerID)))

	assert.NoError(t, h.CreateStaff(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Staff successfully created", body["message"])
	assert.Contains(t, body["reset_url"], "reset-password")
	staffSvc.AssertExpectations(t)
}

func TestCreateStaff_ValidationErrorsUse400(t *testing.T) {
	ownerID := uuid.New()
	h := NewStaffHandlers(&MockStaffService{})

	c, rec := newTestContext(t, http.MethodPost, "/staffs", `{"name":"","email":"bad","mobile_no":"555000444455500044445","role":""}`)
	c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), ownerID)))

	assert.NoError(t, h.CreateStaff(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errs := body["errors"].(map[string]interface{})
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "mobile_no")
	assert.Contains(t, errs, "role")
}

func TestDeleteStaff_Success(t *testing.T) {
	ownerID := uuid.New()
	staffID := uuid.New()

	staffSvc := &MockStaffService{}
	staffSvc.On("Delete", mock.Anything, staffID).Return(nil)

	h := NewStaffHandlers(staffSvc)

	c, rec := newTestContext(t, http.MethodDelete, "/staffs/"+staffID.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(staffID.String())
	c.SetRequest(c.Request().WithContext(common.WithUserID(c.Request().Context(), ownerID)))

	assert.NoError(t, h.DeleteStaff(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Staff successfully deleted"}`, rec.Body.String())
	staffSvc.AssertExpectations(t)
}
