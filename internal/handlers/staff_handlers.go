package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"jobbify/internal/common"
	"jobbify/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// StaffHandlers handles staff administration HTTP requests
type StaffHandlers struct {
	staffService services.StaffService
}

// NewStaffHandlers creates a new staff handlers instance
func NewStaffHandlers(staffService services.StaffService) *StaffHandlers {
	return &StaffHandlers{staffService: staffService}
}

// CreateStaffRequest represents the staff creation payload
type CreateStaffRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	MobileNo string  `json:"mobile_no" validate:"required,max=20"`
	Role     string  `json:"role" validate:"required,uuid"`
	Note     *string `json:"note" validate:"omitempty,max=1000"`
}

// UpdateStaffRequest represents the staff update payload
type UpdateStaffRequest struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	MobileNo string  `json:"mobile_no" validate:"required,max=20"`
	Role     string  `json:"role" validate:"required,uuid"`
	Note     *string `json:"note" validate:"omitempty,max=1000"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

func staffValidationFailed(c echo.Context, errs map[string][]string) error {
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"message": "Validation error",
		"errors":  errs,
	})
}

// ListStaffs returns one page of the caller's personal-team members
func (h *StaffHandlers) ListStaffs(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	staffs, total, err := h.staffService.List(ctx, userID, page)
	if err != nil {
		if errors.Is(err, services.ErrNoPersonalTeam) {
			return echo.NewHTTPError(http.StatusUnauthorized, "No personal team for user")
		}
		log.Printf("ERROR: failed to list staffs for %s: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list staffs")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"staffs": staffs,
		"total":  total,
		"page":   page,
	})
}

// GetStaff returns one member of the caller's personal team
func (h *StaffHandlers) GetStaff(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"message": "Staff member not found"})
	}

	staff, err := h.staffService.Get(ctx, userID, staffID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{"message": "Staff member not found"})
		case errors.Is(err, services.ErrNoPersonalTeam):
			return echo.NewHTTPError(http.StatusUnauthorized, "No personal team for user")
		}
		log.Printf("ERROR: failed to load staff %s: %v", staffID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load staff")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"staff": staff})
}

// CreateStaff provisions a staff account and returns the reset URL the
// frontend relays, never the generated secret itself.
func (h *StaffHandlers) CreateStaff(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req CreateStaffRequest
	if err := c.Bind(&req); err != nil {
		return staffValidationFailed(c, common.FieldError("request", "The request payload is invalid."))
	}
	if err := c.Validate(&req); err != nil {
		return staffValidationFailed(c, common.ValidationMessages(err))
	}
	roleID, err := uuid.Parse(req.Role)
	if err != nil {
		return staffValidationFailed(c, common.FieldError("role", "The selected role is invalid."))
	}

	user, resetURL, err := h.staffService.Create(ctx, userID, &services.CreateStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		RoleID:   roleID,
		Note:     req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmailTaken):
			return staffValidationFailed(c, common.FieldError("email", "The email has already been taken."))
		case errors.Is(err, services.ErrRoleNotFound):
			return staffValidationFailed(c, common.FieldError("role", "The selected role is invalid."))
		case errors.Is(err, services.ErrNoPersonalTeam):
			return echo.NewHTTPError(http.StatusUnauthorized, "No personal team for user")
		}
		log.Printf("ERROR: failed to create staff: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create staff")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":   "Staff successfully created",
		"user":      user,
		"reset_url": resetURL,
	})
}

// UpdateStaff re-validates and replaces the member's role assignment
func (h *StaffHandlers) UpdateStaff(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"message": "Staff member not found"})
	}

	var req UpdateStaffRequest
	if err := c.Bind(&req); err != nil {
		return staffValidationFailed(c, common.FieldError("request", "The request payload is invalid."))
	}
	if err := c.Validate(&req); err != nil {
		return staffValidationFailed(c, common.ValidationMessages(err))
	}
	roleID, err := uuid.Parse(req.Role)
	if err != nil {
		return staffValidationFailed(c, common.FieldError("role", "The selected role is invalid."))
	}

	user, err := h.staffService.Update(ctx, userID, staffID, &services.UpdateStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		MobileNo: req.MobileNo,
		RoleID:   roleID,
		Note:     req.Note,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffNotFound):
			return c.JSON(http.StatusNotFound, map[string]interface{}{"message": "Staff member not found"})
		case errors.Is(err, services.ErrEmailTaken):
			return staffValidationFailed(c, common.FieldError("email", "The email has already been taken."))
		case errors.Is(err, services.ErrRoleNotFound):
			return staffValidationFailed(c, common.FieldError("role", "The selected role is invalid."))
		case errors.Is(err, services.ErrNoPersonalTeam):
			return echo.NewHTTPError(http.StatusUnauthorized, "No personal team for user")
		}
		log.Printf("ERROR: failed to update staff %s: %v", staffID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update staff")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Staff successfully updated",
		"user":    user,
	})
}

// DeleteStaff removes the staff account and everything hanging off it
func (h *StaffHandlers) DeleteStaff(c echo.Context) error {
	ctx := c.Request().Context()

	if _, ok := common.GetUserIDFromContext(ctx); !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{"message": "Staff member not found"})
	}

	if err := h.staffService.Delete(ctx, staffID); err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{"message": "Staff member not found"})
		}
		log.Printf("ERROR: failed to delete staff %s: %v", staffID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete staff")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Staff successfully deleted",
	})
}
