package handlers

import (
	"log"
	"net/http"

	"jobbify/internal/common"
	"jobbify/internal/repositories"

	"github.com/labstack/echo/v4"
)

// UserHandlers serves the authenticated user's profile
type UserHandlers struct {
	userRepo    repositories.UserRepository
	teamRepo    repositories.TeamRepository
	companyRepo repositories.CompanyDetailsRepository
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(userRepo repositories.UserRepository, teamRepo repositories.TeamRepository, companyRepo repositories.CompanyDetailsRepository) *UserHandlers {
	return &UserHandlers{
		userRepo:    userRepo,
		teamRepo:    teamRepo,
		companyRepo: companyRepo,
	}
}

// GetProfile returns the caller's account fields merged with the company
// profile stored against their personal team.
func (h *UserHandlers) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: failed to load user %s: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load profile")
	}

	company := map[string]interface{}{
		"business":        nil,
		"phone_number":    nil,
		"staffs_no":       nil,
		"current_revenue": nil,
		"company_name":    nil,
	}
	team, err := h.teamRepo.GetPersonalTeamByOwner(ctx, userID)
	if err == nil {
		company["company_name"] = team.Name
		if details, err := h.companyRepo.GetByTeamID(ctx, team.ID); err == nil {
			company["business"] = details.BusinessName
			company["phone_number"] = details.PhoneNumber
			company["staffs_no"] = details.StaffsNo
			company["current_revenue"] = details.CurrentRevenue
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": map[string]interface{}{
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"birthday":   user.Birthday,
			"email":      user.Email,
		},
		"company": company,
	})
}
