package handlers

import (
	"log"
	"net/http"

	"jobbify/internal/repositories"

	"github.com/labstack/echo/v4"
)

// DataHandlers serves the read-only directory lookups
type DataHandlers struct {
	roleRepo repositories.RoleRepository
}

// NewDataHandlers creates a new data handlers instance
func NewDataHandlers(roleRepo repositories.RoleRepository) *DataHandlers {
	return &DataHandlers{roleRepo: roleRepo}
}

// GetRoles returns the id -> name map of assignable roles
func (h *DataHandlers) GetRoles(c echo.Context) error {
	ctx := c.Request().Context()

	roles, err := h.roleRepo.List(ctx)
	if err != nil {
		log.Printf("ERROR: failed to list roles: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load roles")
	}

	out := make(map[string]string, len(roles))
	for _, role := range roles {
		out[role.ID.String()] = role.Name
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"roles": out})
}
