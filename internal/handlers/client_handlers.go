package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"jobbify/internal/common"
	"jobbify/internal/repositories"
	"jobbify/internal/services"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// ClientHandlers handles client-record HTTP requests
type ClientHandlers struct {
	clientService services.ClientService
	teamRepo      repositories.TeamRepository
}

// NewClientHandlers creates a new client handlers instance
func NewClientHandlers(clientService services.ClientService, teamRepo repositories.TeamRepository) *ClientHandlers {
	return &ClientHandlers{
		clientService: clientService,
		teamRepo:      teamRepo,
	}
}

// ClientRequest represents the client create/update payload
type ClientRequest struct {
	FirstName     string   `json:"first_name" validate:"required,max=255"`
	LastName      string   `json:"last_name" validate:"required,max=255"`
	Email         string   `json:"email" validate:"required,email"`
	MobileNo      string   `json:"mobile_no" validate:"required,numeric"`
	StreetAddress string   `json:"street_address" validate:"required,max=255"`
	City          string   `json:"city" validate:"required,max=255"`
	Region        string   `json:"region" validate:"required,max=255"`
	PostalCode    string   `json:"postal_code" validate:"required,numeric"`
	Status        *int     `json:"status" validate:"required"`
	Note          *string  `json:"note" validate:"omitempty,max=1000"`
	Tags          []string `json:"tags" validate:"omitempty,dive,max=255"`
}

func (r *ClientRequest) toInput() *services.ClientInput {
	return &services.ClientInput{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Email:         r.Email,
		MobileNo:      r.MobileNo,
		StreetAddress: r.StreetAddress,
		City:          r.City,
		Region:        r.Region,
		PostalCode:    r.PostalCode,
		Status:        *r.Status,
		Note:          r.Note,
		Tags:          r.Tags,
	}
}

func clientValidationFailed(c echo.Context, errs map[string][]string) error {
	return c.JSON(http.StatusUnprocessableEntity, map[string]interface{}{
		"message": "Validation error",
		"errors":  errs,
	})
}

// ListClients returns one page of clients with their tags
func (h *ClientHandlers) ListClients(c echo.Context) error {
	ctx := c.Request().Context()

	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	clients, total, err := h.clientService.List(ctx, page)
	if err != nil {
		log.Printf("ERROR: failed to list clients: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list clients")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"clients": clients,
		"total":   total,
		"page":    page,
	})
}

// CreateClient stamps the record with the caller's id and personal team id
func (h *ClientHandlers) CreateClient(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return clientValidationFailed(c, common.FieldError("request", "The request payload is invalid."))
	}
	if err := c.Validate(&req); err != nil {
		return clientValidationFailed(c, common.ValidationMessages(err))
	}

	team, err := h.teamRepo.GetPersonalTeamByOwner(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusUnauthorized, "No personal team for user")
		}
		log.Printf("ERROR: failed to resolve personal team for %s: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create client")
	}

	client, err := h.clientService.Create(ctx, userID, team.ID, req.toInput())
	if err != nil {
		if errors.Is(err, services.ErrClientEmailTaken) {
			return clientValidationFailed(c, common.FieldError("email", "The email has already been taken."))
		}
		log.Printf("ERROR: failed to create client: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create client")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Client successfully created",
		"client":  client,
	})
}

// UpdateClient replaces the record and unconditionally re-syncs its tags
func (h *ClientHandlers) UpdateClient(c echo.Context) error {
	ctx := c.Request().Context()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Client not found")
	}

	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return clientValidationFailed(c, common.FieldError("request", "The request payload is invalid."))
	}
	if err := c.Validate(&req); err != nil {
		return clientValidationFailed(c, common.ValidationMessages(err))
	}

	client, err := h.clientService.Update(ctx, clientID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Client not found")
		case errors.Is(err, services.ErrClientEmailTaken):
			return clientValidationFailed(c, common.FieldError("email", "The email has already been taken."))
		}
		log.Printf("ERROR: failed to update client %s: %v", clientID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update client")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Client successfully updated",
		"client":  client,
	})
}

// DeleteClient removes the client and its tags
func (h *ClientHandlers) DeleteClient(c echo.Context) error {
	ctx := c.Request().Context()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Client not found")
	}

	if err := h.clientService.Delete(ctx, clientID); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Client not found")
		}
		log.Printf("ERROR: failed to delete client %s: %v", clientID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete client")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Client successfully deleted",
	})
}

// GetClientStatuses returns the value -> label map for lead statuses
func (h *ClientHandlers) GetClientStatuses(c echo.Context) error {
	ctx := c.Request().Context()

	statuses, err := h.clientService.LeadStatuses(ctx)
	if err != nil {
		log.Printf("ERROR: failed to load lead statuses: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load statuses")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"statuses": statuses,
	})
}
