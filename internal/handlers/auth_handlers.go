package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"jobbify/internal/common"
	"jobbify/internal/repositories"
	"jobbify/internal/services"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers handles registration and login requests
type AuthHandlers struct {
	onboardingService services.OnboardingService
	tokenService      services.TokenService
	userRepo          repositories.UserRepository
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(onboardingService services.OnboardingService, tokenService services.TokenService, userRepo repositories.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		onboardingService: onboardingService,
		tokenService:      tokenService,
		userRepo:          userRepo,
	}
}

const birthdayLayout = "2006-01-02"

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	FirstName      string  `json:"first_name" validate:"required,max=255"`
	LastName       string  `json:"last_name" validate:"required,max=255"`
	Birthday       string  `json:"birthday" validate:"required"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8"`
	CompanyName    string  `json:"company_name" validate:"required"`
	StaffsNo       *int    `json:"staffs_no"`
	CurrentRevenue *string `json:"current_revenue"`
	Business       *string `json:"business"`
	PhoneNumber    *string `json:"phone_number"`
	Address        *string `json:"address"`
	AddressLine2   *string `json:"address_line_2"`
	City           *string `json:"city"`
	PostalCode     *string `json:"postal_code"`
	Country        *string `json:"country"`
}

func validationFailed(c echo.Context, status int, errs map[string][]string) error {
	return c.JSON(status, map[string]interface{}{
		"status":  false,
		"message": "Validation error",
		"errors":  errs,
	})
}

// Register handles account creation and the onboarding chain
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, http.StatusUnauthorized, common.FieldError("request", "The request payload is invalid."))
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, http.StatusUnauthorized, common.ValidationMessages(err))
	}

	birthday, err := time.Parse(birthdayLayout, req.Birthday)
	if err != nil {
		return validationFailed(c, http.StatusUnauthorized, common.FieldError("birthday", "The birthday is not a valid date."))
	}

	in := &services.RegisterInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Birthday:       birthday,
		Email:          req.Email,
		Password:       req.Password,
		CompanyName:    req.CompanyName,
		StaffsNo:       req.StaffsNo,
		CurrentRevenue: req.CurrentRevenue,
		Business:       req.Business,
		PhoneNumber:    req.PhoneNumber,
		Address:        req.Address,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
	}

	user, err := h.onboardingService.Register(ctx, in)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return validationFailed(c, http.StatusUnauthorized, common.FieldError("email", "The email has already been taken."))
		}
		log.Printf("ERROR: registration failed for %s: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  false,
			"message": "Registration failed",
		})
	}

	token, err := h.tokenService.GenerateToken(user.ID)
	if err != nil {
		log.Printf("ERROR: token generation failed for %s: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  false,
			"message": "Registration failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "User Created Successfully",
		"user":    user,
		"token":   token,
	})
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates with email and password. Unknown email and wrong
// password produce the same response so accounts cannot be enumerated.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return validationFailed(c, http.StatusUnauthorized, common.FieldError("request", "The request payload is invalid."))
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, http.StatusUnauthorized, common.ValidationMessages(err))
	}

	user, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  false,
			"message": "Email & Password does not match with our record.",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]interface{}{
			"status":  false,
			"message": "Email & Password does not match with our record.",
		})
	}

	token, err := h.tokenService.GenerateToken(user.ID)
	if err != nil {
		log.Printf("ERROR: token generation failed for %s: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]interface{}{
			"status":  false,
			"message": "Login failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "User Logged In Successfully",
		"user":    user,
		"token":   token,
	})
}
