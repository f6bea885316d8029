package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"github.com/google/uuid"

	"jobbify/internal/caching"
	"jobbify/internal/common"
	"jobbify/internal/config"
	"jobbify/internal/handlers"
	"jobbify/internal/jobs/background"
	"jobbify/internal/middleware"
	"jobbify/internal/repositories"
	"jobbify/internal/services"
	"jobbify/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = random.String(32) // Generate random secret for development
		log.Printf("WARNING: Using generated JWT secret")
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	userRepo := repositories.NewUserRepo(pool)
	teamRepo := repositories.NewTeamRepo(pool)
	companyRepo := repositories.NewCompanyDetailsRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	clientTagRepo := repositories.NewClientTagRepo(pool)
	roleRepo := repositories.NewRoleRepo(pool)
	userRoleRepo := repositories.NewUserRoleRepo(pool)
	teamMemberRepo := repositories.NewTeamMemberRepo(pool)
	statusRepo := repositories.NewStatusRepo(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Create services
	tokenSvc := services.NewTokenService(cacheSvc, cfg.JWTSecret)
	onboardingSvc := services.NewOnboardingService(pool, userRepo, teamRepo, companyRepo)
	staffSvc := services.NewStaffService(pool, userRepo, teamRepo, roleRepo, userRoleRepo, teamMemberRepo, tokenSvc, cfg.AppURL)
	clientSvc := services.NewClientService(pool, clientRepo, clientTagRepo, statusRepo, cacheSvc)

	// Create handlers
	authHandlers := handlers.NewAuthHandlers(onboardingSvc, tokenSvc, userRepo)
	userHandlers := handlers.NewUserHandlers(userRepo, teamRepo, companyRepo)
	clientHandlers := handlers.NewClientHandlers(clientSvc, teamRepo)
	staffHandlers := handlers.NewStaffHandlers(staffSvc)
	dataHandlers := handlers.NewDataHandlers(roleRepo)

	e := echo.New()
	e.Validator = common.NewRequestValidator()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())
	e.Use(versionMiddleware.VersionHeader(versionMiddleware.GetCurrentVersion()))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	e.POST("/auth/register", authHandlers.Register)
	e.POST("/auth/login", authHandlers.Login)

	jwtConfig := echojwt.Config{
		SigningKey: []byte(cfg.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &services.TokenClaims{}
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(*services.TokenClaims)
			if !ok {
				return
			}
			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return
			}
			ctx := common.WithUserID(c.Request().Context(), userID)
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	}

	api := e.Group("")
	api.Use(echojwt.WithConfig(jwtConfig))

	api.GET("/user", userHandlers.GetProfile)

	api.GET("/clients", clientHandlers.ListClients)
	api.GET("/clients/statuses", clientHandlers.GetClientStatuses)
	api.POST("/clients", clientHandlers.CreateClient)
	api.PUT("/clients/:id", clientHandlers.UpdateClient)
	api.DELETE("/clients/:id", clientHandlers.DeleteClient)

	api.GET("/staffs", staffHandlers.ListStaffs)
	api.GET("/staffs/:id", staffHandlers.GetStaff)
	api.POST("/staffs", staffHandlers.CreateStaff)
	api.PUT("/staffs/:id", staffHandlers.UpdateStaff)
	api.DELETE("/staffs/:id", staffHandlers.DeleteStaff)

	api.GET("/roles", dataHandlers.GetRoles)

	// Background jobs
	scheduler := background.NewJobScheduler(userRepo)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
