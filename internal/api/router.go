package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/bilemo/bilemo-api/docs"
	"github.com/bilemo/bilemo-api/internal/api/handler"
	"github.com/bilemo/bilemo-api/internal/api/middleware"
	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Auth    ports.AuthService
	Clients ports.ClientService
	Mobiles ports.MobileService
	Users   ports.UserService

	JWTSecret  string
	LoginRate  float64
	LoginBurst int

	// Readiness lists the dependencies pinged by /health/ready.
	Readiness []handler.Dependency
	Logger    zerolog.Logger
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.LoginRate <= 0 {
		deps.LoginRate = 1
	}
	if deps.LoginBurst <= 0 {
		deps.LoginBurst = 5
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bilemo",
		Subsystem:  "http",
		Registerer: deps.Registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	clientHandler := handler.NewClientHandler(deps.Clients, deps.Users)
	mobileHandler := handler.NewMobileHandler(deps.Mobiles)
	userHandler := handler.NewUserHandler(deps.Users)

	// --- Public routes ---
	e.POST("/api/login", authHandler.Login, middleware.LoginRateLimit(deps.LoginRate, deps.LoginBurst))

	// --- Authenticated routes ---
	api := e.Group("/api", middleware.Auth(deps.JWTSecret))

	api.GET("/clients/:id", clientHandler.Get)
	api.PUT("/clients/:id", clientHandler.Update)
	api.GET("/clients/:id/users", clientHandler.Users)

	api.GET("/mobiles", mobileHandler.List)
	api.GET("/mobiles/:id", mobileHandler.Get)

	api.GET("/users", userHandler.List)
	api.POST("/users", userHandler.Create)
	api.GET("/users/:id", userHandler.Get)
	api.PUT("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Delete)

	// Collection routes are closed to non-admins up front. Item routes leave
	// the role check to the services so unknown ids answer 404 first.
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	admin := api.Group("/admin")

	admin.GET("/clients", clientHandler.List, adminOnly)
	admin.POST("/clients", clientHandler.Create, adminOnly)
	admin.DELETE("/clients/:id", clientHandler.Delete)

	admin.POST("/mobiles", mobileHandler.Create, adminOnly)
	admin.PUT("/mobiles/:id", mobileHandler.Update)
	admin.DELETE("/mobiles/:id", mobileHandler.Delete)

	admin.GET("/users", userHandler.ListAll, adminOnly)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness...)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
