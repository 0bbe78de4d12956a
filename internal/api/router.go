package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/admindesk/directory-system/internal/api/handler"
	"github.com/admindesk/directory-system/internal/api/middleware"
	"github.com/admindesk/directory-system/internal/core/domain"
	"github.com/admindesk/directory-system/internal/core/ports"
	"github.com/admindesk/directory-system/internal/core/service"
	healthhandlers "github.com/admindesk/directory-system/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires together.
type Deps struct {
	Directory ports.DirectoryService
	Sessions  ports.SessionService
	Gate      *service.ConfirmationGate
	Store     ports.SnapshotStore
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered. The route
// role matrix mirrors what the dashboard's navigation guard enforces: every
// role may read users, admin or manager may write, only admin may delete or
// see roles.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("directory"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Sessions)
	userHandler := handler.NewUserHandler(d.Directory)
	confirmHandler := handler.NewConfirmationHandler(d.Gate, d.Directory)

	// --- Auth routes (no token required) ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/session", authHandler.Session)

	// --- Directory routes ---
	auth := middleware.Auth(d.JWTSecret)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleManager, domain.RoleViewer)
	writers := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	v1 := e.Group("/v1", auth)
	v1.GET("/users", userHandler.List, anyRole)
	v1.GET("/users/:id", userHandler.Get, anyRole)
	v1.POST("/users", userHandler.Create, writers)
	v1.PATCH("/users/:id", userHandler.Update, writers)
	v1.DELETE("/users/:id", userHandler.Delete, adminOnly)
	v1.GET("/roles", userHandler.Roles, adminOnly)

	v1.GET("/confirmation", confirmHandler.Show, adminOnly)
	v1.POST("/confirmation/confirm", confirmHandler.Confirm, adminOnly)
	v1.POST("/confirmation/cancel", confirmHandler.Cancel, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	readinessHandler := healthhandlers.NewReadinessHandler(d.Store)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
