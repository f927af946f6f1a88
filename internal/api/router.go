package api

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/VGOT23/rbac-project/docs"
	"github.com/VGOT23/rbac-project/internal/api/handler"
	"github.com/VGOT23/rbac-project/internal/api/middleware"
	"github.com/VGOT23/rbac-project/internal/core/authz"
	"github.com/VGOT23/rbac-project/internal/core/domain"
	"github.com/VGOT23/rbac-project/internal/core/ports"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Authenticator middleware.Authenticator
	AuthService   ports.AuthService
	PostService   ports.PostService
	UserService   ports.UserService
	HealthChecks  map[string]handler.DependencyCheck
	Logger        zerolog.Logger

	// Registerer receives the HTTP request metrics. Defaults to the
	// Prometheus default registerer.
	Registerer prometheus.Registerer
}

// Route role sets. Built once; an empty or unknown role set panics at startup.
var (
	anyRole    = authz.MustRoleSet(domain.Roles...)
	authorRole = authz.MustRoleSet(domain.RoleAdmin, domain.RoleEditor)
	adminOnly  = authz.MustRoleSet(domain.RoleAdmin)
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title                       RBAC Posts API
// @version                     1.0
// @description                 Posts API protected by role-based access control (admin, editor, viewer).
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Registerer: registerer,
		Skipper:    skipOperational,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	postHandler := handler.NewPostHandler(deps.PostService)
	userHandler := handler.NewUserHandler(deps.UserService)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	authenticate := middleware.Authenticate(deps.Authenticator)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authenticate, middleware.RequireRoles(anyRole))

	// --- Post routes ---
	posts := e.Group("/api/posts", authenticate)
	posts.GET("", postHandler.List, middleware.RequireRoles(anyRole))
	posts.GET("/:id", postHandler.Get, middleware.RequireRoles(anyRole))
	posts.POST("", postHandler.Create, middleware.RequireRoles(authorRole))
	posts.PUT("/:id", postHandler.Update, middleware.RequireRoles(authorRole))
	posts.DELETE("/:id", postHandler.Delete, middleware.RequireRoles(authorRole))

	// --- User administration ---
	users := e.Group("/api/users", authenticate, middleware.RequireRoles(adminOnly))
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id/role", userHandler.UpdateRole)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health checks (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func skipOperational(c echo.Context) bool {
	p := c.Request().URL.Path
	return p == "/metrics" || strings.HasPrefix(p, "/health") || strings.HasPrefix(p, "/swagger")
}
