package http

import (
	"context"
	"fmt"

	"library-cms/internal/auth"
	"library-cms/internal/config"
	"library-cms/internal/domain/user"
	"library-cms/internal/http/handler"
	"library-cms/internal/http/middleware"
	"library-cms/internal/policy"
	"library-cms/pkg/metrics"
	"library-cms/pkg/profiling"

	"github.com/benbjohnson/clock"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	loginPath = "/auth/login"
	// Headroom for the JSON "data" part and multipart framing on top of the file itself.
	bodyOverheadBytes int64 = 1 << 20
)

type ServerDependencies struct {
	Config         *config.Config
	Policy         *policy.Policy
	AuthMiddleware *auth.Middleware
	Metrics        *metrics.Metrics
	AuditLogger    handler.AuditLogger
	Clock          clock.Clock

	Auth        handler.AuthService
	Libraries   handler.LibraryService
	Stories     handler.StoryService
	Events      handler.EventService
	Media       handler.MediaService
	Messages    handler.MessageService
	Dashboard   handler.DashboardService
	Analytics   handler.AnalyticsService
	Maintenance handler.MaintenanceService
	Backups     handler.BackupService

	// HealthChecks are pinged by GET /health, keyed by dependency name.
	HealthChecks map[string]handler.Pinger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = CustomHTTPErrorHandler

	cfg := deps.Config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Request ID first, so every log line carries it.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders(cfg.Server.HSTS))
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	if len(cfg.Server.AllowedOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: cfg.Server.AllowedOrigins,
			AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderXRequestID},
		}))
	}
	e.Use(deps.Metrics.Middleware())
	e.Use(echomiddleware.BodyLimit(bodyLimit(cfg.App.MaxUploadSize)))
	// Resolve the actor up front so rate limiting, the maintenance gate and
	// public reads all see the same identity.
	e.Use(deps.AuthMiddleware.OptionalJWT())
	e.Use(middleware.NewGlobalRateLimiter().Middleware())
	e.Use(middleware.Maintenance(deps.Maintenance, loginPath))

	strict := middleware.NewStrictRateLimiter().Middleware()
	requireJWT := deps.AuthMiddleware.RequireJWT()
	roles := auth.NewRoleMiddleware(deps.Policy)

	common := handler.Deps{
		Policy:   deps.Policy,
		Files:    handler.NewFileReader(cfg.App.MaxUploadSize),
		Audit:    deps.AuditLogger,
		Metrics:  deps.Metrics,
		Clock:    deps.Clock,
		PageSize: cfg.App.PageSize,
	}

	authHandler := handler.NewAuthHandler(deps.Auth, deps.AuditLogger)
	libraryHandler := handler.NewLibraryHandler(deps.Libraries, common)
	storyHandler := handler.NewStoryHandler(deps.Stories, common)
	eventHandler := handler.NewEventHandler(deps.Events, common)
	mediaHandler := handler.NewMediaHandler(deps.Media, common)
	messageHandler := handler.NewMessageHandler(deps.Messages, common)
	dashboardHandler := handler.NewDashboardHandler(deps.Dashboard, common)
	analyticsHandler := handler.NewAnalyticsHandler(deps.Analytics)
	adminHandler := handler.NewAdminHandler(deps.Maintenance, deps.Backups, deps.AuditLogger)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Check)
	deps.Metrics.RegisterRoute(e)

	e.POST(loginPath, authHandler.Login, strict)
	e.GET("/auth/me", authHandler.Me, requireJWT)

	api := e.Group("/api")
	api.GET("/libraries", libraryHandler.List)
	api.GET("/libraries/:id", libraryHandler.Get)
	api.GET("/stories", storyHandler.List)
	api.GET("/stories/tags", storyHandler.Tags)
	api.GET("/stories/:id", storyHandler.Get)
	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", eventHandler.Get)
	api.GET("/media", mediaHandler.List)
	api.GET("/media/tags", mediaHandler.Tags)
	api.GET("/media/:id", mediaHandler.Get)
	api.POST("/contact", messageHandler.Contact, strict)
	api.POST("/analytics/track", analyticsHandler.Track)

	jwtAPI := api.Group("")
	jwtAPI.Use(requireJWT)

	jwtAPI.POST("/libraries", libraryHandler.Create, roles.RequireRole(user.RoleSuperAdmin))
	jwtAPI.PUT("/libraries/:id", libraryHandler.Update)

	jwtAPI.POST("/stories", storyHandler.Create)
	jwtAPI.PUT("/stories/:id", storyHandler.Update)

	jwtAPI.POST("/events", eventHandler.Create)
	jwtAPI.PUT("/events/:id", eventHandler.Update)
	jwtAPI.DELETE("/events/:id", eventHandler.Delete)

	jwtAPI.POST("/media", mediaHandler.Create)
	jwtAPI.PUT("/media/:id", mediaHandler.Update)

	jwtAPI.GET("/messages", messageHandler.List, roles.RequireActor())
	jwtAPI.PATCH("/messages/:id", messageHandler.Update, roles.RequireActor())
	jwtAPI.GET("/messages/:id/responses", messageHandler.Responses, roles.RequireActor())
	jwtAPI.POST("/messages/:id/reply", messageHandler.Reply, roles.RequireRole(user.RoleLibraryAdmin))

	jwtAPI.GET("/dashboard/stats", dashboardHandler.Stats)
	jwtAPI.GET("/dashboard/activity", dashboardHandler.Activity)
	jwtAPI.GET("/dashboard/analytics", dashboardHandler.Analytics)

	admin := jwtAPI.Group("/admin", roles.RequireRole(user.RoleSuperAdmin))
	admin.GET("/maintenance", adminHandler.GetMaintenance)
	admin.PUT("/maintenance", adminHandler.SetMaintenance)
	admin.POST("/backups", adminHandler.CreateBackup)
	if deps.Config.Server.Profiling {
		profiling.Register(admin)
	}

	return &Server{
		echo: e,
		deps: deps,
	}
}

// bodyLimit renders the echo body limit for uploads of at most maxUpload bytes.
func bodyLimit(maxUpload int64) string {
	return fmt.Sprintf("%dK", (maxUpload+bodyOverheadBytes+1023)/1024)
}

func (s *Server) Handler() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
