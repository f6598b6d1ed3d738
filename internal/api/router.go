package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/trendwyse/dashboard/docs" // swagger spec
	"github.com/trendwyse/dashboard/internal/api/handler"
	"github.com/trendwyse/dashboard/internal/api/middleware"
	"github.com/trendwyse/dashboard/internal/core/domain"
	"github.com/trendwyse/dashboard/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Services are built by the caller.
type Deps struct {
	Log         zerolog.Logger
	JWTSecret   string
	CORSOrigins []string

	Auth      ports.AuthService
	Denylist  ports.TokenDenylist
	Analyses  ports.AnalysisService
	Alerts    ports.AlertService
	Dashboard ports.DashboardService
	Assistant ports.AssistantService

	// Readiness lists the backing stores pinged by /health/ready.
	Readiness []handler.Dependency
	// Metrics overrides the default Prometheus registry. Nil uses the default.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: d.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "trendwyse_http",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	analysisHandler := handler.NewAnalysisHandler(d.Analyses)
	alertHandler := handler.NewAlertHandler(d.Alerts)
	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	assistantHandler := handler.NewAssistantHandler(d.Assistant)
	healthHandler := handler.NewHealthHandler(d.Readiness...)

	// --- Health probes, metrics and docs (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Public auth routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	// --- Authenticated routes ---
	secured := api.Group("", middleware.Auth(d.JWTSecret, d.Denylist))
	secured.POST("/logout", authHandler.Logout)
	secured.GET("/user", authHandler.Me)

	secured.GET("/dashboard/stats", dashboardHandler.Stats)
	secured.GET("/modules", dashboardHandler.Modules)

	secured.GET("/alerts", alertHandler.List)
	secured.POST("/alerts/:id/read", alertHandler.MarkRead)
	secured.POST("/alerts", alertHandler.Broadcast, middleware.RBAC(domain.RoleAdmin, domain.RoleSupport))

	secured.GET("/analyses/pending", analysisHandler.ListPending)
	secured.GET("/analyses/completed", analysisHandler.ListCompleted)
	secured.POST("/analyses", analysisHandler.Create)
	secured.POST("/analyses/:id/start", analysisHandler.Start)

	secured.POST("/ai/chat", assistantHandler.Chat)

	return e
}
