package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/notes-studio/notes-api/docs"
	"github.com/notes-studio/notes-api/internal/api/handler"
	"github.com/notes-studio/notes-api/internal/api/middleware"
	"github.com/notes-studio/notes-api/internal/core/ports"
	"github.com/notes-studio/notes-api/internal/infrastructure/config"
)

// maxBodySize bounds request bodies; larger ones get 413.
const maxBodySize = "1M"

// Deps is everything the router wires into handlers.
type Deps struct {
	Auth  ports.AuthService
	Notes ports.NoteService

	Logger      zerolog.Logger
	CORSOrigins []string
	OpsLinks    []handler.OpsLink
	// Checks are pinged by GET /health/ready.
	Checks map[string]handler.Checker

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Pre(echo.WrapMiddleware(newCORS(d.CORSOrigins).Handler))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(maxBodySize))
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "notes",
		Subsystem:  "http",
		Registerer: d.Registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	noteHandler := handler.NewNoteHandler(d.Notes)
	opsHandler := handler.NewOpsHandler(d.OpsLinks)
	healthHandler := handler.NewHealthHandler(d.Checks)
	requireAuth := middleware.Auth(d.Auth)

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)

	// --- Note routes ---
	notes := e.Group("/notes", requireAuth)
	notes.GET("/", noteHandler.List)
	notes.POST("/", noteHandler.Create)
	notes.GET("/:id", noteHandler.Get)
	notes.PUT("/:id", noteHandler.Update)
	notes.DELETE("/:id", noteHandler.Delete)

	// --- Ops, probes, metrics and docs (no auth required) ---
	e.GET("/ops/links", opsHandler.Links)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// OpsLinks turns the configured tool URLs into the dashboard link list.
func OpsLinks(cfg config.OpsConfig) []handler.OpsLink {
	return []handler.OpsLink{
		{Name: "Grafana", URL: cfg.GrafanaURL},
		{Name: "Prometheus", URL: cfg.PrometheusURL},
		{Name: "Jenkins", URL: cfg.JenkinsURL},
	}
}

func newCORS(origins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// requestLogger emits one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
