package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/bagibarang-its/inventory-api/internal/api/handler"
	"github.com/bagibarang-its/inventory-api/internal/api/middleware"
	"github.com/bagibarang-its/inventory-api/internal/core/domain"
	"github.com/bagibarang-its/inventory-api/internal/core/ports"
)

// UploadsPath is the URL prefix stored photos are served under.
const UploadsPath = "/uploads"

// Deps is everything the router needs. Services are built by the caller.
type Deps struct {
	Logger      zerolog.Logger
	AuthService ports.AuthService
	ItemService ports.ItemService

	Photos         handler.PhotoStore
	UploadDir      string
	MaxUploadBytes int64

	// ClientURL is the only browser origin allowed by CORS.
	ClientURL    string
	HealthChecks map[string]handler.DependencyCheck

	// Registerer receives the HTTP request metrics. Nil means the default registry.
	Registerer prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{d.ClientURL},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept,
			echo.HeaderAuthorization, "Idempotency-Key",
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bagibarang",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	itemHandler := handler.NewItemHandler(d.ItemService)
	uploadHandler := handler.NewUploadHandler(d.Photos, d.MaxUploadBytes, d.Logger)
	healthHandler := handler.NewHealthHandler(d.HealthChecks)

	requireAuth := middleware.Auth(d.AuthService)
	requireActive := middleware.RequireStatus(domain.StatusActive)

	// --- Service root, probes, docs ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)

	// --- Item routes (bearer token required) ---
	items := e.Group("/items", requireAuth)
	items.GET("", itemHandler.List)
	items.GET("/mine", itemHandler.ListMine)
	items.GET("/:id", itemHandler.Get)
	items.POST("", itemHandler.Create, requireActive)
	items.PUT("/:id", itemHandler.Update, requireActive)
	items.DELETE("/:id", itemHandler.Delete, requireActive)

	// --- Photos ---
	e.POST("/upload", uploadHandler.Upload,
		echomiddleware.BodyLimit(uploadBodyLimit(d.MaxUploadBytes)), requireAuth, requireActive)
	e.Static(UploadsPath, d.UploadDir)

	return e
}

// uploadBodyLimit leaves room for the multipart envelope around the file.
func uploadBodyLimit(maxBytes int64) string {
	return fmt.Sprintf("%dK", maxBytes/1024+64)
}
