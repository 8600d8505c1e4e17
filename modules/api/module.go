package api

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/zkeq/Self-Cinema/modules/auth"
	"github.com/zkeq/Self-Cinema/modules/catalog"
	"github.com/zkeq/Self-Cinema/modules/roomsync"
	"github.com/zkeq/Self-Cinema/modules/search"
	"github.com/zkeq/Self-Cinema/modules/share"
)

// Config holds the api module configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
}

// APIModule is the HTTP gateway in front of the other modules.
type APIModule struct {
	config Config
	app    *fiber.App

	authAdapter     auth.AuthPort
	catalogAdapter  catalog.CatalogPort
	shareAdapter    share.SharePort
	roomsyncAdapter roomsync.RoomSyncPort
	searchAdapter   search.SearchPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(cfg Config) *APIModule {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	return &APIModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "catalog", "share", "roomsync", "search"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authAdapter = auth.NewAuthAdapter(container)
	case "catalog":
		m.catalogAdapter = catalog.NewCatalogAdapter(container)
	case "share":
		m.shareAdapter = share.NewShareAdapter(container)
	case "roomsync":
		m.roomsyncAdapter = roomsync.NewRoomSyncAdapter(container)
	case "search":
		m.searchAdapter = search.NewSearchAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authAdapter == nil || m.catalogAdapter == nil || m.shareAdapter == nil ||
		m.roomsyncAdapter == nil || m.searchAdapter == nil {
		return fmt.Errorf("not all dependencies set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(m.config.Addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.config.Addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.config.Addr,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m.authAdapter, m.catalogAdapter, m.shareAdapter, m.roomsyncAdapter, m.searchAdapter)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"module": "api",
		})
	})

	// Public watch pages and watch-room polling, keyed by share hash.
	watch := m.app.Group("/watch/:hash")
	watch.Get("/", handlers.Watch)
	watch.Post("/chat", handlers.PostChat)
	watch.Get("/chat", handlers.ListChat)
	watch.Post("/playback", handlers.UpdatePlayback)
	watch.Get("/playback", handlers.GetPlayback)

	// Public auth routes
	m.app.Post("/auth/login", handlers.Login)

	// Protected admin routes
	protected := m.app.Group("/api/v1", AuthMiddleware(m.authAdapter))

	protected.Get("/series", handlers.ListSeries)
	protected.Post("/series", handlers.CreateSeries)
	protected.Get("/series/:id", handlers.GetSeries)
	protected.Put("/series/:id", handlers.UpdateSeries)
	protected.Delete("/series/:id", handlers.DeleteSeries)
	protected.Get("/series/:id/episodes", handlers.ListEpisodes)
	protected.Post("/series/:id/share", handlers.CreateShare)

	protected.Post("/episodes", handlers.CreateEpisode)
	protected.Get("/episodes/:id", handlers.GetEpisode)
	protected.Put("/episodes/:id", handlers.UpdateEpisode)
	protected.Delete("/episodes/:id", handlers.DeleteEpisode)

	protected.Get("/search", handlers.Search)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
