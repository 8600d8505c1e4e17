package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/zkeq/Self-Cinema/config"
	"github.com/zkeq/Self-Cinema/modules/api"
	"github.com/zkeq/Self-Cinema/modules/auth"
	"github.com/zkeq/Self-Cinema/modules/catalog"
	"github.com/zkeq/Self-Cinema/modules/roomsync"
	"github.com/zkeq/Self-Cinema/modules/search"
	"github.com/zkeq/Self-Cinema/modules/share"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Self Cinema ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order: independent modules first, then dependent modules.
	app.Register(catalog.NewModule(catalog.Config{
		DBPath: cfg.DBPath,
	}))
	app.Register(auth.NewModule(auth.Config{
		DBPath:        cfg.DBPath,
		JWTSecret:     cfg.JWTSecret,
		TokenDuration: cfg.JWTExpire,
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}))
	app.Register(share.NewModule(share.Config{
		DBPath:    cfg.DBPath,
		RedisAddr: cfg.RedisAddr,
		CacheTTL:  cfg.WatchCacheTTL,
	}))
	app.Register(roomsync.NewModule(roomsync.Config{
		HistorySize: cfg.ChatHistorySize,
		IdleTTL:     cfg.RoomIdleTTL,
	}))
	app.Register(search.NewModule(search.Config{
		Providers: cfg.SearchProviders,
		Timeout:   cfg.SearchTimeout,
	}))
	app.Register(api.NewModule(api.Config{
		Addr: cfg.Addr,
	}))

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost%s):", cfg.Addr)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /auth/login                  - Admin login")
	log.Println("  GET    /watch/:hash                 - Resolve a shared watch page")
	log.Println("  POST   /watch/:hash/chat            - Post a watch-room chat message")
	log.Println("  GET    /watch/:hash/chat?since=     - Poll chat messages after a cursor")
	log.Println("  POST   /watch/:hash/playback        - Publish the room playback pointer")
	log.Println("  GET    /watch/:hash/playback        - Poll the room playback pointer")
	log.Println("  GET    /health                      - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/series               - List series")
	log.Println("  POST   /api/v1/series               - Create a series")
	log.Println("  GET    /api/v1/series/:id           - Get a series")
	log.Println("  PUT    /api/v1/series/:id           - Update a series")
	log.Println("  DELETE /api/v1/series/:id           - Delete a series and its share links")
	log.Println("  GET    /api/v1/series/:id/episodes  - List a series' episodes")
	log.Println("  POST   /api/v1/series/:id/share     - Create a share link")
	log.Println("  POST   /api/v1/episodes             - Create an episode")
	log.Println("  GET    /api/v1/episodes/:id         - Get an episode")
	log.Println("  PUT    /api/v1/episodes/:id         - Update an episode")
	log.Println("  DELETE /api/v1/episodes/:id         - Delete an episode")
	log.Println("  GET    /api/v1/search?keyword=      - Search third-party resources")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
