package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/redis/go-redis/v9"
	domain "github.com/zkeq/Self-Cinema/domain/share"
	"github.com/zkeq/Self-Cinema/modules/cache"
	"github.com/zkeq/Self-Cinema/modules/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the share module configuration.
type Config struct {
	// DBPath is the sqlite database file path.
	DBPath string

	// RedisAddr enables watch-page caching when non-empty.
	RedisAddr string

	// CacheTTL is the watch-page cache lifetime.
	CacheTTL time.Duration
}

// ShareModule provides share link creation and public watch-page
// resolution.
type ShareModule struct {
	config  Config
	db      *gorm.DB
	cache   *cache.Cache
	service *Service

	catalogAdapter *catalog.CatalogAdapter
}

// Compile-time interface checks.
var _ mono.Module = (*ShareModule)(nil)
var _ mono.ServiceProviderModule = (*ShareModule)(nil)
var _ mono.DependentModule = (*ShareModule)(nil)
var _ mono.HealthCheckableModule = (*ShareModule)(nil)

// NewModule creates a new ShareModule.
func NewModule(cfg Config) *ShareModule {
	if cfg.DBPath == "" {
		cfg.DBPath = "self_cinema.db"
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	return &ShareModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *ShareModule) Name() string {
	return "share"
}

// Dependencies returns the list of module dependencies.
func (m *ShareModule) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *ShareModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "catalog" {
		m.catalogAdapter = catalog.NewCatalogAdapter(container)
	}
}

// Start opens the database, migrates the share schema and optionally
// connects the watch-page cache.
func (m *ShareModule) Start(ctx context.Context) error {
	if m.catalogAdapter == nil {
		return fmt.Errorf("catalog dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.ShareLink{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if m.config.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr: m.config.RedisAddr,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		m.cache = cache.New(client, "watch:", m.config.CacheTTL)
		log.Printf("[share] Watch-page cache enabled (redis: %s, ttl: %s)", m.config.RedisAddr, m.config.CacheTTL)
	}

	m.service = NewService(NewGormShareRepository(db), m.catalogAdapter, m.cache)

	log.Printf("[share] Module started (database: %s)", m.config.DBPath)
	return nil
}

// Stop closes the database and cache connections.
func (m *ShareModule) Stop(_ context.Context) error {
	if m.cache != nil {
		m.cache.Close()
	}
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[share] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *ShareModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}
	if err := sqlDB.Ping(); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	details := map[string]any{
		"database": m.config.DBPath,
	}
	if m.cache != nil {
		if err := m.cache.Ping(ctx); err != nil {
			return mono.HealthStatus{
				Healthy: false,
				Message: fmt.Sprintf("redis ping failed: %v", err),
			}
		}
		details["cache"] = m.cache.GetStats()
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: details,
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *ShareModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-share", json.Unmarshal, json.Marshal, m.handleCreateShare,
	); err != nil {
		return fmt.Errorf("failed to register create-share service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "resolve-watch", json.Unmarshal, json.Marshal, m.handleResolveWatch,
	); err != nil {
		return fmt.Errorf("failed to register resolve-watch service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "purge-series", json.Unmarshal, json.Marshal, m.handlePurgeSeries,
	); err != nil {
		return fmt.Errorf("failed to register purge-series service: %w", err)
	}

	log.Println("[share] Registered services: create-share, resolve-watch, purge-series")
	return nil
}

// handleCreateShare creates a share link for a series.
func (m *ShareModule) handleCreateShare(ctx context.Context, req CreateShareRequest, _ *mono.Msg) (CreateShareResponse, error) {
	result, err := m.service.CreateShare(ctx, req.SeriesID, req.BaseURL, req.ExpireHours)
	if err != nil {
		return CreateShareResponse{}, err
	}

	return CreateShareResponse{
		Hash:      result.Hash,
		ShareURL:  result.ShareURL,
		ExpiresAt: result.ExpiresAt,
	}, nil
}

// handleResolveWatch resolves a share hash. Unknown and expired hashes
// are expected outcomes and travel as flags.
func (m *ShareModule) handleResolveWatch(ctx context.Context, req ResolveWatchRequest, _ *mono.Msg) (ResolveWatchResponse, error) {
	page, err := m.service.ResolveWatch(ctx, req.Hash)
	if err != nil {
		if errors.Is(err, ErrShareNotFound) {
			return ResolveWatchResponse{Found: false}, nil
		}
		if errors.Is(err, ErrShareExpired) {
			return ResolveWatchResponse{Found: true, Expired: true}, nil
		}
		return ResolveWatchResponse{}, err
	}

	return ResolveWatchResponse{
		Found: true,
		Page:  page,
	}, nil
}

// handlePurgeSeries removes all share links of a deleted series.
func (m *ShareModule) handlePurgeSeries(ctx context.Context, req PurgeSeriesRequest, _ *mono.Msg) (PurgeSeriesResponse, error) {
	if err := m.service.PurgeSeries(ctx, req.SeriesID); err != nil {
		return PurgeSeriesResponse{}, err
	}
	return PurgeSeriesResponse{Purged: true}, nil
}
