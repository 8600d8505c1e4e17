package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	domain "github.com/zkeq/Self-Cinema/domain/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the catalog module configuration.
type Config struct {
	// DBPath is the sqlite database file path.
	DBPath string
}

// CatalogModule provides series/episode persistence and lookup.
type CatalogModule struct {
	config  Config
	db      *gorm.DB
	service *Service
}

// Compile-time interface checks.
var _ mono.Module = (*CatalogModule)(nil)
var _ mono.ServiceProviderModule = (*CatalogModule)(nil)
var _ mono.HealthCheckableModule = (*CatalogModule)(nil)

// NewModule creates a new CatalogModule.
func NewModule(cfg Config) *CatalogModule {
	if cfg.DBPath == "" {
		cfg.DBPath = "self_cinema.db"
	}
	return &CatalogModule{
		config: cfg,
	}
}

// Name returns the module name.
func (m *CatalogModule) Name() string {
	return "catalog"
}

// Start opens the database and migrates the catalog schema.
func (m *CatalogModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.config.DBPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := db.AutoMigrate(&domain.Series{}, &domain.Episode{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(NewGormRepository(db))

	log.Printf("[catalog] Module started (database: %s)", m.config.DBPath)
	return nil
}

// Stop closes the database connection.
func (m *CatalogModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[catalog] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *CatalogModule) Health(_ context.Context) mono.HealthStatus {
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

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.config.DBPath,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *CatalogModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-series", json.Unmarshal, json.Marshal, m.handleCreateSeries,
	); err != nil {
		return fmt.Errorf("failed to register create-series service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-series", json.Unmarshal, json.Marshal, m.handleListSeries,
	); err != nil {
		return fmt.Errorf("failed to register list-series service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-series", json.Unmarshal, json.Marshal, m.handleGetSeries,
	); err != nil {
		return fmt.Errorf("failed to register get-series service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-series", json.Unmarshal, json.Marshal, m.handleUpdateSeries,
	); err != nil {
		return fmt.Errorf("failed to register update-series service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-series", json.Unmarshal, json.Marshal, m.handleDeleteSeries,
	); err != nil {
		return fmt.Errorf("failed to register delete-series service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-episodes", json.Unmarshal, json.Marshal, m.handleListEpisodes,
	); err != nil {
		return fmt.Errorf("failed to register list-episodes service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-episode", json.Unmarshal, json.Marshal, m.handleGetEpisode,
	); err != nil {
		return fmt.Errorf("failed to register get-episode service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "create-episode", json.Unmarshal, json.Marshal, m.handleCreateEpisode,
	); err != nil {
		return fmt.Errorf("failed to register create-episode service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-episode", json.Unmarshal, json.Marshal, m.handleUpdateEpisode,
	); err != nil {
		return fmt.Errorf("failed to register update-episode service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-episode", json.Unmarshal, json.Marshal, m.handleDeleteEpisode,
	); err != nil {
		return fmt.Errorf("failed to register delete-episode service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "episode-by-url", json.Unmarshal, json.Marshal, m.handleEpisodeByURL,
	); err != nil {
		return fmt.Errorf("failed to register episode-by-url service: %w", err)
	}

	log.Println("[catalog] Registered series, episode and lookup services")
	return nil
}

func (m *CatalogModule) handleCreateSeries(ctx context.Context, req CreateSeriesRequest, _ *mono.Msg) (SeriesResponse, error) {
	view, err := m.service.CreateSeries(ctx, req.Series)
	if err != nil {
		return SeriesResponse{}, err
	}
	return SeriesResponse{Series: *view}, nil
}

func (m *CatalogModule) handleListSeries(ctx context.Context, _ ListSeriesRequest, _ *mono.Msg) (ListSeriesResponse, error) {
	views, err := m.service.ListSeries(ctx)
	if err != nil {
		return ListSeriesResponse{}, err
	}
	return ListSeriesResponse{Series: views}, nil
}

func (m *CatalogModule) handleGetSeries(ctx context.Context, req GetSeriesRequest, _ *mono.Msg) (SeriesResponse, error) {
	view, err := m.service.GetSeries(ctx, req.ID)
	if err != nil {
		return SeriesResponse{}, err
	}
	return SeriesResponse{Series: *view}, nil
}

func (m *CatalogModule) handleUpdateSeries(ctx context.Context, req UpdateSeriesRequest, _ *mono.Msg) (SeriesResponse, error) {
	view, err := m.service.UpdateSeries(ctx, req.ID, req.Series)
	if err != nil {
		return SeriesResponse{}, err
	}
	return SeriesResponse{Series: *view}, nil
}

func (m *CatalogModule) handleDeleteSeries(ctx context.Context, req DeleteSeriesRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.DeleteSeries(ctx, req.ID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Deleted: true}, nil
}

func (m *CatalogModule) handleListEpisodes(ctx context.Context, req ListEpisodesRequest, _ *mono.Msg) (ListEpisodesResponse, error) {
	views, err := m.service.ListEpisodes(ctx, req.SeriesID)
	if err != nil {
		return ListEpisodesResponse{}, err
	}
	return ListEpisodesResponse{Episodes: views}, nil
}

func (m *CatalogModule) handleGetEpisode(ctx context.Context, req GetEpisodeRequest, _ *mono.Msg) (EpisodeResponse, error) {
	view, err := m.service.GetEpisode(ctx, req.ID)
	if err != nil {
		return EpisodeResponse{}, err
	}
	return EpisodeResponse{Episode: *view}, nil
}

func (m *CatalogModule) handleCreateEpisode(ctx context.Context, req CreateEpisodeRequest, _ *mono.Msg) (EpisodeResponse, error) {
	view, err := m.service.CreateEpisode(ctx, req.Episode)
	if err != nil {
		return EpisodeResponse{}, err
	}
	return EpisodeResponse{Episode: *view}, nil
}

func (m *CatalogModule) handleUpdateEpisode(ctx context.Context, req UpdateEpisodeRequest, _ *mono.Msg) (EpisodeResponse, error) {
	view, err := m.service.UpdateEpisode(ctx, req.ID, req.Episode)
	if err != nil {
		return EpisodeResponse{}, err
	}
	return EpisodeResponse{Episode: *view}, nil
}

func (m *CatalogModule) handleDeleteEpisode(ctx context.Context, req DeleteEpisodeRequest, _ *mono.Msg) (DeleteResponse, error) {
	if err := m.service.DeleteEpisode(ctx, req.ID); err != nil {
		return DeleteResponse{}, err
	}
	return DeleteResponse{Deleted: true}, nil
}

// handleEpisodeByURL reports Found=false for an unknown url; that is an
// expected outcome of the playback comparison, not an error.
func (m *CatalogModule) handleEpisodeByURL(ctx context.Context, req EpisodeByURLRequest, _ *mono.Msg) (EpisodeByURLResponse, error) {
	view, err := m.service.EpisodeByURL(ctx, req.VideoURL)
	if err != nil {
		if errors.Is(err, ErrEpisodeNotFound) {
			return EpisodeByURLResponse{Found: false}, nil
		}
		return EpisodeByURLResponse{}, err
	}
	return EpisodeByURLResponse{Found: true, Episode: view}, nil
}
