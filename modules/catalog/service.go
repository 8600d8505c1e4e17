package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	domain "github.com/zkeq/Self-Cinema/domain/catalog"
)

var (
	// ErrTitleRequired is returned when a series or episode has no title.
	ErrTitleRequired = errors.New("title is required")
	// ErrVideoURLRequired is returned when an episode has no video url.
	ErrVideoURLRequired = errors.New("video url is required")
)

// Service provides catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// CreateSeries creates a new series from the input.
func (s *Service) CreateSeries(_ context.Context, input SeriesInput) (*SeriesView, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	series := &domain.Series{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	applySeriesInput(series, input)

	if err := s.repo.CreateSeries(series); err != nil {
		return nil, fmt.Errorf("failed to create series: %w", err)
	}

	view := seriesView(series)
	return &view, nil
}

// ListSeries returns all series.
func (s *Service) ListSeries(_ context.Context) ([]SeriesView, error) {
	series, err := s.repo.ListSeries()
	if err != nil {
		return nil, fmt.Errorf("failed to list series: %w", err)
	}
	return seriesViews(series), nil
}

// GetSeries returns one series by ID.
func (s *Service) GetSeries(_ context.Context, id string) (*SeriesView, error) {
	series, err := s.repo.FindSeries(id)
	if err != nil {
		return nil, err
	}
	view := seriesView(series)
	return &view, nil
}

// UpdateSeries overwrites a series' writable fields.
func (s *Service) UpdateSeries(_ context.Context, id string, input SeriesInput) (*SeriesView, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	series, err := s.repo.FindSeries(id)
	if err != nil {
		return nil, err
	}
	applySeriesInput(series, input)

	if err := s.repo.SaveSeries(series); err != nil {
		return nil, fmt.Errorf("failed to update series: %w", err)
	}

	view := seriesView(series)
	return &view, nil
}

// DeleteSeries removes a series and its episodes.
func (s *Service) DeleteSeries(_ context.Context, id string) error {
	if _, err := s.repo.FindSeries(id); err != nil {
		return err
	}
	if err := s.repo.DeleteSeries(id); err != nil {
		return fmt.Errorf("failed to delete series: %w", err)
	}
	return nil
}

// ListEpisodes returns a series' episodes ordered by episode number.
func (s *Service) ListEpisodes(_ context.Context, seriesID string) ([]EpisodeView, error) {
	episodes, err := s.repo.ListEpisodes(seriesID)
	if err != nil {
		return nil, fmt.Errorf("failed to list episodes: %w", err)
	}
	return episodeViews(episodes), nil
}

// GetEpisode returns one episode by ID.
func (s *Service) GetEpisode(_ context.Context, id string) (*EpisodeView, error) {
	episode, err := s.repo.FindEpisode(id)
	if err != nil {
		return nil, err
	}
	view := episodeView(episode)
	return &view, nil
}

// CreateEpisode creates an episode under an existing series.
func (s *Service) CreateEpisode(_ context.Context, input EpisodeInput) (*EpisodeView, error) {
	if err := validateEpisodeInput(input); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindSeries(input.SeriesID); err != nil {
		return nil, err
	}

	episode := &domain.Episode{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	applyEpisodeInput(episode, input)

	if err := s.repo.CreateEpisode(episode); err != nil {
		return nil, fmt.Errorf("failed to create episode: %w", err)
	}

	view := episodeView(episode)
	return &view, nil
}

// UpdateEpisode overwrites an episode's writable fields.
func (s *Service) UpdateEpisode(_ context.Context, id string, input EpisodeInput) (*EpisodeView, error) {
	if err := validateEpisodeInput(input); err != nil {
		return nil, err
	}

	episode, err := s.repo.FindEpisode(id)
	if err != nil {
		return nil, err
	}
	applyEpisodeInput(episode, input)

	if err := s.repo.SaveEpisode(episode); err != nil {
		return nil, fmt.Errorf("failed to update episode: %w", err)
	}

	view := episodeView(episode)
	return &view, nil
}

// DeleteEpisode removes an episode.
func (s *Service) DeleteEpisode(_ context.Context, id string) error {
	if _, err := s.repo.FindEpisode(id); err != nil {
		return err
	}
	if err := s.repo.DeleteEpisode(id); err != nil {
		return fmt.Errorf("failed to delete episode: %w", err)
	}
	return nil
}

// EpisodeByURL resolves a video url to its episode.
func (s *Service) EpisodeByURL(_ context.Context, videoURL string) (*EpisodeView, error) {
	episode, err := s.repo.FindEpisodeByURL(videoURL)
	if err != nil {
		return nil, err
	}
	view := episodeView(episode)
	return &view, nil
}

func validateEpisodeInput(input EpisodeInput) error {
	if input.Title == "" {
		return ErrTitleRequired
	}
	if input.VideoURL == "" {
		return ErrVideoURLRequired
	}
	return nil
}

func applySeriesInput(series *domain.Series, input SeriesInput) {
	series.Title = input.Title
	series.EnglishTitle = input.EnglishTitle
	series.Description = input.Description
	series.CoverImage = input.CoverImage
	series.BackdropImage = input.BackdropImage
	series.TotalEpisodes = input.TotalEpisodes
	series.ReleaseYear = input.ReleaseYear
	// Round so a 8.7 input survives the x10 integer column exactly.
	series.Rating = int(math.Round(input.Rating * 10))
	series.Views = input.Views
	series.Status = input.Status
	series.Director = input.Director
	series.Region = input.Region
	series.Language = input.Language
	series.UpdateTime = input.UpdateTime
	series.SetGenreList(input.Genre)
	series.SetActorsList(input.Actors)
	series.SetTagsList(input.Tags)
}

func applyEpisodeInput(episode *domain.Episode, input EpisodeInput) {
	episode.SeriesID = input.SeriesID
	episode.Episode = input.Episode
	episode.Title = input.Title
	episode.Description = input.Description
	episode.VideoURL = input.VideoURL
	episode.Duration = input.Duration
	episode.CoverImage = input.CoverImage
	episode.IsVip = input.IsVip
}
