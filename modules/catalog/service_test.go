package catalog

import (
	"context"
	"errors"
	"testing"

	domain "github.com/zkeq/Self-Cinema/domain/catalog"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	series   map[string]*domain.Series
	episodes map[string]*domain.Episode
}

var _ Repository = (*mockRepository)(nil)

func newMockRepository() *mockRepository {
	return &mockRepository{
		series:   make(map[string]*domain.Series),
		episodes: make(map[string]*domain.Episode),
	}
}

func (m *mockRepository) CreateSeries(s *domain.Series) error {
	m.series[s.ID] = s
	return nil
}

func (m *mockRepository) ListSeries() ([]domain.Series, error) {
	out := make([]domain.Series, 0, len(m.series))
	for _, s := range m.series {
		out = append(out, *s)
	}
	return out, nil
}

func (m *mockRepository) FindSeries(id string) (*domain.Series, error) {
	s, ok := m.series[id]
	if !ok {
		return nil, ErrSeriesNotFound
	}
	return s, nil
}

func (m *mockRepository) SaveSeries(s *domain.Series) error {
	m.series[s.ID] = s
	return nil
}

func (m *mockRepository) DeleteSeries(id string) error {
	delete(m.series, id)
	for epID, ep := range m.episodes {
		if ep.SeriesID == id {
			delete(m.episodes, epID)
		}
	}
	return nil
}

func (m *mockRepository) ListEpisodes(seriesID string) ([]domain.Episode, error) {
	out := make([]domain.Episode, 0)
	for _, ep := range m.episodes {
		if ep.SeriesID == seriesID {
			out = append(out, *ep)
		}
	}
	return out, nil
}

func (m *mockRepository) FindEpisode(id string) (*domain.Episode, error) {
	ep, ok := m.episodes[id]
	if !ok {
		return nil, ErrEpisodeNotFound
	}
	return ep, nil
}

func (m *mockRepository) FindEpisodeByURL(videoURL string) (*domain.Episode, error) {
	for _, ep := range m.episodes {
		if ep.VideoURL == videoURL {
			return ep, nil
		}
	}
	return nil, ErrEpisodeNotFound
}

func (m *mockRepository) CreateEpisode(ep *domain.Episode) error {
	m.episodes[ep.ID] = ep
	return nil
}

func (m *mockRepository) SaveEpisode(ep *domain.Episode) error {
	m.episodes[ep.ID] = ep
	return nil
}

func (m *mockRepository) DeleteEpisode(id string) error {
	delete(m.episodes, id)
	return nil
}

func TestCreateSeries(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	view, err := svc.CreateSeries(ctx, SeriesInput{
		Title:  "Test Series",
		Genre:  []string{"drama", "mystery"},
		Rating: 8.7,
	})
	if err != nil {
		t.Fatalf("CreateSeries() error = %v", err)
	}

	if view.ID == "" {
		t.Error("series id not assigned")
	}
	if view.Rating != 8.7 {
		t.Errorf("rating = %v, want 8.7 (x10 storage must round-trip)", view.Rating)
	}
	if len(view.Genre) != 2 || view.Genre[0] != "drama" {
		t.Errorf("genre = %v, want [drama mystery]", view.Genre)
	}
}

func TestCreateSeriesRequiresTitle(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.CreateSeries(context.Background(), SeriesInput{})
	if !errors.Is(err, ErrTitleRequired) {
		t.Errorf("CreateSeries() error = %v, want ErrTitleRequired", err)
	}
}

func TestUpdateSeriesOverwritesFields(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	created, err := svc.CreateSeries(ctx, SeriesInput{Title: "Before", Status: "待播出"})
	if err != nil {
		t.Fatalf("CreateSeries() error = %v", err)
	}

	updated, err := svc.UpdateSeries(ctx, created.ID, SeriesInput{Title: "After", Status: "完结"})
	if err != nil {
		t.Fatalf("UpdateSeries() error = %v", err)
	}
	if updated.Title != "After" || updated.Status != "完结" {
		t.Errorf("updated series = %+v", updated)
	}
}

func TestGetSeriesNotFound(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.GetSeries(context.Background(), "missing")
	if !errors.Is(err, ErrSeriesNotFound) {
		t.Errorf("GetSeries() error = %v, want ErrSeriesNotFound", err)
	}
}

func TestCreateEpisodeRequiresExistingSeries(t *testing.T) {
	svc := NewService(newMockRepository())

	_, err := svc.CreateEpisode(context.Background(), EpisodeInput{
		SeriesID: "missing",
		Episode:  1,
		Title:    "Pilot",
		VideoURL: "http://cdn/1.mp4",
	})
	if !errors.Is(err, ErrSeriesNotFound) {
		t.Errorf("CreateEpisode() error = %v, want ErrSeriesNotFound", err)
	}
}

func TestCreateEpisodeValidation(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   EpisodeInput
		wantErr error
	}{
		{
			name:    "missing title",
			input:   EpisodeInput{SeriesID: "s", VideoURL: "http://cdn/1.mp4"},
			wantErr: ErrTitleRequired,
		},
		{
			name:    "missing video url",
			input:   EpisodeInput{SeriesID: "s", Title: "Pilot"},
			wantErr: ErrVideoURLRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateEpisode(ctx, tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateEpisode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEpisodeByURL(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	series, err := svc.CreateSeries(ctx, SeriesInput{Title: "S"})
	if err != nil {
		t.Fatalf("CreateSeries() error = %v", err)
	}
	created, err := svc.CreateEpisode(ctx, EpisodeInput{
		SeriesID: series.ID,
		Episode:  3,
		Title:    "Third",
		VideoURL: "http://cdn/3.mp4",
	})
	if err != nil {
		t.Fatalf("CreateEpisode() error = %v", err)
	}

	got, err := svc.EpisodeByURL(ctx, "http://cdn/3.mp4")
	if err != nil {
		t.Fatalf("EpisodeByURL() error = %v", err)
	}
	if got.ID != created.ID || got.Episode != 3 {
		t.Errorf("EpisodeByURL() = %+v, want episode %s", got, created.ID)
	}

	if _, err := svc.EpisodeByURL(ctx, "http://cdn/unknown.mp4"); !errors.Is(err, ErrEpisodeNotFound) {
		t.Errorf("unknown url error = %v, want ErrEpisodeNotFound", err)
	}
}

func TestDeleteSeriesCascadesEpisodes(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	series, err := svc.CreateSeries(ctx, SeriesInput{Title: "S"})
	if err != nil {
		t.Fatalf("CreateSeries() error = %v", err)
	}
	if _, err := svc.CreateEpisode(ctx, EpisodeInput{
		SeriesID: series.ID, Episode: 1, Title: "E1", VideoURL: "http://cdn/1.mp4",
	}); err != nil {
		t.Fatalf("CreateEpisode() error = %v", err)
	}

	if err := svc.DeleteSeries(ctx, series.ID); err != nil {
		t.Fatalf("DeleteSeries() error = %v", err)
	}
	if len(repo.episodes) != 0 {
		t.Errorf("episodes remaining after series delete: %d", len(repo.episodes))
	}
}
