package catalog

import (
	"errors"

	domain "github.com/zkeq/Self-Cinema/domain/catalog"
	"gorm.io/gorm"
)

var (
	// ErrSeriesNotFound is returned when a series does not exist.
	ErrSeriesNotFound = errors.New("series not found")
	// ErrEpisodeNotFound is returned when an episode does not exist.
	ErrEpisodeNotFound = errors.New("episode not found")
)

// Repository defines the persistence operations for the catalog.
type Repository interface {
	CreateSeries(series *domain.Series) error
	ListSeries() ([]domain.Series, error)
	FindSeries(id string) (*domain.Series, error)
	SaveSeries(series *domain.Series) error
	DeleteSeries(id string) error

	ListEpisodes(seriesID string) ([]domain.Episode, error)
	FindEpisode(id string) (*domain.Episode, error)
	FindEpisodeByURL(videoURL string) (*domain.Episode, error)
	CreateEpisode(episode *domain.Episode) error
	SaveEpisode(episode *domain.Episode) error
	DeleteEpisode(id string) error
}

// GormRepository implements Repository using GORM.
type GormRepository struct {
	db *gorm.DB
}

// Compile-time interface check.
var _ Repository = (*GormRepository)(nil)

// NewGormRepository creates a new GormRepository.
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{
		db: db,
	}
}

// CreateSeries inserts a new series.
func (r *GormRepository) CreateSeries(series *domain.Series) error {
	return r.db.Create(series).Error
}

// ListSeries returns all series.
func (r *GormRepository) ListSeries() ([]domain.Series, error) {
	var series []domain.Series
	if err := r.db.Find(&series).Error; err != nil {
		return nil, err
	}
	return series, nil
}

// FindSeries finds a series by ID.
func (r *GormRepository) FindSeries(id string) (*domain.Series, error) {
	var series domain.Series
	result := r.db.First(&series, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, result.Error
	}
	return &series, nil
}

// SaveSeries persists changes to an existing series.
func (r *GormRepository) SaveSeries(series *domain.Series) error {
	return r.db.Save(series).Error
}

// DeleteSeries removes a series and all of its episodes.
func (r *GormRepository) DeleteSeries(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("series_id = ?", id).Delete(&domain.Episode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Series{}, "id = ?", id).Error
	})
}

// ListEpisodes returns a series' episodes ordered by episode number.
func (r *GormRepository) ListEpisodes(seriesID string) ([]domain.Episode, error) {
	var episodes []domain.Episode
	if err := r.db.Where("series_id = ?", seriesID).Order("episode").Find(&episodes).Error; err != nil {
		return nil, err
	}
	return episodes, nil
}

// FindEpisode finds an episode by ID.
func (r *GormRepository) FindEpisode(id string) (*domain.Episode, error) {
	var episode domain.Episode
	result := r.db.First(&episode, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEpisodeNotFound
		}
		return nil, result.Error
	}
	return &episode, nil
}

// FindEpisodeByURL finds the episode whose video url matches exactly.
func (r *GormRepository) FindEpisodeByURL(videoURL string) (*domain.Episode, error) {
	var episode domain.Episode
	result := r.db.First(&episode, "video_url = ?", videoURL)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrEpisodeNotFound
		}
		return nil, result.Error
	}
	return &episode, nil
}

// CreateEpisode inserts a new episode.
func (r *GormRepository) CreateEpisode(episode *domain.Episode) error {
	return r.db.Create(episode).Error
}

// SaveEpisode persists changes to an existing episode.
func (r *GormRepository) SaveEpisode(episode *domain.Episode) error {
	return r.db.Save(episode).Error
}

// DeleteEpisode removes an episode.
func (r *GormRepository) DeleteEpisode(id string) error {
	return r.db.Delete(&domain.Episode{}, "id = ?", id).Error
}
