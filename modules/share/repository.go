package share

import (
	"errors"

	domain "github.com/zkeq/Self-Cinema/domain/share"
	"gorm.io/gorm"
)

// ErrShareNotFound is returned when a share link does not exist.
var ErrShareNotFound = errors.New("share link not found")

// ShareRepository defines share link persistence.
type ShareRepository interface {
	Create(link *domain.ShareLink) error
	FindByHash(hash string) (*domain.ShareLink, error)
	ListBySeries(seriesID string) ([]domain.ShareLink, error)
	DeleteBySeries(seriesID string) error
}

// GormShareRepository handles share link persistence using GORM.
type GormShareRepository struct {
	db *gorm.DB
}

// Compile-time interface check.
var _ ShareRepository = (*GormShareRepository)(nil)

// NewGormShareRepository creates a new GormShareRepository.
func NewGormShareRepository(db *gorm.DB) *GormShareRepository {
	return &GormShareRepository{
		db: db,
	}
}

// Create creates a new share link.
func (r *GormShareRepository) Create(link *domain.ShareLink) error {
	return r.db.Create(link).Error
}

// FindByHash finds a share link by its hash.
func (r *GormShareRepository) FindByHash(hash string) (*domain.ShareLink, error) {
	var link domain.ShareLink
	result := r.db.First(&link, "hash = ?", hash)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrShareNotFound
		}
		return nil, result.Error
	}
	return &link, nil
}

// ListBySeries returns all share links of a series.
func (r *GormShareRepository) ListBySeries(seriesID string) ([]domain.ShareLink, error) {
	var links []domain.ShareLink
	if err := r.db.Find(&links, "series_id = ?", seriesID).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// DeleteBySeries removes all share links of a series.
func (r *GormShareRepository) DeleteBySeries(seriesID string) error {
	return r.db.Delete(&domain.ShareLink{}, "series_id = ?", seriesID).Error
}
