package auth

import (
	"errors"

	domain "github.com/zkeq/Self-Cinema/domain/admin"
	"gorm.io/gorm"
)

// ErrAdminNotFound is returned when an admin account is not found.
var ErrAdminNotFound = errors.New("admin not found")

// AdminRepository defines admin account persistence.
type AdminRepository interface {
	FindByUsername(username string) (*domain.Admin, error)
	Create(admin *domain.Admin) error
	Save(admin *domain.Admin) error
}

// GormAdminRepository handles admin persistence using GORM.
type GormAdminRepository struct {
	db *gorm.DB
}

// Compile-time interface check.
var _ AdminRepository = (*GormAdminRepository)(nil)

// NewGormAdminRepository creates a new GormAdminRepository.
func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{
		db: db,
	}
}

// FindByUsername finds an admin by username.
func (r *GormAdminRepository) FindByUsername(username string) (*domain.Admin, error) {
	var admin domain.Admin
	result := r.db.First(&admin, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, result.Error
	}
	return &admin, nil
}

// Create creates a new admin account.
func (r *GormAdminRepository) Create(admin *domain.Admin) error {
	return r.db.Create(admin).Error
}

// Save persists changes to an admin account.
func (r *GormAdminRepository) Save(admin *domain.Admin) error {
	return r.db.Save(admin).Error
}
