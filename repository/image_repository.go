package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/models"
)

// GormImageRepository handles database operations for Image entities
type GormImageRepository struct {
	db *gorm.DB
}

func NewGormImageRepository(db *gorm.DB) ImageRepositoryInterface {
	return &GormImageRepository{db: db}
}

func (r *GormImageRepository) Create(image *models.Image) error {
	return r.db.Create(image).Error
}

// GetByFilename retrieves an image row by its stored filename
func (r *GormImageRepository) GetByFilename(filename string) (*models.Image, error) {
	var image models.Image
	err := r.db.Where("filename = ?", filename).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get image by filename %s: %w", filename, err)
	}
	return &image, nil
}

// GetByOwner retrieves all images attached to the given owning entity
func (r *GormImageRepository) GetByOwner(ownerType string, ownerID uint) ([]models.Image, error) {
	var images []models.Image
	err := r.db.Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list images for %s %d: %w", ownerType, ownerID, err)
	}
	return images, nil
}

// SetOwner claims an image for the given entity. The update only matches
// unowned images or the current owner, so a claim on an image that belongs
// to a different entity fails with ErrImageOwned instead of re-parenting it.
func (r *GormImageRepository) SetOwner(id uint, ownerType string, ownerID uint) error {
	result := r.db.Model(&models.Image{}).
		Where("id = ? AND (owner_type = '' OR (owner_type = ? AND owner_id = ?))", id, ownerType, ownerID).
		Updates(map[string]interface{}{
			"owner_type": ownerType,
			"owner_id":   ownerID,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to set owner for image ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&models.Image{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check image ID %d: %w", id, err)
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return ErrImageOwned
	}
	return nil
}

func (r *GormImageRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Image{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete image ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
