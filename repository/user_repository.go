package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/models"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(user *models.User) error {
	now := time.Now().Unix()
	if user.CreatedAt == 0 {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return r.db.Create(user).Error
}

func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Roles").First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Preload("Roles").Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) ListAll() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Roles").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *GormUserRepository) Delete(id uint) error {
	result := r.db.Select("Roles").Delete(&models.User{ID: id})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AddRoleToUser attaches a role to the user; attaching an already-held role
// is a no-op
func (r *GormUserRepository) AddRoleToUser(userID uint, roleID uint) error {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	var role models.Role
	if err := r.db.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return fmt.Errorf("failed to find role %d: %w", roleID, err)
	}
	if err := r.db.Model(&user).Association("Roles").Append(&role); err != nil {
		return fmt.Errorf("failed to add role %d to user %d: %w", roleID, userID, err)
	}
	return nil
}

func (r *GormUserRepository) RemoveRoleFromUser(userID uint, roleID uint) error {
	var user models.User
	if err := r.db.First(&user, userID).Error; err != nil {
		return fmt.Errorf("failed to find user %d: %w", userID, err)
	}
	if err := r.db.Model(&user).Association("Roles").Delete(&models.Role{ID: roleID}); err != nil {
		return fmt.Errorf("failed to remove role %d from user %d: %w", roleID, userID, err)
	}
	return nil
}
