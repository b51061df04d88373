package repository

import (
	"errors"

	"github.com/stellarchive/catalogbackend/models"
)

// ErrImageOwned is returned when a claim is attempted on an image that
// already belongs to a different entity. Images are never re-parented.
var ErrImageOwned = errors.New("image already belongs to another entity")

// NameRef is the id + display-name projection used to populate admin
// selection lists.
type NameRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// CatalogRepositoryInterface defines the storage operations shared by all six
// catalog entity kinds. T is the GORM model type.
type CatalogRepositoryInterface[T any] interface {
	Create(entity *T) error
	GetByID(id uint) (*T, error)
	GetByIDWithImages(id uint) (*T, error)
	GetByIDFull(id uint) (*T, error)
	List(offset, limit int) ([]T, error)     // images eagerly attached
	ListDesc(offset, limit int) ([]T, error) // id descending, images attached
	Count() (int64, error)
	Names() ([]NameRef, error)
	UpdateScalars(entity *T) error
	ReplaceAssociation(entity *T, association string, values interface{}) error
	SetURL(id uint, url string) error
	Delete(entity *T) error
}

// ImageRepositoryInterface defines the methods for image data operations
type ImageRepositoryInterface interface {
	Create(image *models.Image) error
	GetByFilename(filename string) (*models.Image, error)
	GetByOwner(ownerType string, ownerID uint) ([]models.Image, error)
	SetOwner(id uint, ownerType string, ownerID uint) error
	Delete(id uint) error
}

// UserRepository defines the methods for user data operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ListAll() ([]models.User, error)
	Delete(id uint) error

	// role management for a user
	AddRoleToUser(userID uint, roleID uint) error
	RemoveRoleFromUser(userID uint, roleID uint) error
}

// RoleRepository defines the methods for role data operations
type RoleRepository interface {
	Create(role *models.Role) error
	GetByID(id uint) (*models.Role, error)
	GetByValue(value string) (*models.Role, error)
	ListAll() ([]models.Role, error)
}
