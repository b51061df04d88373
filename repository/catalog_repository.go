package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stellarchive/catalogbackend/models"
)

// CatalogRepository is the GORM implementation of
// CatalogRepositoryInterface, shared by all six catalog entity kinds.
// Each kind configures its relation preload list and display-name column
// through its constructor; everything else is identical across kinds.
type CatalogRepository[T any] struct {
	db         *gorm.DB
	preloads   []string // relation names attached on deep reads
	nameColumn string   // "name", or "title" for films
}

// NewCatalogRepository creates a repository for one catalog entity kind
func NewCatalogRepository[T any](db *gorm.DB, preloads []string, nameColumn string) *CatalogRepository[T] {
	return &CatalogRepository[T]{db: db, preloads: preloads, nameColumn: nameColumn}
}

// Create inserts a new entity record. Timestamps and relations are expected
// to be set by the service layer before the call.
func (r *CatalogRepository[T]) Create(entity *T) error {
	return r.db.Create(entity).Error
}

// GetByID retrieves an entity by its ID without any relations attached
func (r *CatalogRepository[T]) GetByID(id uint) (*T, error) {
	var entity T
	err := r.db.First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get entity by ID %d: %w", id, err)
	}
	return &entity, nil
}

// GetByIDWithImages retrieves an entity with only its images attached
func (r *CatalogRepository[T]) GetByIDWithImages(id uint) (*T, error) {
	var entity T
	err := r.db.Preload("Images").First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get entity with images by ID %d: %w", id, err)
	}
	return &entity, nil
}

// GetByIDFull retrieves an entity with every configured relation attached
func (r *CatalogRepository[T]) GetByIDFull(id uint) (*T, error) {
	var entity T
	tx := r.db
	for _, preload := range r.preloads {
		tx = tx.Preload(preload)
	}
	err := tx.First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get full entity by ID %d: %w", id, err)
	}
	return &entity, nil
}

// List retrieves a page of entities with images eagerly attached, the
// projection used by the public catalog listing
func (r *CatalogRepository[T]) List(offset, limit int) ([]T, error) {
	var entities []T
	err := r.db.Preload("Images").Offset(offset).Limit(limit).Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	return entities, nil
}

// ListDesc retrieves a page of entities ordered by id descending with images
// attached, the richer admin listing surface. Relation id-lists for this
// surface are resolved separately through the inverse join-table lookups.
func (r *CatalogRepository[T]) ListDesc(offset, limit int) ([]T, error) {
	var entities []T
	err := r.db.Preload("Images").Order("id DESC").Offset(offset).Limit(limit).Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entities descending: %w", err)
	}
	return entities, nil
}

// Count returns the total number of entities of this kind
func (r *CatalogRepository[T]) Count() (int64, error) {
	var count int64
	if err := r.db.Model(new(T)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	return count, nil
}

// Names returns the id + display-name projection of all entities, ordered by
// the display name
func (r *CatalogRepository[T]) Names() ([]NameRef, error) {
	refs := make([]NameRef, 0)
	err := r.db.Model(new(T)).
		Select(fmt.Sprintf("id, %s AS name", r.nameColumn)).
		Order(r.nameColumn + " ASC").
		Scan(&refs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entity names: %w", err)
	}
	return refs, nil
}

// UpdateScalars persists the entity's scalar columns without touching any
// association; relation lists are replaced explicitly via ReplaceAssociation
func (r *CatalogRepository[T]) UpdateScalars(entity *T) error {
	err := r.db.Omit(clause.Associations).Save(entity).Error
	if err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

// ReplaceAssociation replaces the named relation list wholesale
func (r *CatalogRepository[T]) ReplaceAssociation(entity *T, association string, values interface{}) error {
	err := r.db.Model(entity).Association(association).Replace(values)
	if err != nil {
		return fmt.Errorf("failed to replace association %s: %w", association, err)
	}
	return nil
}

// SetURL stores the canonical resource URL computed after identity assignment
func (r *CatalogRepository[T]) SetURL(id uint, url string) error {
	result := r.db.Model(new(T)).Where("id = ?", id).Update("url", url)
	if result.Error != nil {
		return fmt.Errorf("failed to set url for entity ID %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the entity row along with its join-table rows
func (r *CatalogRepository[T]) Delete(entity *T) error {
	result := r.db.Select(clause.Associations).Delete(entity)
	if result.Error != nil {
		return fmt.Errorf("failed to delete entity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// per-kind constructors; the preload list is the full relation set of the kind

func NewPersonRepository(db *gorm.DB) *CatalogRepository[models.Person] {
	return NewCatalogRepository[models.Person](db, []string{"Homeworld", "Films", "Species", "Vehicles", "Starships", "Images"}, "name")
}

func NewPlanetRepository(db *gorm.DB) *CatalogRepository[models.Planet] {
	return NewCatalogRepository[models.Planet](db, []string{"Residents", "Species", "Films", "Images"}, "name")
}

func NewFilmRepository(db *gorm.DB) *CatalogRepository[models.Film] {
	return NewCatalogRepository[models.Film](db, []string{"Characters", "Planets", "Starships", "Vehicles", "Species", "Images"}, "title")
}

func NewSpecieRepository(db *gorm.DB) *CatalogRepository[models.Specie] {
	return NewCatalogRepository[models.Specie](db, []string{"Homeworld", "People", "Films", "Images"}, "name")
}

func NewVehicleRepository(db *gorm.DB) *CatalogRepository[models.Vehicle] {
	return NewCatalogRepository[models.Vehicle](db, []string{"Pilots", "Films", "Images"}, "name")
}

func NewStarshipRepository(db *gorm.DB) *CatalogRepository[models.Starship] {
	return NewCatalogRepository[models.Starship](db, []string{"Pilots", "Films", "Images"}, "name")
}
