package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// SpecieDTO carries create/update input for species; see PersonDTO for the
// nil-means-absent convention
type SpecieDTO struct {
	Name            *string   `json:"name"`
	Classification  *string   `json:"classification"`
	Designation     *string   `json:"designation"`
	AverageHeight   *float64  `json:"average_height"`
	SkinColors      *string   `json:"skin_colors"`
	HairColors      *string   `json:"hair_colors"`
	EyeColors       *string   `json:"eye_colors"`
	AverageLifespan *int      `json:"average_lifespan"`
	Language        *string   `json:"language"`
	Homeworld       *[]uint   `json:"homeworld"`
	People          *[]uint   `json:"people"`
	Films           *[]uint   `json:"films"`
	Images          *[]string `json:"images"`
}

// SpecieInfo is the deep read projection of a species
type SpecieInfo struct {
	ID              uint           `json:"id"`
	Name            string         `json:"name"`
	URL             string         `json:"url"`
	Classification  string         `json:"classification"`
	Designation     string         `json:"designation"`
	AverageHeight   float64        `json:"average_height"`
	SkinColors      string         `json:"skin_colors"`
	HairColors      string         `json:"hair_colors"`
	EyeColors       string         `json:"eye_colors"`
	AverageLifespan int            `json:"average_lifespan"`
	Language        string         `json:"language"`
	Created         int64          `json:"created"`
	Edited          int64          `json:"edited"`
	Homeworld       []RelatedRef   `json:"homeworld"`
	People          []RelatedRef   `json:"people"`
	Films           []RelatedRef   `json:"films"`
	Images          []models.Image `json:"images"`
}

type SpecieService struct {
	db      *gorm.DB
	repo    repository.CatalogRepositoryInterface[models.Specie]
	images  *ImageService
	baseURL string
}

func NewSpecieService(db *gorm.DB, repo repository.CatalogRepositoryInterface[models.Specie], images *ImageService, baseURL string) *SpecieService {
	return &SpecieService{db: db, repo: repo, images: images, baseURL: baseURL}
}

func applySpecieScalars(specie *models.Specie, dto SpecieDTO) {
	if dto.Name != nil {
		specie.Name = *dto.Name
	}
	if dto.Classification != nil {
		specie.Classification = *dto.Classification
	}
	if dto.Designation != nil {
		specie.Designation = *dto.Designation
	}
	if dto.AverageHeight != nil {
		specie.AverageHeight = *dto.AverageHeight
	}
	if dto.SkinColors != nil {
		specie.SkinColors = *dto.SkinColors
	}
	if dto.HairColors != nil {
		specie.HairColors = *dto.HairColors
	}
	if dto.EyeColors != nil {
		specie.EyeColors = *dto.EyeColors
	}
	if dto.AverageLifespan != nil {
		specie.AverageLifespan = *dto.AverageLifespan
	}
	if dto.Language != nil {
		specie.Language = *dto.Language
	}
}

func (s *SpecieService) Create(dto SpecieDTO) (*models.Specie, error) {
	if dto.Name == nil || *dto.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}

	now := time.Now().Unix()
	specie := &models.Specie{CreatedAt: now, EditedAt: now}
	applySpecieScalars(specie, dto)

	var err error
	if specie.Homeworld, err = EntitiesByIDs[models.Planet](s.db, ids(dto.Homeworld)); err != nil {
		return nil, err
	}
	if specie.People, err = EntitiesByIDs[models.Person](s.db, ids(dto.People)); err != nil {
		return nil, err
	}
	if specie.Films, err = EntitiesByIDs[models.Film](s.db, ids(dto.Films)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(specie); err != nil {
		return nil, translateWriteErr("specie", "name", err)
	}

	specie.URL = entityURL(s.baseURL, "species", specie.ID)
	if err := s.repo.SetURL(specie.ID, specie.URL); err != nil {
		return nil, err
	}

	if dto.Images != nil {
		images, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return nil, err
		}
		if err := s.images.AttachImages("species", specie.ID, images); err != nil {
			return nil, err
		}
		specie.Images = images
	}
	return specie, nil
}

func (s *SpecieService) CatalogItems(page, limit int) ([]models.Specie, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.List((page-1)*limit, limit)
}

func (s *SpecieService) Names() ([]repository.NameRef, error) {
	return s.repo.Names()
}

func (s *SpecieService) Schema() map[string]string {
	return map[string]string{
		"name":             "",
		"classification":   "",
		"designation":      "",
		"average_height":   "",
		"skin_colors":      "",
		"hair_colors":      "",
		"eye_colors":       "",
		"average_lifespan": "",
		"language":         "",
		"homeworld":        "planets",
		"people":           "people",
		"films":            "films",
		"images":           "",
	}
}

func (s *SpecieService) EntityInfo(id uint) (*SpecieInfo, error) {
	specie, err := s.repo.GetByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("specie", id)
		}
		return nil, err
	}
	return &SpecieInfo{
		ID:              specie.ID,
		Name:            specie.Name,
		URL:             specie.URL,
		Classification:  specie.Classification,
		Designation:     specie.Designation,
		AverageHeight:   specie.AverageHeight,
		SkinColors:      specie.SkinColors,
		HairColors:      specie.HairColors,
		EyeColors:       specie.EyeColors,
		AverageLifespan: specie.AverageLifespan,
		Language:        specie.Language,
		Created:         specie.CreatedAt,
		Edited:          specie.EditedAt,
		Homeworld:       planetRefs(specie.Homeworld),
		People:          personRefs(specie.People),
		Films:           filmRefs(specie.Films),
		Images:          specie.Images,
	}, nil
}

func (s *SpecieService) Update(id uint, dto SpecieDTO) error {
	specie, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("specie", id)
		}
		return err
	}
	oldImages := specie.Images
	specie.Images = nil

	applySpecieScalars(specie, dto)
	specie.EditedAt = time.Now().Unix()
	if err := s.repo.UpdateScalars(specie); err != nil {
		return translateWriteErr("specie", "name", err)
	}

	if dto.Homeworld != nil {
		homeworld, err := EntitiesByIDs[models.Planet](s.db, *dto.Homeworld)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(specie, "Homeworld", homeworld); err != nil {
			return err
		}
	}
	if dto.People != nil {
		people, err := EntitiesByIDs[models.Person](s.db, *dto.People)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(specie, "People", people); err != nil {
			return err
		}
	}
	if dto.Films != nil {
		films, err := EntitiesByIDs[models.Film](s.db, *dto.Films)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(specie, "Films", films); err != nil {
			return err
		}
	}

	if dto.Images != nil {
		newImages, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return err
		}
		if err := s.images.AttachImages("species", id, newImages); err != nil {
			return err
		}
		if err := s.images.CleanUpUnusedImages(oldImages, newImages); err != nil {
			return err
		}
	}
	return nil
}

func (s *SpecieService) Remove(id uint) error {
	specie, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("specie", id)
		}
		return err
	}
	if len(specie.Images) > 0 {
		if err := s.images.CleanUpUnusedImages(specie.Images, nil); err != nil {
			return err
		}
	}
	specie.Images = nil
	return s.repo.Delete(specie)
}
