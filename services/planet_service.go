package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// PlanetDTO carries create/update input for planets; see PersonDTO for the
// nil-means-absent convention
type PlanetDTO struct {
	Name           *string   `json:"name"`
	RotationPeriod *int      `json:"rotation_period"`
	OrbitalPeriod  *int      `json:"orbital_period"`
	Diameter       *int      `json:"diameter"`
	Climate        *string   `json:"climate"`
	Gravity        *string   `json:"gravity"`
	Terrain        *string   `json:"terrain"`
	SurfaceWater   *float64  `json:"surface_water"`
	Population     *int64    `json:"population"`
	Residents      *[]uint   `json:"residents"`
	Species        *[]uint   `json:"species"`
	Films          *[]uint   `json:"films"`
	Images         *[]string `json:"images"`
}

// PlanetInfo is the deep read projection of a planet
type PlanetInfo struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	RotationPeriod int            `json:"rotation_period"`
	OrbitalPeriod  int            `json:"orbital_period"`
	Diameter       int            `json:"diameter"`
	Climate        string         `json:"climate"`
	Gravity        string         `json:"gravity"`
	Terrain        string         `json:"terrain"`
	SurfaceWater   float64        `json:"surface_water"`
	Population     int64          `json:"population"`
	Created        int64          `json:"created"`
	Edited         int64          `json:"edited"`
	Residents      []RelatedRef   `json:"residents"`
	Species        []RelatedRef   `json:"species"`
	Films          []RelatedRef   `json:"films"`
	Images         []models.Image `json:"images"`
}

// PlanetListItem is one row of the rich admin listing for planets
type PlanetListItem struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	URL            string         `json:"url"`
	RotationPeriod int            `json:"rotation_period"`
	OrbitalPeriod  int            `json:"orbital_period"`
	Diameter       int            `json:"diameter"`
	Climate        string         `json:"climate"`
	Gravity        string         `json:"gravity"`
	Terrain        string         `json:"terrain"`
	SurfaceWater   float64        `json:"surface_water"`
	Population     int64          `json:"population"`
	Created        int64          `json:"created"`
	Edited         int64          `json:"edited"`
	Residents      []uint         `json:"residents"`
	Species        []uint         `json:"species"`
	Films          []uint         `json:"films"`
	Images         []models.Image `json:"images"`
}

type PlanetService struct {
	db      *gorm.DB
	repo    repository.CatalogRepositoryInterface[models.Planet]
	images  *ImageService
	baseURL string
}

func NewPlanetService(db *gorm.DB, repo repository.CatalogRepositoryInterface[models.Planet], images *ImageService, baseURL string) *PlanetService {
	return &PlanetService{db: db, repo: repo, images: images, baseURL: baseURL}
}

func applyPlanetScalars(planet *models.Planet, dto PlanetDTO) {
	if dto.Name != nil {
		planet.Name = *dto.Name
	}
	if dto.RotationPeriod != nil {
		planet.RotationPeriod = *dto.RotationPeriod
	}
	if dto.OrbitalPeriod != nil {
		planet.OrbitalPeriod = *dto.OrbitalPeriod
	}
	if dto.Diameter != nil {
		planet.Diameter = *dto.Diameter
	}
	if dto.Climate != nil {
		planet.Climate = *dto.Climate
	}
	if dto.Gravity != nil {
		planet.Gravity = *dto.Gravity
	}
	if dto.Terrain != nil {
		planet.Terrain = *dto.Terrain
	}
	if dto.SurfaceWater != nil {
		// 0 is a legitimate surface water value and must round-trip
		planet.SurfaceWater = *dto.SurfaceWater
	}
	if dto.Population != nil {
		planet.Population = *dto.Population
	}
}

func (s *PlanetService) Create(dto PlanetDTO) (*models.Planet, error) {
	if dto.Name == nil || *dto.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}

	now := time.Now().Unix()
	planet := &models.Planet{CreatedAt: now, EditedAt: now}
	applyPlanetScalars(planet, dto)

	var err error
	if planet.Residents, err = EntitiesByIDs[models.Person](s.db, ids(dto.Residents)); err != nil {
		return nil, err
	}
	if planet.Species, err = EntitiesByIDs[models.Specie](s.db, ids(dto.Species)); err != nil {
		return nil, err
	}
	if planet.Films, err = EntitiesByIDs[models.Film](s.db, ids(dto.Films)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(planet); err != nil {
		return nil, translateWriteErr("planet", "name", err)
	}

	planet.URL = entityURL(s.baseURL, "planets", planet.ID)
	if err := s.repo.SetURL(planet.ID, planet.URL); err != nil {
		return nil, err
	}

	if dto.Images != nil {
		images, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return nil, err
		}
		if err := s.images.AttachImages("planets", planet.ID, images); err != nil {
			return nil, err
		}
		planet.Images = images
	}
	return planet, nil
}

func (s *PlanetService) CatalogItems(page, limit int) ([]models.Planet, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.List((page-1)*limit, limit)
}

func (s *PlanetService) FindAll(page, limit int) (*Page[PlanetListItem], error) {
	page, limit = normalizePage(page, limit)

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	planets, err := s.repo.ListDesc((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items := make([]PlanetListItem, 0, len(planets))
	for _, p := range planets {
		item := PlanetListItem{
			ID:             p.ID,
			Name:           p.Name,
			URL:            p.URL,
			RotationPeriod: p.RotationPeriod,
			OrbitalPeriod:  p.OrbitalPeriod,
			Diameter:       p.Diameter,
			Climate:        p.Climate,
			Gravity:        p.Gravity,
			Terrain:        p.Terrain,
			SurfaceWater:   p.SurfaceWater,
			Population:     p.Population,
			Created:        p.CreatedAt,
			Edited:         p.EditedAt,
			Images:         p.Images,
		}
		var err error
		if item.Residents, err = RelationIDs(s.db, "planets", "residents", p.ID); err != nil {
			return nil, err
		}
		if item.Species, err = RelationIDs(s.db, "planets", "species", p.ID); err != nil {
			return nil, err
		}
		if item.Films, err = RelationIDs(s.db, "planets", "films", p.ID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Page[PlanetListItem]{
		Data:  items,
		Meta:  GetPaginationMeta(total, len(items), limit, page),
		Links: GetPaginationLinks("planets", page, limit, total),
	}, nil
}

func (s *PlanetService) Names() ([]repository.NameRef, error) {
	return s.repo.Names()
}

func (s *PlanetService) Schema() map[string]string {
	return map[string]string{
		"name":            "",
		"rotation_period": "",
		"orbital_period":  "",
		"diameter":        "",
		"climate":         "",
		"gravity":         "",
		"terrain":         "",
		"surface_water":   "",
		"population":      "",
		"residents":       "people",
		"species":         "species",
		"films":           "films",
		"images":          "",
	}
}

func (s *PlanetService) EntityInfo(id uint) (*PlanetInfo, error) {
	planet, err := s.repo.GetByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("planet", id)
		}
		return nil, err
	}
	return &PlanetInfo{
		ID:             planet.ID,
		Name:           planet.Name,
		URL:            planet.URL,
		RotationPeriod: planet.RotationPeriod,
		OrbitalPeriod:  planet.OrbitalPeriod,
		Diameter:       planet.Diameter,
		Climate:        planet.Climate,
		Gravity:        planet.Gravity,
		Terrain:        planet.Terrain,
		SurfaceWater:   planet.SurfaceWater,
		Population:     planet.Population,
		Created:        planet.CreatedAt,
		Edited:         planet.EditedAt,
		Residents:      personRefs(planet.Residents),
		Species:        specieRefs(planet.Species),
		Films:          filmRefs(planet.Films),
		Images:         planet.Images,
	}, nil
}

func (s *PlanetService) Update(id uint, dto PlanetDTO) error {
	planet, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("planet", id)
		}
		return err
	}
	oldImages := planet.Images
	planet.Images = nil

	applyPlanetScalars(planet, dto)
	planet.EditedAt = time.Now().Unix()
	if err := s.repo.UpdateScalars(planet); err != nil {
		return translateWriteErr("planet", "name", err)
	}

	if dto.Residents != nil {
		residents, err := EntitiesByIDs[models.Person](s.db, *dto.Residents)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(planet, "Residents", residents); err != nil {
			return err
		}
	}
	if dto.Species != nil {
		species, err := EntitiesByIDs[models.Specie](s.db, *dto.Species)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(planet, "Species", species); err != nil {
			return err
		}
	}
	if dto.Films != nil {
		films, err := EntitiesByIDs[models.Film](s.db, *dto.Films)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(planet, "Films", films); err != nil {
			return err
		}
	}

	if dto.Images != nil {
		newImages, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return err
		}
		if err := s.images.AttachImages("planets", id, newImages); err != nil {
			return err
		}
		if err := s.images.CleanUpUnusedImages(oldImages, newImages); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlanetService) Remove(id uint) error {
	planet, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("planet", id)
		}
		return err
	}
	if len(planet.Images) > 0 {
		if err := s.images.CleanUpUnusedImages(planet.Images, nil); err != nil {
			return err
		}
	}
	planet.Images = nil
	return s.repo.Delete(planet)
}
