package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

type StarshipDTO struct {
	Name             *string   `json:"name"`
	Model            *string   `json:"model"`
	Manufacturer     *string   `json:"manufacturer"`
	CostInCredits    *int64    `json:"cost_in_credits"`
	Length           *float64  `json:"length"`
	MaxSpeed         *int      `json:"max_atmosphering_speed"`
	Crew             *int      `json:"crew"`
	Passengers       *int      `json:"passengers"`
	CargoCapacity    *int64    `json:"cargo_capacity"`
	Consumables      *string   `json:"consumables"`
	HyperdriveRating *float64  `json:"hyperdrive_rating"`
	MGLT             *int      `json:"MGLT"`
	StarshipClass    *string   `json:"starship_class"`
	Pilots           *[]uint   `json:"pilots"`
	Films            *[]uint   `json:"films"`
	Images           *[]string `json:"images"`
}

type StarshipInfo struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	URL              string         `json:"url"`
	Model            string         `json:"model"`
	Manufacturer     string         `json:"manufacturer"`
	CostInCredits    int64          `json:"cost_in_credits"`
	Length           float64        `json:"length"`
	MaxSpeed         int            `json:"max_atmosphering_speed"`
	Crew             int            `json:"crew"`
	Passengers       int            `json:"passengers"`
	CargoCapacity    int64          `json:"cargo_capacity"`
	Consumables      string         `json:"consumables"`
	HyperdriveRating float64        `json:"hyperdrive_rating"`
	MGLT             int            `json:"MGLT"`
	StarshipClass    string         `json:"starship_class"`
	Created          int64          `json:"created"`
	Edited           int64          `json:"edited"`
	Pilots           []RelatedRef   `json:"pilots"`
	Films            []RelatedRef   `json:"films"`
	Images           []models.Image `json:"images"`
}

// StarshipListItem is one row of the rich admin listing, with relation
// id-lists resolved through the inverse join-table lookups
type StarshipListItem struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	URL              string         `json:"url"`
	Model            string         `json:"model"`
	Manufacturer     string         `json:"manufacturer"`
	CostInCredits    int64          `json:"cost_in_credits"`
	Length           float64        `json:"length"`
	MaxSpeed         int            `json:"max_atmosphering_speed"`
	Crew             int            `json:"crew"`
	Passengers       int            `json:"passengers"`
	CargoCapacity    int64          `json:"cargo_capacity"`
	Consumables      string         `json:"consumables"`
	HyperdriveRating float64        `json:"hyperdrive_rating"`
	MGLT             int            `json:"MGLT"`
	StarshipClass    string         `json:"starship_class"`
	Created          int64          `json:"created"`
	Edited           int64          `json:"edited"`
	Pilots           []uint         `json:"pilots"`
	Films            []uint         `json:"films"`
	Images           []models.Image `json:"images"`
}

type StarshipService struct {
	db      *gorm.DB
	repo    repository.CatalogRepositoryInterface[models.Starship]
	images  *ImageService
	baseURL string
}

func NewStarshipService(db *gorm.DB, repo repository.CatalogRepositoryInterface[models.Starship], images *ImageService, baseURL string) *StarshipService {
	return &StarshipService{db: db, repo: repo, images: images, baseURL: baseURL}
}

func applyStarshipScalars(starship *models.Starship, dto StarshipDTO) {
	if dto.Name != nil {
		starship.Name = *dto.Name
	}
	if dto.Model != nil {
		starship.Model = *dto.Model
	}
	if dto.Manufacturer != nil {
		starship.Manufacturer = *dto.Manufacturer
	}
	if dto.CostInCredits != nil {
		starship.CostInCredits = *dto.CostInCredits
	}
	if dto.Length != nil {
		starship.Length = *dto.Length
	}
	if dto.MaxSpeed != nil {
		starship.MaxSpeed = *dto.MaxSpeed
	}
	if dto.Crew != nil {
		starship.Crew = *dto.Crew
	}
	if dto.Passengers != nil {
		starship.Passengers = *dto.Passengers
	}
	if dto.CargoCapacity != nil {
		starship.CargoCapacity = *dto.CargoCapacity
	}
	if dto.Consumables != nil {
		starship.Consumables = *dto.Consumables
	}
	if dto.HyperdriveRating != nil {
		starship.HyperdriveRating = *dto.HyperdriveRating
	}
	if dto.MGLT != nil {
		starship.MGLT = *dto.MGLT
	}
	if dto.StarshipClass != nil {
		starship.StarshipClass = *dto.StarshipClass
	}
}

func (s *StarshipService) Create(dto StarshipDTO) (*models.Starship, error) {
	if dto.Name == nil || *dto.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}

	now := time.Now().Unix()
	starship := &models.Starship{CreatedAt: now, EditedAt: now}
	applyStarshipScalars(starship, dto)

	var err error
	if starship.Pilots, err = EntitiesByIDs[models.Person](s.db, ids(dto.Pilots)); err != nil {
		return nil, err
	}
	if starship.Films, err = EntitiesByIDs[models.Film](s.db, ids(dto.Films)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(starship); err != nil {
		return nil, translateWriteErr("starship", "name", err)
	}

	starship.URL = entityURL(s.baseURL, "starships", starship.ID)
	if err := s.repo.SetURL(starship.ID, starship.URL); err != nil {
		return nil, err
	}

	if dto.Images != nil {
		images, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return nil, err
		}
		if err := s.images.AttachImages("starships", starship.ID, images); err != nil {
			return nil, err
		}
		starship.Images = images
	}
	return starship, nil
}

func (s *StarshipService) CatalogItems(page, limit int) ([]models.Starship, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.List((page-1)*limit, limit)
}

// FindAll returns the rich admin listing with pagination metadata and links
func (s *StarshipService) FindAll(page, limit int) (*Page[StarshipListItem], error) {
	page, limit = normalizePage(page, limit)

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	starships, err := s.repo.ListDesc((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items := make([]StarshipListItem, 0, len(starships))
	for _, sh := range starships {
		item := StarshipListItem{
			ID:               sh.ID,
			Name:             sh.Name,
			URL:              sh.URL,
			Model:            sh.Model,
			Manufacturer:     sh.Manufacturer,
			CostInCredits:    sh.CostInCredits,
			Length:           sh.Length,
			MaxSpeed:         sh.MaxSpeed,
			Crew:             sh.Crew,
			Passengers:       sh.Passengers,
			CargoCapacity:    sh.CargoCapacity,
			Consumables:      sh.Consumables,
			HyperdriveRating: sh.HyperdriveRating,
			MGLT:             sh.MGLT,
			StarshipClass:    sh.StarshipClass,
			Created:          sh.CreatedAt,
			Edited:           sh.EditedAt,
			Images:           sh.Images,
		}
		var err error
		if item.Pilots, err = RelationIDs(s.db, "starships", "pilots", sh.ID); err != nil {
			return nil, err
		}
		if item.Films, err = RelationIDs(s.db, "starships", "films", sh.ID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Page[StarshipListItem]{
		Data:  items,
		Meta:  GetPaginationMeta(total, len(items), limit, page),
		Links: GetPaginationLinks("starships", page, limit, total),
	}, nil
}

func (s *StarshipService) Names() ([]repository.NameRef, error) {
	return s.repo.Names()
}

func (s *StarshipService) Schema() map[string]string {
	return map[string]string{
		"name":                   "",
		"model":                  "",
		"manufacturer":           "",
		"cost_in_credits":        "",
		"length":                 "",
		"max_atmosphering_speed": "",
		"crew":                   "",
		"passengers":             "",
		"cargo_capacity":         "",
		"consumables":            "",
		"hyperdrive_rating":      "",
		"MGLT":                   "",
		"starship_class":         "",
		"pilots":                 "people",
		"films":                  "films",
		"images":                 "",
	}
}

func (s *StarshipService) EntityInfo(id uint) (*StarshipInfo, error) {
	starship, err := s.repo.GetByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("starship", id)
		}
		return nil, err
	}
	return &StarshipInfo{
		ID:               starship.ID,
		Name:             starship.Name,
		URL:              starship.URL,
		Model:            starship.Model,
		Manufacturer:     starship.Manufacturer,
		CostInCredits:    starship.CostInCredits,
		Length:           starship.Length,
		MaxSpeed:         starship.MaxSpeed,
		Crew:             starship.Crew,
		Passengers:       starship.Passengers,
		CargoCapacity:    starship.CargoCapacity,
		Consumables:      starship.Consumables,
		HyperdriveRating: starship.HyperdriveRating,
		MGLT:             starship.MGLT,
		StarshipClass:    starship.StarshipClass,
		Created:          starship.CreatedAt,
		Edited:           starship.EditedAt,
		Pilots:           personRefs(starship.Pilots),
		Films:            filmRefs(starship.Films),
		Images:           starship.Images,
	}, nil
}

func (s *StarshipService) Update(id uint, dto StarshipDTO) error {
	starship, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("starship", id)
		}
		return err
	}
	oldImages := starship.Images
	starship.Images = nil

	applyStarshipScalars(starship, dto)
	starship.EditedAt = time.Now().Unix()
	if err := s.repo.UpdateScalars(starship); err != nil {
		return translateWriteErr("starship", "name", err)
	}

	if dto.Pilots != nil {
		pilots, err := EntitiesByIDs[models.Person](s.db, *dto.Pilots)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(starship, "Pilots", pilots); err != nil {
			return err
		}
	}
	if dto.Films != nil {
		films, err := EntitiesByIDs[models.Film](s.db, *dto.Films)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(starship, "Films", films); err != nil {
			return err
		}
	}

	if dto.Images != nil {
		newImages, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return err
		}
		if err := s.images.AttachImages("starships", id, newImages); err != nil {
			return err
		}
		if err := s.images.CleanUpUnusedImages(oldImages, newImages); err != nil {
			return err
		}
	}
	return nil
}

func (s *StarshipService) Remove(id uint) error {
	starship, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("starship", id)
		}
		return err
	}
	if len(starship.Images) > 0 {
		if err := s.images.CleanUpUnusedImages(starship.Images, nil); err != nil {
			return err
		}
	}
	starship.Images = nil
	return s.repo.Delete(starship)
}
