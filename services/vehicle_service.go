package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

type VehicleDTO struct {
	Name          *string   `json:"name"`
	Model         *string   `json:"model"`
	Manufacturer  *string   `json:"manufacturer"`
	CostInCredits *int64    `json:"cost_in_credits"`
	Length        *float64  `json:"length"`
	MaxSpeed      *int      `json:"max_atmosphering_speed"`
	Crew          *int      `json:"crew"`
	Passengers    *int      `json:"passengers"`
	CargoCapacity *int64    `json:"cargo_capacity"`
	Consumables   *string   `json:"consumables"`
	VehicleClass  *string   `json:"vehicle_class"`
	Pilots        *[]uint   `json:"pilots"`
	Films         *[]uint   `json:"films"`
	Images        *[]string `json:"images"`
}

type VehicleInfo struct {
	ID            uint           `json:"id"`
	Name          string         `json:"name"`
	URL           string         `json:"url"`
	Model         string         `json:"model"`
	Manufacturer  string         `json:"manufacturer"`
	CostInCredits int64          `json:"cost_in_credits"`
	Length        float64        `json:"length"`
	MaxSpeed      int            `json:"max_atmosphering_speed"`
	Crew          int            `json:"crew"`
	Passengers    int            `json:"passengers"`
	CargoCapacity int64          `json:"cargo_capacity"`
	Consumables   string         `json:"consumables"`
	VehicleClass  string         `json:"vehicle_class"`
	Created       int64          `json:"created"`
	Edited        int64          `json:"edited"`
	Pilots        []RelatedRef   `json:"pilots"`
	Films         []RelatedRef   `json:"films"`
	Images        []models.Image `json:"images"`
}

type VehicleService struct {
	db      *gorm.DB
	repo    repository.CatalogRepositoryInterface[models.Vehicle]
	images  *ImageService
	baseURL string
}

func NewVehicleService(db *gorm.DB, repo repository.CatalogRepositoryInterface[models.Vehicle], images *ImageService, baseURL string) *VehicleService {
	return &VehicleService{db: db, repo: repo, images: images, baseURL: baseURL}
}

func applyVehicleScalars(vehicle *models.Vehicle, dto VehicleDTO) {
	if dto.Name != nil {
		vehicle.Name = *dto.Name
	}
	if dto.Model != nil {
		vehicle.Model = *dto.Model
	}
	if dto.Manufacturer != nil {
		vehicle.Manufacturer = *dto.Manufacturer
	}
	if dto.CostInCredits != nil {
		vehicle.CostInCredits = *dto.CostInCredits
	}
	if dto.Length != nil {
		vehicle.Length = *dto.Length
	}
	if dto.MaxSpeed != nil {
		vehicle.MaxSpeed = *dto.MaxSpeed
	}
	if dto.Crew != nil {
		vehicle.Crew = *dto.Crew
	}
	if dto.Passengers != nil {
		vehicle.Passengers = *dto.Passengers
	}
	if dto.CargoCapacity != nil {
		vehicle.CargoCapacity = *dto.CargoCapacity
	}
	if dto.Consumables != nil {
		vehicle.Consumables = *dto.Consumables
	}
	if dto.VehicleClass != nil {
		vehicle.VehicleClass = *dto.VehicleClass
	}
}

func (s *VehicleService) Create(dto VehicleDTO) (*models.Vehicle, error) {
	if dto.Name == nil || *dto.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}

	now := time.Now().Unix()
	vehicle := &models.Vehicle{CreatedAt: now, EditedAt: now}
	applyVehicleScalars(vehicle, dto)

	var err error
	if vehicle.Pilots, err = EntitiesByIDs[models.Person](s.db, ids(dto.Pilots)); err != nil {
		return nil, err
	}
	if vehicle.Films, err = EntitiesByIDs[models.Film](s.db, ids(dto.Films)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(vehicle); err != nil {
		return nil, translateWriteErr("vehicle", "name", err)
	}

	vehicle.URL = entityURL(s.baseURL, "vehicles", vehicle.ID)
	if err := s.repo.SetURL(vehicle.ID, vehicle.URL); err != nil {
		return nil, err
	}

	if dto.Images != nil {
		images, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return nil, err
		}
		if err := s.images.AttachImages("vehicles", vehicle.ID, images); err != nil {
			return nil, err
		}
		vehicle.Images = images
	}
	return vehicle, nil
}

func (s *VehicleService) CatalogItems(page, limit int) ([]models.Vehicle, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.List((page-1)*limit, limit)
}

func (s *VehicleService) Names() ([]repository.NameRef, error) {
	return s.repo.Names()
}

func (s *VehicleService) Schema() map[string]string {
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
		"vehicle_class":          "",
		"pilots":                 "people",
		"films":                  "films",
		"images":                 "",
	}
}

func (s *VehicleService) EntityInfo(id uint) (*VehicleInfo, error) {
	vehicle, err := s.repo.GetByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("vehicle", id)
		}
		return nil, err
	}
	return &VehicleInfo{
		ID:            vehicle.ID,
		Name:          vehicle.Name,
		URL:           vehicle.URL,
		Model:         vehicle.Model,
		Manufacturer:  vehicle.Manufacturer,
		CostInCredits: vehicle.CostInCredits,
		Length:        vehicle.Length,
		MaxSpeed:      vehicle.MaxSpeed,
		Crew:          vehicle.Crew,
		Passengers:    vehicle.Passengers,
		CargoCapacity: vehicle.CargoCapacity,
		Consumables:   vehicle.Consumables,
		VehicleClass:  vehicle.VehicleClass,
		Created:       vehicle.CreatedAt,
		Edited:        vehicle.EditedAt,
		Pilots:        personRefs(vehicle.Pilots),
		Films:         filmRefs(vehicle.Films),
		Images:        vehicle.Images,
	}, nil
}

func (s *VehicleService) Update(id uint, dto VehicleDTO) error {
	vehicle, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("vehicle", id)
		}
		return err
	}
	oldImages := vehicle.Images
	vehicle.Images = nil

	applyVehicleScalars(vehicle, dto)
	vehicle.EditedAt = time.Now().Unix()
	if err := s.repo.UpdateScalars(vehicle); err != nil {
		return translateWriteErr("vehicle", "name", err)
	}

	if dto.Pilots != nil {
		pilots, err := EntitiesByIDs[models.Person](s.db, *dto.Pilots)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(vehicle, "Pilots", pilots); err != nil {
			return err
		}
	}
	if dto.Films != nil {
		films, err := EntitiesByIDs[models.Film](s.db, *dto.Films)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(vehicle, "Films", films); err != nil {
			return err
		}
	}

	if dto.Images != nil {
		newImages, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return err
		}
		if err := s.images.AttachImages("vehicles", id, newImages); err != nil {
			return err
		}
		if err := s.images.CleanUpUnusedImages(oldImages, newImages); err != nil {
			return err
		}
	}
	return nil
}

func (s *VehicleService) Remove(id uint) error {
	vehicle, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("vehicle", id)
		}
		return err
	}
	if len(vehicle.Images) > 0 {
		if err := s.images.CleanUpUnusedImages(vehicle.Images, nil); err != nil {
			return err
		}
	}
	vehicle.Images = nil
	return s.repo.Delete(vehicle)
}
