package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// PersonDTO carries create/update input for people. Scalar fields are
// pointers: nil means "not provided" and leaves the prior value untouched on
// update, so legitimate zero values are never mistaken for absence. Relation
// id-lists follow the same rule; a non-nil empty list is an explicit clear.
type PersonDTO struct {
	Name      *string   `json:"name"`
	Height    *int      `json:"height"`
	Mass      *int      `json:"mass"`
	HairColor *string   `json:"hair_color"`
	SkinColor *string   `json:"skin_color"`
	EyeColor  *string   `json:"eye_color"`
	BirthYear *string   `json:"birth_year"`
	Gender    *string   `json:"gender"`
	Homeworld *[]uint   `json:"homeworld"`
	Films     *[]uint   `json:"films"`
	Species   *[]uint   `json:"species"`
	Vehicles  *[]uint   `json:"vehicles"`
	Starships *[]uint   `json:"starships"`
	Images    *[]string `json:"images"` // stored filenames
}

// PersonInfo is the deep read projection of a person: full scalar fields plus
// id/name/url references for every related entity
type PersonInfo struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	Height    int            `json:"height"`
	Mass      int            `json:"mass"`
	HairColor string         `json:"hair_color"`
	SkinColor string         `json:"skin_color"`
	EyeColor  string         `json:"eye_color"`
	BirthYear string         `json:"birth_year"`
	Gender    string         `json:"gender"`
	Created   int64          `json:"created"`
	Edited    int64          `json:"edited"`
	Homeworld []RelatedRef   `json:"homeworld"`
	Films     []RelatedRef   `json:"films"`
	Species   []RelatedRef   `json:"species"`
	Vehicles  []RelatedRef   `json:"vehicles"`
	Starships []RelatedRef   `json:"starships"`
	Images    []models.Image `json:"images"`
}

// PersonListItem is one row of the rich admin listing: scalar fields plus
// relation id-lists resolved through the inverse join-table lookups
type PersonListItem struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	Height    int            `json:"height"`
	Mass      int            `json:"mass"`
	HairColor string         `json:"hair_color"`
	SkinColor string         `json:"skin_color"`
	EyeColor  string         `json:"eye_color"`
	BirthYear string         `json:"birth_year"`
	Gender    string         `json:"gender"`
	Created   int64          `json:"created"`
	Edited    int64          `json:"edited"`
	Homeworld []uint         `json:"homeworld"`
	Films     []uint         `json:"films"`
	Species   []uint         `json:"species"`
	Vehicles  []uint         `json:"vehicles"`
	Starships []uint         `json:"starships"`
	Images    []models.Image `json:"images"`
}

// PersonService orchestrates create/read/update/remove for people,
// composing relation resolution and image lifecycle management
type PersonService struct {
	db      *gorm.DB
	repo    repository.CatalogRepositoryInterface[models.Person]
	images  *ImageService
	baseURL string
}

func NewPersonService(db *gorm.DB, repo repository.CatalogRepositoryInterface[models.Person], images *ImageService, baseURL string) *PersonService {
	return &PersonService{db: db, repo: repo, images: images, baseURL: baseURL}
}

func applyPersonScalars(person *models.Person, dto PersonDTO) {
	if dto.Name != nil {
		person.Name = *dto.Name
	}
	if dto.Height != nil {
		person.Height = *dto.Height
	}
	if dto.Mass != nil {
		person.Mass = *dto.Mass
	}
	if dto.HairColor != nil {
		person.HairColor = *dto.HairColor
	}
	if dto.SkinColor != nil {
		person.SkinColor = *dto.SkinColor
	}
	if dto.EyeColor != nil {
		person.EyeColor = *dto.EyeColor
	}
	if dto.BirthYear != nil {
		person.BirthYear = *dto.BirthYear
	}
	if dto.Gender != nil {
		person.Gender = *dto.Gender
	}
}

// Create resolves the DTO's relation id-lists and image filenames, constructs
// the person aggregate with created = edited = now, and persists it
func (s *PersonService) Create(dto PersonDTO) (*models.Person, error) {
	if dto.Name == nil || *dto.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}

	now := time.Now().Unix()
	person := &models.Person{CreatedAt: now, EditedAt: now}
	applyPersonScalars(person, dto)

	var err error
	if person.Homeworld, err = EntitiesByIDs[models.Planet](s.db, ids(dto.Homeworld)); err != nil {
		return nil, err
	}
	if person.Films, err = EntitiesByIDs[models.Film](s.db, ids(dto.Films)); err != nil {
		return nil, err
	}
	if person.Species, err = EntitiesByIDs[models.Specie](s.db, ids(dto.Species)); err != nil {
		return nil, err
	}
	if person.Vehicles, err = EntitiesByIDs[models.Vehicle](s.db, ids(dto.Vehicles)); err != nil {
		return nil, err
	}
	if person.Starships, err = EntitiesByIDs[models.Starship](s.db, ids(dto.Starships)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(person); err != nil {
		return nil, translateWriteErr("person", "name", err)
	}

	person.URL = entityURL(s.baseURL, "people", person.ID)
	if err := s.repo.SetURL(person.ID, person.URL); err != nil {
		return nil, err
	}

	if dto.Images != nil {
		images, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return nil, err
		}
		if err := s.images.AttachImages("people", person.ID, images); err != nil {
			return nil, err
		}
		person.Images = images
	}
	return person, nil
}

// CatalogItems returns one public catalog page with images eagerly attached
func (s *PersonService) CatalogItems(page, limit int) ([]models.Person, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.List((page-1)*limit, limit)
}

// FindAll returns the rich admin listing: id-descending pages whose relation
// id-lists are resolved through the inverse lookups, wrapped with pagination
// metadata and links
func (s *PersonService) FindAll(page, limit int) (*Page[PersonListItem], error) {
	page, limit = normalizePage(page, limit)

	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	people, err := s.repo.ListDesc((page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	items := make([]PersonListItem, 0, len(people))
	for _, p := range people {
		item := PersonListItem{
			ID:        p.ID,
			Name:      p.Name,
			URL:       p.URL,
			Height:    p.Height,
			Mass:      p.Mass,
			HairColor: p.HairColor,
			SkinColor: p.SkinColor,
			EyeColor:  p.EyeColor,
			BirthYear: p.BirthYear,
			Gender:    p.Gender,
			Created:   p.CreatedAt,
			Edited:    p.EditedAt,
			Images:    p.Images,
		}
		var err error
		if item.Homeworld, err = RelationIDs(s.db, "people", "homeworld", p.ID); err != nil {
			return nil, err
		}
		if item.Films, err = RelationIDs(s.db, "people", "films", p.ID); err != nil {
			return nil, err
		}
		if item.Species, err = RelationIDs(s.db, "people", "species", p.ID); err != nil {
			return nil, err
		}
		if item.Vehicles, err = RelationIDs(s.db, "people", "vehicles", p.ID); err != nil {
			return nil, err
		}
		if item.Starships, err = RelationIDs(s.db, "people", "starships", p.ID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Page[PersonListItem]{
		Data:  items,
		Meta:  GetPaginationMeta(total, len(items), limit, page),
		Links: GetPaginationLinks("people", page, limit, total),
	}, nil
}

// Names returns the id+name projection for admin selection lists
func (s *PersonService) Names() ([]repository.NameRef, error) {
	return s.repo.Names()
}

// Schema maps each DTO field to "" for scalars or the related kind name for
// relation selects, consumed by the admin UI form generator
func (s *PersonService) Schema() map[string]string {
	return map[string]string{
		"name":       "",
		"height":     "",
		"mass":       "",
		"hair_color": "",
		"skin_color": "",
		"eye_color":  "",
		"birth_year": "",
		"gender":     "",
		"homeworld":  "planets",
		"films":      "films",
		"species":    "species",
		"vehicles":   "vehicles",
		"starships":  "starships",
		"images":     "",
	}
}

// EntityInfo returns the deep read projection of one person
func (s *PersonService) EntityInfo(id uint) (*PersonInfo, error) {
	person, err := s.repo.GetByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("person", id)
		}
		return nil, err
	}
	return &PersonInfo{
		ID:        person.ID,
		Name:      person.Name,
		URL:       person.URL,
		Height:    person.Height,
		Mass:      person.Mass,
		HairColor: person.HairColor,
		SkinColor: person.SkinColor,
		EyeColor:  person.EyeColor,
		BirthYear: person.BirthYear,
		Gender:    person.Gender,
		Created:   person.CreatedAt,
		Edited:    person.EditedAt,
		Homeworld: planetRefs(person.Homeworld),
		Films:     filmRefs(person.Films),
		Species:   specieRefs(person.Species),
		Vehicles:  vehicleRefs(person.Vehicles),
		Starships: starshipRefs(person.Starships),
		Images:    person.Images,
	}, nil
}

// Update merges provided DTO fields into the stored person, replaces every
// provided relation list wholesale, sets edited = now, and cleans up images
// no longer referenced
func (s *PersonService) Update(id uint, dto PersonDTO) error {
	person, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("person", id)
		}
		return err
	}
	oldImages := person.Images
	person.Images = nil

	applyPersonScalars(person, dto)
	person.EditedAt = time.Now().Unix()
	if err := s.repo.UpdateScalars(person); err != nil {
		return translateWriteErr("person", "name", err)
	}

	if dto.Homeworld != nil {
		planets, err := EntitiesByIDs[models.Planet](s.db, *dto.Homeworld)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(person, "Homeworld", planets); err != nil {
			return err
		}
	}
	if dto.Films != nil {
		films, err := EntitiesByIDs[models.Film](s.db, *dto.Films)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(person, "Films", films); err != nil {
			return err
		}
	}
	if dto.Species != nil {
		species, err := EntitiesByIDs[models.Specie](s.db, *dto.Species)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(person, "Species", species); err != nil {
			return err
		}
	}
	if dto.Vehicles != nil {
		vehicles, err := EntitiesByIDs[models.Vehicle](s.db, *dto.Vehicles)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(person, "Vehicles", vehicles); err != nil {
			return err
		}
	}
	if dto.Starships != nil {
		starships, err := EntitiesByIDs[models.Starship](s.db, *dto.Starships)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(person, "Starships", starships); err != nil {
			return err
		}
	}

	if dto.Images != nil {
		newImages, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return err
		}
		if err := s.images.AttachImages("people", id, newImages); err != nil {
			return err
		}
		if err := s.images.CleanUpUnusedImages(oldImages, newImages); err != nil {
			return err
		}
	}
	return nil
}

// Remove deletes the person after cleaning up all attached images; join rows
// are removed by the storage layer on entity deletion
func (s *PersonService) Remove(id uint) error {
	person, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("person", id)
		}
		return err
	}
	if len(person.Images) > 0 {
		if err := s.images.CleanUpUnusedImages(person.Images, nil); err != nil {
			return err
		}
	}
	person.Images = nil
	return s.repo.Delete(person)
}
