package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// FilmDTO carries create/update input for films; see PersonDTO for the
// nil-means-absent convention. Films use title as their display attribute.
type FilmDTO struct {
	Title        *string   `json:"title"`
	EpisodeID    *int      `json:"episode_id"`
	OpeningCrawl *string   `json:"opening_crawl"`
	Director     *string   `json:"director"`
	Producer     *string   `json:"producer"`
	ReleaseDate  *string   `json:"release_date"`
	Characters   *[]uint   `json:"characters"`
	Planets      *[]uint   `json:"planets"`
	Starships    *[]uint   `json:"starships"`
	Vehicles     *[]uint   `json:"vehicles"`
	Species      *[]uint   `json:"species"`
	Images       *[]string `json:"images"`
}

// FilmInfo is the deep read projection of a film
type FilmInfo struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	URL          string         `json:"url"`
	EpisodeID    int            `json:"episode_id"`
	OpeningCrawl string         `json:"opening_crawl"`
	Director     string         `json:"director"`
	Producer     string         `json:"producer"`
	ReleaseDate  string         `json:"release_date"`
	Created      int64          `json:"created"`
	Edited       int64          `json:"edited"`
	Characters   []RelatedRef   `json:"characters"`
	Planets      []RelatedRef   `json:"planets"`
	Starships    []RelatedRef   `json:"starships"`
	Vehicles     []RelatedRef   `json:"vehicles"`
	Species      []RelatedRef   `json:"species"`
	Images       []models.Image `json:"images"`
}

type FilmService struct {
	db      *gorm.DB
	repo    repository.CatalogRepositoryInterface[models.Film]
	images  *ImageService
	baseURL string
}

func NewFilmService(db *gorm.DB, repo repository.CatalogRepositoryInterface[models.Film], images *ImageService, baseURL string) *FilmService {
	return &FilmService{db: db, repo: repo, images: images, baseURL: baseURL}
}

func applyFilmScalars(film *models.Film, dto FilmDTO) {
	if dto.Title != nil {
		film.Title = *dto.Title
	}
	if dto.EpisodeID != nil {
		film.EpisodeID = *dto.EpisodeID
	}
	if dto.OpeningCrawl != nil {
		film.OpeningCrawl = *dto.OpeningCrawl
	}
	if dto.Director != nil {
		film.Director = *dto.Director
	}
	if dto.Producer != nil {
		film.Producer = *dto.Producer
	}
	if dto.ReleaseDate != nil {
		film.ReleaseDate = *dto.ReleaseDate
	}
}

func (s *FilmService) Create(dto FilmDTO) (*models.Film, error) {
	if dto.Title == nil || *dto.Title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}

	now := time.Now().Unix()
	film := &models.Film{CreatedAt: now, EditedAt: now}
	applyFilmScalars(film, dto)

	var err error
	if film.Characters, err = EntitiesByIDs[models.Person](s.db, ids(dto.Characters)); err != nil {
		return nil, err
	}
	if film.Planets, err = EntitiesByIDs[models.Planet](s.db, ids(dto.Planets)); err != nil {
		return nil, err
	}
	if film.Starships, err = EntitiesByIDs[models.Starship](s.db, ids(dto.Starships)); err != nil {
		return nil, err
	}
	if film.Vehicles, err = EntitiesByIDs[models.Vehicle](s.db, ids(dto.Vehicles)); err != nil {
		return nil, err
	}
	if film.Species, err = EntitiesByIDs[models.Specie](s.db, ids(dto.Species)); err != nil {
		return nil, err
	}

	if err := s.repo.Create(film); err != nil {
		return nil, translateWriteErr("film", "title", err)
	}

	film.URL = entityURL(s.baseURL, "films", film.ID)
	if err := s.repo.SetURL(film.ID, film.URL); err != nil {
		return nil, err
	}

	if dto.Images != nil {
		images, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return nil, err
		}
		if err := s.images.AttachImages("films", film.ID, images); err != nil {
			return nil, err
		}
		film.Images = images
	}
	return film, nil
}

func (s *FilmService) CatalogItems(page, limit int) ([]models.Film, error) {
	page, limit = normalizePage(page, limit)
	return s.repo.List((page-1)*limit, limit)
}

func (s *FilmService) Names() ([]repository.NameRef, error) {
	return s.repo.Names()
}

func (s *FilmService) Schema() map[string]string {
	return map[string]string{
		"title":         "",
		"episode_id":    "",
		"opening_crawl": "",
		"director":      "",
		"producer":      "",
		"release_date":  "",
		"characters":    "people",
		"planets":       "planets",
		"starships":     "starships",
		"vehicles":      "vehicles",
		"species":       "species",
		"images":        "",
	}
}

func (s *FilmService) EntityInfo(id uint) (*FilmInfo, error) {
	film, err := s.repo.GetByIDFull(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("film", id)
		}
		return nil, err
	}
	return &FilmInfo{
		ID:           film.ID,
		Title:        film.Title,
		URL:          film.URL,
		EpisodeID:    film.EpisodeID,
		OpeningCrawl: film.OpeningCrawl,
		Director:     film.Director,
		Producer:     film.Producer,
		ReleaseDate:  film.ReleaseDate,
		Created:      film.CreatedAt,
		Edited:       film.EditedAt,
		Characters:   personRefs(film.Characters),
		Planets:      planetRefs(film.Planets),
		Starships:    starshipRefs(film.Starships),
		Vehicles:     vehicleRefs(film.Vehicles),
		Species:      specieRefs(film.Species),
		Images:       film.Images,
	}, nil
}

func (s *FilmService) Update(id uint, dto FilmDTO) error {
	film, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("film", id)
		}
		return err
	}
	oldImages := film.Images
	film.Images = nil

	applyFilmScalars(film, dto)
	film.EditedAt = time.Now().Unix()
	if err := s.repo.UpdateScalars(film); err != nil {
		return translateWriteErr("film", "title", err)
	}

	if dto.Characters != nil {
		characters, err := EntitiesByIDs[models.Person](s.db, *dto.Characters)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(film, "Characters", characters); err != nil {
			return err
		}
	}
	if dto.Planets != nil {
		planets, err := EntitiesByIDs[models.Planet](s.db, *dto.Planets)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(film, "Planets", planets); err != nil {
			return err
		}
	}
	if dto.Starships != nil {
		starships, err := EntitiesByIDs[models.Starship](s.db, *dto.Starships)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(film, "Starships", starships); err != nil {
			return err
		}
	}
	if dto.Vehicles != nil {
		vehicles, err := EntitiesByIDs[models.Vehicle](s.db, *dto.Vehicles)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(film, "Vehicles", vehicles); err != nil {
			return err
		}
	}
	if dto.Species != nil {
		species, err := EntitiesByIDs[models.Specie](s.db, *dto.Species)
		if err != nil {
			return err
		}
		if err := s.repo.ReplaceAssociation(film, "Species", species); err != nil {
			return err
		}
	}

	if dto.Images != nil {
		newImages, err := s.images.GetImages(*dto.Images)
		if err != nil {
			return err
		}
		if err := s.images.AttachImages("films", id, newImages); err != nil {
			return err
		}
		if err := s.images.CleanUpUnusedImages(oldImages, newImages); err != nil {
			return err
		}
	}
	return nil
}

func (s *FilmService) Remove(id uint) error {
	film, err := s.repo.GetByIDWithImages(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("film", id)
		}
		return err
	}
	if len(film.Images) > 0 {
		if err := s.images.CleanUpUnusedImages(film.Images, nil); err != nil {
			return err
		}
	}
	film.Images = nil
	return s.repo.Delete(film)
}
