package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/models"
)

const defaultPageLimit = 10

// RelatedRef is the id/name/url projection of a related entity used by the
// detail read surface
type RelatedRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Page wraps one page of a rich listing with its metadata and navigation links
type Page[T any] struct {
	Data  []T             `json:"data"`
	Meta  PaginationMeta  `json:"meta"`
	Links PaginationLinks `json:"links"`
}

// normalizePage clamps paging inputs to sane values
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	return page, limit
}

// entityURL computes the canonical resource URL assigned after identity
// assignment
func entityURL(baseURL, kindName string, id uint) string {
	return fmt.Sprintf("%s/api/v1/%s/%d", baseURL, kindName, id)
}

// translateWriteErr maps storage-level duplicate-key failures to the typed
// conflict error; everything else passes through
func translateWriteErr(kindName, field string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(kindName, field)
	}
	return err
}

// ids dereferences an optional id-list DTO field; nil means "not provided"
func ids(field *[]uint) []uint {
	if field == nil {
		return nil
	}
	return *field
}

// projection helpers for the detail read surface

func personRefs(people []*models.Person) []RelatedRef {
	refs := make([]RelatedRef, 0, len(people))
	for _, p := range people {
		refs = append(refs, RelatedRef{ID: p.ID, Name: p.Name, URL: p.URL})
	}
	return refs
}

func planetRefs(planets []*models.Planet) []RelatedRef {
	refs := make([]RelatedRef, 0, len(planets))
	for _, p := range planets {
		refs = append(refs, RelatedRef{ID: p.ID, Name: p.Name, URL: p.URL})
	}
	return refs
}

func filmRefs(films []*models.Film) []RelatedRef {
	refs := make([]RelatedRef, 0, len(films))
	for _, f := range films {
		refs = append(refs, RelatedRef{ID: f.ID, Name: f.Title, URL: f.URL})
	}
	return refs
}

func specieRefs(species []*models.Specie) []RelatedRef {
	refs := make([]RelatedRef, 0, len(species))
	for _, sp := range species {
		refs = append(refs, RelatedRef{ID: sp.ID, Name: sp.Name, URL: sp.URL})
	}
	return refs
}

func vehicleRefs(vehicles []*models.Vehicle) []RelatedRef {
	refs := make([]RelatedRef, 0, len(vehicles))
	for _, v := range vehicles {
		refs = append(refs, RelatedRef{ID: v.ID, Name: v.Name, URL: v.URL})
	}
	return refs
}

func starshipRefs(starships []*models.Starship) []RelatedRef {
	refs := make([]RelatedRef, 0, len(starships))
	for _, st := range starships {
		refs = append(refs, RelatedRef{ID: st.ID, Name: st.Name, URL: st.URL})
	}
	return refs
}
