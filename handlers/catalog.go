package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stellarchive/catalogbackend/repository"
	"github.com/stellarchive/catalogbackend/services"
)

// CatalogService is the operation surface shared by all six entity services,
// parameterized over the DTO, entity model, and detail projection types.
type CatalogService[D any, E any, I any] interface {
	Create(dto D) (*E, error)
	CatalogItems(page, limit int) ([]E, error)
	Names() ([]repository.NameRef, error)
	Schema() map[string]string
	EntityInfo(id uint) (*I, error)
	Update(id uint, dto D) error
	Remove(id uint) error
}

// CatalogHandler serves the shared route set of one entity kind. One instance
// is mounted per kind; the type parameters keep request decoding and response
// encoding concrete per kind with a single implementation.
type CatalogHandler[D any, E any, I any] struct {
	svc CatalogService[D, E, I]
}

func NewCatalogHandler[D any, E any, I any](svc CatalogService[D, E, I]) *CatalogHandler[D, E, I] {
	return &CatalogHandler[D, E, I]{svc: svc}
}

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *CatalogHandler[D, E, I]) Create(w http.ResponseWriter, r *http.Request) {
	var dto D
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if _, err := h.svc.Create(dto); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

// Items serves one public catalog page; page and limit come from the path.
func (h *CatalogHandler[D, E, I]) Items(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(chi.URLParam(r, "page"))
	limit, _ := strconv.Atoi(chi.URLParam(r, "limit"))

	items, err := h.svc.CatalogItems(page, limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CatalogHandler[D, E, I]) Names(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.Names()
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *CatalogHandler[D, E, I]) Schema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Schema())
}

func (h *CatalogHandler[D, E, I]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid entity ID")
		return
	}

	info, err := h.svc.EntityInfo(id)
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *CatalogHandler[D, E, I]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid entity ID")
		return
	}

	var dto D
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.svc.Update(id, dto); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *CatalogHandler[D, E, I]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid entity ID")
		return
	}

	if err := h.svc.Remove(id); err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// FindAllHandler serves the rich admin listing of the kinds that expose one.
// Page and limit come from query parameters to match the pagination links the
// listing embeds.
func FindAllHandler[L any](findAll func(page, limit int) (*services.Page[L], error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		result, err := findAll(page, limit)
		if err != nil {
			WriteError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
