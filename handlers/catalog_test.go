package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarchive/catalogbackend/apperrors"
	"github.com/stellarchive/catalogbackend/repository"
)

type testDTO struct {
	Name *string `json:"name"`
}

type testEntity struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type testInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// fakeCatalogService backs the generic handler with an in-memory map
type fakeCatalogService struct {
	entities map[uint]*testEntity
	nextID   uint
}

func newFakeCatalogService() *fakeCatalogService {
	return &fakeCatalogService{entities: map[uint]*testEntity{}, nextID: 1}
}

func (s *fakeCatalogService) Create(dto testDTO) (*testEntity, error) {
	if dto.Name == nil || *dto.Name == "" {
		return nil, apperrors.NewValidationError("name", "name is required")
	}
	for _, e := range s.entities {
		if e.Name == *dto.Name {
			return nil, apperrors.Conflict("entity", "name")
		}
	}
	entity := &testEntity{ID: s.nextID, Name: *dto.Name}
	s.entities[entity.ID] = entity
	s.nextID++
	return entity, nil
}

func (s *fakeCatalogService) CatalogItems(page, limit int) ([]testEntity, error) {
	items := make([]testEntity, 0, len(s.entities))
	for _, e := range s.entities {
		items = append(items, *e)
	}
	return items, nil
}

func (s *fakeCatalogService) Names() ([]repository.NameRef, error) {
	refs := make([]repository.NameRef, 0, len(s.entities))
	for _, e := range s.entities {
		refs = append(refs, repository.NameRef{ID: e.ID, Name: e.Name})
	}
	return refs, nil
}

func (s *fakeCatalogService) Schema() map[string]string {
	return map[string]string{"name": ""}
}

func (s *fakeCatalogService) EntityInfo(id uint) (*testInfo, error) {
	entity, ok := s.entities[id]
	if !ok {
		return nil, apperrors.NotFound("entity", id)
	}
	return &testInfo{ID: entity.ID, Name: entity.Name}, nil
}

func (s *fakeCatalogService) Update(id uint, dto testDTO) error {
	entity, ok := s.entities[id]
	if !ok {
		return apperrors.NotFound("entity", id)
	}
	if dto.Name != nil {
		entity.Name = *dto.Name
	}
	return nil
}

func (s *fakeCatalogService) Remove(id uint) error {
	if _, ok := s.entities[id]; !ok {
		return apperrors.NotFound("entity", id)
	}
	delete(s.entities, id)
	return nil
}

func newTestRouter(svc *fakeCatalogService) http.Handler {
	h := NewCatalogHandler[testDTO, testEntity, testInfo](svc)
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/names", h.Names)
	r.Get("/schema", h.Schema)
	r.Get("/items/{page}/{limit}", h.Items)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func TestCatalogHandlerCreate(t *testing.T) {
	router := newTestRouter(newFakeCatalogService())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Luke"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp["success"])

	req = httptest.NewRequest(http.MethodGet, "/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var info testInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "Luke", info.Name)
}

func TestCatalogHandlerCreateValidationError(t *testing.T) {
	router := newTestRouter(newFakeCatalogService())

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp APIErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Fields, "name")
}

func TestCatalogHandlerCreateConflict(t *testing.T) {
	svc := newFakeCatalogService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Luke"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Luke"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCatalogHandlerGetNotFound(t *testing.T) {
	router := newTestRouter(newFakeCatalogService())

	req := httptest.NewRequest(http.MethodGet, "/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp APIErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCatalogHandlerGetInvalidID(t *testing.T) {
	router := newTestRouter(newFakeCatalogService())

	req := httptest.NewRequest(http.MethodGet, "/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCatalogHandlerUpdateAndGet(t *testing.T) {
	svc := newFakeCatalogService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Luke"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPatch, "/1", strings.NewReader(`{"name":"Luke Skywalker"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var info testInfo
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&info))
	assert.Equal(t, "Luke Skywalker", info.Name)
}

func TestCatalogHandlerDelete(t *testing.T) {
	svc := newFakeCatalogService()
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Luke"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/1", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogHandlerSchema(t *testing.T) {
	router := newTestRouter(newFakeCatalogService())

	req := httptest.NewRequest(http.MethodGet, "/schema", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var schema map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&schema))
	assert.Equal(t, "", schema["name"])
}
