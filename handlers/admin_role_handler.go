package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// AdminRoleHandler serves the admin-only role management routes.
type AdminRoleHandler struct {
	RoleRepo repository.RoleRepository
}

func NewAdminRoleHandler(roleRepo repository.RoleRepository) *AdminRoleHandler {
	return &AdminRoleHandler{RoleRepo: roleRepo}
}

func (h *AdminRoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RoleRepo.ListAll()
	if err != nil {
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, roles)
}

func (h *AdminRoleHandler) GetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid role ID")
		return
	}

	role, err := h.RoleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "Role not found")
			return
		}
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, role)
}

type createRolePayload struct {
	Value       string `json:"value"`
	Description string `json:"description"`
}

func (h *AdminRoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var payload createRolePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Value == "" {
		WriteAPIError(w, http.StatusBadRequest, "Role value is required")
		return
	}

	role := &models.Role{Value: payload.Value, Description: payload.Description}
	if err := h.RoleRepo.Create(role); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			WriteAPIError(w, http.StatusConflict, "Role value already exists")
			return
		}
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, role)
}
