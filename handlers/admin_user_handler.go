package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/repository"
)

// AdminUserHandler serves the admin-only user management routes.
type AdminUserHandler struct {
	UserRepo repository.UserRepository
	RoleRepo repository.RoleRepository
}

func NewAdminUserHandler(userRepo repository.UserRepository, roleRepo repository.RoleRepository) *AdminUserHandler {
	return &AdminUserHandler{UserRepo: userRepo, RoleRepo: roleRepo}
}

func parseUintParam(r *http.Request, name string) (uint, bool) {
	value, err := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(value), true
}

func (h *AdminUserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.ListAll()
	if err != nil {
		WriteError(w, err)
		return
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *AdminUserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.UserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "User not found")
			return
		}
		WriteError(w, err)
		return
	}
	user.PasswordHash = ""
	writeJSON(w, http.StatusOK, user)
}

func (h *AdminUserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUintParam(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	// admins may not delete their own account through this route
	if current, ok := UserFromContext(r.Context()); ok && current.ID == id {
		WriteAPIError(w, http.StatusForbidden, "Cannot delete your own account")
		return
	}

	if err := h.UserRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "User not found")
			return
		}
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// AssignRole attaches the role named in the path to the user.
func (h *AdminUserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUintParam(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	roleID, ok := parseUintParam(r, "roleID")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid role ID")
		return
	}

	if err := h.UserRepo.AddRoleToUser(userID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "User or role not found")
			return
		}
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminUserHandler) RemoveRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUintParam(r, "id")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	roleID, ok := parseUintParam(r, "roleID")
	if !ok {
		WriteAPIError(w, http.StatusBadRequest, "Invalid role ID")
		return
	}

	if err := h.UserRepo.RemoveRoleFromUser(userID, roleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			WriteAPIError(w, http.StatusNotFound, "User or role not found")
			return
		}
		WriteError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
