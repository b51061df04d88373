package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/models"
)

type fakeRoleRepo struct {
	roles map[string]*models.Role
}

func (r *fakeRoleRepo) Create(role *models.Role) error {
	if _, ok := r.roles[role.Value]; ok {
		return gorm.ErrDuplicatedKey
	}
	role.ID = uint(len(r.roles) + 1)
	r.roles[role.Value] = role
	return nil
}

func (r *fakeRoleRepo) GetByID(id uint) (*models.Role, error) {
	for _, role := range r.roles {
		if role.ID == id {
			return role, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRoleRepo) GetByValue(value string) (*models.Role, error) {
	role, ok := r.roles[value]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (r *fakeRoleRepo) ListAll() ([]models.Role, error) {
	roles := make([]models.Role, 0, len(r.roles))
	for _, role := range r.roles {
		roles = append(roles, *role)
	}
	return roles, nil
}

func newAuthHandler(users map[uint]*models.User) *AuthHandler {
	roleRepo := &fakeRoleRepo{roles: map[string]*models.Role{
		models.RoleAdmin: {ID: 1, Value: models.RoleAdmin},
		models.RoleUser:  {ID: 2, Value: models.RoleUser},
	}}
	return NewAuthHandler(&fakeUserRepo{users: users}, roleRepo, testSecret, time.Hour)
}

func TestLoginSuccess(t *testing.T) {
	user := &models.User{ID: 1, Username: "admin", Roles: []*models.Role{{ID: 1, Value: models.RoleAdmin}}}
	require.NoError(t, user.SetPassword("secret"))
	h := newAuthHandler(map[uint]*models.User{user.ID: user})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Empty(t, resp.User.PasswordHash)
	assert.True(t, resp.ExpiresAt.After(time.Now()))
}

func TestLoginTokenCarriesClaims(t *testing.T) {
	user := &models.User{ID: 1, Username: "admin", Roles: []*models.Role{{ID: 1, Value: models.RoleAdmin}}}
	require.NoError(t, user.SetPassword("secret"))
	h := newAuthHandler(map[uint]*models.User{user.ID: user})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	repo := &fakeUserRepo{users: map[uint]*models.User{user.ID: user}}
	handler := AuthMiddleware(testSecret, repo)(RequireRole(models.RoleAdmin)(okHandler()))

	authedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	authedReq.Header.Set("Authorization", "Bearer "+resp.Token)
	authedRec := httptest.NewRecorder()
	handler.ServeHTTP(authedRec, authedReq)

	assert.Equal(t, http.StatusOK, authedRec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	user := &models.User{ID: 1, Username: "admin"}
	require.NoError(t, user.SetPassword("secret"))
	h := newAuthHandler(map[uint]*models.User{user.ID: user})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	h := newAuthHandler(map[uint]*models.User{})

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"nobody","password":"x"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterAssignsDefaultRoleAndLogsIn(t *testing.T) {
	h := newAuthHandler(map[uint]*models.User{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"newbie","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "newbie", resp.User.Username)
	require.Len(t, resp.User.Roles, 1)
	assert.Equal(t, models.RoleUser, resp.User.Roles[0].Value)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	user := &models.User{ID: 1, Username: "taken"}
	h := newAuthHandler(map[uint]*models.User{user.ID: user})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"taken","password":"secret"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	h := newAuthHandler(map[uint]*models.User{})

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{"username":"newbie"}`))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
