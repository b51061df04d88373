package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/models"
)

var testSecret = []byte("test-secret")

// fakeUserRepo serves a fixed set of users by id and username
type fakeUserRepo struct {
	users map[uint]*models.User
}

func (r *fakeUserRepo) Create(user *models.User) error {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = uint(len(r.users) + 1)
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) ListAll() ([]models.User, error) {
	users := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, *user)
	}
	return users, nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) AddRoleToUser(userID, roleID uint) error      { return nil }
func (r *fakeUserRepo) RemoveRoleFromUser(userID, roleID uint) error { return nil }

func testToken(t *testing.T, user *models.User, lifetime time.Duration) string {
	t.Helper()
	claims := &TokenClaims{
		Username: user.Username,
		Roles:    user.RoleValues(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)
	return tokenString
}

func adminUser() *models.User {
	return &models.User{
		ID:       1,
		Username: "admin",
		Roles:    []*models.Role{{ID: 1, Value: models.RoleAdmin}},
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	repo := &fakeUserRepo{users: map[uint]*models.User{}}
	handler := AuthMiddleware(testSecret, repo)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	repo := &fakeUserRepo{users: map[uint]*models.User{}}
	handler := AuthMiddleware(testSecret, repo)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	user := adminUser()
	repo := &fakeUserRepo{users: map[uint]*models.User{user.ID: user}}
	handler := AuthMiddleware(testSecret, repo)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, user, -time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	user := adminUser()
	repo := &fakeUserRepo{users: map[uint]*models.User{}}
	handler := AuthMiddleware(testSecret, repo)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, user, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewarePutsUserInContext(t *testing.T) {
	user := adminUser()
	repo := &fakeUserRepo{users: map[uint]*models.User{user.ID: user}}

	var seen *models.User
	handler := AuthMiddleware(testSecret, repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, user, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, user.Username, seen.Username)
}

func TestRequireRoleForbidsWithoutRole(t *testing.T) {
	user := &models.User{
		ID:       2,
		Username: "viewer",
		Roles:    []*models.Role{{ID: 2, Value: models.RoleUser}},
	}
	repo := &fakeUserRepo{users: map[uint]*models.User{user.ID: user}}
	handler := AuthMiddleware(testSecret, repo)(RequireRole(models.RoleAdmin)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, user, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	user := adminUser()
	repo := &fakeUserRepo{users: map[uint]*models.User{user.ID: user}}
	handler := AuthMiddleware(testSecret, repo)(RequireRole(models.RoleAdmin)(okHandler()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, user, time.Hour))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
