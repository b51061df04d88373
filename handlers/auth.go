package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/stellarchive/catalogbackend/models"
	"github.com/stellarchive/catalogbackend/repository"
)

// TokenClaims is the claim set embedded in issued bearer tokens: the
// username, the user id as subject, and the user's role values.
type TokenClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

type AuthHandler struct {
	UserRepo      repository.UserRepository
	RoleRepo      repository.RoleRepository
	JWTSecret     []byte
	TokenLifetime time.Duration
}

func NewAuthHandler(userRepo repository.UserRepository, roleRepo repository.RoleRepository, jwtSecret []byte, tokenLifetime time.Duration) *AuthHandler {
	return &AuthHandler{
		UserRepo:      userRepo,
		RoleRepo:      roleRepo,
		JWTSecret:     jwtSecret,
		TokenLifetime: tokenLifetime,
	}
}

type LoginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

func (h *AuthHandler) issueToken(user *models.User) (string, time.Time, error) {
	expirationTime := time.Now().Add(h.TokenLifetime)
	claims := &TokenClaims{
		Username: user.Username,
		Roles:    user.RoleValues(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "catalogbackend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.JWTSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := h.UserRepo.GetByUsername(payload.Username)
	if err != nil {
		// same message for unknown user and bad password
		WriteAPIError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if !user.CheckPassword(payload.Password) {
		WriteAPIError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	tokenString, expiresAt, err := h.issueToken(user)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	userForResponse := *user
	userForResponse.PasswordHash = ""

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     tokenString,
		User:      userForResponse,
		ExpiresAt: expiresAt,
	})
}

type RegisterPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account with the default "user" role and logs it in,
// returning the same response shape as Login.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if payload.Username == "" || payload.Password == "" {
		WriteAPIError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	newUser := &models.User{Username: payload.Username}
	if err := newUser.SetPassword(payload.Password); err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	defaultRole, err := h.RoleRepo.GetByValue(models.RoleUser)
	if err == nil {
		newUser.Roles = []*models.Role{defaultRole}
	}

	if err := h.UserRepo.Create(newUser); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			WriteAPIError(w, http.StatusConflict, "Username is already taken")
			return
		}
		WriteAPIError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	tokenString, expiresAt, err := h.issueToken(newUser)
	if err != nil {
		WriteAPIError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	userForResponse := *newUser
	userForResponse.PasswordHash = ""

	writeJSON(w, http.StatusCreated, LoginResponse{
		Token:     tokenString,
		User:      userForResponse,
		ExpiresAt: expiresAt,
	})
}

// CurrentUser returns the authenticated user from the request context.
// It must be protected by AuthMiddleware.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		WriteAPIError(w, http.StatusInternalServerError, "Could not retrieve user from context")
		return
	}

	userForResponse := *user
	userForResponse.PasswordHash = ""
	writeJSON(w, http.StatusOK, userForResponse)
}
