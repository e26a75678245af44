package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/graceworks/grace-backend/internal/auth"
	"github.com/graceworks/grace-backend/internal/middleware"
	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 72 * time.Hour

// UserHandler handles account registration, login and profile requests
type UserHandler struct {
	users     repositories.UserRepository
	jwtSecret string
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.UserRepository, jwtSecret string) *UserHandler {
	return &UserHandler{users: users, jwtSecret: jwtSecret}
}

// RegisterPublicRoutes registers the unauthenticated account routes
func (h *UserHandler) RegisterPublicRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers the token-guarded account routes
func (h *UserHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.GET("/me", h.Me)
}

// Register creates a new account
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create account", err.Error())
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return respondError(c, http.StatusConflict, "Email already registered", err.Error())
		}
		return respondError(c, http.StatusInternalServerError, "Failed to create account", err.Error())
	}

	return respondSuccess(c, http.StatusCreated, "Account created", user)
}

// Login verifies credentials and issues a JWT
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	user, err := h.users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return respondError(c, http.StatusUnauthorized, "Invalid credentials", "invalid credentials")
		}
		return respondError(c, http.StatusInternalServerError, "Login failed", err.Error())
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return respondError(c, http.StatusUnauthorized, "Invalid credentials", "invalid credentials")
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID.Hex(), user.Email, tokenDuration)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Login failed", err.Error())
	}

	return respondSuccess(c, http.StatusOK, "Logged in", echo.Map{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated account's profile
func (h *UserHandler) Me(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	user, err := h.users.GetByID(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) || errors.Is(err, repositories.ErrInvalidID) {
			return respondError(c, http.StatusNotFound, "User not found", err.Error())
		}
		return respondError(c, http.StatusInternalServerError, "Failed to fetch profile", err.Error())
	}

	return respondSuccess(c, http.StatusOK, "Profile retrieved", user)
}
