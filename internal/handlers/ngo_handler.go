package handlers

import (
	"errors"
	"net/http"

	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
)

// NGOHandler handles NGO profile requests
type NGOHandler struct {
	ngos repositories.NGORepository
}

// NewNGOHandler creates a new NGOHandler
func NewNGOHandler(ngos repositories.NGORepository) *NGOHandler {
	return &NGOHandler{ngos: ngos}
}

// RegisterPublicRoutes registers the read-only NGO routes
func (h *NGOHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

// RegisterProtectedRoutes registers the token-guarded NGO routes
func (h *NGOHandler) RegisterProtectedRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// List returns every NGO profile
func (h *NGOHandler) List(c echo.Context) error {
	ngos, err := h.ngos.List(c.Request().Context())
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to fetch NGOs", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "NGOs retrieved", ngos)
}

// Get returns one NGO profile
func (h *NGOHandler) Get(c echo.Context) error {
	ngo, err := h.ngos.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.failure(c, err)
	}
	return respondSuccess(c, http.StatusOK, "NGO retrieved", ngo)
}

// Create registers a new NGO profile
func (h *NGOHandler) Create(c echo.Context) error {
	var req models.CreateNGORequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	ngo := &models.NGO{
		Name:     req.Name,
		Mission:  req.Mission,
		Category: req.Category,
		Website:  req.Website,
		Logo:     req.Logo,
	}
	if err := h.ngos.Create(c.Request().Context(), ngo); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to create NGO", err.Error())
	}

	return respondSuccess(c, http.StatusCreated, "NGO created", ngo)
}

// Update applies the mutable fields of an NGO profile
func (h *NGOHandler) Update(c echo.Context) error {
	var req models.UpdateNGORequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	update := bson.M{}
	if req.Name != nil {
		update["name"] = *req.Name
	}
	if req.Mission != nil {
		update["mission"] = *req.Mission
	}
	if req.Category != nil {
		update["category"] = *req.Category
	}
	if req.Website != nil {
		update["website"] = *req.Website
	}
	if req.Logo != nil {
		update["logo"] = *req.Logo
	}
	if req.Verified != nil {
		update["verified"] = *req.Verified
	}

	ngo, err := h.ngos.Update(c.Request().Context(), c.Param("id"), update)
	if err != nil {
		return h.failure(c, err)
	}

	return respondSuccess(c, http.StatusOK, "NGO updated", ngo)
}

// Delete removes an NGO profile
func (h *NGOHandler) Delete(c echo.Context) error {
	if err := h.ngos.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return h.failure(c, err)
	}
	return respondSuccess(c, http.StatusOK, "NGO deleted", nil)
}

func (h *NGOHandler) failure(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNGONotFound):
		return respondError(c, http.StatusNotFound, "NGO not found", err.Error())
	case errors.Is(err, repositories.ErrInvalidID):
		return respondError(c, http.StatusBadRequest, "Invalid identifier", err.Error())
	default:
		return respondError(c, http.StatusInternalServerError, "Something went wrong", err.Error())
	}
}
