package handlers

import (
	"net/http"

	"github.com/graceworks/grace-backend/internal/middleware"
	"github.com/graceworks/grace-backend/internal/models"
	"github.com/graceworks/grace-backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DonationHandler handles donation recording and reporting
type DonationHandler struct {
	donations repositories.DonationRepository
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donations repositories.DonationRepository) *DonationHandler {
	return &DonationHandler{donations: donations}
}

// RegisterDonationRoutes registers the token-guarded donation routes
func (h *DonationHandler) RegisterDonationRoutes(g *echo.Group) {
	g.POST("", h.Create)
	g.GET("", h.ListMine)
	g.GET("/ngo/:id", h.ListByNGO)
	g.GET("/report", h.Report)
}

// Create records a donation by the authenticated user
func (h *DonationHandler) Create(c echo.Context) error {
	var req models.CreateDonationRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid request payload", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return validationOrBadRequest(c, err)
	}

	userID, _ := c.Get(middleware.ContextUserID).(string)

	donation := &models.Donation{
		UserID:   userID,
		NgoID:    req.NgoID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Message:  req.Message,
	}
	if err := h.donations.Create(donation); err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to record donation", err.Error())
	}

	return respondSuccess(c, http.StatusCreated, "Donation recorded", donation)
}

// ListMine returns the authenticated user's donations
func (h *DonationHandler) ListMine(c echo.Context) error {
	userID, _ := c.Get(middleware.ContextUserID).(string)

	donations, err := h.donations.GetByUserID(userID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to fetch donations", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "Donations retrieved", donations)
}

// ListByNGO returns all donations received by one NGO
func (h *DonationHandler) ListByNGO(c echo.Context) error {
	ngoID := c.Param("id")
	if _, err := primitive.ObjectIDFromHex(ngoID); err != nil {
		return respondError(c, http.StatusBadRequest, "Invalid identifier", repositories.ErrInvalidID.Error())
	}

	donations, err := h.donations.GetByNgoID(ngoID)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to fetch donations", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "Donations retrieved", donations)
}

// Report aggregates donation count and totals per currency
func (h *DonationHandler) Report(c echo.Context) error {
	summary, err := h.donations.Summary()
	if err != nil {
		return respondError(c, http.StatusInternalServerError, "Failed to build report", err.Error())
	}
	return respondSuccess(c, http.StatusOK, "Donation report", summary)
}
