package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "projectdollar/internal/errors"
	"projectdollar/internal/services"
)

// HoldingHandler handles holding-related requests
type HoldingHandler struct {
	holdingService services.HoldingServicer
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingService services.HoldingServicer) *HoldingHandler {
	return &HoldingHandler{holdingService: holdingService}
}

// HoldingRequest represents the request payload for creating or updating a holding
type HoldingRequest struct {
	Symbol        string  `json:"symbol" binding:"required"`
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchase_price" binding:"required,gt=0"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	PurchaseDate  string  `json:"purchase_date" binding:"omitempty,calendar_date"`
	LogoURL       string  `json:"logo_url"`
}

func (r HoldingRequest) toInput() services.HoldingInput {
	return services.HoldingInput{
		Symbol:        r.Symbol,
		Name:          r.Name,
		PurchasePrice: r.PurchasePrice,
		Quantity:      r.Quantity,
		PurchaseDate:  r.PurchaseDate,
		LogoURL:       r.LogoURL,
	}
}

// ListHoldings returns all holdings.
func (h *HoldingHandler) ListHoldings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"holdings": h.holdingService.List()})
}

// GetHolding returns a single holding by id.
func (h *HoldingHandler) GetHolding(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	holding, err := h.holdingService.Get(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, holding)
}

// CreateHolding records a new holding.
func (h *HoldingHandler) CreateHolding(c *gin.Context) {
	var req HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, holding)
}

// UpdateHolding replaces a holding's editable fields.
func (h *HoldingHandler) UpdateHolding(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req HoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	holding, err := h.holdingService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, holding)
}

// DeleteHolding removes a holding.
func (h *HoldingHandler) DeleteHolding(c *gin.Context) {
	id, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.holdingService.Delete(id); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
