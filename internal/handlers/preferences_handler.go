package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "projectdollar/internal/errors"
	"projectdollar/internal/models"
	"projectdollar/internal/services"
)

// PreferencesHandler handles UI preference requests
type PreferencesHandler struct {
	preferencesService services.PreferencesServicer
}

// NewPreferencesHandler creates a new PreferencesHandler
func NewPreferencesHandler(preferencesService services.PreferencesServicer) *PreferencesHandler {
	return &PreferencesHandler{preferencesService: preferencesService}
}

// PreferencesRequest represents the request payload for updating preferences
type PreferencesRequest struct {
	DarkMode     bool   `json:"dark_mode"`
	DateFormat   string `json:"date_format"`
	PrimaryColor string `json:"primary_color"`
}

// GetPreferences returns the stored preferences.
func (h *PreferencesHandler) GetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, h.preferencesService.Preferences())
}

// UpdatePreferences replaces the stored preferences.
func (h *PreferencesHandler) UpdatePreferences(c *gin.Context) {
	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	updated := h.preferencesService.Update(models.Preferences{
		DarkMode:     req.DarkMode,
		DateFormat:   req.DateFormat,
		PrimaryColor: req.PrimaryColor,
	})
	c.JSON(http.StatusOK, updated)
}
