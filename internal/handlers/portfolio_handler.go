package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"projectdollar/internal/services"
	"projectdollar/internal/timeseries"
)

// PortfolioHandler handles portfolio valuation requests
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// GetSnapshot values the portfolio right now.
func (h *PortfolioHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolioService.Snapshot(c.Request.Context()))
}

// GetHistory returns the bucketed portfolio value history.
// The period query parameter selects the view; it defaults to day.
func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	period, err := timeseries.ParsePeriod(c.Query("period"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period": period.String(),
		"points": h.portfolioService.History(period),
	})
}
