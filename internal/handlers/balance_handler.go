package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "projectdollar/internal/errors"
	"projectdollar/internal/services"
)

// BalanceHandler handles cash balance requests
type BalanceHandler struct {
	balanceService services.BalanceServicer
}

// NewBalanceHandler creates a new BalanceHandler
func NewBalanceHandler(balanceService services.BalanceServicer) *BalanceHandler {
	return &BalanceHandler{balanceService: balanceService}
}

// DepositRequest represents the request payload for a cash deposit
type DepositRequest struct {
	Amount   string `json:"amount" binding:"required"`
	Currency string `json:"currency" binding:"required,wallet_currency"`
	Date     string `json:"date" binding:"omitempty,calendar_date"`
}

// ConvertRequest represents the request payload for a currency conversion
type ConvertRequest struct {
	Amount     string `json:"amount" binding:"required"`
	From       string `json:"from" binding:"required,wallet_currency"`
	CustomRate string `json:"custom_rate"`
}

// GetBalances returns the current cash balances.
func (h *BalanceHandler) GetBalances(c *gin.Context) {
	c.JSON(http.StatusOK, h.balanceService.Balances())
}

// ListDeposits returns the deposit history, newest first.
func (h *BalanceHandler) ListDeposits(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"deposits": h.balanceService.Deposits()})
}

// Deposit adds cash to one of the wallet currencies.
func (h *BalanceHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balances, err := h.balanceService.Deposit(services.DepositInput{
		Amount:   req.Amount,
		Currency: req.Currency,
		Date:     req.Date,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}

// Convert moves cash between the two wallet currencies.
func (h *BalanceHandler) Convert(c *gin.Context) {
	var req ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balances, err := h.balanceService.Convert(c.Request.Context(), services.ConvertInput{
		Amount:     req.Amount,
		From:       req.From,
		CustomRate: req.CustomRate,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}
