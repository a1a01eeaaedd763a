package account

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-trade/trading-portal/trading-portal-backend/internal/auth"
)

// Handler handles HTTP requests for account balances
type Handler struct {
	repo   Repository
	logger *zap.Logger
}

// NewHandler creates a new account handler
func NewHandler(repo Repository, logger *zap.Logger) *Handler {
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// RegisterRoutes registers account routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/account/balance", h.getBalance)
}

// getBalance handles GET /api/v1/account/balance
func (h *Handler) getBalance(c *gin.Context) {
	caller := auth.CompanyFromContext(c)

	balance, err := h.repo.GetBalance(c.Request.Context(), caller)
	if err != nil {
		if errors.Is(err, ErrBalanceNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "balance not found"})
			return
		}
		h.logger.Error("Failed to get account balance", zap.Error(err), zap.String("company", caller))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, balance)
}
