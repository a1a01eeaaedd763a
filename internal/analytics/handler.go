package analytics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-trade/trading-portal/trading-portal-backend/internal/auth"
)

// SummarySource provides pre-shaped dashboard summaries
type SummarySource interface {
	GetDashboardSummary(ctx context.Context, companyName string, rangeDays int) (*DashboardSummary, error)
}

// Handler proxies dashboard summaries from the Analytics service
type Handler struct {
	source SummarySource
	logger *zap.Logger
}

// NewHandler creates a new analytics handler
func NewHandler(source SummarySource, logger *zap.Logger) *Handler {
	return &Handler{
		source: source,
		logger: logger,
	}
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/summary", h.getSummary)
}

// getSummary handles GET /api/v1/dashboard/summary
func (h *Handler) getSummary(c *gin.Context) {
	caller := auth.CompanyFromContext(c)

	rangeDays := 30
	if v := c.Query("range"); v != "" {
		if days, err := strconv.Atoi(v); err == nil && days > 0 {
			rangeDays = days
		}
	}

	summary, err := h.source.GetDashboardSummary(c.Request.Context(), caller, rangeDays)
	if err != nil {
		h.logger.Error("Failed to fetch dashboard summary", zap.Error(err), zap.String("company", caller))
		c.JSON(http.StatusBadGateway, gin.H{"error": "analytics service unavailable"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
