package requests

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbon-trade/trading-portal/trading-portal-backend/internal/auth"
)

// Handler handles HTTP requests for the trade request lifecycle
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new requests handler
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers trade request routes
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	reqs := router.Group("/requests")
	{
		reqs.POST("/new", h.createRequest)
		reqs.GET("/my", h.listOutgoing)
		reqs.GET("/incoming", h.listIncoming)
		reqs.GET("/alerts", h.listAlerts)
		reqs.PUT("/:id", h.updateRequest)
		reqs.DELETE("/:id", h.deleteRequest)
		reqs.PATCH("/:id/status", h.updateStatus)
		reqs.POST("/bulk-action", h.bulkAction)
	}
}

// createRequest handles POST /api/v1/requests/new
func (h *Handler) createRequest(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := auth.CompanyFromContext(c)

	record, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		h.logger.Error("Failed to create trade request", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// listOutgoing handles GET /api/v1/requests/my
func (h *Handler) listOutgoing(c *gin.Context) {
	caller := auth.CompanyFromContext(c)

	views, err := h.service.Outgoing(c.Request.Context(), caller)
	if err != nil {
		h.logger.Error("Failed to list outgoing requests", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// listIncoming handles GET /api/v1/requests/incoming
func (h *Handler) listIncoming(c *gin.Context) {
	caller := auth.CompanyFromContext(c)

	views, err := h.service.Incoming(c.Request.Context(), caller)
	if err != nil {
		h.logger.Error("Failed to list incoming requests", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// listAlerts handles GET /api/v1/requests/alerts
func (h *Handler) listAlerts(c *gin.Context) {
	caller := auth.CompanyFromContext(c)

	views, err := h.service.Alerts(c.Request.Context(), caller)
	if err != nil {
		h.logger.Error("Failed to list alerts", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}

// updateRequest handles PUT /api/v1/requests/:id
func (h *Handler) updateRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := auth.CompanyFromContext(c)

	record, err := h.service.Edit(c.Request.Context(), id, caller, req)
	if err != nil {
		h.logger.Error("Failed to update trade request", zap.Error(err), zap.String("request_id", id.String()))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// deleteRequest handles DELETE /api/v1/requests/:id
func (h *Handler) deleteRequest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	caller := auth.CompanyFromContext(c)

	if err := h.service.Withdraw(c.Request.Context(), id, caller); err != nil {
		h.logger.Error("Failed to withdraw trade request", zap.Error(err), zap.String("request_id", id.String()))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request deleted successfully"})
}

// updateStatus handles PATCH /api/v1/requests/:id/status
func (h *Handler) updateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := auth.CompanyFromContext(c)

	record, err := h.service.Respond(c.Request.Context(), id, caller, req.Status)
	if err != nil {
		h.logger.Error("Failed to respond to trade request", zap.Error(err), zap.String("request_id", id.String()))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// bulkAction handles POST /api/v1/requests/bulk-action
func (h *Handler) bulkAction(c *gin.Context) {
	var req BulkRespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caller := auth.CompanyFromContext(c)

	result, err := h.service.BulkRespond(c.Request.Context(), req.IDs, caller, req.Status)
	if err != nil {
		h.logger.Error("Failed to process bulk action", zap.Error(err))
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps the lifecycle error taxonomy to HTTP statuses
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrTransport):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
