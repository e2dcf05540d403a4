package handler

import (
	"github.com/gin-gonic/gin"

	"cev_portal_backend/internal/dashboard/service"
	"cev_portal_backend/platform/httpkit"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	svc *service.Service
}

// New creates a new dashboard handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GetStats returns the dashboard summary.
// GET /api/v1/dashboard
func (h *Handler) GetStats(c *gin.Context) {
	result, err := h.svc.GetStats(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
