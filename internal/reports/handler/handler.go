package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cev_portal_backend/internal/reports/service"
	"cev_portal_backend/platform/httpkit"
)

// Handler handles HTTP requests for project reports.
type Handler struct {
	svc *service.Service
}

// New creates a new reports handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// GetProjectReport streams the certification report PDF as an attachment.
// GET /api/v1/projects/:id/report
func (h *Handler) GetProjectReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid project ID", nil)
		return
	}

	report, err := h.svc.GenerateProjectReport(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, "application/pdf", report.Content)
}
