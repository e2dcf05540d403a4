package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cev_portal_backend/internal/projects/service"
	"cev_portal_backend/internal/projects/transport"
	"cev_portal_backend/platform/httpkit"
	"cev_portal_backend/platform/validator"
)

// Handler handles HTTP requests for certification projects, their walls and
// certification records.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest    = "invalid request"
	msgValidationFailed  = "validation failed"
	msgInvalidProjectID  = "invalid project ID"
	msgInvalidWallID     = "invalid wall ID"
	msgInvalidListFilter = "invalid list filter"
)

// New creates a new projects handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// List retrieves projects with optional search, client and type filters.
// GET /api/v1/projects
func (h *Handler) List(c *gin.Context) {
	var req transport.ListProjectsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidListFilter, nil)
		return
	}

	result, err := h.svc.List(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetDetail retrieves the full project aggregate including systems, walls
// and the effective rating.
// GET /api/v1/projects/:id
func (h *Handler) GetDetail(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetDetail(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetRating resolves the effective rating of a project.
// GET /api/v1/projects/:id/rating
func (h *Handler) GetRating(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetRating(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create registers a new certification project.
// POST /api/v1/projects
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// Update updates an existing project.
// PUT /api/v1/projects/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req transport.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a project with its walls and certification record.
// DELETE /api/v1/projects/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ListWalls retrieves a project's walls.
// GET /api/v1/projects/:id/walls
func (h *Handler) ListWalls(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	result, err := h.svc.ListWalls(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateWall adds a wall to a project.
// POST /api/v1/projects/:id/walls
func (h *Handler) CreateWall(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req transport.CreateWallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateWall(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateWall updates a wall of a project.
// PUT /api/v1/projects/:id/walls/:wallId
func (h *Handler) UpdateWall(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	wallID, err := uuid.Parse(c.Param("wallId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidWallID, nil)
		return
	}

	var req transport.UpdateWallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateWall(c.Request.Context(), id, wallID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteWall removes a wall from a project.
// DELETE /api/v1/projects/:id/walls/:wallId
func (h *Handler) DeleteWall(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}
	wallID, err := uuid.Parse(c.Param("wallId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidWallID, nil)
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteWall(c.Request.Context(), id, wallID)) {
		return
	}
	httpkit.NoContent(c)
}

// GetCertification retrieves a project's certification record.
// GET /api/v1/projects/:id/certification
func (h *Handler) GetCertification(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetCertification(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// IssueCertification records the official certification of a project.
// POST /api/v1/projects/:id/certification
func (h *Handler) IssueCertification(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	var req transport.IssueCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.IssueCertification(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// RevokeCertification removes a project's certification record.
// DELETE /api/v1/projects/:id/certification
func (h *Handler) RevokeCertification(c *gin.Context) {
	id, ok := h.projectID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.RevokeCertification(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidProjectID, nil)
		return uuid.Nil, false
	}
	return id, true
}
