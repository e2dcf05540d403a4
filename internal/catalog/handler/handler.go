package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"cev_portal_backend/internal/catalog/service"
	"cev_portal_backend/internal/catalog/transport"
	"cev_portal_backend/platform/httpkit"
	"cev_portal_backend/platform/validator"
)

// Handler handles HTTP requests for catalog reference data.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid ID"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.UUID{}, false
	}
	return id, true
}

// ---------------------------------------------------------------------------
// Materials
// ---------------------------------------------------------------------------

// ListMaterials retrieves all materials.
// GET /api/v1/materials
func (h *Handler) ListMaterials(c *gin.Context) {
	result, err := h.svc.ListMaterials(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetMaterial retrieves a material by ID.
// GET /api/v1/materials/:id
func (h *Handler) GetMaterial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetMaterial(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateMaterial creates a new material.
// POST /api/v1/admin/materials
func (h *Handler) CreateMaterial(c *gin.Context) {
	var req transport.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateMaterial(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateMaterial updates an existing material.
// PUT /api/v1/admin/materials/:id
func (h *Handler) UpdateMaterial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateMaterial(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteMaterial removes a material.
// DELETE /api/v1/admin/materials/:id
func (h *Handler) DeleteMaterial(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteMaterial(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ---------------------------------------------------------------------------
// Project types
// ---------------------------------------------------------------------------

// ListProjectTypes retrieves all project types.
// GET /api/v1/project-types
func (h *Handler) ListProjectTypes(c *gin.Context) {
	result, err := h.svc.ListProjectTypes(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetProjectType retrieves a project type by ID.
// GET /api/v1/project-types/:id
func (h *Handler) GetProjectType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetProjectType(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateProjectType creates a new project type.
// POST /api/v1/admin/project-types
func (h *Handler) CreateProjectType(c *gin.Context) {
	var req transport.CreateProjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateProjectType(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateProjectType updates an existing project type.
// PUT /api/v1/admin/project-types/:id
func (h *Handler) UpdateProjectType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateProjectTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateProjectType(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteProjectType removes a project type.
// DELETE /api/v1/admin/project-types/:id
func (h *Handler) DeleteProjectType(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteProjectType(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

// ---------------------------------------------------------------------------
// Climate systems
// ---------------------------------------------------------------------------

// ListClimateSystems retrieves all climate systems.
// GET /api/v1/climate-systems
func (h *Handler) ListClimateSystems(c *gin.Context) {
	result, err := h.svc.ListClimateSystems(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetClimateSystem retrieves a climate system by ID.
// GET /api/v1/climate-systems/:id
func (h *Handler) GetClimateSystem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetClimateSystem(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreateClimateSystem creates a new climate system.
// POST /api/v1/admin/climate-systems
func (h *Handler) CreateClimateSystem(c *gin.Context) {
	var req transport.CreateClimateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateClimateSystem(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateClimateSystem updates an existing climate system.
// PUT /api/v1/admin/climate-systems/:id
func (h *Handler) UpdateClimateSystem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateClimateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateClimateSystem(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteClimateSystem removes a climate system.
// DELETE /api/v1/admin/climate-systems/:id
func (h *Handler) DeleteClimateSystem(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if httpkit.HandleError(c, h.svc.DeleteClimateSystem(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}
