// Package catalog provides the reference-data bounded context module:
// insulating materials, project types and climate systems. All three are
// referenced by projects and walls but never owned by them.
package catalog

import (
	"cev_portal_backend/internal/catalog/handler"
	"cev_portal_backend/internal/catalog/repository"
	"cev_portal_backend/internal/catalog/service"
	apphttp "cev_portal_backend/internal/http"
	"cev_portal_backend/platform/logger"
	"cev_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the catalog module with all its dependencies.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Protected read-only endpoints
	ctx.Protected.GET("/materials", m.handler.ListMaterials)
	ctx.Protected.GET("/materials/:id", m.handler.GetMaterial)
	ctx.Protected.GET("/project-types", m.handler.ListProjectTypes)
	ctx.Protected.GET("/project-types/:id", m.handler.GetProjectType)
	ctx.Protected.GET("/climate-systems", m.handler.ListClimateSystems)
	ctx.Protected.GET("/climate-systems/:id", m.handler.GetClimateSystem)

	// Admin-only write endpoints
	materials := ctx.Admin.Group("/materials")
	materials.POST("", m.handler.CreateMaterial)
	materials.PUT("/:id", m.handler.UpdateMaterial)
	materials.DELETE("/:id", m.handler.DeleteMaterial)

	projectTypes := ctx.Admin.Group("/project-types")
	projectTypes.POST("", m.handler.CreateProjectType)
	projectTypes.PUT("/:id", m.handler.UpdateProjectType)
	projectTypes.DELETE("/:id", m.handler.DeleteProjectType)

	climateSystems := ctx.Admin.Group("/climate-systems")
	climateSystems.POST("", m.handler.CreateClimateSystem)
	climateSystems.PUT("/:id", m.handler.UpdateClimateSystem)
	climateSystems.DELETE("/:id", m.handler.DeleteClimateSystem)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
