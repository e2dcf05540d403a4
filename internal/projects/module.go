// Package projects provides the certification project bounded context: the
// project aggregate with its walls and certification record, plus the
// energy rating calculation.
package projects

import (
	"cev_portal_backend/internal/events"
	apphttp "cev_portal_backend/internal/http"
	"cev_portal_backend/internal/projects/handler"
	"cev_portal_backend/internal/projects/repository"
	"cev_portal_backend/internal/projects/service"
	"cev_portal_backend/platform/logger"
	"cev_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the projects bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the projects module with all its dependencies.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "projects"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts project routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/projects")
	group.GET("", m.handler.List)
	group.POST("", m.handler.Create)
	group.GET("/:id", m.handler.GetDetail)
	group.PUT("/:id", m.handler.Update)
	group.DELETE("/:id", m.handler.Delete)

	group.GET("/:id/rating", m.handler.GetRating)

	group.GET("/:id/walls", m.handler.ListWalls)
	group.POST("/:id/walls", m.handler.CreateWall)
	group.PUT("/:id/walls/:wallId", m.handler.UpdateWall)
	group.DELETE("/:id/walls/:wallId", m.handler.DeleteWall)

	group.GET("/:id/certification", m.handler.GetCertification)
	group.POST("/:id/certification", m.handler.IssueCertification)
	group.DELETE("/:id/certification", m.handler.RevokeCertification)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
