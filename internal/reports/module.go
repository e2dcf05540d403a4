// Package reports provides PDF report generation for certification
// projects, built on top of the projects module.
package reports

import (
	apphttp "cev_portal_backend/internal/http"
	"cev_portal_backend/internal/reports/handler"
	"cev_portal_backend/internal/reports/service"
	"cev_portal_backend/platform/logger"
)

// Module is the reports module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the reports module on top of the
// projects read path.
func NewModule(projects service.ProjectReader, log *logger.Logger) *Module {
	svc := service.New(projects, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reports"
}

// RegisterRoutes mounts report routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/projects/:id/report", m.handler.GetProjectReport)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
