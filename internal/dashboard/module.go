// Package dashboard provides the dashboard bounded context: aggregate
// counts, grade distribution and recent projects, optionally cached.
package dashboard

import (
	"cev_portal_backend/internal/dashboard/handler"
	"cev_portal_backend/internal/dashboard/repository"
	"cev_portal_backend/internal/dashboard/service"
	"cev_portal_backend/internal/events"
	apphttp "cev_portal_backend/internal/http"
	"cev_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the dashboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the dashboard module. A nil cache
// disables caching; the event subscriptions keep a non-nil cache honest.
func NewModule(pool *pgxpool.Pool, cache *redis.Client, bus events.Bus, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cache, log)
	svc.RegisterHandlers(bus)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "dashboard"
}

// RegisterRoutes mounts dashboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/dashboard", m.handler.GetStats)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
