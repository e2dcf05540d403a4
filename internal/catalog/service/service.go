package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cev_portal_backend/internal/catalog/repository"
	"cev_portal_backend/internal/catalog/transport"
	"cev_portal_backend/platform/apperr"
	"cev_portal_backend/platform/logger"
)

// Service provides business logic for the reference-data catalog.
type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ---------------------------------------------------------------------------
// Materials
// ---------------------------------------------------------------------------

// GetMaterial retrieves a material by ID.
func (s *Service) GetMaterial(ctx context.Context, id uuid.UUID) (transport.MaterialResponse, error) {
	m, err := s.repo.GetMaterial(ctx, id)
	if err != nil {
		return transport.MaterialResponse{}, err
	}
	return toMaterialResponse(m), nil
}

// ListMaterials retrieves all materials.
func (s *Service) ListMaterials(ctx context.Context) (transport.MaterialListResponse, error) {
	items, err := s.repo.ListMaterials(ctx)
	if err != nil {
		return transport.MaterialListResponse{}, err
	}

	responses := make([]transport.MaterialResponse, len(items))
	for i, item := range items {
		responses[i] = toMaterialResponse(item)
	}
	return transport.MaterialListResponse{Items: responses, Total: len(responses)}, nil
}

// CreateMaterial creates a new material.
func (s *Service) CreateMaterial(ctx context.Context, req transport.CreateMaterialRequest) (transport.MaterialResponse, error) {
	m, err := s.repo.CreateMaterial(ctx, repository.CreateMaterialParams{
		Name:         req.Name,
		Conductivity: req.Conductivity,
	})
	if err != nil {
		return transport.MaterialResponse{}, err
	}

	s.log.Info("material created", "id", m.ID, "name", m.Name, "conductivity", m.Conductivity)
	return toMaterialResponse(m), nil
}

// UpdateMaterial updates an existing material.
func (s *Service) UpdateMaterial(ctx context.Context, id uuid.UUID, req transport.UpdateMaterialRequest) (transport.MaterialResponse, error) {
	m, err := s.repo.UpdateMaterial(ctx, repository.UpdateMaterialParams{
		ID:           id,
		Name:         req.Name,
		Conductivity: req.Conductivity,
	})
	if err != nil {
		return transport.MaterialResponse{}, err
	}

	s.log.Info("material updated", "id", m.ID, "name", m.Name)
	return toMaterialResponse(m), nil
}

// DeleteMaterial removes a material. Deletion is rejected while any wall
// still references the material; dependents must be removed first.
func (s *Service) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	used, err := s.repo.MaterialHasWalls(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("material is referenced by existing walls")
	}

	if err := s.repo.DeleteMaterial(ctx, id); err != nil {
		return err
	}

	s.log.Info("material deleted", "id", id)
	return nil
}

// ---------------------------------------------------------------------------
// Project types
// ---------------------------------------------------------------------------

// GetProjectType retrieves a project type by ID.
func (s *Service) GetProjectType(ctx context.Context, id uuid.UUID) (transport.ProjectTypeResponse, error) {
	pt, err := s.repo.GetProjectType(ctx, id)
	if err != nil {
		return transport.ProjectTypeResponse{}, err
	}
	return toProjectTypeResponse(pt), nil
}

// ListProjectTypes retrieves all project types.
func (s *Service) ListProjectTypes(ctx context.Context) (transport.ProjectTypeListResponse, error) {
	items, err := s.repo.ListProjectTypes(ctx)
	if err != nil {
		return transport.ProjectTypeListResponse{}, err
	}

	responses := make([]transport.ProjectTypeResponse, len(items))
	for i, item := range items {
		responses[i] = toProjectTypeResponse(item)
	}
	return transport.ProjectTypeListResponse{Items: responses, Total: len(responses)}, nil
}

// CreateProjectType creates a new project type.
func (s *Service) CreateProjectType(ctx context.Context, req transport.CreateProjectTypeRequest) (transport.ProjectTypeResponse, error) {
	pt, err := s.repo.CreateProjectType(ctx, req.Name)
	if err != nil {
		return transport.ProjectTypeResponse{}, err
	}

	s.log.Info("project type created", "id", pt.ID, "name", pt.Name)
	return toProjectTypeResponse(pt), nil
}

// UpdateProjectType updates an existing project type.
func (s *Service) UpdateProjectType(ctx context.Context, id uuid.UUID, req transport.UpdateProjectTypeRequest) (transport.ProjectTypeResponse, error) {
	pt, err := s.repo.UpdateProjectType(ctx, id, req.Name)
	if err != nil {
		return transport.ProjectTypeResponse{}, err
	}

	s.log.Info("project type updated", "id", pt.ID, "name", pt.Name)
	return toProjectTypeResponse(pt), nil
}

// DeleteProjectType removes a project type unless a project references it.
func (s *Service) DeleteProjectType(ctx context.Context, id uuid.UUID) error {
	used, err := s.repo.ProjectTypeHasProjects(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return apperr.Conflict("project type is referenced by existing projects")
	}

	if err := s.repo.DeleteProjectType(ctx, id); err != nil {
		return err
	}

	s.log.Info("project type deleted", "id", id)
	return nil
}

// ---------------------------------------------------------------------------
// Climate systems
// ---------------------------------------------------------------------------

// GetClimateSystem retrieves a climate system by ID.
func (s *Service) GetClimateSystem(ctx context.Context, id uuid.UUID) (transport.ClimateSystemResponse, error) {
	cs, err := s.repo.GetClimateSystem(ctx, id)
	if err != nil {
		return transport.ClimateSystemResponse{}, err
	}
	return toClimateSystemResponse(cs), nil
}

// ListClimateSystems retrieves all climate systems.
func (s *Service) ListClimateSystems(ctx context.Context) (transport.ClimateSystemListResponse, error) {
	items, err := s.repo.ListClimateSystems(ctx)
	if err != nil {
		return transport.ClimateSystemListResponse{}, err
	}

	responses := make([]transport.ClimateSystemResponse, len(items))
	for i, item := range items {
		responses[i] = toClimateSystemResponse(item)
	}
	return transport.ClimateSystemListResponse{Items: responses, Total: len(responses)}, nil
}

// CreateClimateSystem creates a new climate system. The nominal efficiency
// defaults to 1.0 when the request omits it.
func (s *Service) CreateClimateSystem(ctx context.Context, req transport.CreateClimateSystemRequest) (transport.ClimateSystemResponse, error) {
	efficiency := decimal.NewFromInt(1)
	if req.NominalEfficiency != nil {
		efficiency = *req.NominalEfficiency
	}

	cs, err := s.repo.CreateClimateSystem(ctx, repository.CreateClimateSystemParams{
		Kind:              req.Kind,
		NominalEfficiency: efficiency,
	})
	if err != nil {
		return transport.ClimateSystemResponse{}, err
	}

	s.log.Info("climate system created", "id", cs.ID, "kind", cs.Kind)
	return toClimateSystemResponse(cs), nil
}

// UpdateClimateSystem updates an existing climate system.
func (s *Service) UpdateClimateSystem(ctx context.Context, id uuid.UUID, req transport.UpdateClimateSystemRequest) (transport.ClimateSystemResponse, error) {
	cs, err := s.repo.UpdateClimateSystem(ctx, repository.UpdateClimateSystemParams{
		ID:                id,
		Kind:              req.Kind,
		NominalEfficiency: req.NominalEfficiency,
	})
	if err != nil {
		return transport.ClimateSystemResponse{}, err
	}

	s.log.Info("climate system updated", "id", cs.ID, "kind", cs.Kind)
	return toClimateSystemResponse(cs), nil
}

// DeleteClimateSystem removes a climate system, detaching it from any
// projects that use it.
func (s *Service) DeleteClimateSystem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteClimateSystem(ctx, id); err != nil {
		return err
	}

	s.log.Info("climate system deleted", "id", id)
	return nil
}

func toMaterialResponse(m repository.Material) transport.MaterialResponse {
	return transport.MaterialResponse{
		ID:           m.ID,
		Name:         m.Name,
		Conductivity: m.Conductivity,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toProjectTypeResponse(pt repository.ProjectType) transport.ProjectTypeResponse {
	return transport.ProjectTypeResponse{
		ID:        pt.ID,
		Name:      pt.Name,
		CreatedAt: pt.CreatedAt,
		UpdatedAt: pt.UpdatedAt,
	}
}

func toClimateSystemResponse(cs repository.ClimateSystem) transport.ClimateSystemResponse {
	return transport.ClimateSystemResponse{
		ID:                cs.ID,
		Kind:              cs.Kind,
		NominalEfficiency: cs.NominalEfficiency,
		CreatedAt:         cs.CreatedAt,
		UpdatedAt:         cs.UpdatedAt,
	}
}
