package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"cev_portal_backend/internal/events"
	"cev_portal_backend/internal/projects/repository"
	"cev_portal_backend/internal/projects/transport"
	"cev_portal_backend/platform/apperr"
	"cev_portal_backend/platform/logger"
)

const (
	dateLayout      = "2006-01-02"
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service provides business logic for certification projects: the project
// aggregate, its walls, its certification record and the effective rating.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new projects service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// List retrieves projects matching the given filters, paginated.
func (s *Service) List(ctx context.Context, req transport.ListProjectsRequest) (transport.ProjectListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	items, total, err := s.repo.List(ctx, repository.ListParams{
		Search:   req.Search,
		ClientID: req.ClientID,
		TypeID:   req.TypeID,
		Limit:    pageSize,
		Offset:   (page - 1) * pageSize,
	})
	if err != nil {
		return transport.ProjectListResponse{}, err
	}

	responses := make([]transport.ProjectResponse, len(items))
	for i, item := range items {
		responses[i] = toProjectResponse(item)
	}

	totalPages := (total + pageSize - 1) / pageSize
	return transport.ProjectListResponse{
		Items:      responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetByID retrieves a single project summary.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ProjectResponse{}, err
	}
	return toProjectResponse(project), nil
}

// GetDetail retrieves the full project aggregate: summary, climate systems,
// walls and the effective rating.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.ProjectDetailResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ProjectDetailResponse{}, err
	}

	systems, err := s.repo.ListSystems(ctx, id)
	if err != nil {
		return transport.ProjectDetailResponse{}, err
	}

	walls, err := s.repo.ListWalls(ctx, id)
	if err != nil {
		return transport.ProjectDetailResponse{}, err
	}

	rating, err := s.resolveRating(ctx, id, walls)
	if err != nil {
		return transport.ProjectDetailResponse{}, err
	}

	systemResponses := make([]transport.SystemResponse, len(systems))
	for i, sys := range systems {
		systemResponses[i] = transport.SystemResponse{
			ID:                sys.ID,
			Kind:              sys.Kind,
			NominalEfficiency: sys.NominalEfficiency,
		}
	}

	wallResponses := make([]transport.WallResponse, len(walls))
	for i, wall := range walls {
		wallResponses[i] = toWallResponse(wall)
	}

	return transport.ProjectDetailResponse{
		ProjectResponse: toProjectResponse(project),
		Systems:         systemResponses,
		Walls:           wallResponses,
		Rating:          rating,
	}, nil
}

// GetRating resolves the effective rating of a project on its own, for
// callers that do not need the full aggregate.
func (s *Service) GetRating(ctx context.Context, id uuid.UUID) (transport.RatingResponse, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return transport.RatingResponse{}, err
	}
	if !exists {
		return transport.RatingResponse{}, apperr.NotFound("project not found")
	}

	walls, err := s.repo.ListWalls(ctx, id)
	if err != nil {
		return transport.RatingResponse{}, err
	}

	return s.resolveRating(ctx, id, walls)
}

// Create registers a new certification project with its climate system set.
// The start date defaults to today when omitted.
func (s *Service) Create(ctx context.Context, req transport.CreateProjectRequest) (transport.ProjectResponse, error) {
	startDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return transport.ProjectResponse{}, apperr.Validation("startDate must be YYYY-MM-DD")
		}
		startDate = parsed
	}

	project, err := s.repo.Create(ctx, repository.CreateParams{
		ClientID:    req.ClientID,
		TypeID:      req.TypeID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		SystemIDs:   req.SystemIDs,
	})
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.log.Info("project created", "id", project.ID, "name", project.Name)
	s.bus.Publish(ctx, events.ProjectChanged{BaseEvent: events.NewBaseEvent(), ProjectID: project.ID})
	return toProjectResponse(project), nil
}

// Update mutates an existing project. A non-nil systemIds replaces the
// entire climate system set.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateProjectRequest) (transport.ProjectResponse, error) {
	var startDate *time.Time
	if req.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return transport.ProjectResponse{}, apperr.Validation("startDate must be YYYY-MM-DD")
		}
		startDate = &parsed
	}

	project, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		ClientID:    req.ClientID,
		TypeID:      req.TypeID,
		SystemIDs:   req.SystemIDs,
	})
	if err != nil {
		return transport.ProjectResponse{}, err
	}

	s.log.Info("project updated", "id", project.ID, "name", project.Name)
	s.bus.Publish(ctx, events.ProjectChanged{BaseEvent: events.NewBaseEvent(), ProjectID: project.ID})
	return toProjectResponse(project), nil
}

// Delete removes a project together with its walls and certification record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("project deleted", "id", id)
	s.bus.Publish(ctx, events.ProjectChanged{BaseEvent: events.NewBaseEvent(), ProjectID: id})
	return nil
}

// ListWalls retrieves the walls of a project.
func (s *Service) ListWalls(ctx context.Context, projectID uuid.UUID) (transport.WallListResponse, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return transport.WallListResponse{}, err
	}

	walls, err := s.repo.ListWalls(ctx, projectID)
	if err != nil {
		return transport.WallListResponse{}, err
	}

	responses := make([]transport.WallResponse, len(walls))
	for i, wall := range walls {
		responses[i] = toWallResponse(wall)
	}
	return transport.WallListResponse{Items: responses, Total: len(responses)}, nil
}

// CreateWall adds a wall to a project. The wall immediately participates in
// the estimated rating.
func (s *Service) CreateWall(ctx context.Context, projectID uuid.UUID, req transport.CreateWallRequest) (transport.WallResponse, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return transport.WallResponse{}, err
	}

	wall, err := s.repo.CreateWall(ctx, repository.CreateWallParams{
		ProjectID:   projectID,
		MaterialID:  req.MaterialID,
		Location:    req.Location,
		SurfaceArea: req.SurfaceArea,
	})
	if err != nil {
		return transport.WallResponse{}, err
	}

	s.log.Info("wall created", "id", wall.ID, "projectId", projectID)
	s.bus.Publish(ctx, events.ProjectChanged{BaseEvent: events.NewBaseEvent(), ProjectID: projectID})
	return toWallResponse(wall), nil
}

// UpdateWall mutates a wall of a project.
func (s *Service) UpdateWall(ctx context.Context, projectID, wallID uuid.UUID, req transport.UpdateWallRequest) (transport.WallResponse, error) {
	wall, err := s.repo.UpdateWall(ctx, repository.UpdateWallParams{
		ProjectID:   projectID,
		WallID:      wallID,
		Location:    req.Location,
		SurfaceArea: req.SurfaceArea,
		MaterialID:  req.MaterialID,
	})
	if err != nil {
		return transport.WallResponse{}, err
	}

	s.log.Info("wall updated", "id", wall.ID, "projectId", projectID)
	s.bus.Publish(ctx, events.ProjectChanged{BaseEvent: events.NewBaseEvent(), ProjectID: projectID})
	return toWallResponse(wall), nil
}

// DeleteWall removes a wall from a project.
func (s *Service) DeleteWall(ctx context.Context, projectID, wallID uuid.UUID) error {
	if err := s.repo.DeleteWall(ctx, projectID, wallID); err != nil {
		return err
	}

	s.log.Info("wall deleted", "id", wallID, "projectId", projectID)
	s.bus.Publish(ctx, events.ProjectChanged{BaseEvent: events.NewBaseEvent(), ProjectID: projectID})
	return nil
}

// GetCertification retrieves the official certification record of a project.
func (s *Service) GetCertification(ctx context.Context, projectID uuid.UUID) (transport.CertificationResponse, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return transport.CertificationResponse{}, err
	}

	cert, err := s.repo.GetCertification(ctx, projectID)
	if err != nil {
		return transport.CertificationResponse{}, err
	}
	return toCertificationResponse(cert), nil
}

// IssueCertification records the official certification of a project. From
// that point the official rating overrides the estimate. A project can hold
// at most one record; issuing a second one is a conflict.
func (s *Service) IssueCertification(ctx context.Context, projectID uuid.UUID, req transport.IssueCertificationRequest) (transport.CertificationResponse, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return transport.CertificationResponse{}, err
	}

	if req.AnnualEnergyConsumption.IsNegative() {
		return transport.CertificationResponse{}, apperr.Validation("annualEnergyConsumption must not be negative")
	}

	certDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.CertificationDate != nil {
		parsed, err := time.Parse(dateLayout, *req.CertificationDate)
		if err != nil {
			return transport.CertificationResponse{}, apperr.Validation("certificationDate must be YYYY-MM-DD")
		}
		certDate = parsed
	}

	cert, err := s.repo.CreateCertification(ctx, repository.CreateCertificationParams{
		ProjectID:               projectID,
		Grade:                   req.Grade,
		AnnualEnergyConsumption: req.AnnualEnergyConsumption,
		CertificationDate:       certDate,
	})
	if err != nil {
		return transport.CertificationResponse{}, err
	}

	s.log.Info("certification issued", "projectId", projectID, "grade", cert.Grade)
	s.bus.Publish(ctx, events.CertificationIssued{
		BaseEvent: events.NewBaseEvent(),
		ProjectID: projectID,
		Grade:     cert.Grade,
	})
	return toCertificationResponse(cert), nil
}

// RevokeCertification removes a project's certification record, returning
// the project to its estimated rating.
func (s *Service) RevokeCertification(ctx context.Context, projectID uuid.UUID) error {
	if err := s.requireProject(ctx, projectID); err != nil {
		return err
	}

	if err := s.repo.DeleteCertification(ctx, projectID); err != nil {
		return err
	}

	s.log.Info("certification revoked", "projectId", projectID)
	s.bus.Publish(ctx, events.CertificationRevoked{BaseEvent: events.NewBaseEvent(), ProjectID: projectID})
	return nil
}

// resolveRating is the single place where official and estimated ratings
// meet: an existing certification record wins, otherwise the grade is
// computed from the walls.
func (s *Service) resolveRating(ctx context.Context, projectID uuid.UUID, walls []repository.Wall) (transport.RatingResponse, error) {
	cert, err := s.repo.GetCertification(ctx, projectID)
	switch {
	case err == nil:
		certDate := cert.CertificationDate.Format(dateLayout)
		return transport.RatingResponse{
			Grade:             cert.Grade,
			ConsumptionKwhM2:  cert.AnnualEnergyConsumption,
			BadgeClass:        BadgeClass(Grade(cert.Grade)),
			IsOfficial:        true,
			CertificationDate: &certDate,
		}, nil
	case apperr.GetKind(err) == apperr.KindNotFound:
		// fall through to the estimate
	default:
		return transport.RatingResponse{}, err
	}

	measures := make([]WallMeasure, len(walls))
	for i, wall := range walls {
		measures[i] = WallMeasure{
			SurfaceArea:  wall.SurfaceArea,
			Conductivity: wall.Conductivity,
		}
	}

	grade := ComputeGrade(measures)
	return transport.RatingResponse{
		Grade:            string(grade),
		ConsumptionKwhM2: EstimateConsumption(grade),
		BadgeClass:       BadgeClass(grade),
		IsOfficial:       false,
	}, nil
}

func (s *Service) requireProject(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("project not found")
	}
	return nil
}

func toProjectResponse(p repository.Project) transport.ProjectResponse {
	return transport.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate.Format(dateLayout),
		ClientID:    p.ClientID,
		ClientName:  p.ClientName,
		TypeID:      p.TypeID,
		TypeName:    p.TypeName,
		Status:      statusLabel(p.CertifiedGrade),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// statusLabel renders the list-view status: certified projects show their
// official grade, everything else is still in progress.
func statusLabel(certifiedGrade *string) string {
	if certifiedGrade != nil {
		return fmt.Sprintf("Certified (%s)", *certifiedGrade)
	}
	return "In progress"
}

func toWallResponse(w repository.Wall) transport.WallResponse {
	return transport.WallResponse{
		ID:           w.ID,
		Location:     w.Location,
		SurfaceArea:  w.SurfaceArea,
		MaterialID:   w.MaterialID,
		MaterialName: w.MaterialName,
		Conductivity: w.Conductivity,
	}
}

func toCertificationResponse(c repository.Certification) transport.CertificationResponse {
	return transport.CertificationResponse{
		ID:                      c.ID,
		ProjectID:               c.ProjectID,
		Grade:                   c.Grade,
		AnnualEnergyConsumption: c.AnnualEnergyConsumption,
		CertificationDate:       c.CertificationDate.Format(dateLayout),
	}
}
