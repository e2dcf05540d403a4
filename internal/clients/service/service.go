package service

import (
	"context"

	"github.com/google/uuid"

	"cev_portal_backend/internal/clients/repository"
	"cev_portal_backend/internal/clients/transport"
	"cev_portal_backend/internal/events"
	"cev_portal_backend/platform/logger"
)

// Service provides business logic for clients.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new clients service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetByID retrieves a client by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.ClientResponse, error) {
	cl, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.ClientResponse{}, err
	}
	return toResponse(cl), nil
}

// List retrieves all clients.
func (s *Service) List(ctx context.Context) (transport.ClientListResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return transport.ClientListResponse{}, err
	}

	responses := make([]transport.ClientResponse, len(items))
	for i, item := range items {
		responses[i] = toResponse(item)
	}
	return transport.ClientListResponse{Items: responses, Total: len(responses)}, nil
}

// Create registers a new client.
func (s *Service) Create(ctx context.Context, req transport.CreateClientRequest) (transport.ClientResponse, error) {
	cl, err := s.repo.Create(ctx, repository.CreateParams{
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		return transport.ClientResponse{}, err
	}

	s.log.Info("client created", "id", cl.ID, "name", cl.Name)
	s.bus.Publish(ctx, events.ClientChanged{BaseEvent: events.NewBaseEvent(), ClientID: cl.ID})
	return toResponse(cl), nil
}

// Update updates an existing client.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateClientRequest) (transport.ClientResponse, error) {
	cl, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:      id,
		Name:    req.Name,
		Contact: req.Contact,
	})
	if err != nil {
		return transport.ClientResponse{}, err
	}

	s.log.Info("client updated", "id", cl.ID, "name", cl.Name)
	return toResponse(cl), nil
}

// Delete removes a client and, via storage-level cascade, all of its
// projects with their walls and certification records.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("client deleted", "id", id)
	s.bus.Publish(ctx, events.ClientChanged{BaseEvent: events.NewBaseEvent(), ClientID: id})
	return nil
}

func toResponse(cl repository.Client) transport.ClientResponse {
	return transport.ClientResponse{
		ID:           cl.ID,
		Name:         cl.Name,
		Contact:      cl.Contact,
		ProjectCount: cl.ProjectCount,
		CreatedAt:    cl.CreatedAt,
		UpdatedAt:    cl.UpdatedAt,
	}
}
