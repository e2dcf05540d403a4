package repository

import (
	"context"

	"github.com/google/uuid"
)

// Client is the owner of zero or more certification projects. Deleting a
// client cascades to its projects (and transitively to their walls and
// certification records) at the storage layer.
type Client struct {
	ID           uuid.UUID
	Name         string
	Contact      string
	ProjectCount int
	CreatedAt    string
	UpdatedAt    string
}

// CreateParams contains parameters for creating a client.
type CreateParams struct {
	Name    string
	Contact string
}

// UpdateParams contains parameters for updating a client.
type UpdateParams struct {
	ID      uuid.UUID
	Name    *string
	Contact *string
}

// Repository provides persistence for clients.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Client, error)
	List(ctx context.Context) ([]Client, error)
	Create(ctx context.Context, params CreateParams) (Client, error)
	Update(ctx context.Context, params UpdateParams) (Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
