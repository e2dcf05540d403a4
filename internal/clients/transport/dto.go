package transport

import "github.com/google/uuid"

// CreateClientRequest contains data for registering a client.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Contact string `json:"contact" validate:"required,email,max=100"`
}

// UpdateClientRequest contains data for updating an existing client.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Contact *string `json:"contact,omitempty" validate:"omitempty,email,max=100"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	ProjectCount int       `json:"projectCount"`
	CreatedAt    string    `json:"createdAt"`
	UpdatedAt    string    `json:"updatedAt"`
}

// ClientListResponse wraps a list of clients.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
}
