package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateMaterialRequest contains data for creating an insulating material.
type CreateMaterialRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Conductivity decimal.Decimal `json:"conductivity" validate:"dgt0"`
}

// UpdateMaterialRequest contains data for updating an existing material.
type UpdateMaterialRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Conductivity *decimal.Decimal `json:"conductivity,omitempty" validate:"omitempty,dgt0"`
}

// MaterialResponse represents a material in API responses.
type MaterialResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Conductivity decimal.Decimal `json:"conductivity"`
	CreatedAt    string          `json:"createdAt"`
	UpdatedAt    string          `json:"updatedAt"`
}

// MaterialListResponse wraps a list of materials.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Total int                `json:"total"`
}

// CreateProjectTypeRequest contains data for creating a project type.
type CreateProjectTypeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// UpdateProjectTypeRequest contains data for updating a project type.
type UpdateProjectTypeRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
}

// ProjectTypeResponse represents a project type in API responses.
type ProjectTypeResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

// ProjectTypeListResponse wraps a list of project types.
type ProjectTypeListResponse struct {
	Items []ProjectTypeResponse `json:"items"`
	Total int                   `json:"total"`
}

// CreateClimateSystemRequest contains data for creating a climate system.
// NominalEfficiency defaults to 1.0 when omitted.
type CreateClimateSystemRequest struct {
	Kind              string           `json:"kind" validate:"required,min=1,max=100"`
	NominalEfficiency *decimal.Decimal `json:"nominalEfficiency,omitempty" validate:"omitempty,dgt0"`
}

// UpdateClimateSystemRequest contains data for updating a climate system.
type UpdateClimateSystemRequest struct {
	Kind              *string          `json:"kind,omitempty" validate:"omitempty,min=1,max=100"`
	NominalEfficiency *decimal.Decimal `json:"nominalEfficiency,omitempty" validate:"omitempty,dgt0"`
}

// ClimateSystemResponse represents a climate system in API responses.
type ClimateSystemResponse struct {
	ID                uuid.UUID       `json:"id"`
	Kind              string          `json:"kind"`
	NominalEfficiency decimal.Decimal `json:"nominalEfficiency"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt"`
}

// ClimateSystemListResponse wraps a list of climate systems.
type ClimateSystemListResponse struct {
	Items []ClimateSystemResponse `json:"items"`
	Total int                     `json:"total"`
}
