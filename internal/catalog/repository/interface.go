package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is an insulating material with its thermal conductivity (W/m·K).
type Material struct {
	ID           uuid.UUID
	Name         string
	Conductivity decimal.Decimal
	CreatedAt    string
	UpdatedAt    string
}

// ProjectType is a category of certification project (new build, reform, ...).
type ProjectType struct {
	ID        uuid.UUID
	Name      string
	CreatedAt string
	UpdatedAt string
}

// ClimateSystem is a heating/cooling system that projects may use.
type ClimateSystem struct {
	ID                uuid.UUID
	Kind              string
	NominalEfficiency decimal.Decimal
	CreatedAt         string
	UpdatedAt         string
}

// CreateMaterialParams contains parameters for creating a material.
type CreateMaterialParams struct {
	Name         string
	Conductivity decimal.Decimal
}

// UpdateMaterialParams contains parameters for updating a material.
type UpdateMaterialParams struct {
	ID           uuid.UUID
	Name         *string
	Conductivity *decimal.Decimal
}

// CreateClimateSystemParams contains parameters for creating a climate system.
type CreateClimateSystemParams struct {
	Kind              string
	NominalEfficiency decimal.Decimal
}

// UpdateClimateSystemParams contains parameters for updating a climate system.
type UpdateClimateSystemParams struct {
	ID                uuid.UUID
	Kind              *string
	NominalEfficiency *decimal.Decimal
}

// MaterialRepository provides persistence for materials.
type MaterialRepository interface {
	GetMaterial(ctx context.Context, id uuid.UUID) (Material, error)
	ListMaterials(ctx context.Context) ([]Material, error)
	CreateMaterial(ctx context.Context, params CreateMaterialParams) (Material, error)
	UpdateMaterial(ctx context.Context, params UpdateMaterialParams) (Material, error)
	DeleteMaterial(ctx context.Context, id uuid.UUID) error
	// MaterialHasWalls reports whether any wall references the material.
	// Deletion is blocked while this holds.
	MaterialHasWalls(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProjectTypeRepository provides persistence for project types.
type ProjectTypeRepository interface {
	GetProjectType(ctx context.Context, id uuid.UUID) (ProjectType, error)
	ListProjectTypes(ctx context.Context) ([]ProjectType, error)
	CreateProjectType(ctx context.Context, name string) (ProjectType, error)
	UpdateProjectType(ctx context.Context, id uuid.UUID, name *string) (ProjectType, error)
	DeleteProjectType(ctx context.Context, id uuid.UUID) error
	// ProjectTypeHasProjects reports whether any project references the type.
	ProjectTypeHasProjects(ctx context.Context, id uuid.UUID) (bool, error)
}

// ClimateSystemRepository provides persistence for climate systems.
type ClimateSystemRepository interface {
	GetClimateSystem(ctx context.Context, id uuid.UUID) (ClimateSystem, error)
	ListClimateSystems(ctx context.Context) ([]ClimateSystem, error)
	CreateClimateSystem(ctx context.Context, params CreateClimateSystemParams) (ClimateSystem, error)
	UpdateClimateSystem(ctx context.Context, params UpdateClimateSystemParams) (ClimateSystem, error)
	// DeleteClimateSystem removes the system; project associations are
	// detached by the schema, never blocking.
	DeleteClimateSystem(ctx context.Context, id uuid.UUID) error
}

// Repository combines all catalog repository operations.
type Repository interface {
	MaterialRepository
	ProjectTypeRepository
	ClimateSystemRepository
}
