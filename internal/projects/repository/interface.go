package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Project is the aggregate root: it owns walls and at most one
// certification record, and references a client, a project type and a set
// of climate systems.
type Project struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	TypeID         uuid.UUID
	Name           string
	Description    *string
	StartDate      time.Time
	ClientName     string
	TypeName       string
	CertifiedGrade *string // set when a certification record exists
	CreatedAt      string
	UpdatedAt      string
}

// System is a climate system attached to a project.
type System struct {
	ID                uuid.UUID
	Kind              string
	NominalEfficiency decimal.Decimal
}

// Wall is one envelope component of a project, joined with its material.
type Wall struct {
	ID           uuid.UUID
	ProjectID    uuid.UUID
	MaterialID   uuid.UUID
	Location     string
	SurfaceArea  decimal.Decimal
	MaterialName string
	Conductivity decimal.Decimal
}

// Certification is the persisted official rating for a project.
type Certification struct {
	ID                      uuid.UUID
	ProjectID               uuid.UUID
	Grade                   string
	AnnualEnergyConsumption decimal.Decimal
	CertificationDate       time.Time
}

// ListParams contains filters and pagination for the project list.
type ListParams struct {
	Search   string
	ClientID *uuid.UUID
	TypeID   *uuid.UUID
	Limit    int
	Offset   int
}

// CreateParams contains parameters for creating a project with its
// climate system set.
type CreateParams struct {
	ClientID    uuid.UUID
	TypeID      uuid.UUID
	Name        string
	Description *string
	StartDate   time.Time
	SystemIDs   []uuid.UUID
}

// UpdateParams contains parameters for updating a project. A non-nil
// SystemIDs replaces the whole system set atomically with the row update.
type UpdateParams struct {
	ID          uuid.UUID
	Name        *string
	Description *string
	StartDate   *time.Time
	ClientID    *uuid.UUID
	TypeID      *uuid.UUID
	SystemIDs   *[]uuid.UUID
}

// CreateWallParams contains parameters for adding a wall to a project.
type CreateWallParams struct {
	ProjectID   uuid.UUID
	MaterialID  uuid.UUID
	Location    string
	SurfaceArea decimal.Decimal
}

// UpdateWallParams contains parameters for updating a wall.
type UpdateWallParams struct {
	ProjectID   uuid.UUID
	WallID      uuid.UUID
	Location    *string
	SurfaceArea *decimal.Decimal
	MaterialID  *uuid.UUID
}

// CreateCertificationParams contains parameters for recording an official
// certification.
type CreateCertificationParams struct {
	ProjectID               uuid.UUID
	Grade                   string
	AnnualEnergyConsumption decimal.Decimal
	CertificationDate       time.Time
}

// ProjectReader provides read operations for projects.
type ProjectReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	List(ctx context.Context, params ListParams) ([]Project, int, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ListSystems(ctx context.Context, projectID uuid.UUID) ([]System, error)
}

// ProjectWriter provides write operations for projects.
type ProjectWriter interface {
	Create(ctx context.Context, params CreateParams) (Project, error)
	Update(ctx context.Context, params UpdateParams) (Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// WallRepository provides persistence for a project's walls.
type WallRepository interface {
	ListWalls(ctx context.Context, projectID uuid.UUID) ([]Wall, error)
	GetWall(ctx context.Context, projectID, wallID uuid.UUID) (Wall, error)
	CreateWall(ctx context.Context, params CreateWallParams) (Wall, error)
	UpdateWall(ctx context.Context, params UpdateWallParams) (Wall, error)
	DeleteWall(ctx context.Context, projectID, wallID uuid.UUID) error
}

// CertificationRepository provides persistence for certification records.
type CertificationRepository interface {
	// GetCertification returns apperr.NotFound when the project has no
	// certification record; callers treat that as "estimated rating".
	GetCertification(ctx context.Context, projectID uuid.UUID) (Certification, error)
	CreateCertification(ctx context.Context, params CreateCertificationParams) (Certification, error)
	DeleteCertification(ctx context.Context, projectID uuid.UUID) error
}

// Repository combines all project aggregate operations.
type Repository interface {
	ProjectReader
	ProjectWriter
	WallRepository
	CertificationRepository
}
