package transport

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProjectRequest contains data for creating a certification project.
// StartDate (YYYY-MM-DD) defaults to the current date when omitted.
type CreateProjectRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=200"`
	Description *string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *string     `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClientID    uuid.UUID   `json:"clientId" validate:"required"`
	TypeID      uuid.UUID   `json:"typeId" validate:"required"`
	SystemIDs   []uuid.UUID `json:"systemIds,omitempty"`
}

// UpdateProjectRequest contains data for updating an existing project.
// A non-nil SystemIDs replaces the full climate system set.
type UpdateProjectRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string      `json:"description,omitempty" validate:"omitempty,max=2000"`
	StartDate   *string      `json:"startDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ClientID    *uuid.UUID   `json:"clientId,omitempty"`
	TypeID      *uuid.UUID   `json:"typeId,omitempty"`
	SystemIDs   *[]uuid.UUID `json:"systemIds,omitempty"`
}

// ListProjectsRequest contains query filters for the project list.
type ListProjectsRequest struct {
	Search   string     `form:"search"`
	ClientID *uuid.UUID `form:"clientId"`
	TypeID   *uuid.UUID `form:"typeId"`
	Page     int        `form:"page"`
	PageSize int        `form:"pageSize"`
}

// ProjectResponse represents a project in list responses.
type ProjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   string    `json:"startDate"`
	ClientID    uuid.UUID `json:"clientId"`
	ClientName  string    `json:"clientName"`
	TypeID      uuid.UUID `json:"typeId"`
	TypeName    string    `json:"typeName"`
	Status      string    `json:"status"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// ProjectListResponse wraps a paginated list of projects.
type ProjectListResponse struct {
	Items      []ProjectResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// SystemResponse represents a climate system attached to a project.
type SystemResponse struct {
	ID                uuid.UUID       `json:"id"`
	Kind              string          `json:"kind"`
	NominalEfficiency decimal.Decimal `json:"nominalEfficiency"`
}

// WallResponse represents an envelope component of a project.
type WallResponse struct {
	ID           uuid.UUID       `json:"id"`
	Location     string          `json:"location"`
	SurfaceArea  decimal.Decimal `json:"surfaceArea"`
	MaterialID   uuid.UUID       `json:"materialId"`
	MaterialName string          `json:"materialName"`
	Conductivity decimal.Decimal `json:"conductivity"`
}

// WallListResponse wraps a project's walls.
type WallListResponse struct {
	Items []WallResponse `json:"items"`
	Total int            `json:"total"`
}

// CreateWallRequest contains data for adding a wall to a project.
type CreateWallRequest struct {
	Location    string          `json:"location" validate:"required,min=1,max=50"`
	SurfaceArea decimal.Decimal `json:"surfaceArea" validate:"dgt0"`
	MaterialID  uuid.UUID       `json:"materialId" validate:"required"`
}

// UpdateWallRequest contains data for updating an existing wall.
type UpdateWallRequest struct {
	Location    *string          `json:"location,omitempty" validate:"omitempty,min=1,max=50"`
	SurfaceArea *decimal.Decimal `json:"surfaceArea,omitempty" validate:"omitempty,dgt0"`
	MaterialID  *uuid.UUID       `json:"materialId,omitempty"`
}

// RatingResponse is the effective rating of a project: the official
// certification when one exists, otherwise the computed estimate.
type RatingResponse struct {
	Grade             string          `json:"grade"`
	ConsumptionKwhM2  decimal.Decimal `json:"consumptionKwhM2"`
	BadgeClass        string          `json:"badgeClass"`
	IsOfficial        bool            `json:"isOfficial"`
	CertificationDate *string         `json:"certificationDate,omitempty"`
}

// ProjectDetailResponse is the full project aggregate for the detail view.
type ProjectDetailResponse struct {
	ProjectResponse
	Systems []SystemResponse `json:"systems"`
	Walls   []WallResponse   `json:"walls"`
	Rating  RatingResponse   `json:"rating"`
}

// IssueCertificationRequest contains data for recording an official
// certification. CertificationDate (YYYY-MM-DD) defaults to today.
type IssueCertificationRequest struct {
	Grade                   string          `json:"grade" validate:"required,oneof=A+ A B C D"`
	AnnualEnergyConsumption decimal.Decimal `json:"annualEnergyConsumption"`
	CertificationDate       *string         `json:"certificationDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CertificationResponse represents an official certification record.
type CertificationResponse struct {
	ID                      uuid.UUID       `json:"id"`
	ProjectID               uuid.UUID       `json:"projectId"`
	Grade                   string          `json:"grade"`
	AnnualEnergyConsumption decimal.Decimal `json:"annualEnergyConsumption"`
	CertificationDate       string          `json:"certificationDate"`
}
