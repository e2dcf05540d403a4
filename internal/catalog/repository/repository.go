package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cev_portal_backend/platform/apperr"
)

const (
	materialNotFoundMessage      = "material not found"
	projectTypeNotFoundMessage   = "project type not found"
	climateSystemNotFoundMessage = "climate system not found"

	materialReferencedMessage    = "material is referenced by existing walls"
	projectTypeReferencedMessage = "project type is referenced by existing projects"

	pgForeignKeyViolationCode = "23503"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// referencedConflict translates a foreign-key violation on a restrict FK
// into a typed conflict. Returns nil for any other error.
func referencedConflict(err error, message string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
		return apperr.Conflict(message)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Materials
// ---------------------------------------------------------------------------

// GetMaterial retrieves a material by its ID.
func (r *Repo) GetMaterial(ctx context.Context, id uuid.UUID) (Material, error) {
	query := `
		SELECT id, name, conductivity, created_at, updated_at
		FROM cev_materials
		WHERE id = $1`

	var m Material
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Conductivity, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, apperr.NotFound(materialNotFoundMessage)
		}
		return Material{}, fmt.Errorf("get material by id: %w", err)
	}

	m.CreatedAt = createdAt.Format(time.RFC3339)
	m.UpdatedAt = updatedAt.Format(time.RFC3339)

	return m, nil
}

// ListMaterials retrieves all materials ordered by name.
func (r *Repo) ListMaterials(ctx context.Context) ([]Material, error) {
	query := `
		SELECT id, name, conductivity, created_at, updated_at
		FROM cev_materials
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var results []Material
	for rows.Next() {
		var m Material
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&m.ID, &m.Name, &m.Conductivity, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		m.CreatedAt = createdAt.Format(time.RFC3339)
		m.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}

	return results, nil
}

// CreateMaterial creates a new material.
func (r *Repo) CreateMaterial(ctx context.Context, params CreateMaterialParams) (Material, error) {
	query := `
		INSERT INTO cev_materials (name, conductivity)
		VALUES ($1, $2)
		RETURNING id, name, conductivity, created_at, updated_at`

	var m Material
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.Name, params.Conductivity).
		Scan(&m.ID, &m.Name, &m.Conductivity, &createdAt, &updatedAt)
	if err != nil {
		return Material{}, fmt.Errorf("create material: %w", err)
	}

	m.CreatedAt = createdAt.Format(time.RFC3339)
	m.UpdatedAt = updatedAt.Format(time.RFC3339)

	return m, nil
}

// UpdateMaterial updates an existing material.
func (r *Repo) UpdateMaterial(ctx context.Context, params UpdateMaterialParams) (Material, error) {
	query := `
		UPDATE cev_materials SET
			name = COALESCE($2, name),
			conductivity = COALESCE($3, conductivity),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, conductivity, created_at, updated_at`

	var m Material
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.ID, params.Name, params.Conductivity).
		Scan(&m.ID, &m.Name, &m.Conductivity, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Material{}, apperr.NotFound(materialNotFoundMessage)
		}
		return Material{}, fmt.Errorf("update material: %w", err)
	}

	m.CreatedAt = createdAt.Format(time.RFC3339)
	m.UpdatedAt = updatedAt.Format(time.RFC3339)

	return m, nil
}

// DeleteMaterial removes a material by ID. A wall inserted between the
// service's reference check and this delete trips the restrict FK; that is
// still reported as a conflict, not an internal error.
func (r *Repo) DeleteMaterial(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cev_materials WHERE id = $1`, id)
	if err != nil {
		if mapped := referencedConflict(err, materialReferencedMessage); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete material: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(materialNotFoundMessage)
	}

	return nil
}

// MaterialHasWalls checks if a material is referenced by any wall.
func (r *Repo) MaterialHasWalls(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cev_walls WHERE material_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check material walls: %w", err)
	}

	return exists, nil
}

// ---------------------------------------------------------------------------
// Project types
// ---------------------------------------------------------------------------

// GetProjectType retrieves a project type by its ID.
func (r *Repo) GetProjectType(ctx context.Context, id uuid.UUID) (ProjectType, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM cev_project_types
		WHERE id = $1`

	var pt ProjectType
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).Scan(&pt.ID, &pt.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProjectType{}, apperr.NotFound(projectTypeNotFoundMessage)
		}
		return ProjectType{}, fmt.Errorf("get project type by id: %w", err)
	}

	pt.CreatedAt = createdAt.Format(time.RFC3339)
	pt.UpdatedAt = updatedAt.Format(time.RFC3339)

	return pt, nil
}

// ListProjectTypes retrieves all project types ordered by name.
func (r *Repo) ListProjectTypes(ctx context.Context) ([]ProjectType, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM cev_project_types
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list project types: %w", err)
	}
	defer rows.Close()

	var results []ProjectType
	for rows.Next() {
		var pt ProjectType
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&pt.ID, &pt.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan project type: %w", err)
		}
		pt.CreatedAt = createdAt.Format(time.RFC3339)
		pt.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, pt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project types: %w", err)
	}

	return results, nil
}

// CreateProjectType creates a new project type.
func (r *Repo) CreateProjectType(ctx context.Context, name string) (ProjectType, error) {
	query := `
		INSERT INTO cev_project_types (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at`

	var pt ProjectType
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, name).Scan(&pt.ID, &pt.Name, &createdAt, &updatedAt)
	if err != nil {
		return ProjectType{}, fmt.Errorf("create project type: %w", err)
	}

	pt.CreatedAt = createdAt.Format(time.RFC3339)
	pt.UpdatedAt = updatedAt.Format(time.RFC3339)

	return pt, nil
}

// UpdateProjectType updates an existing project type.
func (r *Repo) UpdateProjectType(ctx context.Context, id uuid.UUID, name *string) (ProjectType, error) {
	query := `
		UPDATE cev_project_types SET
			name = COALESCE($2, name),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, created_at, updated_at`

	var pt ProjectType
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id, name).Scan(&pt.ID, &pt.Name, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ProjectType{}, apperr.NotFound(projectTypeNotFoundMessage)
		}
		return ProjectType{}, fmt.Errorf("update project type: %w", err)
	}

	pt.CreatedAt = createdAt.Format(time.RFC3339)
	pt.UpdatedAt = updatedAt.Format(time.RFC3339)

	return pt, nil
}

// DeleteProjectType removes a project type by ID, reporting a restrict FK
// trip as a conflict the same way DeleteMaterial does.
func (r *Repo) DeleteProjectType(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cev_project_types WHERE id = $1`, id)
	if err != nil {
		if mapped := referencedConflict(err, projectTypeReferencedMessage); mapped != nil {
			return mapped
		}
		return fmt.Errorf("delete project type: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(projectTypeNotFoundMessage)
	}

	return nil
}

// ProjectTypeHasProjects checks if a project type is referenced by any project.
func (r *Repo) ProjectTypeHasProjects(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM cev_projects WHERE type_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check project type projects: %w", err)
	}

	return exists, nil
}

// ---------------------------------------------------------------------------
// Climate systems
// ---------------------------------------------------------------------------

// GetClimateSystem retrieves a climate system by its ID.
func (r *Repo) GetClimateSystem(ctx context.Context, id uuid.UUID) (ClimateSystem, error) {
	query := `
		SELECT id, kind, nominal_efficiency, created_at, updated_at
		FROM cev_climate_systems
		WHERE id = $1`

	var cs ClimateSystem
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&cs.ID, &cs.Kind, &cs.NominalEfficiency, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ClimateSystem{}, apperr.NotFound(climateSystemNotFoundMessage)
		}
		return ClimateSystem{}, fmt.Errorf("get climate system by id: %w", err)
	}

	cs.CreatedAt = createdAt.Format(time.RFC3339)
	cs.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cs, nil
}

// ListClimateSystems retrieves all climate systems ordered by kind.
func (r *Repo) ListClimateSystems(ctx context.Context) ([]ClimateSystem, error) {
	query := `
		SELECT id, kind, nominal_efficiency, created_at, updated_at
		FROM cev_climate_systems
		ORDER BY kind ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list climate systems: %w", err)
	}
	defer rows.Close()

	var results []ClimateSystem
	for rows.Next() {
		var cs ClimateSystem
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&cs.ID, &cs.Kind, &cs.NominalEfficiency, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan climate system: %w", err)
		}
		cs.CreatedAt = createdAt.Format(time.RFC3339)
		cs.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate climate systems: %w", err)
	}

	return results, nil
}

// CreateClimateSystem creates a new climate system.
func (r *Repo) CreateClimateSystem(ctx context.Context, params CreateClimateSystemParams) (ClimateSystem, error) {
	query := `
		INSERT INTO cev_climate_systems (kind, nominal_efficiency)
		VALUES ($1, $2)
		RETURNING id, kind, nominal_efficiency, created_at, updated_at`

	var cs ClimateSystem
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.Kind, params.NominalEfficiency).
		Scan(&cs.ID, &cs.Kind, &cs.NominalEfficiency, &createdAt, &updatedAt)
	if err != nil {
		return ClimateSystem{}, fmt.Errorf("create climate system: %w", err)
	}

	cs.CreatedAt = createdAt.Format(time.RFC3339)
	cs.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cs, nil
}

// UpdateClimateSystem updates an existing climate system.
func (r *Repo) UpdateClimateSystem(ctx context.Context, params UpdateClimateSystemParams) (ClimateSystem, error) {
	query := `
		UPDATE cev_climate_systems SET
			kind = COALESCE($2, kind),
			nominal_efficiency = COALESCE($3, nominal_efficiency),
			updated_at = now()
		WHERE id = $1
		RETURNING id, kind, nominal_efficiency, created_at, updated_at`

	var cs ClimateSystem
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.ID, params.Kind, params.NominalEfficiency).
		Scan(&cs.ID, &cs.Kind, &cs.NominalEfficiency, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ClimateSystem{}, apperr.NotFound(climateSystemNotFoundMessage)
		}
		return ClimateSystem{}, fmt.Errorf("update climate system: %w", err)
	}

	cs.CreatedAt = createdAt.Format(time.RFC3339)
	cs.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cs, nil
}

// DeleteClimateSystem removes a climate system by ID. Junction rows are
// removed by the schema's cascade; projects themselves are untouched.
func (r *Repo) DeleteClimateSystem(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cev_climate_systems WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete climate system: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(climateSystemNotFoundMessage)
	}

	return nil
}
