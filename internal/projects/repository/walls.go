package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cev_portal_backend/platform/apperr"
)

const wallSelect = `
	SELECT w.id, w.project_id, w.material_id, w.location, w.surface_area,
		m.name, m.conductivity
	FROM cev_walls w
	JOIN cev_materials m ON m.id = w.material_id`

// ListWalls retrieves all walls of a project with their material data,
// ordered by location for stable rendering.
func (r *Repo) ListWalls(ctx context.Context, projectID uuid.UUID) ([]Wall, error) {
	rows, err := r.pool.Query(ctx, wallSelect+` WHERE w.project_id = $1 ORDER BY w.location ASC, w.id ASC`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list walls: %w", err)
	}
	defer rows.Close()

	var results []Wall
	for rows.Next() {
		wall, err := scanWall(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wall: %w", err)
		}
		results = append(results, wall)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate walls: %w", err)
	}

	return results, nil
}

// GetWall retrieves a single wall scoped to its project so a wall ID from
// another project reads as not found.
func (r *Repo) GetWall(ctx context.Context, projectID, wallID uuid.UUID) (Wall, error) {
	wall, err := scanWall(r.pool.QueryRow(ctx, wallSelect+` WHERE w.id = $1 AND w.project_id = $2`, wallID, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wall{}, apperr.NotFound("wall not found")
		}
		return Wall{}, fmt.Errorf("get wall: %w", err)
	}

	return wall, nil
}

// CreateWall adds a wall to a project.
func (r *Repo) CreateWall(ctx context.Context, params CreateWallParams) (Wall, error) {
	query := `
		INSERT INTO cev_walls (project_id, material_id, location, surface_area)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		params.ProjectID, params.MaterialID, params.Location, params.SurfaceArea,
	).Scan(&id)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return Wall{}, mapped
		}
		return Wall{}, fmt.Errorf("create wall: %w", err)
	}

	return r.GetWall(ctx, params.ProjectID, id)
}

// UpdateWall mutates a wall within its project.
func (r *Repo) UpdateWall(ctx context.Context, params UpdateWallParams) (Wall, error) {
	query := `
		UPDATE cev_walls SET
			location = COALESCE($3, location),
			surface_area = COALESCE($4, surface_area),
			material_id = COALESCE($5, material_id)
		WHERE id = $1 AND project_id = $2`

	result, err := r.pool.Exec(ctx, query,
		params.WallID, params.ProjectID, params.Location, params.SurfaceArea, params.MaterialID,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return Wall{}, mapped
		}
		return Wall{}, fmt.Errorf("update wall: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Wall{}, apperr.NotFound("wall not found")
	}

	return r.GetWall(ctx, params.ProjectID, params.WallID)
}

// DeleteWall removes a wall from a project.
func (r *Repo) DeleteWall(ctx context.Context, projectID, wallID uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM cev_walls WHERE id = $1 AND project_id = $2`, wallID, projectID)
	if err != nil {
		return fmt.Errorf("delete wall: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("wall not found")
	}

	return nil
}

func scanWall(row pgx.Row) (Wall, error) {
	var w Wall
	err := row.Scan(
		&w.ID, &w.ProjectID, &w.MaterialID, &w.Location, &w.SurfaceArea,
		&w.MaterialName, &w.Conductivity,
	)
	if err != nil {
		return Wall{}, err
	}
	return w, nil
}
