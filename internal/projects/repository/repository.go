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
	projectNotFoundMessage = "project not found"

	pgForeignKeyViolationCode = "23503"
	pgUniqueViolationCode     = "23505"
)

const projectSelectColumns = `
	p.id, p.client_id, p.type_id, p.name, p.description, p.start_date,
	c.name, t.name, cert.grade, p.created_at, p.updated_at`

const projectSelectJoins = `
	FROM cev_projects p
	JOIN cev_clients c ON c.id = p.client_id
	JOIN cev_project_types t ON t.id = p.type_id
	LEFT JOIN cev_certifications cert ON cert.project_id = p.id`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new projects repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a project with its client/type names and, when present,
// the official certification grade.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Project, error) {
	query := `SELECT` + projectSelectColumns + projectSelectJoins + ` WHERE p.id = $1`

	project, err := scanProject(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Project{}, apperr.NotFound(projectNotFoundMessage)
		}
		return Project{}, fmt.Errorf("get project by id: %w", err)
	}

	return project, nil
}

// List retrieves projects with optional name search and client/type filters,
// newest start date first.
func (r *Repo) List(ctx context.Context, params ListParams) ([]Project, int, error) {
	var searchParam interface{}
	if params.Search != "" {
		searchParam = "%" + params.Search + "%"
	}
	var clientParam interface{}
	if params.ClientID != nil {
		clientParam = *params.ClientID
	}
	var typeParam interface{}
	if params.TypeID != nil {
		typeParam = *params.TypeID
	}

	filter := `
		WHERE ($1::text IS NULL OR p.name ILIKE $1)
			AND ($2::uuid IS NULL OR p.client_id = $2)
			AND ($3::uuid IS NULL OR p.type_id = $3)`

	countQuery := `SELECT COUNT(*) FROM cev_projects p` + filter

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, searchParam, clientParam, typeParam).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	query := `SELECT` + projectSelectColumns + projectSelectJoins + filter + `
		ORDER BY p.start_date DESC, p.created_at DESC
		LIMIT $4 OFFSET $5`

	rows, err := r.pool.Query(ctx, query, searchParam, clientParam, typeParam, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var results []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		results = append(results, project)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate projects: %w", err)
	}

	return results, total, nil
}

// Exists checks if a project exists by ID.
func (r *Repo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM cev_projects WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check project exists: %w", err)
	}
	return exists, nil
}

// ListSystems retrieves the climate systems attached to a project.
func (r *Repo) ListSystems(ctx context.Context, projectID uuid.UUID) ([]System, error) {
	query := `
		SELECT s.id, s.kind, s.nominal_efficiency
		FROM cev_climate_systems s
		JOIN cev_project_systems ps ON ps.system_id = s.id
		WHERE ps.project_id = $1
		ORDER BY s.kind ASC`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project systems: %w", err)
	}
	defer rows.Close()

	var results []System
	for rows.Next() {
		var s System
		if err := rows.Scan(&s.ID, &s.Kind, &s.NominalEfficiency); err != nil {
			return nil, fmt.Errorf("scan project system: %w", err)
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project systems: %w", err)
	}

	return results, nil
}

// Create inserts a project and its climate system set in one transaction so
// concurrent readers never observe a half-written aggregate.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Project, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("begin create project: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO cev_projects (client_id, type_id, name, description, start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		params.ClientID, params.TypeID, params.Name, params.Description, params.StartDate,
	).Scan(&id)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return Project{}, mapped
		}
		return Project{}, fmt.Errorf("create project: %w", err)
	}

	if err := replaceSystems(ctx, tx, id, params.SystemIDs); err != nil {
		return Project{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, fmt.Errorf("commit create project: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update mutates the project row and, when a system set is provided,
// replaces the junction rows in the same transaction.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Project, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Project{}, fmt.Errorf("begin update project: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		UPDATE cev_projects SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			start_date = COALESCE($4, start_date),
			client_id = COALESCE($5, client_id),
			type_id = COALESCE($6, type_id),
			updated_at = now()
		WHERE id = $1`

	result, err := tx.Exec(ctx, query,
		params.ID, params.Name, params.Description, params.StartDate, params.ClientID, params.TypeID,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return Project{}, mapped
		}
		return Project{}, fmt.Errorf("update project: %w", err)
	}
	if result.RowsAffected() == 0 {
		return Project{}, apperr.NotFound(projectNotFoundMessage)
	}

	if params.SystemIDs != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM cev_project_systems WHERE project_id = $1`, params.ID); err != nil {
			return Project{}, fmt.Errorf("clear project systems: %w", err)
		}
		if err := replaceSystems(ctx, tx, params.ID, *params.SystemIDs); err != nil {
			return Project{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Project{}, fmt.Errorf("commit update project: %w", err)
	}

	return r.GetByID(ctx, params.ID)
}

// Delete removes a project. Owned walls and the certification record go
// with it via the schema's cascade; climate systems are only detached.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cev_projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(projectNotFoundMessage)
	}

	return nil
}

func replaceSystems(ctx context.Context, tx pgx.Tx, projectID uuid.UUID, systemIDs []uuid.UUID) error {
	for _, systemID := range systemIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO cev_project_systems (project_id, system_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			projectID, systemID,
		)
		if err != nil {
			if mapped := mapConstraintError(err); mapped != nil {
				return mapped
			}
			return fmt.Errorf("attach project system: %w", err)
		}
	}
	return nil
}

func scanProject(row pgx.Row) (Project, error) {
	var p Project
	var startDate time.Time
	var createdAt, updatedAt time.Time

	err := row.Scan(
		&p.ID, &p.ClientID, &p.TypeID, &p.Name, &p.Description, &startDate,
		&p.ClientName, &p.TypeName, &p.CertifiedGrade, &createdAt, &updatedAt,
	)
	if err != nil {
		return Project{}, err
	}

	p.StartDate = startDate
	p.CreatedAt = createdAt.Format(time.RFC3339)
	p.UpdatedAt = updatedAt.Format(time.RFC3339)

	return p, nil
}

// mapConstraintError translates Postgres integrity violations on the
// project aggregate into domain errors. Returns nil when the error is not a
// recognized constraint violation.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}

	switch pgErr.Code {
	case pgForeignKeyViolationCode:
		switch pgErr.ConstraintName {
		case "cev_projects_client_id_fkey":
			return apperr.Validation("client does not exist")
		case "cev_projects_type_id_fkey":
			return apperr.Validation("project type does not exist")
		case "cev_project_systems_system_id_fkey":
			return apperr.Validation("climate system does not exist")
		case "cev_walls_material_id_fkey":
			return apperr.Validation("material does not exist")
		case "cev_walls_project_id_fkey", "cev_certifications_project_id_fkey", "cev_project_systems_project_id_fkey":
			return apperr.NotFound(projectNotFoundMessage)
		}
	case pgUniqueViolationCode:
		if pgErr.ConstraintName == "cev_certifications_project_id_key" {
			return apperr.Conflict("project already has a certification record")
		}
	}

	return nil
}
