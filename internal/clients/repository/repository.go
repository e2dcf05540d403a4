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
	clientNotFoundMessage = "client not found"
	duplicateContactMsg   = "a client with this contact already exists"
	pgUniqueViolationCode = "23505"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new clients repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a client by its ID, including its project count.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Client, error) {
	query := `
		SELECT c.id, c.name, c.contact,
			(SELECT COUNT(*) FROM cev_projects p WHERE p.client_id = c.id),
			c.created_at, c.updated_at
		FROM cev_clients c
		WHERE c.id = $1`

	var cl Client
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, id).
		Scan(&cl.ID, &cl.Name, &cl.Contact, &cl.ProjectCount, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		return Client{}, fmt.Errorf("get client by id: %w", err)
	}

	cl.CreatedAt = createdAt.Format(time.RFC3339)
	cl.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cl, nil
}

// List retrieves all clients with project counts, ordered by name.
func (r *Repo) List(ctx context.Context) ([]Client, error) {
	query := `
		SELECT c.id, c.name, c.contact, COUNT(p.id), c.created_at, c.updated_at
		FROM cev_clients c
		LEFT JOIN cev_projects p ON p.client_id = c.id
		GROUP BY c.id
		ORDER BY c.name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var results []Client
	for rows.Next() {
		var cl Client
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Contact, &cl.ProjectCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		cl.CreatedAt = createdAt.Format(time.RFC3339)
		cl.UpdatedAt = updatedAt.Format(time.RFC3339)
		results = append(results, cl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}

	return results, nil
}

// Create creates a new client. A duplicate contact yields a conflict error.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Client, error) {
	query := `
		INSERT INTO cev_clients (name, contact)
		VALUES ($1, $2)
		RETURNING id, name, contact, created_at, updated_at`

	var cl Client
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.Name, params.Contact).
		Scan(&cl.ID, &cl.Name, &cl.Contact, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return Client{}, apperr.Conflict(duplicateContactMsg)
		}
		return Client{}, fmt.Errorf("create client: %w", err)
	}

	cl.CreatedAt = createdAt.Format(time.RFC3339)
	cl.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cl, nil
}

// Update updates an existing client.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (Client, error) {
	query := `
		UPDATE cev_clients SET
			name = COALESCE($2, name),
			contact = COALESCE($3, contact),
			updated_at = now()
		WHERE id = $1
		RETURNING id, name, contact, created_at, updated_at`

	var cl Client
	var createdAt, updatedAt time.Time

	err := r.pool.QueryRow(ctx, query, params.ID, params.Name, params.Contact).
		Scan(&cl.ID, &cl.Name, &cl.Contact, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Client{}, apperr.NotFound(clientNotFoundMessage)
		}
		if isUniqueViolation(err) {
			return Client{}, apperr.Conflict(duplicateContactMsg)
		}
		return Client{}, fmt.Errorf("update client: %w", err)
	}

	cl.CreatedAt = createdAt.Format(time.RFC3339)
	cl.UpdatedAt = updatedAt.Format(time.RFC3339)

	return cl, nil
}

// Delete removes a client. The schema cascades the delete to the client's
// projects and their owned walls and certification records.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cev_clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound(clientNotFoundMessage)
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode
}
