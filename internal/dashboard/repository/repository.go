package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats holds the raw dashboard aggregates straight from storage.
type Stats struct {
	TotalProjects     int
	TotalClients      int
	CertifiedCount    int
	GradeDistribution map[string]int
	RecentProjects    []RecentProject
}

// RecentProject is one of the newest projects, joined with its client and
// type names and the official grade when one exists.
type RecentProject struct {
	ID             uuid.UUID
	Name           string
	ClientName     string
	TypeName       string
	StartDate      time.Time
	CertifiedGrade *string
}

// Reader provides read access to the dashboard aggregates.
type Reader interface {
	GetStats(ctx context.Context) (Stats, error)
}

// Repo implements Reader with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dashboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Reader = (*Repo)(nil)

const recentProjectLimit = 5

// GetStats assembles the dashboard aggregates. The counts come from one
// round trip; the distribution and recent list each take another.
func (r *Repo) GetStats(ctx context.Context) (Stats, error) {
	stats := Stats{GradeDistribution: make(map[string]int)}

	countQuery := `
		SELECT
			(SELECT COUNT(*) FROM cev_projects),
			(SELECT COUNT(*) FROM cev_clients),
			(SELECT COUNT(*) FROM cev_certifications)`

	err := r.pool.QueryRow(ctx, countQuery).Scan(
		&stats.TotalProjects, &stats.TotalClients, &stats.CertifiedCount,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("count dashboard totals: %w", err)
	}

	rows, err := r.pool.Query(ctx, `SELECT grade, COUNT(*) FROM cev_certifications GROUP BY grade`)
	if err != nil {
		return Stats{}, fmt.Errorf("grade distribution: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var grade string
		var count int
		if err := rows.Scan(&grade, &count); err != nil {
			return Stats{}, fmt.Errorf("scan grade distribution: %w", err)
		}
		stats.GradeDistribution[grade] = count
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate grade distribution: %w", err)
	}

	recentQuery := `
		SELECT p.id, p.name, c.name, t.name, p.start_date, cert.grade
		FROM cev_projects p
		JOIN cev_clients c ON c.id = p.client_id
		JOIN cev_project_types t ON t.id = p.type_id
		LEFT JOIN cev_certifications cert ON cert.project_id = p.id
		ORDER BY p.start_date DESC, p.created_at DESC
		LIMIT $1`

	recentRows, err := r.pool.Query(ctx, recentQuery, recentProjectLimit)
	if err != nil {
		return Stats{}, fmt.Errorf("recent projects: %w", err)
	}
	defer recentRows.Close()

	for recentRows.Next() {
		var p RecentProject
		if err := recentRows.Scan(&p.ID, &p.Name, &p.ClientName, &p.TypeName, &p.StartDate, &p.CertifiedGrade); err != nil {
			return Stats{}, fmt.Errorf("scan recent project: %w", err)
		}
		stats.RecentProjects = append(stats.RecentProjects, p)
	}
	if err := recentRows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate recent projects: %w", err)
	}

	return stats, nil
}
