package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"cev_portal_backend/platform/apperr"
)

// GetCertification retrieves the official certification of a project.
// Absence is reported as apperr.NotFound; the service layer treats that as
// "fall back to the estimated rating".
func (r *Repo) GetCertification(ctx context.Context, projectID uuid.UUID) (Certification, error) {
	query := `
		SELECT id, project_id, grade, annual_energy_consumption, certification_date
		FROM cev_certifications
		WHERE project_id = $1`

	var cert Certification
	err := r.pool.QueryRow(ctx, query, projectID).Scan(
		&cert.ID, &cert.ProjectID, &cert.Grade, &cert.AnnualEnergyConsumption, &cert.CertificationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Certification{}, apperr.NotFound("certification not found")
		}
		return Certification{}, fmt.Errorf("get certification: %w", err)
	}

	return cert, nil
}

// CreateCertification records the official certification of a project. The
// one-per-project rule is enforced by the unique constraint on project_id.
func (r *Repo) CreateCertification(ctx context.Context, params CreateCertificationParams) (Certification, error) {
	query := `
		INSERT INTO cev_certifications (project_id, grade, annual_energy_consumption, certification_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, grade, annual_energy_consumption, certification_date`

	var cert Certification
	err := r.pool.QueryRow(ctx, query,
		params.ProjectID, params.Grade, params.AnnualEnergyConsumption, params.CertificationDate,
	).Scan(&cert.ID, &cert.ProjectID, &cert.Grade, &cert.AnnualEnergyConsumption, &cert.CertificationDate)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return Certification{}, mapped
		}
		return Certification{}, fmt.Errorf("create certification: %w", err)
	}

	return cert, nil
}

// DeleteCertification revokes a project's certification, returning it to
// the estimated rating.
func (r *Repo) DeleteCertification(ctx context.Context, projectID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM cev_certifications WHERE project_id = $1`, projectID)
	if err != nil {
		return fmt.Errorf("delete certification: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("certification not found")
	}

	return nil
}
