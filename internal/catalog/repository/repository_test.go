package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"cev_portal_backend/platform/apperr"
)

func TestReferencedConflictMapsForeignKeyViolation(t *testing.T) {
	fkErr := &pgconn.PgError{Code: pgForeignKeyViolationCode, ConstraintName: "cev_walls_material_id_fkey"}

	err := referencedConflict(fmt.Errorf("delete material: %w", fkErr), materialReferencedMessage)
	if err == nil {
		t.Fatal("foreign-key violation must map to an error")
	}
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("error = %v, want conflict", err)
	}

	var domainErr *apperr.Error
	if !errors.As(err, &domainErr) {
		t.Fatalf("error = %T, want *apperr.Error", err)
	}
	if domainErr.Message != materialReferencedMessage {
		t.Fatalf("message = %q, want %q", domainErr.Message, materialReferencedMessage)
	}
}

func TestReferencedConflictIgnoresOtherErrors(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505"}
	if err := referencedConflict(uniqueErr, projectTypeReferencedMessage); err != nil {
		t.Fatalf("unique violation must not map, got %v", err)
	}

	if err := referencedConflict(errors.New("connection reset"), projectTypeReferencedMessage); err != nil {
		t.Fatalf("plain error must not map, got %v", err)
	}
}
