package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cev_portal_backend/internal/catalog/repository"
	"cev_portal_backend/internal/catalog/transport"
	"cev_portal_backend/platform/apperr"
	"cev_portal_backend/platform/logger"
)

// fakeRepo is an in-memory catalog Repository for service tests.
type fakeRepo struct {
	materials     map[uuid.UUID]repository.Material
	projectTypes  map[uuid.UUID]repository.ProjectType
	systems       map[uuid.UUID]repository.ClimateSystem
	wallsByMat    map[uuid.UUID]int
	projectsByTyp map[uuid.UUID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		materials:     make(map[uuid.UUID]repository.Material),
		projectTypes:  make(map[uuid.UUID]repository.ProjectType),
		systems:       make(map[uuid.UUID]repository.ClimateSystem),
		wallsByMat:    make(map[uuid.UUID]int),
		projectsByTyp: make(map[uuid.UUID]int),
	}
}

func (f *fakeRepo) GetMaterial(_ context.Context, id uuid.UUID) (repository.Material, error) {
	m, ok := f.materials[id]
	if !ok {
		return repository.Material{}, apperr.NotFound("material not found")
	}
	return m, nil
}

func (f *fakeRepo) ListMaterials(_ context.Context) ([]repository.Material, error) {
	var out []repository.Material
	for _, m := range f.materials {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeRepo) CreateMaterial(_ context.Context, params repository.CreateMaterialParams) (repository.Material, error) {
	m := repository.Material{ID: uuid.New(), Name: params.Name, Conductivity: params.Conductivity}
	f.materials[m.ID] = m
	return m, nil
}

func (f *fakeRepo) UpdateMaterial(_ context.Context, params repository.UpdateMaterialParams) (repository.Material, error) {
	m, ok := f.materials[params.ID]
	if !ok {
		return repository.Material{}, apperr.NotFound("material not found")
	}
	if params.Name != nil {
		m.Name = *params.Name
	}
	if params.Conductivity != nil {
		m.Conductivity = *params.Conductivity
	}
	f.materials[params.ID] = m
	return m, nil
}

func (f *fakeRepo) DeleteMaterial(_ context.Context, id uuid.UUID) error {
	if _, ok := f.materials[id]; !ok {
		return apperr.NotFound("material not found")
	}
	delete(f.materials, id)
	return nil
}

func (f *fakeRepo) MaterialHasWalls(_ context.Context, id uuid.UUID) (bool, error) {
	return f.wallsByMat[id] > 0, nil
}

func (f *fakeRepo) GetProjectType(_ context.Context, id uuid.UUID) (repository.ProjectType, error) {
	pt, ok := f.projectTypes[id]
	if !ok {
		return repository.ProjectType{}, apperr.NotFound("project type not found")
	}
	return pt, nil
}

func (f *fakeRepo) ListProjectTypes(_ context.Context) ([]repository.ProjectType, error) {
	var out []repository.ProjectType
	for _, pt := range f.projectTypes {
		out = append(out, pt)
	}
	return out, nil
}

func (f *fakeRepo) CreateProjectType(_ context.Context, name string) (repository.ProjectType, error) {
	pt := repository.ProjectType{ID: uuid.New(), Name: name}
	f.projectTypes[pt.ID] = pt
	return pt, nil
}

func (f *fakeRepo) UpdateProjectType(_ context.Context, id uuid.UUID, name *string) (repository.ProjectType, error) {
	pt, ok := f.projectTypes[id]
	if !ok {
		return repository.ProjectType{}, apperr.NotFound("project type not found")
	}
	if name != nil {
		pt.Name = *name
	}
	f.projectTypes[id] = pt
	return pt, nil
}

func (f *fakeRepo) DeleteProjectType(_ context.Context, id uuid.UUID) error {
	if _, ok := f.projectTypes[id]; !ok {
		return apperr.NotFound("project type not found")
	}
	delete(f.projectTypes, id)
	return nil
}

func (f *fakeRepo) ProjectTypeHasProjects(_ context.Context, id uuid.UUID) (bool, error) {
	return f.projectsByTyp[id] > 0, nil
}

func (f *fakeRepo) GetClimateSystem(_ context.Context, id uuid.UUID) (repository.ClimateSystem, error) {
	cs, ok := f.systems[id]
	if !ok {
		return repository.ClimateSystem{}, apperr.NotFound("climate system not found")
	}
	return cs, nil
}

func (f *fakeRepo) ListClimateSystems(_ context.Context) ([]repository.ClimateSystem, error) {
	var out []repository.ClimateSystem
	for _, cs := range f.systems {
		out = append(out, cs)
	}
	return out, nil
}

func (f *fakeRepo) CreateClimateSystem(_ context.Context, params repository.CreateClimateSystemParams) (repository.ClimateSystem, error) {
	cs := repository.ClimateSystem{ID: uuid.New(), Kind: params.Kind, NominalEfficiency: params.NominalEfficiency}
	f.systems[cs.ID] = cs
	return cs, nil
}

func (f *fakeRepo) UpdateClimateSystem(_ context.Context, params repository.UpdateClimateSystemParams) (repository.ClimateSystem, error) {
	cs, ok := f.systems[params.ID]
	if !ok {
		return repository.ClimateSystem{}, apperr.NotFound("climate system not found")
	}
	if params.Kind != nil {
		cs.Kind = *params.Kind
	}
	if params.NominalEfficiency != nil {
		cs.NominalEfficiency = *params.NominalEfficiency
	}
	f.systems[params.ID] = cs
	return cs, nil
}

func (f *fakeRepo) DeleteClimateSystem(_ context.Context, id uuid.UUID) error {
	if _, ok := f.systems[id]; !ok {
		return apperr.NotFound("climate system not found")
	}
	delete(f.systems, id)
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo repository.Repository) *Service {
	return New(repo, logger.New("test"))
}

func TestDeleteMaterialBlockedWhileReferenced(t *testing.T) {
	repo := newFakeRepo()
	m, _ := repo.CreateMaterial(context.Background(), repository.CreateMaterialParams{
		Name:         "Brick",
		Conductivity: decimal.RequireFromString("0.8"),
	})
	repo.wallsByMat[m.ID] = 2
	svc := newTestService(repo)

	err := svc.DeleteMaterial(context.Background(), m.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("DeleteMaterial() error = %v, want conflict", err)
	}
	if _, ok := repo.materials[m.ID]; !ok {
		t.Fatal("material must survive a blocked delete")
	}

	// Once the walls are gone the delete goes through.
	repo.wallsByMat[m.ID] = 0
	if err := svc.DeleteMaterial(context.Background(), m.ID); err != nil {
		t.Fatalf("DeleteMaterial() error = %v", err)
	}
}

func TestDeleteProjectTypeBlockedWhileReferenced(t *testing.T) {
	repo := newFakeRepo()
	pt, _ := repo.CreateProjectType(context.Background(), "New build")
	repo.projectsByTyp[pt.ID] = 1
	svc := newTestService(repo)

	err := svc.DeleteProjectType(context.Background(), pt.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("DeleteProjectType() error = %v, want conflict", err)
	}
}

func TestCreateClimateSystemDefaultsEfficiency(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	cs, err := svc.CreateClimateSystem(context.Background(), transport.CreateClimateSystemRequest{
		Kind: "Heat pump",
	})
	if err != nil {
		t.Fatalf("CreateClimateSystem() error = %v", err)
	}
	if !cs.NominalEfficiency.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("nominalEfficiency = %s, want 1", cs.NominalEfficiency)
	}

	efficiency := decimal.RequireFromString("3.5")
	cs, err = svc.CreateClimateSystem(context.Background(), transport.CreateClimateSystemRequest{
		Kind:              "Heat pump",
		NominalEfficiency: &efficiency,
	})
	if err != nil {
		t.Fatalf("CreateClimateSystem() error = %v", err)
	}
	if !cs.NominalEfficiency.Equal(efficiency) {
		t.Fatalf("nominalEfficiency = %s, want 3.5", cs.NominalEfficiency)
	}
}

func TestDeleteClimateSystemNeverBlocks(t *testing.T) {
	repo := newFakeRepo()
	cs, _ := repo.CreateClimateSystem(context.Background(), repository.CreateClimateSystemParams{
		Kind:              "Gas boiler",
		NominalEfficiency: decimal.RequireFromString("0.9"),
	})
	svc := newTestService(repo)

	if err := svc.DeleteClimateSystem(context.Background(), cs.ID); err != nil {
		t.Fatalf("DeleteClimateSystem() error = %v", err)
	}
}

func TestGetMaterialNotFound(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetMaterial(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("GetMaterial() error = %v, want not found", err)
	}
}
