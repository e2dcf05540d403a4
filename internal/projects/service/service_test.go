package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cev_portal_backend/internal/events"
	"cev_portal_backend/internal/projects/repository"
	"cev_portal_backend/internal/projects/transport"
	"cev_portal_backend/platform/apperr"
	"cev_portal_backend/platform/logger"
)

// fakeRepo is an in-memory Repository for service tests.
type fakeRepo struct {
	projects       map[uuid.UUID]repository.Project
	walls          map[uuid.UUID][]repository.Wall
	certifications map[uuid.UUID]repository.Certification
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		projects:       make(map[uuid.UUID]repository.Project),
		walls:          make(map[uuid.UUID][]repository.Wall),
		certifications: make(map[uuid.UUID]repository.Certification),
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (repository.Project, error) {
	p, ok := f.projects[id]
	if !ok {
		return repository.Project{}, apperr.NotFound("project not found")
	}
	if cert, ok := f.certifications[id]; ok {
		grade := cert.Grade
		p.CertifiedGrade = &grade
	}
	return p, nil
}

func (f *fakeRepo) List(_ context.Context, _ repository.ListParams) ([]repository.Project, int, error) {
	var results []repository.Project
	for _, p := range f.projects {
		results = append(results, p)
	}
	return results, len(results), nil
}

func (f *fakeRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.projects[id]
	return ok, nil
}

func (f *fakeRepo) ListSystems(_ context.Context, _ uuid.UUID) ([]repository.System, error) {
	return nil, nil
}

func (f *fakeRepo) Create(_ context.Context, params repository.CreateParams) (repository.Project, error) {
	p := repository.Project{
		ID:        uuid.New(),
		ClientID:  params.ClientID,
		TypeID:    params.TypeID,
		Name:      params.Name,
		StartDate: params.StartDate,
	}
	f.projects[p.ID] = p
	return p, nil
}

func (f *fakeRepo) Update(_ context.Context, params repository.UpdateParams) (repository.Project, error) {
	p, ok := f.projects[params.ID]
	if !ok {
		return repository.Project{}, apperr.NotFound("project not found")
	}
	if params.Name != nil {
		p.Name = *params.Name
	}
	f.projects[params.ID] = p
	return p, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.projects[id]; !ok {
		return apperr.NotFound("project not found")
	}
	delete(f.projects, id)
	delete(f.walls, id)
	delete(f.certifications, id)
	return nil
}

func (f *fakeRepo) ListWalls(_ context.Context, projectID uuid.UUID) ([]repository.Wall, error) {
	return f.walls[projectID], nil
}

func (f *fakeRepo) GetWall(_ context.Context, projectID, wallID uuid.UUID) (repository.Wall, error) {
	for _, w := range f.walls[projectID] {
		if w.ID == wallID {
			return w, nil
		}
	}
	return repository.Wall{}, apperr.NotFound("wall not found")
}

func (f *fakeRepo) CreateWall(_ context.Context, params repository.CreateWallParams) (repository.Wall, error) {
	w := repository.Wall{
		ID:          uuid.New(),
		ProjectID:   params.ProjectID,
		MaterialID:  params.MaterialID,
		Location:    params.Location,
		SurfaceArea: params.SurfaceArea,
	}
	f.walls[params.ProjectID] = append(f.walls[params.ProjectID], w)
	return w, nil
}

func (f *fakeRepo) UpdateWall(_ context.Context, params repository.UpdateWallParams) (repository.Wall, error) {
	for i, w := range f.walls[params.ProjectID] {
		if w.ID == params.WallID {
			if params.SurfaceArea != nil {
				w.SurfaceArea = *params.SurfaceArea
			}
			if params.Location != nil {
				w.Location = *params.Location
			}
			f.walls[params.ProjectID][i] = w
			return w, nil
		}
	}
	return repository.Wall{}, apperr.NotFound("wall not found")
}

func (f *fakeRepo) DeleteWall(_ context.Context, projectID, wallID uuid.UUID) error {
	walls := f.walls[projectID]
	for i, w := range walls {
		if w.ID == wallID {
			f.walls[projectID] = append(walls[:i], walls[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("wall not found")
}

func (f *fakeRepo) GetCertification(_ context.Context, projectID uuid.UUID) (repository.Certification, error) {
	cert, ok := f.certifications[projectID]
	if !ok {
		return repository.Certification{}, apperr.NotFound("certification not found")
	}
	return cert, nil
}

func (f *fakeRepo) CreateCertification(_ context.Context, params repository.CreateCertificationParams) (repository.Certification, error) {
	if _, ok := f.certifications[params.ProjectID]; ok {
		return repository.Certification{}, apperr.Conflict("project already has a certification record")
	}
	cert := repository.Certification{
		ID:                      uuid.New(),
		ProjectID:               params.ProjectID,
		Grade:                   params.Grade,
		AnnualEnergyConsumption: params.AnnualEnergyConsumption,
		CertificationDate:       params.CertificationDate,
	}
	f.certifications[params.ProjectID] = cert
	return cert, nil
}

func (f *fakeRepo) DeleteCertification(_ context.Context, projectID uuid.UUID) error {
	if _, ok := f.certifications[projectID]; !ok {
		return apperr.NotFound("certification not found")
	}
	delete(f.certifications, projectID)
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo repository.Repository) *Service {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	return New(repo, bus, log)
}

func seedProject(repo *fakeRepo) uuid.UUID {
	p := repository.Project{
		ID:         uuid.New(),
		ClientID:   uuid.New(),
		TypeID:     uuid.New(),
		Name:       "Casa Norte",
		ClientName: "ACME",
		TypeName:   "Residential",
		StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	repo.projects[p.ID] = p
	return p.ID
}

func seedWall(repo *fakeRepo, projectID uuid.UUID, area, conductivity string) {
	repo.walls[projectID] = append(repo.walls[projectID], repository.Wall{
		ID:           uuid.New(),
		ProjectID:    projectID,
		MaterialID:   uuid.New(),
		Location:     "north",
		SurfaceArea:  decimal.RequireFromString(area),
		Conductivity: decimal.RequireFromString(conductivity),
	})
}

func TestGetRatingEstimated(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	seedWall(repo, projectID, "10", "0.3")
	seedWall(repo, projectID, "10", "0.6")
	svc := newTestService(repo)

	rating, err := svc.GetRating(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetRating() error = %v", err)
	}

	if rating.IsOfficial {
		t.Fatal("rating should be an estimate, got official")
	}
	if rating.Grade != "A+" {
		t.Fatalf("grade = %q, want A+", rating.Grade)
	}
	if !rating.ConsumptionKwhM2.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("consumption = %s, want 50", rating.ConsumptionKwhM2)
	}
	if rating.BadgeClass != "success" {
		t.Fatalf("badge = %q, want success", rating.BadgeClass)
	}
	if rating.CertificationDate != nil {
		t.Fatal("estimated rating must not carry a certification date")
	}
}

func TestGetRatingNoWalls(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	svc := newTestService(repo)

	rating, err := svc.GetRating(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetRating() error = %v", err)
	}

	if rating.Grade != "no-data" {
		t.Fatalf("grade = %q, want no-data", rating.Grade)
	}
	if !rating.ConsumptionKwhM2.IsZero() {
		t.Fatalf("consumption = %s, want 0", rating.ConsumptionKwhM2)
	}
	if rating.BadgeClass != "secondary" {
		t.Fatalf("badge = %q, want secondary", rating.BadgeClass)
	}
}

func TestGetRatingOfficialOverridesEstimate(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	// Walls alone would estimate A+; the official record must win anyway.
	seedWall(repo, projectID, "10", "0.3")
	svc := newTestService(repo)

	_, err := svc.IssueCertification(context.Background(), projectID, transport.IssueCertificationRequest{
		Grade:                   "C",
		AnnualEnergyConsumption: decimal.RequireFromString("142.5"),
	})
	if err != nil {
		t.Fatalf("IssueCertification() error = %v", err)
	}

	rating, err := svc.GetRating(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetRating() error = %v", err)
	}

	if !rating.IsOfficial {
		t.Fatal("rating should be official")
	}
	if rating.Grade != "C" {
		t.Fatalf("grade = %q, want C", rating.Grade)
	}
	if !rating.ConsumptionKwhM2.Equal(decimal.RequireFromString("142.5")) {
		t.Fatalf("consumption = %s, want 142.5", rating.ConsumptionKwhM2)
	}
	if rating.BadgeClass != "warning" {
		t.Fatalf("badge = %q, want warning", rating.BadgeClass)
	}
	if rating.CertificationDate == nil {
		t.Fatal("official rating must carry a certification date")
	}
}

func TestIssueCertificationTwiceConflicts(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	svc := newTestService(repo)

	req := transport.IssueCertificationRequest{
		Grade:                   "B",
		AnnualEnergyConsumption: decimal.NewFromInt(95),
	}
	if _, err := svc.IssueCertification(context.Background(), projectID, req); err != nil {
		t.Fatalf("first IssueCertification() error = %v", err)
	}

	_, err := svc.IssueCertification(context.Background(), projectID, req)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second IssueCertification() error = %v, want conflict", err)
	}
}

func TestIssueCertificationRejectsNegativeConsumption(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	svc := newTestService(repo)

	_, err := svc.IssueCertification(context.Background(), projectID, transport.IssueCertificationRequest{
		Grade:                   "A",
		AnnualEnergyConsumption: decimal.NewFromInt(-1),
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("IssueCertification() error = %v, want validation", err)
	}
}

func TestRevokeCertificationRestoresEstimate(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	seedWall(repo, projectID, "10", "1.2")
	svc := newTestService(repo)

	_, err := svc.IssueCertification(context.Background(), projectID, transport.IssueCertificationRequest{
		Grade:                   "A",
		AnnualEnergyConsumption: decimal.NewFromInt(70),
	})
	if err != nil {
		t.Fatalf("IssueCertification() error = %v", err)
	}

	if err := svc.RevokeCertification(context.Background(), projectID); err != nil {
		t.Fatalf("RevokeCertification() error = %v", err)
	}

	rating, err := svc.GetRating(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetRating() error = %v", err)
	}
	if rating.IsOfficial {
		t.Fatal("rating should be an estimate after revocation")
	}
	if rating.Grade != "B" {
		t.Fatalf("grade = %q, want B", rating.Grade)
	}
}

func TestGetRatingUnknownProject(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.GetRating(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("GetRating() error = %v, want not found", err)
	}
}

func TestProjectStatusLabel(t *testing.T) {
	repo := newFakeRepo()
	projectID := seedProject(repo)
	svc := newTestService(repo)

	project, err := svc.GetByID(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if project.Status != "In progress" {
		t.Fatalf("status = %q, want In progress", project.Status)
	}

	_, err = svc.IssueCertification(context.Background(), projectID, transport.IssueCertificationRequest{
		Grade:                   "A+",
		AnnualEnergyConsumption: decimal.NewFromInt(45),
	})
	if err != nil {
		t.Fatalf("IssueCertification() error = %v", err)
	}

	project, err = svc.GetByID(context.Background(), projectID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if project.Status != "Certified (A+)" {
		t.Fatalf("status = %q, want Certified (A+)", project.Status)
	}
}

func TestCreateProjectParsesStartDate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	startDate := "2026-04-15"
	project, err := svc.Create(context.Background(), transport.CreateProjectRequest{
		Name:      "Casa Sur",
		ClientID:  uuid.New(),
		TypeID:    uuid.New(),
		StartDate: &startDate,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.StartDate != startDate {
		t.Fatalf("startDate = %q, want %q", project.StartDate, startDate)
	}
}
