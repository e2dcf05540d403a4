package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"cev_portal_backend/internal/dashboard/repository"
	"cev_portal_backend/platform/logger"
)

type fakeReader struct {
	stats repository.Stats
	calls int
}

func (f *fakeReader) GetStats(_ context.Context) (repository.Stats, error) {
	f.calls++
	return f.stats, nil
}

func TestGetStatsAssembly(t *testing.T) {
	grade := "B"
	reader := &fakeReader{stats: repository.Stats{
		TotalProjects:     7,
		TotalClients:      3,
		CertifiedCount:    2,
		GradeDistribution: map[string]int{"A+": 1, "B": 1},
		RecentProjects: []repository.RecentProject{
			{
				ID:             uuid.New(),
				Name:           "Casa Norte",
				ClientName:     "ACME",
				TypeName:       "Residential",
				StartDate:      time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
				CertifiedGrade: &grade,
			},
			{
				ID:         uuid.New(),
				Name:       "Casa Sur",
				ClientName: "ACME",
				TypeName:   "Residential",
				StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}}
	svc := New(reader, nil, logger.New("test"))

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}

	if stats.InProgressCount != 5 {
		t.Fatalf("inProgressCount = %d, want 5", stats.InProgressCount)
	}
	if stats.GradeDistribution["A+"] != 1 || stats.GradeDistribution["B"] != 1 {
		t.Fatalf("unexpected grade distribution: %v", stats.GradeDistribution)
	}
	if len(stats.RecentProjects) != 2 {
		t.Fatalf("recentProjects = %d entries, want 2", len(stats.RecentProjects))
	}
	if stats.RecentProjects[0].Status != "Certified (B)" {
		t.Fatalf("status = %q, want Certified (B)", stats.RecentProjects[0].Status)
	}
	if stats.RecentProjects[1].Status != "In progress" {
		t.Fatalf("status = %q, want In progress", stats.RecentProjects[1].Status)
	}
	if stats.RecentProjects[0].StartDate != "2026-05-02" {
		t.Fatalf("startDate = %q, want 2026-05-02", stats.RecentProjects[0].StartDate)
	}
}

func TestGetStatsEmptyDistribution(t *testing.T) {
	svc := New(&fakeReader{}, nil, logger.New("test"))

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	if stats.GradeDistribution == nil {
		t.Fatal("gradeDistribution must never be nil")
	}
}

func TestGetStatsNoCacheHitsRepositoryEveryTime(t *testing.T) {
	reader := &fakeReader{}
	svc := New(reader, nil, logger.New("test"))

	for i := 0; i < 3; i++ {
		if _, err := svc.GetStats(context.Background()); err != nil {
			t.Fatalf("GetStats() error = %v", err)
		}
	}
	if reader.calls != 3 {
		t.Fatalf("repository calls = %d, want 3", reader.calls)
	}
}
