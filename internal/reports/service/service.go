package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"cev_portal_backend/internal/projects/transport"
	"cev_portal_backend/internal/reports/pdf"
	"cev_portal_backend/platform/logger"
)

// ProjectReader is the slice of the projects service the report needs.
type ProjectReader interface {
	GetDetail(ctx context.Context, id uuid.UUID) (transport.ProjectDetailResponse, error)
}

// Service generates project certification reports.
type Service struct {
	projects ProjectReader
	log      *logger.Logger
}

// New creates a new reports service.
func New(projects ProjectReader, log *logger.Logger) *Service {
	return &Service{projects: projects, log: log}
}

// Report is a rendered PDF with its download filename.
type Report struct {
	Filename string
	Content  []byte
}

// GenerateProjectReport renders the certification report for a project from
// its full aggregate: details, walls and the effective rating.
func (s *Service) GenerateProjectReport(ctx context.Context, projectID uuid.UUID) (Report, error) {
	detail, err := s.projects.GetDetail(ctx, projectID)
	if err != nil {
		return Report{}, err
	}

	walls := make([]pdf.WallRow, len(detail.Walls))
	for i, wall := range detail.Walls {
		walls[i] = pdf.WallRow{
			Location:     wall.Location,
			MaterialName: wall.MaterialName,
			Conductivity: wall.Conductivity,
			SurfaceArea:  wall.SurfaceArea,
		}
	}

	content, err := pdf.GenerateProjectReport(pdf.ReportData{
		ProjectName:       detail.Name,
		ClientName:        detail.ClientName,
		TypeName:          detail.TypeName,
		StartDate:         detail.StartDate,
		Walls:             walls,
		Grade:             detail.Rating.Grade,
		ConsumptionKwhM2:  detail.Rating.ConsumptionKwhM2,
		IsOfficial:        detail.Rating.IsOfficial,
		CertificationDate: detail.Rating.CertificationDate,
	})
	if err != nil {
		return Report{}, fmt.Errorf("render project report: %w", err)
	}

	s.log.Info("report generated", "projectId", projectID, "bytes", len(content))
	return Report{
		Filename: reportFilename(detail.Name),
		Content:  content,
	}, nil
}

// reportFilename builds the download name, replacing characters that break
// Content-Disposition headers.
func reportFilename(projectName string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, projectName)
	if name == "" {
		name = "proyecto"
	}
	return fmt.Sprintf("reporte_%s.pdf", name)
}
