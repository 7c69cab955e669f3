package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"clausevet/internal/export"
	"clausevet/internal/port"
)

// ReportPayload is a rendered report ready for download.
type ReportPayload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ReportService serves downloadable renditions of a stored analysis.
type ReportService interface {
	GetReport(ctx context.Context, id uuid.UUID) (*ReportPayload, error)
	ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error
	ExportXLSX(ctx context.Context, id uuid.UUID, w io.Writer) error
}

type reportService struct {
	repo port.AnalysisRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(repo port.AnalysisRepository) ReportService {
	return &reportService{repo: repo}
}

// GetReport returns the narrative report as a placeholder payload labeled
// as a PDF. Real binary PDF rendering is an external rendering
// collaborator's responsibility.
func (s *reportService) GetReport(ctx context.Context, id uuid.UUID) (*ReportPayload, error) {
	analysis, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ReportPayload{
		Filename:    "contract-analysis-report.pdf",
		ContentType: "application/pdf",
		Data:        []byte(analysis.Report),
	}, nil
}

func (s *reportService) ExportCSV(ctx context.Context, id uuid.UUID, w io.Writer) error {
	analysis, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	writer, err := export.NewWriter(w)
	if err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	if err := writer.WriteAnalysis(analysis); err != nil {
		return fmt.Errorf("reportService.ExportCSV: %w", err)
	}
	return nil
}

func (s *reportService) ExportXLSX(ctx context.Context, id uuid.UUID, w io.Writer) error {
	analysis, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := export.WriteXLSX(w, analysis); err != nil {
		return fmt.Errorf("reportService.ExportXLSX: %w", err)
	}
	return nil
}
