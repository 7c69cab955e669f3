package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clausevet/internal/domain"
	"clausevet/internal/pipeline"
	"clausevet/internal/port"
)

// PipelineRunner abstracts the four-stage analysis pipeline.
type PipelineRunner interface {
	Run(ctx context.Context, document []byte, filename string) (*pipeline.State, error)
}

// AnalyzeInput is the DTO for contract analysis requests.
type AnalyzeInput struct {
	Filename string
	Data     []byte
}

// AnalysisService runs contract analyses and serves stored results.
type AnalysisService interface {
	Analyze(ctx context.Context, input *AnalyzeInput) (*domain.Analysis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error)
	List(ctx context.Context) ([]*domain.Analysis, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type analysisService struct {
	pipe PipelineRunner
	repo port.AnalysisRepository
}

// NewAnalysisService creates a new AnalysisService implementation.
func NewAnalysisService(pipe PipelineRunner, repo port.AnalysisRepository) AnalysisService {
	return &analysisService{pipe: pipe, repo: repo}
}

// Analyze runs the full pipeline over one uploaded contract and stores the
// completed result. A fatal pipeline error aborts the analysis; no partial
// result is stored or returned.
func (s *analysisService) Analyze(ctx context.Context, input *AnalyzeInput) (*domain.Analysis, error) {
	if len(input.Data) == 0 {
		return nil, domain.ErrEmptyDocument
	}

	state, err := s.pipe.Run(ctx, input.Data, input.Filename)
	if err != nil {
		return nil, fmt.Errorf("analysisService.Analyze: %w", err)
	}

	analysis := &domain.Analysis{
		ID:            uuid.New(),
		Filename:      input.Filename,
		Status:        domain.AnalysisStatusCompleted,
		ExtractedText: state.ExtractedText,
		Sections:      state.Sections,
		Clauses:       state.Clauses,
		RiskSummary:   state.RiskSummary,
		KeyTerms:      state.KeyTerms,
		Report:        state.Report,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Save(ctx, analysis); err != nil {
		return nil, fmt.Errorf("analysisService.Analyze: storing analysis: %w", err)
	}

	log.Printf("analysisService.Analyze: completed analysis %s for %s (%d clauses, overall risk %s)",
		analysis.ID, analysis.Filename, len(analysis.Clauses), analysis.RiskSummary.OverallRisk)
	return analysis, nil
}

func (s *analysisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Analysis, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context) ([]*domain.Analysis, error) {
	return s.repo.List(ctx)
}

func (s *analysisService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
