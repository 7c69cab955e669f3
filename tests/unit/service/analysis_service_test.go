package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clausevet/internal/domain"
	"clausevet/internal/pipeline"
	"clausevet/internal/service"
	"clausevet/mocks"
)

func newAnalysisService() (service.AnalysisService, *mocks.MockPipelineRunner, *mocks.MockAnalysisRepo) {
	pipe := new(mocks.MockPipelineRunner)
	repo := new(mocks.MockAnalysisRepo)
	return service.NewAnalysisService(pipe, repo), pipe, repo
}

func completedState() *pipeline.State {
	return &pipeline.State{
		ExtractedText: "full contract text",
		Sections: []domain.Section{
			{Title: "Payment", Content: "Net 30.", Type: "payment"},
		},
		KeyTerms: domain.KeyTerms{
			Parties:         []string{"Acme Corp", "Widget LLC"},
			EffectiveDate:   "2026-01-01",
			TerminationDate: "Not specified",
			PaymentTerms:    "Net 30",
			GoverningLaw:    "Delaware",
		},
		Clauses: []domain.Clause{
			{Type: "payment_terms", Content: "Net 30.", RiskLevel: domain.RiskLow, Analysis: "standard"},
		},
		RiskSummary: domain.RiskAssessment{
			OverallRisk:     domain.RiskLow,
			CriticalIssues:  []string{},
			Recommendations: []string{},
		},
		Report: "Executive summary.",
	}
}

func TestAnalysisService_Analyze_Success(t *testing.T) {
	svc, pipe, repo := newAnalysisService()

	data := []byte("%PDF-1.4 contract bytes")
	pipe.On("Run", mock.Anything, data, "contract.pdf").Return(completedState(), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Analysis")).Return(nil)

	analysis, err := svc.Analyze(context.Background(), &service.AnalyzeInput{
		Filename: "contract.pdf",
		Data:     data,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, analysis.ID)
	assert.Equal(t, "contract.pdf", analysis.Filename)
	assert.Equal(t, domain.AnalysisStatusCompleted, analysis.Status)
	assert.Equal(t, "full contract text", analysis.ExtractedText)
	assert.Len(t, analysis.Clauses, 1)
	assert.Equal(t, domain.RiskLow, analysis.RiskSummary.OverallRisk)
	assert.Equal(t, "Executive summary.", analysis.Report)
	assert.False(t, analysis.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestAnalysisService_Analyze_EmptyDocument(t *testing.T) {
	svc, pipe, repo := newAnalysisService()

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{
		Filename: "contract.pdf",
		Data:     nil,
	})

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	pipe.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAnalysisService_Analyze_PipelineFailure_NothingStored(t *testing.T) {
	svc, pipe, repo := newAnalysisService()

	pipe.On("Run", mock.Anything, mock.Anything, "contract.pdf").
		Return(nil, domain.ErrCapabilityFailed)

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{
		Filename: "contract.pdf",
		Data:     []byte("data"),
	})

	assert.ErrorIs(t, err, domain.ErrCapabilityFailed)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAnalysisService_Analyze_SaveFailure(t *testing.T) {
	svc, pipe, repo := newAnalysisService()

	pipe.On("Run", mock.Anything, mock.Anything, "contract.pdf").Return(completedState(), nil)
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("store unavailable"))

	_, err := svc.Analyze(context.Background(), &service.AnalyzeInput{
		Filename: "contract.pdf",
		Data:     []byte("data"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storing analysis")
}

func TestAnalysisService_GetByID(t *testing.T) {
	svc, _, repo := newAnalysisService()

	id := uuid.New()
	expected := &domain.Analysis{ID: id}
	repo.On("GetByID", mock.Anything, id).Return(expected, nil)

	got, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAnalysisService_Delete_NotFound(t *testing.T) {
	svc, _, repo := newAnalysisService()

	id := uuid.New()
	repo.On("Delete", mock.Anything, id).Return(domain.ErrAnalysisNotFound)

	err := svc.Delete(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)
}
