package pipeline

import (
	"context"
	"fmt"
	"log"

	"clausevet/internal/domain"
)

// clauseRiskFindings partitions clauses by their assigned grade and carries
// the model-identified risk factors.
type clauseRiskFindings struct {
	High        []domain.Clause
	Medium      []domain.Clause
	RiskFactors []string
}

// structuralFindings carries the structural-risk sub-step output.
type structuralFindings struct {
	MissingClauses   []string `json:"missingClauses"`
	ImbalancedTerms  []string `json:"imbalancedTerms"`
	StructuralIssues []string `json:"structuralIssues"`
}

// analyzeRisk runs the three sequential risk sub-steps: clause-level risk
// factors, structural risks, and the overall synthesis. Each is tolerant of
// malformed output; the synthesis falls back to the safe default verdict so
// an unparseable assessment still reads "uncertain, needs human attention".
func (p *Pipeline) analyzeRisk(ctx context.Context, state *State) error {
	clauseRisks, err := p.analyzeClauseRisks(ctx, state.Clauses)
	if err != nil {
		return err
	}

	structural, err := p.analyzeStructuralRisks(ctx, state.Clauses, state.KeyTerms)
	if err != nil {
		return err
	}

	assessment, err := p.synthesizeAssessment(ctx, clauseRisks, structural)
	if err != nil {
		return err
	}
	state.RiskSummary = assessment

	return nil
}

func (p *Pipeline) analyzeClauseRisks(ctx context.Context, clauses []domain.Clause) (clauseRiskFindings, error) {
	findings := clauseRiskFindings{}
	for _, c := range clauses {
		switch c.RiskLevel {
		case domain.RiskHigh:
			findings.High = append(findings.High, c)
		case domain.RiskMedium:
			findings.Medium = append(findings.Medium, c)
		}
	}

	out, err := p.generate(ctx, riskFactorsSystem(), riskFactorsPrompt(findings.High, findings.Medium))
	if err != nil {
		return clauseRiskFindings{}, fmt.Errorf("%w: clause risk analysis: %v", domain.ErrCapabilityFailed, err)
	}

	var factors []string
	if err := decodeModelJSON(out, &factors); err != nil {
		log.Printf("pipeline.analyzeClauseRisks: %v; continuing without risk factors", err)
	} else {
		findings.RiskFactors = factors
	}
	return findings, nil
}

func (p *Pipeline) analyzeStructuralRisks(ctx context.Context, clauses []domain.Clause, terms domain.KeyTerms) (structuralFindings, error) {
	types := make([]string, 0, len(clauses))
	for _, c := range clauses {
		types = append(types, c.Type)
	}

	out, err := p.generate(ctx, structuralRisksSystem(), structuralRisksPrompt(types, terms))
	if err != nil {
		return structuralFindings{}, fmt.Errorf("%w: structural risk analysis: %v", domain.ErrCapabilityFailed, err)
	}

	var findings structuralFindings
	if err := decodeModelJSON(out, &findings); err != nil {
		log.Printf("pipeline.analyzeStructuralRisks: %v; continuing without structural findings", err)
		return structuralFindings{}, nil
	}
	return findings, nil
}

func (p *Pipeline) synthesizeAssessment(ctx context.Context, clauseRisks clauseRiskFindings, structural structuralFindings) (domain.RiskAssessment, error) {
	out, err := p.generate(ctx, overallAssessmentSystem(), overallAssessmentPrompt(clauseRisks, structural))
	if err != nil {
		return domain.RiskAssessment{}, fmt.Errorf("%w: risk synthesis: %v", domain.ErrCapabilityFailed, err)
	}

	var assessment domain.RiskAssessment
	if err := decodeModelJSON(out, &assessment); err != nil {
		log.Printf("pipeline.synthesizeAssessment: %v; falling back to default verdict", err)
		return domain.DefaultRiskAssessment(), nil
	}
	if assessment.CriticalIssues == nil {
		assessment.CriticalIssues = []string{}
	}
	if assessment.Recommendations == nil {
		assessment.Recommendations = []string{}
	}
	return assessment, nil
}
