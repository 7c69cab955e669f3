package domain

import (
	"time"

	"github.com/google/uuid"
)

// Section is a contiguous span of contract text with an inferred category.
// Produced by the document-processing stage; read-only afterward.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// KeyTerms holds the headline terms of a contract. Every string field
// defaults to the NotSpecified sentinel rather than being absent.
type KeyTerms struct {
	Parties         []string `json:"parties"`
	EffectiveDate   string   `json:"effectiveDate"`
	TerminationDate string   `json:"terminationDate"`
	PaymentTerms    string   `json:"paymentTerms"`
	GoverningLaw    string   `json:"governingLaw"`
}

// EmptyKeyTerms returns the all-sentinel record used when key-term
// extraction cannot be parsed.
func EmptyKeyTerms() KeyTerms {
	return KeyTerms{
		Parties:         []string{},
		EffectiveDate:   NotSpecified,
		TerminationDate: NotSpecified,
		PaymentTerms:    NotSpecified,
		GoverningLaw:    NotSpecified,
	}
}

// Clause is a structured excerpt of contract text with an assigned type,
// risk grade, and free-text rationale.
type Clause struct {
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	RiskLevel RiskLevel `json:"riskLevel"`
	Analysis  string    `json:"analysis"`
}

// RiskAssessment is the terminal verdict of the risk-analysis stage.
type RiskAssessment struct {
	OverallRisk     RiskLevel `json:"overallRisk"`
	CriticalIssues  []string  `json:"criticalIssues"`
	Recommendations []string  `json:"recommendations"`
}

// DefaultRiskAssessment is the safe verdict substituted when the final
// risk synthesis cannot be parsed. An unparseable assessment must still
// communicate "uncertain, needs human attention", never an empty result.
func DefaultRiskAssessment() RiskAssessment {
	return RiskAssessment{
		OverallRisk:     RiskMedium,
		CriticalIssues:  []string{"Unable to complete full risk assessment"},
		Recommendations: []string{"Manual review recommended"},
	}
}

// Analysis is the stored result of one contract review run.
type Analysis struct {
	ID            uuid.UUID      `json:"id"`
	Filename      string         `json:"filename"`
	Status        AnalysisStatus `json:"status"`
	ExtractedText string         `json:"-"`
	Sections      []Section      `json:"sections,omitempty"`
	Clauses       []Clause       `json:"extractedClauses"`
	RiskSummary   RiskAssessment `json:"riskSummary"`
	KeyTerms      KeyTerms       `json:"keyTerms"`
	Report        string         `json:"-"`
	CreatedAt     time.Time      `json:"createdAt"`
}
