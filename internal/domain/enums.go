package domain

// RiskLevel grades a clause or whole-contract risk verdict.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether the level is one of the three known grades.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskMedium || r == RiskHigh
}

// AnalysisStatus represents the terminal state of a contract analysis.
type AnalysisStatus string

const (
	AnalysisStatusCompleted AnalysisStatus = "completed"
	AnalysisStatusFailed    AnalysisStatus = "failed"
)

// DocumentFormat represents the supported contract file formats.
type DocumentFormat string

const (
	FormatPDF  DocumentFormat = "pdf"
	FormatDOCX DocumentFormat = "docx"
)

// AllowedExtensions maps lowercased file extensions (without dot) to their format.
var AllowedExtensions = map[string]DocumentFormat{
	"pdf":  FormatPDF,
	"docx": FormatDOCX,
}

// ClauseTypes is the advisory vocabulary handed to the extraction model.
// Output is not validated against it: a model may return a type outside this
// set and it is passed through unchanged.
var ClauseTypes = []string{
	"indemnity",
	"limitation_of_liability",
	"termination",
	"payment_terms",
	"intellectual_property",
	"confidentiality",
	"force_majeure",
	"dispute_resolution",
	"governing_law",
	"warranties",
	"representations",
	"compliance",
}

// NotSpecified is the sentinel used for key terms absent from a contract.
// Downstream consumers rely on it being present instead of branching on
// empty fields.
const NotSpecified = "Not specified"
