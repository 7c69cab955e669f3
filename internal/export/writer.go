// Package export renders a completed analysis as a downloadable clause
// table, as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"clausevet/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// clauseColumns defines the clause table header row.
var clauseColumns = []string{
	"Document Name",
	"Clause Type",
	"Risk Level",
	"Analysis",
	"Clause Text",
}

// summaryColumns defines the header row of the assessment summary block.
var summaryColumns = []string{
	"Overall Risk",
	"Critical Issues",
	"Recommendations",
	"Parties",
	"Effective Date",
	"Termination Date",
	"Payment Terms",
	"Governing Law",
	"Created At",
}

// Writer wraps csv.Writer for exporting analyses as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w, prefixed with a BOM.
func NewWriter(w io.Writer) (*Writer, error) {
	if _, err := w.Write(BOM); err != nil {
		return nil, fmt.Errorf("writing BOM: %w", err)
	}
	return &Writer{csv: csv.NewWriter(w)}, nil
}

// WriteAnalysis writes the summary block, a blank row, then the clause table.
func (w *Writer) WriteAnalysis(analysis *domain.Analysis) error {
	if err := w.csv.Write(summaryColumns); err != nil {
		return fmt.Errorf("writing summary header: %w", err)
	}
	if err := w.csv.Write(summaryRow(analysis)); err != nil {
		return fmt.Errorf("writing summary row: %w", err)
	}
	if err := w.csv.Write([]string{}); err != nil {
		return fmt.Errorf("writing separator row: %w", err)
	}

	if err := w.csv.Write(clauseColumns); err != nil {
		return fmt.Errorf("writing clause header: %w", err)
	}
	for i, clause := range analysis.Clauses {
		if err := w.csv.Write(clauseRow(analysis.Filename, clause)); err != nil {
			return fmt.Errorf("writing clause row %d: %w", i, err)
		}
	}

	w.csv.Flush()
	return w.csv.Error()
}

func summaryRow(analysis *domain.Analysis) []string {
	return []string{
		string(analysis.RiskSummary.OverallRisk),
		strings.Join(analysis.RiskSummary.CriticalIssues, "; "),
		strings.Join(analysis.RiskSummary.Recommendations, "; "),
		strings.Join(analysis.KeyTerms.Parties, "; "),
		analysis.KeyTerms.EffectiveDate,
		analysis.KeyTerms.TerminationDate,
		analysis.KeyTerms.PaymentTerms,
		analysis.KeyTerms.GoverningLaw,
		analysis.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func clauseRow(filename string, clause domain.Clause) []string {
	return []string{
		filename,
		clause.Type,
		string(clause.RiskLevel),
		clause.Analysis,
		clause.Content,
	}
}
