package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"clausevet/internal/domain"
)

// WriteXLSX writes the analysis as an XLSX workbook with a Clauses sheet
// and a Summary sheet.
func WriteXLSX(w io.Writer, analysis *domain.Analysis) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const clauseSheet = "Clauses"
	if err := f.SetSheetName("Sheet1", clauseSheet); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}

	if err := writeRow(f, clauseSheet, 1, toInterfaces(clauseColumns)); err != nil {
		return err
	}
	for i, clause := range analysis.Clauses {
		row := []interface{}{
			analysis.Filename,
			clause.Type,
			string(clause.RiskLevel),
			clause.Analysis,
			clause.Content,
		}
		if err := writeRow(f, clauseSheet, i+2, row); err != nil {
			return err
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	summaryRows := [][]interface{}{
		{"Document Name", analysis.Filename},
		{"Status", string(analysis.Status)},
		{"Overall Risk", string(analysis.RiskSummary.OverallRisk)},
		{"Critical Issues", strings.Join(analysis.RiskSummary.CriticalIssues, "; ")},
		{"Recommendations", strings.Join(analysis.RiskSummary.Recommendations, "; ")},
		{"Parties", strings.Join(analysis.KeyTerms.Parties, "; ")},
		{"Effective Date", analysis.KeyTerms.EffectiveDate},
		{"Termination Date", analysis.KeyTerms.TerminationDate},
		{"Payment Terms", analysis.KeyTerms.PaymentTerms},
		{"Governing Law", analysis.KeyTerms.GoverningLaw},
		{"Created At", analysis.CreatedAt.Format("2006-01-02 15:04:05")},
	}
	for i, row := range summaryRows {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("resolving cell for row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNum, err)
	}
	return nil
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
