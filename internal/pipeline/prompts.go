package pipeline

import (
	"fmt"
	"strings"

	"clausevet/internal/domain"
)

const jsonOnlyInstruction = `Return ONLY valid JSON with no markdown formatting, no code fences, and no explanation: just the raw JSON value.`

func sectionSplitSystem() string {
	return `You are a legal document analyzer. Split the contract into logical sections and identify their types.

Return a JSON array of sections with the following structure:
[
  {
    "title": "Section title",
    "content": "Section content",
    "type": "section_type" // e.g., "preamble", "definitions", "obligations", "termination", etc.
  }
]

` + jsonOnlyInstruction
}

func sectionSplitPrompt(text string) string {
	return "Analyze this contract text and split it into logical sections:\n\n" + text
}

func keyTermsSystem() string {
	return `You are a legal document analyzer. Extract key terms from contracts.

Return a JSON object with the following structure:
{
  "parties": ["Party 1 Name", "Party 2 Name"],
  "effectiveDate": "Date or 'Not specified'",
  "terminationDate": "Date or 'Not specified'",
  "paymentTerms": "Payment terms summary or 'Not specified'",
  "governingLaw": "Governing law jurisdiction or 'Not specified'"
}

` + jsonOnlyInstruction
}

func keyTermsPrompt(text string) string {
	return "Extract key terms from this contract:\n\n" + text
}

func clauseListSchema() string {
	return `[
  {
    "type": "clause_type",
    "content": "exact clause text",
    "riskLevel": "low|medium|high",
    "analysis": "brief analysis of the clause and why it has this risk level"
  }
]`
}

func sectionClausesSystem() string {
	return `You are a legal clause extraction expert. Identify and extract specific legal clauses from contract sections.

Focus on these clause types: ` + strings.Join(domain.ClauseTypes, ", ") + `

For each clause found, assess its risk level:
- HIGH: Clauses that heavily favor one party, have unlimited liability, or lack important protections
- MEDIUM: Clauses with some concerning terms but reasonable overall
- LOW: Standard, balanced clauses with appropriate protections

Return a JSON array with this structure:
` + clauseListSchema() + `

` + jsonOnlyInstruction
}

func sectionClausesPrompt(content, sectionType string) string {
	return fmt.Sprintf("Extract legal clauses from this contract section (type: %s):\n\n%s", sectionType, content)
}

func fullTextClausesSystem() string {
	return `You are a legal clause extraction expert. Perform a comprehensive analysis of the entire contract to identify any important clauses that might have been missed.

Focus on these clause types: ` + strings.Join(domain.ClauseTypes, ", ") + `

Look for:
- Hidden or embedded clauses within larger paragraphs
- Cross-references between sections
- Implied terms or conditions

Return a JSON array with this structure:
` + clauseListSchema() + `

` + jsonOnlyInstruction
}

func fullTextClausesPrompt(text string) string {
	return "Perform a comprehensive clause extraction from this full contract text:\n\n" + text
}

func riskFactorsSystem() string {
	return `You are a legal risk assessment expert. Analyze the provided clauses and identify specific risk factors.

Return a JSON array of risk factors as strings.

` + jsonOnlyInstruction
}

func riskFactorsPrompt(high, medium []domain.Clause) string {
	return fmt.Sprintf(`Analyze these contract clauses and identify specific risk factors:

High Risk Clauses:
%s

Medium Risk Clauses:
%s`, clauseLines(high), clauseLines(medium))
}

func structuralRisksSystem() string {
	return `You are a contract structure analyst. Evaluate the contract for structural risks and missing protections.

Return a JSON object with this structure:
{
  "missingClauses": ["list of important missing clause types"],
  "imbalancedTerms": ["list of terms that heavily favor one party"],
  "structuralIssues": ["list of structural problems with the contract"]
}

` + jsonOnlyInstruction
}

func structuralRisksPrompt(clauseTypes []string, terms domain.KeyTerms) string {
	return fmt.Sprintf(`Analyze this contract structure:

Present Clause Types: %s

Key Terms:
- Parties: %s
- Payment Terms: %s
- Governing Law: %s
- Effective Date: %s
- Termination Date: %s`,
		joinOrNone(clauseTypes),
		joinOrNone(terms.Parties),
		orNotSpecified(terms.PaymentTerms),
		orNotSpecified(terms.GoverningLaw),
		orNotSpecified(terms.EffectiveDate),
		orNotSpecified(terms.TerminationDate),
	)
}

func overallAssessmentSystem() string {
	return `You are a senior legal risk assessor. Provide a comprehensive risk assessment for this contract.

Consider:
- Number and severity of high-risk clauses
- Missing important protections
- Structural imbalances
- Overall contract fairness

Return a JSON object with this structure:
{
  "overallRisk": "low|medium|high",
  "criticalIssues": ["list of the most critical issues that need immediate attention"],
  "recommendations": ["list of specific recommendations to mitigate risks"]
}

` + jsonOnlyInstruction
}

func overallAssessmentPrompt(clauseRisks clauseRiskFindings, structural structuralFindings) string {
	return fmt.Sprintf(`Provide overall risk assessment based on:

Clause Risks:
- High Risk Clauses: %d
- Medium Risk Clauses: %d
- Risk Factors: %s

Structural Risks:
- Missing Clauses: %s
- Imbalanced Terms: %s
- Structural Issues: %s`,
		len(clauseRisks.High),
		len(clauseRisks.Medium),
		joinOrNoneIdentified(clauseRisks.RiskFactors),
		joinOrNoneIdentified(structural.MissingClauses),
		joinOrNoneIdentified(structural.ImbalancedTerms),
		joinOrNoneIdentified(structural.StructuralIssues),
	)
}

func reportSystem() string {
	return `You are a legal report writer. Generate a comprehensive, professional contract analysis report.

The report should include:
1. Executive Summary
2. Contract Overview
3. Key Terms Analysis
4. Clause-by-Clause Review
5. Risk Assessment
6. Recommendations
7. Conclusion

Use professional legal language but keep it accessible.`
}

func reportPrompt(filename string, clauses []domain.Clause, risk domain.RiskAssessment, terms domain.KeyTerms) string {
	var clauseSummary strings.Builder
	for _, c := range clauses {
		fmt.Fprintf(&clauseSummary, "%s: %s risk - %s\n", c.Type, c.RiskLevel, c.Analysis)
	}

	return fmt.Sprintf(`Generate a comprehensive contract analysis report for: %s

Key Terms:
- Parties: %s
- Effective Date: %s
- Termination Date: %s
- Payment Terms: %s
- Governing Law: %s

Extracted Clauses:
%s
Risk Assessment:
- Overall Risk: %s
- Critical Issues: %s
- Recommendations: %s`,
		filename,
		joinOrNone(terms.Parties),
		orNotSpecified(terms.EffectiveDate),
		orNotSpecified(terms.TerminationDate),
		orNotSpecified(terms.PaymentTerms),
		orNotSpecified(terms.GoverningLaw),
		clauseSummary.String(),
		risk.OverallRisk,
		strings.Join(risk.CriticalIssues, ", "),
		strings.Join(risk.Recommendations, ", "),
	)
}

func clauseLines(clauses []domain.Clause) string {
	if len(clauses) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for _, c := range clauses {
		fmt.Fprintf(&sb, "- %s: %s\n", c.Type, c.Analysis)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return domain.NotSpecified
	}
	return strings.Join(items, ", ")
}

func joinOrNoneIdentified(items []string) string {
	if len(items) == 0 {
		return "None identified"
	}
	return strings.Join(items, ", ")
}

func orNotSpecified(s string) string {
	if s == "" {
		return domain.NotSpecified
	}
	return s
}
