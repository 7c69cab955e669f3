package pipeline

import (
	"context"
	"fmt"

	"clausevet/internal/domain"
)

// generateReport renders the narrative report from the accumulated findings.
// The result is prose, not structured data, so there is no parse-failure
// branch here: a capability call failure is fatal.
func (p *Pipeline) generateReport(ctx context.Context, state *State) error {
	out, err := p.generate(ctx, reportSystem(),
		reportPrompt(state.Filename, state.Clauses, state.RiskSummary, state.KeyTerms))
	if err != nil {
		return fmt.Errorf("%w: report generation: %v", domain.ErrCapabilityFailed, err)
	}
	state.Report = out
	return nil
}
