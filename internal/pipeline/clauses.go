package pipeline

import (
	"context"
	"fmt"
	"log"

	"clausevet/internal/domain"
)

// dedupPrefixLen is the number of leading content bytes in the duplicate
// key. Two clauses of the same type identical within this prefix are
// treated as duplicates even if they diverge later; preserved as reference
// behavior (see DESIGN.md).
const dedupPrefixLen = 100

// extractClauses runs the per-section pass followed by the truncated
// full-text pass, then deduplicates. The full-text pass always runs last so
// first-occurrence-wins deduplication stays deterministic.
func (p *Pipeline) extractClauses(ctx context.Context, state *State) error {
	var clauses []domain.Clause

	for _, section := range state.Sections {
		sectionClauses, err := p.extractFromSection(ctx, section)
		if err != nil {
			return err
		}
		clauses = append(clauses, sectionClauses...)
	}

	fullTextClauses, err := p.extractFromFullText(ctx, state.ExtractedText)
	if err != nil {
		return err
	}
	clauses = append(clauses, fullTextClauses...)

	state.Clauses = DedupeClauses(clauses)
	return nil
}

// extractFromSection scans one section for clauses. Malformed output
// contributes zero clauses to the result.
func (p *Pipeline) extractFromSection(ctx context.Context, section domain.Section) ([]domain.Clause, error) {
	out, err := p.generate(ctx, sectionClausesSystem(), sectionClausesPrompt(section.Content, section.Type))
	if err != nil {
		return nil, fmt.Errorf("%w: section clause extraction: %v", domain.ErrCapabilityFailed, err)
	}

	var clauses []domain.Clause
	if err := decodeModelJSON(out, &clauses); err != nil {
		log.Printf("pipeline.extractFromSection: %v; skipping section %q", err, section.Title)
		return nil, nil
	}
	return clauses, nil
}

// extractFromFullText scans the leading slice of the whole document for
// clauses that span or hide across section boundaries. Malformed output
// contributes zero clauses.
func (p *Pipeline) extractFromFullText(ctx context.Context, text string) ([]domain.Clause, error) {
	out, err := p.generate(ctx, fullTextClausesSystem(), fullTextClausesPrompt(p.truncateText(text)))
	if err != nil {
		return nil, fmt.Errorf("%w: full-text clause extraction: %v", domain.ErrCapabilityFailed, err)
	}

	var clauses []domain.Clause
	if err := decodeModelJSON(out, &clauses); err != nil {
		log.Printf("pipeline.extractFromFullText: %v; skipping full-text pass", err)
		return nil, nil
	}
	return clauses, nil
}

// DedupeClauses drops clauses whose (type, leading content prefix) was seen
// before. First occurrence wins; order of first appearance is preserved.
// Idempotent: applying it twice yields the same result as applying it once.
func DedupeClauses(clauses []domain.Clause) []domain.Clause {
	seen := make(map[string]struct{}, len(clauses))
	out := make([]domain.Clause, 0, len(clauses))
	for _, clause := range clauses {
		key := clause.Type + "-" + contentPrefix(clause.Content)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, clause)
	}
	return out
}

func contentPrefix(content string) string {
	if len(content) > dedupPrefixLen {
		return content[:dedupPrefixLen]
	}
	return content
}
