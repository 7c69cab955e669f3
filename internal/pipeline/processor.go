package pipeline

import (
	"context"
	"fmt"
	"log"

	"clausevet/internal/domain"
)

// processDocument decodes the uploaded binary into plain text, splits it
// into titled sections, and extracts the key terms. Extraction failure is
// fatal; malformed section or key-term output degrades into the documented
// fallback values.
func (p *Pipeline) processDocument(ctx context.Context, state *State) error {
	text, err := p.extractor.Extract(ctx, state.Document, state.Filename)
	if err != nil {
		return fmt.Errorf("extracting text from %s: %w", state.Filename, err)
	}
	state.ExtractedText = text

	sections, err := p.splitIntoSections(ctx, text)
	if err != nil {
		return err
	}
	state.Sections = sections

	terms, err := p.extractKeyTerms(ctx, text)
	if err != nil {
		return err
	}
	state.KeyTerms = terms

	return nil
}

// splitIntoSections asks the model to segment the contract. On malformed
// output the whole document becomes a single synthetic "general" section.
func (p *Pipeline) splitIntoSections(ctx context.Context, text string) ([]domain.Section, error) {
	out, err := p.generate(ctx, sectionSplitSystem(), sectionSplitPrompt(text))
	if err != nil {
		return nil, fmt.Errorf("%w: section split: %v", domain.ErrCapabilityFailed, err)
	}

	var sections []domain.Section
	if err := decodeModelJSON(out, &sections); err != nil {
		log.Printf("pipeline.splitIntoSections: %v; falling back to single section", err)
		return []domain.Section{{
			Title:   "Full Document",
			Content: text,
			Type:    "general",
		}}, nil
	}
	return sections, nil
}

// extractKeyTerms asks the model for the headline terms. On malformed output
// the all-"Not specified" record is returned.
func (p *Pipeline) extractKeyTerms(ctx context.Context, text string) (domain.KeyTerms, error) {
	out, err := p.generate(ctx, keyTermsSystem(), keyTermsPrompt(text))
	if err != nil {
		return domain.KeyTerms{}, fmt.Errorf("%w: key terms: %v", domain.ErrCapabilityFailed, err)
	}

	var terms domain.KeyTerms
	if err := decodeModelJSON(out, &terms); err != nil {
		log.Printf("pipeline.extractKeyTerms: %v; falling back to empty key terms", err)
		return domain.EmptyKeyTerms(), nil
	}
	if terms.Parties == nil {
		terms.Parties = []string{}
	}
	return terms, nil
}
