// Package pipeline implements the four-stage contract analysis pipeline:
// document processing, clause extraction, risk analysis, and report
// generation. Stages run strictly in order, each adding its own fields to the
// accumulated State and treating earlier fields as read-only input.
//
// Every capability call site distinguishes two failure modes: a call failure
// (transport error, non-2xx, timeout) aborts the whole analysis, while
// malformed structured output is absorbed with the stage's documented
// fallback value and logged.
package pipeline

import (
	"context"
	"log"

	"clausevet/internal/config"
	"clausevet/internal/domain"
	"clausevet/internal/port"
)

// State is the accumulating record threaded through all four stages. Each
// stage only writes the fields it owns.
type State struct {
	Document      []byte
	Filename      string
	ExtractedText string
	Sections      []domain.Section
	KeyTerms      domain.KeyTerms
	Clauses       []domain.Clause
	RiskSummary   domain.RiskAssessment
	Report        string
}

// Pipeline runs contract analyses. One Pipeline is safe for concurrent use;
// each Run owns its State exclusively.
type Pipeline struct {
	gen       port.TextGenerator
	extractor port.TextExtractor
	cfg       config.PipelineConfig
}

// New creates a Pipeline.
func New(gen port.TextGenerator, extractor port.TextExtractor, cfg config.PipelineConfig) *Pipeline {
	if cfg.MaxFullTextChars <= 0 {
		cfg.MaxFullTextChars = 8000
	}
	return &Pipeline{gen: gen, extractor: extractor, cfg: cfg}
}

// Run executes the four stages in order and returns the completed state.
// Any returned error means the analysis failed as a whole; no partial state
// is returned.
func (p *Pipeline) Run(ctx context.Context, document []byte, filename string) (*State, error) {
	state := &State{Document: document, Filename: filename}

	log.Printf("pipeline.Run: processing document %s", filename)
	if err := p.processDocument(ctx, state); err != nil {
		return nil, err
	}

	log.Printf("pipeline.Run: extracting clauses from %s", filename)
	if err := p.extractClauses(ctx, state); err != nil {
		return nil, err
	}

	log.Printf("pipeline.Run: analyzing contract risks for %s", filename)
	if err := p.analyzeRisk(ctx, state); err != nil {
		return nil, err
	}

	log.Printf("pipeline.Run: generating analysis report for %s", filename)
	if err := p.generateReport(ctx, state); err != nil {
		return nil, err
	}

	return state, nil
}

// generate performs one capability call under the configured stage timeout.
func (p *Pipeline) generate(ctx context.Context, system, prompt string) (string, error) {
	if p.cfg.StageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
	}
	return p.gen.Generate(ctx, port.GenerateInput{System: system, Prompt: prompt})
}

// truncateText caps text handed to the comprehensive full-text pass at the
// configured number of leading bytes, not runes; the cut may land inside a
// multi-byte character. Same byte semantics as the dedup key (see DESIGN.md).
func (p *Pipeline) truncateText(text string) string {
	if len(text) > p.cfg.MaxFullTextChars {
		return text[:p.cfg.MaxFullTextChars]
	}
	return text
}
