package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"clausevet/internal/domain"
)

// decoder turns one binary document format into plain text.
type decoder func(data []byte) (string, error)

// Extractor dispatches binary-to-text extraction on filename extension.
// It implements port.TextExtractor.
type Extractor struct {
	decoders map[domain.DocumentFormat]decoder
}

// NewExtractor creates an Extractor with the built-in PDF and DOCX decoders.
func NewExtractor() *Extractor {
	return &Extractor{
		decoders: map[domain.DocumentFormat]decoder{
			domain.FormatPDF:  extractPDF,
			domain.FormatDOCX: extractDOCX,
		},
	}
}

// Extract decodes the document into plain text. Dispatch is purely on the
// lowercased filename extension; anything outside the known set fails with
// domain.ErrUnsupportedFormat before any decoding is attempted.
func (e *Extractor) Extract(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	format, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filename)
	}

	dec, ok := e.decoders[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, filename)
	}

	text, err := dec(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrExtractionFailed, format, err)
	}
	return text, nil
}
