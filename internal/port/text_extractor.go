package port

import "context"

// TextExtractor abstracts binary-to-text extraction for uploaded contracts.
// Format dispatch is by filename suffix only; unrecognized extensions fail
// with domain.ErrUnsupportedFormat.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, filename string) (string, error)
}
