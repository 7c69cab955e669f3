package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUnsupportedFormat   = errors.New("unsupported document format")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyDocument       = errors.New("document contains no data")
	ErrAnalysisNotFound    = errors.New("analysis not found")
	ErrCapabilityFailed    = errors.New("text generation capability failed")
	ErrExtractionFailed    = errors.New("text extraction failed")
	ErrInvalidExportFormat = errors.New("invalid export format")
)
