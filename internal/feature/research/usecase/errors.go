package usecase

import "errors"

var (
	// ErrUnsupportedFormat is returned for uploads that are neither PDF nor DOCX.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrEmptyDocument is returned when no text could be extracted.
	ErrEmptyDocument = errors.New("no text extracted from document")
)
