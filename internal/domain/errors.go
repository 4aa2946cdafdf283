package domain

import "errors"

var (
	// ErrNotFound is returned when an entry or expense id is not in the document
	ErrNotFound = errors.New("not found")

	// ErrDocumentNotFound is returned by repositories that never saved a document
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidInput is wrapped by validation failures on user supplied records
	ErrInvalidInput = errors.New("invalid input")
)

// ErrUnknownArea is returned when a repository row names no known area
var ErrUnknownArea = errors.New("unknown document area")
