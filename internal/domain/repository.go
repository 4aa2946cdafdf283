package domain

import "context"

// DocumentRepository persists the single store document
type DocumentRepository interface {
	// Load retrieves the saved document
	// Returns ErrDocumentNotFound when nothing was ever saved
	Load(ctx context.Context) (*Document, error)

	// Save replaces the persisted document
	Save(ctx context.Context, doc *Document) error
}

// DocumentStore owns the in-memory document shared by the use-case services
type DocumentStore interface {
	// Snapshot returns a deep copy of the document and its revision
	Snapshot() (*Document, uint64)

	// Revision returns the current revision
	Revision() uint64

	// Update applies fn to a copy of the document and commits it when fn succeeds
	Update(ctx context.Context, areas []Area, fn func(doc *Document) error) (uint64, error)
}
