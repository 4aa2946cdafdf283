// Package memory keeps the store document in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// DocumentRepository implements domain.DocumentRepository without persistence
type DocumentRepository struct {
	mu    sync.RWMutex
	doc   *domain.Document
	saves int
}

// NewDocumentRepository creates an empty repository
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

// Load returns a copy of the last saved document
func (r *DocumentRepository) Load(ctx context.Context) (*domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.doc == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return r.doc.Clone(), nil
}

// Save stores a copy of doc
func (r *DocumentRepository) Save(ctx context.Context, doc *domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.doc = doc.Clone()
	r.saves++
	return nil
}

// Saves returns how many times Save succeeded
func (r *DocumentRepository) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
