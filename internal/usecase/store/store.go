// Package store owns the in-memory store document and its persistence.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
	"github.com/simaogato/wealthtrack/internal/usecase/seeder"
)

// ChangeEvent is delivered to subscribers after every committed mutation.
type ChangeEvent struct {
	Revision uint64        `json:"revision"`
	Areas    []domain.Area `json:"areas"`
}

// Listener receives change events synchronously after the store lock is released.
type Listener func(ChangeEvent)

// Store holds the authoritative document for the process.
//
// Mutations are applied to a copy and committed atomically; readers get deep
// copies. A failed repository write is logged and the in-memory state is kept.
type Store struct {
	repo   domain.DocumentRepository
	logger *log.Logger

	mu       sync.RWMutex
	doc      *domain.Document
	revision uint64

	subsMu    sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store holding a seeded empty document until Load is called
func NewStore(repo domain.DocumentRepository, logger *log.Logger) *Store {
	return &Store{
		repo:      repo,
		logger:    logger.WithComponent(log.ComponentStore),
		doc:       seeder.New(),
		listeners: make(map[int]Listener),
	}
}

// Load replaces the in-memory document with the persisted one.
// A missing document yields a seeded empty one. Other read failures are
// returned and leave the current document in place.
func (s *Store) Load(ctx context.Context) error {
	doc, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		s.logger.InfoContext(ctx, "no saved document, starting empty", log.FieldOperation, log.OpLoad)
		doc = seeder.New()
	case err != nil:
		return fmt.Errorf("load document: %w", err)
	default:
		seeder.Apply(doc)
	}

	s.mu.Lock()
	s.doc = doc
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "document loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldRevision, rev,
		log.FieldCount, len(doc.Investments.Entries)+len(doc.Expenses.Expenses),
	)
	return nil
}

// Snapshot returns a deep copy of the current document and its revision
func (s *Store) Snapshot() (*domain.Document, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone(), s.revision
}

// Revision returns the current revision without copying the document
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Update applies fn to a copy of the document and commits it when fn succeeds.
// areas names what fn touched and is forwarded to subscribers.
func (s *Store) Update(ctx context.Context, areas []domain.Area, fn func(doc *domain.Document) error) (uint64, error) {
	s.mu.Lock()
	next := s.doc.Clone()
	if err := fn(next); err != nil {
		s.mu.Unlock()
		return 0, err
	}
	rev := s.commit(ctx, next)
	s.mu.Unlock()

	s.notify(ChangeEvent{Revision: rev, Areas: areas})
	return rev, nil
}

// Save replaces the document wholesale, as an import does
func (s *Store) Save(ctx context.Context, doc *domain.Document) uint64 {
	next := doc.Clone()
	seeder.Apply(next)

	s.mu.Lock()
	rev := s.commit(ctx, next)
	s.mu.Unlock()

	s.notify(ChangeEvent{Revision: rev, Areas: domain.Areas})
	return rev
}

// commit must be called with mu held
func (s *Store) commit(ctx context.Context, doc *domain.Document) uint64 {
	doc.Version = domain.DocumentVersion
	s.doc = doc
	s.revision++

	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "persist document failed, keeping in-memory state",
			log.FieldOperation, log.OpSave,
			log.FieldRevision, s.revision,
			log.FieldError, err,
		)
	}
	return s.revision
}

// Subscribe registers fn for change events and returns a function removing it
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.listeners, id)
			s.subsMu.Unlock()
		})
	}
}

func (s *Store) notify(ev ChangeEvent) {
	s.subsMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}
