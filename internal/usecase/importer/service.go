package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/simaogato/wealthtrack/internal/domain"
	"github.com/simaogato/wealthtrack/internal/log"
)

// Format selects the export layout
type Format string

const (
	FormatUnified     Format = "unified"
	FormatInvestments Format = "investimentos"
)

// DocumentReplacer is the store surface an import needs
type DocumentReplacer interface {
	Snapshot() (*domain.Document, uint64)
	Save(ctx context.Context, doc *domain.Document) uint64
}

// ImportService validates payloads and swaps them into the store
type ImportService struct {
	Store  DocumentReplacer
	logger *log.Logger
	now    func() time.Time
}

// NewImportService creates a new ImportService instance
func NewImportService(store DocumentReplacer, logger *log.Logger) *ImportService {
	return &ImportService{
		Store:  store,
		logger: logger.WithComponent(log.ComponentImport),
		now:    time.Now,
	}
}

// Import parses data and commits it. On any violation the store is left unchanged.
func (s *ImportService) Import(ctx context.Context, data []byte) (*Result, uint64, error) {
	current, _ := s.Store.Snapshot()
	res, err := ParseDocument(data, current)
	if err != nil {
		s.logger.WarnContext(ctx, "import rejected", log.FieldOperation, log.OpImport, log.FieldError, err)
		return nil, 0, err
	}

	rev := s.Store.Save(ctx, res.Document)
	s.logger.InfoContext(ctx, "import committed",
		log.FieldOperation, log.OpImport,
		log.FieldRevision, rev,
		log.FieldAreas, res.Areas,
		"kind", res.Kind,
	)
	return res, rev, nil
}

// Export encodes the current document in format
func (s *ImportService) Export(ctx context.Context, format Format) ([]byte, error) {
	doc, rev := s.Store.Snapshot()

	var data []byte
	var err error
	switch format {
	case FormatUnified, "":
		data, err = Export(doc, s.now())
	case FormatInvestments:
		data, err = ExportInvestments(doc, s.now())
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	s.logger.InfoContext(ctx, "document exported", log.FieldOperation, log.OpExport, log.FieldRevision, rev)
	return data, nil
}
