package postgres

import (
	"context"
	"fmt"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// documentRepository implements domain.DocumentRepository
type documentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *DB) domain.DocumentRepository {
	return &documentRepository{db: db}
}

// Load assembles the document from its area rows
func (r *documentRepository) Load(ctx context.Context) (*domain.Document, error) {
	query := `
		SELECT area, payload, version
		FROM document_areas
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query document areas: %w", err)
	}
	defer rows.Close()

	doc := domain.NewDocument()
	found := 0
	for rows.Next() {
		var area string
		var payload []byte
		var version int
		if err := rows.Scan(&area, &payload, &version); err != nil {
			return nil, fmt.Errorf("failed to scan document area: %w", err)
		}
		if err := doc.SetAreaJSON(domain.Area(area), payload); err != nil {
			return nil, fmt.Errorf("failed to decode area %q: %w", area, err)
		}
		doc.Version = max(doc.Version, version)
		found++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate document areas: %w", err)
	}

	if found == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// Save upserts every area in one transaction
func (r *documentRepository) Save(ctx context.Context, doc *domain.Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO document_areas (area, payload, version, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (area) DO UPDATE SET
			payload = EXCLUDED.payload,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	for _, area := range domain.Areas {
		payload, err := doc.AreaJSON(area)
		if err != nil {
			return fmt.Errorf("failed to encode area %q: %w", area, err)
		}
		if _, err := tx.ExecContext(ctx, query, string(area), string(payload), doc.Version); err != nil {
			return fmt.Errorf("failed to upsert area %q: %w", area, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
