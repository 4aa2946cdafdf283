// Package sqlite persists the store document in SQLite, one row per area.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/simaogato/wealthtrack/internal/domain"
)

// DocumentRepository implements domain.DocumentRepository on SQLite
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository opens dbPath, creating its directory, and migrates the schema
func NewDocumentRepository(dbPath string) (*DocumentRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	// one writer at a time
	db.SetMaxOpenConns(1)
	return &DocumentRepository{db: db}, nil
}

// Close closes the database connection
func (r *DocumentRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load assembles the document from its area rows
func (r *DocumentRepository) Load(ctx context.Context) (*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT area, payload, version FROM document_areas`)
	if err != nil {
		return nil, fmt.Errorf("query document areas: %w", err)
	}
	defer rows.Close()

	doc := domain.NewDocument()
	found := 0
	for rows.Next() {
		var area, payload string
		var version int
		if err := rows.Scan(&area, &payload, &version); err != nil {
			return nil, fmt.Errorf("scan document area: %w", err)
		}
		if err := doc.SetAreaJSON(domain.Area(area), []byte(payload)); err != nil {
			return nil, fmt.Errorf("decode area %q: %w", area, err)
		}
		doc.Version = max(doc.Version, version)
		found++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document areas: %w", err)
	}
	if found == 0 {
		return nil, domain.ErrDocumentNotFound
	}
	return doc, nil
}

// Save upserts every area in a single transaction
func (r *DocumentRepository) Save(ctx context.Context, doc *domain.Document) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO document_areas (area, payload, version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (area) DO UPDATE SET
			payload = excluded.payload,
			version = excluded.version,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for _, area := range domain.Areas {
		payload, err := doc.AreaJSON(area)
		if err != nil {
			return fmt.Errorf("encode area %q: %w", area, err)
		}
		if _, err := stmt.ExecContext(ctx, string(area), string(payload), doc.Version, now); err != nil {
			return fmt.Errorf("upsert area %q: %w", area, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
