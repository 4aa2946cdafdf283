package importer

import (
	"encoding/json"
	"time"

	"github.com/simaogato/wealthtrack/internal/domain"
)

type unifiedExport struct {
	Version     int                   `json:"version"`
	Type        Kind                  `json:"type"`
	ExportedAt  string                `json:"exported_at"`
	Investments domain.Investments    `json:"investimentos"`
	Expenses    domain.Expenses       `json:"gastos"`
	Projection  domain.ProjectionForm `json:"projecao"`
}

type legacyInput struct {
	Entries []domain.Entry `json:"entries"`
}

type legacyExport struct {
	Version      int                        `json:"version"`
	CreatedAt    string                     `json:"created_at"`
	ExportedAt   string                     `json:"exported_at"`
	Banks        domain.Library             `json:"banks"`
	Sources      domain.Library             `json:"sources"`
	PersonalInfo map[string]json.RawMessage `json:"personal_info"`
	Settings     map[string]json.RawMessage `json:"settings"`
	Inputs       []legacyInput              `json:"inputs"`
}

// Export encodes doc as a unified export file.
func Export(doc *domain.Document, now time.Time) ([]byte, error) {
	out := unifiedExport{
		Version:     domain.DocumentVersion,
		Type:        KindUnified,
		ExportedAt:  now.UTC().Format(time.RFC3339),
		Investments: doc.Investments,
		Expenses:    doc.Expenses,
		Projection:  doc.Projection,
	}
	out.Investments.Entries = append([]domain.Entry{}, doc.Investments.Entries...)
	stripLocks(out.Investments.Entries)
	if out.Expenses.Expenses == nil {
		out.Expenses.Expenses = []domain.Expense{}
	}
	return json.MarshalIndent(out, "", "  ")
}

// ExportInvestments encodes the investments area in the legacy v3 layout.
func ExportInvestments(doc *domain.Document, now time.Time) ([]byte, error) {
	stamp := now.UTC().Format(time.RFC3339)
	entries := append([]domain.Entry{}, doc.Investments.Entries...)
	stripLocks(entries)
	out := legacyExport{
		Version:      domain.DocumentVersion,
		CreatedAt:    stamp,
		ExportedAt:   stamp,
		Banks:        orEmpty(doc.Investments.Banks),
		Sources:      orEmpty(doc.Investments.Sources),
		PersonalInfo: doc.Investments.PersonalInfo,
		Settings:     doc.Investments.Settings,
		Inputs:       []legacyInput{{Entries: entries}},
	}
	return json.MarshalIndent(out, "", "  ")
}

func stripLocks(entries []domain.Entry) {
	for i := range entries {
		entries[i].Locked = false
	}
}

func orEmpty(l domain.Library) domain.Library {
	if l == nil {
		return domain.Library{}
	}
	return l
}
