// Package importer reads and writes the JSON export files.
//
// Three payloads are accepted: the unified export ({type:"unified",
// investimentos, gastos}), the legacy investments export
// ({version, banks, sources, inputs:[{entries}]}) and an expenses-only
// payload ({inputs:[{expenses}]} or a bare array). Every violation is
// collected and a payload with any violation is rejected whole.
package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// Kind names the payload format that was detected
type Kind string

const (
	KindUnified     Kind = "unified"
	KindInvestments Kind = "investimentos"
	KindExpenses    Kind = "gastos"
)

// SupportedVersions lists the legacy export versions that can be read
var SupportedVersions = []int{2, 3}

// Result is a validated import ready to be committed.
type Result struct {
	Kind     Kind
	Document *domain.Document
	Areas    []domain.Area
	Entries  int
	Expenses int
}

// ParseDocument parses any supported payload and merges it over current.
// Areas present in the payload replace the matching areas of current; the
// others are kept. current is not modified.
func ParseDocument(data []byte, current *domain.Document) (*Result, error) {
	kind, err := Detect(data)
	if err != nil {
		return nil, err
	}

	doc := current.Clone()
	if doc == nil {
		doc = domain.NewDocument()
	}

	v := &validator{}
	res := &Result{Kind: kind, Document: doc}

	switch kind {
	case KindUnified:
		var raw rawUnified
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, malformed(err)
		}
		if raw.Investments != nil {
			v.version("investimentos.version", raw.Investments.Version)
			doc.Investments = v.investments("investimentos", *raw.Investments)
			res.Areas = append(res.Areas, domain.AreaInvestments)
		}
		if raw.Expenses != nil {
			doc.Expenses = v.expenses("gastos", *raw.Expenses)
			res.Areas = append(res.Areas, domain.AreaExpenses)
		}
		if raw.Projection != nil {
			doc.Projection = raw.Projection.Clamp()
			res.Areas = append(res.Areas, domain.AreaProjection)
		}

	case KindInvestments:
		var raw rawInvestments
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, malformed(err)
		}
		v.version("version", raw.Version)
		doc.Investments = v.investments("", raw)
		res.Areas = []domain.Area{domain.AreaInvestments}

	case KindExpenses:
		expenses, err := ParseExpenses(data)
		if err != nil {
			return nil, err
		}
		doc.Expenses.Expenses = expenses
		res.Areas = []domain.Area{domain.AreaExpenses}
	}

	if err := v.err(); err != nil {
		return nil, err
	}

	doc.Version = domain.DocumentVersion
	doc.RegisterLibraries()
	res.Entries = len(doc.Investments.Entries)
	res.Expenses = len(doc.Expenses.Expenses)
	return res, nil
}

// ParseExpenses parses an expenses-only payload: {inputs:[{expenses}]},
// {expenses} or a bare array of expenses.
func ParseExpenses(data []byte) ([]domain.Expense, error) {
	var items []rawExpense
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, malformed(err)
		}
	} else {
		var raw rawExpenses
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, malformed(err)
		}
		items = raw.expenses()
	}

	v := &validator{}
	out := v.expenseItems("", items)
	if err := v.err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Detect reports which payload format data holds.
func Detect(data []byte) (Kind, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return "", newValidationError(fmt.Errorf("empty file"))
	}
	if trimmed[0] == '[' {
		return KindExpenses, nil
	}

	var p probe
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return "", malformed(err)
	}

	switch {
	case p.Type == string(KindUnified) || present(p.Investments) || present(p.Expenses):
		return KindUnified, nil
	case present(p.Entries) || present(p.Banks):
		return KindInvestments, nil
	case present(p.ExpenseList):
		return KindExpenses, nil
	}

	for _, in := range p.Inputs {
		if present(in.Entries) {
			return KindInvestments, nil
		}
		if present(in.Expenses) {
			return KindExpenses, nil
		}
	}
	return "", newValidationError(fmt.Errorf("unrecognized import format: expected unified, investments or expenses payload"))
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

func malformed(err error) error {
	return newValidationError(fmt.Errorf("malformed JSON: %w", err))
}

// validator collects every violation found while converting a payload
type validator struct {
	errs *multierror.Error
}

func (v *validator) add(format string, args ...any) {
	v.errs = multierror.Append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) err() error {
	if v.errs.ErrorOrNil() == nil {
		return nil
	}
	return &ValidationError{errs: v.errs}
}

func (v *validator) version(field string, version *int) {
	if version == nil {
		return
	}
	for _, supported := range SupportedVersions {
		if *version == supported {
			return
		}
	}
	v.add("%s: unsupported version %d", field, *version)
}

func (v *validator) investments(prefix string, raw rawInvestments) domain.Investments {
	inv := domain.Investments{
		Banks:        raw.Banks,
		Sources:      raw.Sources,
		PersonalInfo: raw.PersonalInfo,
		Settings:     raw.Settings,
	}
	if err := raw.Banks.Validate(); err != nil {
		v.add("%s: %v", path(prefix, "banks"), err)
	}
	if err := raw.Sources.Validate(); err != nil {
		v.add("%s: %v", path(prefix, "sources"), err)
	}

	seen := make(map[string]int)
	for i, r := range raw.entries() {
		e := r.entry()
		if j, dup := seen[e.ID]; dup {
			v.add("%s[%d]: id %q repeats entry %d", path(prefix, "entries"), i, e.ID, j)
			continue
		}
		seen[e.ID] = i
		inv.Entries = append(inv.Entries, e)
	}
	return inv
}

func (v *validator) expenses(prefix string, raw rawExpenses) domain.Expenses {
	exp := domain.Expenses{
		Categories: raw.Categories,
		Sources:    raw.Sources,
		Expenses:   v.expenseItems(prefix, raw.expenses()),
	}
	if err := raw.Categories.Validate(); err != nil {
		v.add("%s: %v", path(prefix, "categories"), err)
	}
	if err := raw.Sources.Validate(); err != nil {
		v.add("%s: %v", path(prefix, "sources"), err)
	}
	return exp
}

func (v *validator) expenseItems(prefix string, items []rawExpense) []domain.Expense {
	field := path(prefix, "expenses")
	out := make([]domain.Expense, 0, len(items))
	seen := make(map[string]int)
	for i, r := range items {
		if id := strings.TrimSpace(r.ID); id != "" {
			if j, dup := seen[id]; dup {
				v.add("%s[%d]: id %q repeats expense %d", field, i, id, j)
			} else {
				seen[id] = i
			}
		}
		if _, ok := domain.ParseDate(r.Date); !ok {
			v.add("%s[%d]: date %q is not a valid ISO date", field, i, r.Date)
		}
		if len(trimTags([]string{r.Description})) == 0 {
			v.add("%s[%d]: description is required", field, i)
		}
		if !r.Value.Present {
			v.add("%s[%d]: value is missing or not a number", field, i)
		}
		out = append(out, r.expense())
	}
	return out
}

func path(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
