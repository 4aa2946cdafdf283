package importer

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/wealthtrack/internal/domain"
)

// Number accepts a JSON number, a Brazilian formatted string or null.
// Present reports whether the field carried a usable value.
type Number struct {
	Value   decimal.Decimal
	Present bool
}

// UnmarshalJSON implements json.Unmarshaler
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = Number{Value: domain.ToNumber(s), Present: strings.ContainsAny(s, "0123456789")}
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		// booleans, objects and arrays coerce to zero
		*n = Number{}
		return nil
	}
	*n = Number{Value: d, Present: true}
	return nil
}

// Tags accepts a list of names or a single name.
type Tags []string

// UnmarshalJSON implements json.Unmarshaler
func (t *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*t = nil
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Tags{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*t = list
	return nil
}

type rawEntry struct {
	ID        string `json:"id"`
	Bank      string `json:"bank"`
	Source    string `json:"source"`
	Date      string `json:"date"`
	Invested  Number `json:"invested"`
	InAccount Number `json:"inAccount"`
	CashFlow  Number `json:"cashFlow"`
}

func (r rawEntry) entry() domain.Entry {
	return domain.WithID(domain.Entry{
		ID:        strings.TrimSpace(r.ID),
		Bank:      strings.TrimSpace(r.Bank),
		Source:    strings.TrimSpace(r.Source),
		Date:      strings.TrimSpace(r.Date),
		Invested:  r.Invested.Value,
		InAccount: r.InAccount.Value,
		CashFlow:  r.CashFlow.Value,
	})
}

type rawExpense struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Value       Number `json:"value"`
	Categories  Tags   `json:"categories"`
	Category    Tags   `json:"category"`
	Sources     Tags   `json:"sources"`
	Source      Tags   `json:"source"`
}

func (r rawExpense) expense() domain.Expense {
	categories := r.Categories
	if len(categories) == 0 {
		categories = r.Category
	}
	sources := r.Sources
	if len(sources) == 0 {
		sources = r.Source
	}
	return domain.ExpenseWithID(domain.Expense{
		ID:          strings.TrimSpace(r.ID),
		Date:        strings.TrimSpace(r.Date),
		Description: strings.TrimSpace(r.Description),
		Value:       r.Value.Value,
		Categories:  trimTags(categories),
		Sources:     trimTags(sources),
	})
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// rawInvestments is both the legacy export root and the unified investimentos area
type rawInvestments struct {
	Version      *int                       `json:"version"`
	Type         string                     `json:"type"`
	CreatedAt    string                     `json:"created_at"`
	ExportedAt   string                     `json:"exported_at"`
	Banks        domain.Library             `json:"banks"`
	Sources      domain.Library             `json:"sources"`
	PersonalInfo map[string]json.RawMessage `json:"personal_info"`
	Settings     map[string]json.RawMessage `json:"settings"`
	Entries      []rawEntry                 `json:"entries"`
	Inputs       []struct {
		Entries []rawEntry `json:"entries"`
	} `json:"inputs"`
}

func (r rawInvestments) entries() []rawEntry {
	out := append([]rawEntry(nil), r.Entries...)
	for _, in := range r.Inputs {
		out = append(out, in.Entries...)
	}
	return out
}

type rawExpenses struct {
	Expenses   []rawExpense   `json:"expenses"`
	Categories domain.Library `json:"categories"`
	Sources    domain.Library `json:"sources"`
	Inputs     []struct {
		Expenses []rawExpense `json:"expenses"`
	} `json:"inputs"`
}

func (r rawExpenses) expenses() []rawExpense {
	out := append([]rawExpense(nil), r.Expenses...)
	for _, in := range r.Inputs {
		out = append(out, in.Expenses...)
	}
	return out
}

type rawUnified struct {
	Version     *int                   `json:"version"`
	Type        string                 `json:"type"`
	ExportedAt  string                 `json:"exported_at"`
	Investments *rawInvestments        `json:"investimentos"`
	Expenses    *rawExpenses           `json:"gastos"`
	Projection  *domain.ProjectionForm `json:"projecao"`
}

// probe holds just enough of the root to tell the formats apart
type probe struct {
	Type        string          `json:"type"`
	Investments json.RawMessage `json:"investimentos"`
	Expenses    json.RawMessage `json:"gastos"`
	Banks       json.RawMessage `json:"banks"`
	Entries     json.RawMessage `json:"entries"`
	ExpenseList json.RawMessage `json:"expenses"`
	Inputs      []struct {
		Entries  json.RawMessage `json:"entries"`
		Expenses json.RawMessage `json:"expenses"`
	} `json:"inputs"`
}
