package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// Exported files carry plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// DocumentVersion is written into every saved or exported document
const DocumentVersion = 3

// Area names one independently persisted part of the document.
type Area string

const (
	AreaInvestments Area = "investimentos"
	AreaExpenses    Area = "gastos"
	AreaProjection  Area = "projecao"
)

// Areas lists every area in persistence order
var Areas = []Area{AreaInvestments, AreaExpenses, AreaProjection}

// Investments is the investments area of the store document.
type Investments struct {
	Entries      []Entry                    `json:"entries"`
	Banks        Library                    `json:"banks"`
	Sources      Library                    `json:"sources"`
	PersonalInfo map[string]json.RawMessage `json:"personal_info,omitempty"`
	Settings     map[string]json.RawMessage `json:"settings,omitempty"`
}

// Expenses is the expenses area of the store document.
type Expenses struct {
	Expenses   []Expense `json:"expenses"`
	Categories Library   `json:"categories"`
	Sources    Library   `json:"sources"`
}

// UnmarshalJSON reads stored entries with lenient amounts, so a hand-edited
// "1.234,56" loads instead of failing the whole area.
func (inv *Investments) UnmarshalJSON(data []byte) error {
	type plain Investments
	aux := struct {
		*plain
		Entries []storedEntry `json:"entries"`
	}{plain: (*plain)(inv)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	inv.Entries = nil
	if aux.Entries != nil {
		inv.Entries = make([]Entry, len(aux.Entries))
		for i, se := range aux.Entries {
			e := se.Entry
			e.Invested = decimal.Decimal(se.Invested)
			e.InAccount = decimal.Decimal(se.InAccount)
			e.CashFlow = decimal.Decimal(se.CashFlow)
			inv.Entries[i] = e
		}
	}
	return nil
}

// UnmarshalJSON reads stored expenses with lenient values.
func (exp *Expenses) UnmarshalJSON(data []byte) error {
	type plain Expenses
	aux := struct {
		*plain
		Expenses []storedExpense `json:"expenses"`
	}{plain: (*plain)(exp)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	exp.Expenses = nil
	if aux.Expenses != nil {
		exp.Expenses = make([]Expense, len(aux.Expenses))
		for i, se := range aux.Expenses {
			e := se.Expense
			e.Value = decimal.Decimal(se.Value)
			exp.Expenses[i] = e
		}
	}
	return nil
}

type storedEntry struct {
	Entry
	Invested  amount `json:"invested"`
	InAccount amount `json:"inAccount"`
	CashFlow  amount `json:"cashFlow"`
}

type storedExpense struct {
	Expense
	Value amount `json:"value"`
}

// amount is a persisted money value. Numbers and plain decimal strings
// decode as written; a string with a comma is read in Brazilian format.
type amount decimal.Decimal

func (a *amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = amount(decimal.Zero)
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("amount %s: %w", data, err)
		}
		*a = amount(d)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if !strings.Contains(s, ",") {
		if d, err := decimal.NewFromString(strings.TrimSpace(s)); err == nil {
			*a = amount(d)
			return nil
		}
	}
	*a = amount(ToNumber(s))
	return nil
}

// Document is the single persisted store document, keyed by domain area.
type Document struct {
	Version     int            `json:"version"`
	Investments Investments    `json:"investimentos"`
	Expenses    Expenses       `json:"gastos"`
	Projection  ProjectionForm `json:"projecao"`
}

// NewDocument returns an empty document at the current version
func NewDocument() *Document {
	return &Document{
		Version:    DocumentVersion,
		Projection: DefaultProjectionForm(),
	}
}

// Clone returns a deep copy so callers can mutate without affecting the original.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	c := *d
	c.Investments.Entries = slices.Clone(d.Investments.Entries)
	c.Investments.Banks = slices.Clone(d.Investments.Banks)
	c.Investments.Sources = slices.Clone(d.Investments.Sources)
	c.Investments.PersonalInfo = cloneRaw(d.Investments.PersonalInfo)
	c.Investments.Settings = cloneRaw(d.Investments.Settings)
	c.Expenses.Expenses = make([]Expense, len(d.Expenses.Expenses))
	for i, e := range d.Expenses.Expenses {
		e.Categories = slices.Clone(e.Categories)
		e.Sources = slices.Clone(e.Sources)
		c.Expenses.Expenses[i] = e
	}
	if d.Expenses.Expenses == nil {
		c.Expenses.Expenses = nil
	}
	c.Expenses.Categories = slices.Clone(d.Expenses.Categories)
	c.Expenses.Sources = slices.Clone(d.Expenses.Sources)
	return &c
}

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	c := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		c[k] = slices.Clone(v)
	}
	return c
}

// AreaJSON encodes one area of the document.
func (d *Document) AreaJSON(area Area) ([]byte, error) {
	switch area {
	case AreaInvestments:
		return json.Marshal(d.Investments)
	case AreaExpenses:
		return json.Marshal(d.Expenses)
	case AreaProjection:
		return json.Marshal(d.Projection)
	default:
		return nil, ErrUnknownArea
	}
}

// SetAreaJSON decodes one area into the document.
func (d *Document) SetAreaJSON(area Area, data []byte) error {
	switch area {
	case AreaInvestments:
		return json.Unmarshal(data, &d.Investments)
	case AreaExpenses:
		return json.Unmarshal(data, &d.Expenses)
	case AreaProjection:
		return json.Unmarshal(data, &d.Projection)
	default:
		return ErrUnknownArea
	}
}

// RegisterLibraries adds every bank, source and category referenced by
// entries and expenses to the document libraries.
func (d *Document) RegisterLibraries() {
	for _, e := range d.Investments.Entries {
		d.Investments.Banks = d.Investments.Banks.Ensure(e.Bank)
		d.Investments.Sources = d.Investments.Sources.Ensure(e.Source)
	}
	for _, e := range d.Expenses.Expenses {
		d.Expenses.Categories = d.Expenses.Categories.EnsureAll(e.Categories...)
		d.Expenses.Sources = d.Expenses.Sources.EnsureAll(e.Sources...)
	}
}
