package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	doc := NewDocument()
	doc.Investments.Entries = []Entry{{ID: "e1", Bank: "Inter", Source: "Salário", Date: "2025-01-01", Invested: decimal.NewFromInt(1000)}}
	doc.Investments.PersonalInfo = map[string]json.RawMessage{"name": json.RawMessage(`"Ana"`)}
	doc.Expenses.Expenses = []Expense{{ID: "x1", Date: "2025-01-02", Description: "Mercado", Value: decimal.NewFromInt(-50), Categories: []string{"Casa"}}}
	return doc
}

func TestDocument_CloneIsDeep(t *testing.T) {
	doc := sampleDocument()
	c := doc.Clone()

	c.Investments.Entries[0].Bank = "XP"
	c.Expenses.Expenses[0].Categories[0] = "Lazer"
	c.Investments.PersonalInfo["name"][1] = 'B'

	assert.Equal(t, "Inter", doc.Investments.Entries[0].Bank)
	assert.Equal(t, "Casa", doc.Expenses.Expenses[0].Categories[0])
	assert.Equal(t, `"Ana"`, string(doc.Investments.PersonalInfo["name"]))
}

func TestDocument_CloneNil(t *testing.T) {
	var doc *Document
	assert.Nil(t, doc.Clone())
}

func TestDocument_AreaRoundTrip(t *testing.T) {
	doc := sampleDocument()
	restored := NewDocument()

	for _, area := range Areas {
		data, err := doc.AreaJSON(area)
		require.NoError(t, err)
		require.NoError(t, restored.SetAreaJSON(area, data))
	}

	assert.Equal(t, doc.Investments.Entries[0].ID, restored.Investments.Entries[0].ID)
	assert.True(t, restored.Investments.Entries[0].Invested.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, doc.Expenses.Expenses[0].Description, restored.Expenses.Expenses[0].Description)
	assert.Equal(t, doc.Projection, restored.Projection)
}

func TestDocument_SetAreaJSONReadsLenientAmounts(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.SetAreaJSON(AreaInvestments, []byte(`{"entries":[
		{"id":"e1","bank":"Inter","date":"2025-01-01","invested":"1.234,56","inAccount":"10.5","cashFlow":null},
		{"id":"e2","bank":"XP","date":"2025-02-01","invested":200.25,"inAccount":0,"cashFlow":"R$ 1.000"}
	],"banks":[],"sources":[]}`)))
	require.NoError(t, doc.SetAreaJSON(AreaExpenses, []byte(`{"expenses":[
		{"id":"x1","date":"2025-01-02","description":"Feira","value":"-1.500,00","categories":["Casa"],"sources":[]}
	],"categories":[],"sources":[]}`)))

	entries := doc.Investments.Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "e1", entries[0].ID)
	assert.Equal(t, "Inter", entries[0].Bank)
	assert.True(t, entries[0].Invested.Equal(decimal.RequireFromString("1234.56")), entries[0].Invested.String())
	assert.True(t, entries[0].InAccount.Equal(decimal.RequireFromString("10.5")), entries[0].InAccount.String())
	assert.True(t, entries[0].CashFlow.IsZero())
	assert.True(t, entries[1].Invested.Equal(decimal.RequireFromString("200.25")))
	assert.True(t, entries[1].CashFlow.Equal(decimal.NewFromInt(1000)))

	require.Len(t, doc.Expenses.Expenses, 1)
	assert.Equal(t, "Feira", doc.Expenses.Expenses[0].Description)
	assert.Equal(t, []string{"Casa"}, doc.Expenses.Expenses[0].Categories)
	assert.True(t, doc.Expenses.Expenses[0].Value.Equal(decimal.NewFromInt(-1500)))
}

func TestDocument_SetAreaJSONKeepsEmptyLists(t *testing.T) {
	doc := NewDocument()

	require.NoError(t, doc.SetAreaJSON(AreaInvestments, []byte(`{"entries":[],"banks":[]}`)))
	require.NoError(t, doc.SetAreaJSON(AreaExpenses, []byte(`{"categories":[]}`)))

	assert.NotNil(t, doc.Investments.Entries)
	assert.Empty(t, doc.Investments.Entries)
	assert.Nil(t, doc.Expenses.Expenses)
}

func TestDocument_SetAreaJSONRejectsMalformedNumber(t *testing.T) {
	doc := NewDocument()

	err := doc.SetAreaJSON(AreaInvestments, []byte(`{"entries":[{"id":"e1","invested":true}]}`))

	assert.Error(t, err)
}

func TestDocument_UnknownArea(t *testing.T) {
	doc := NewDocument()
	_, err := doc.AreaJSON("bogus")
	assert.ErrorIs(t, err, ErrUnknownArea)
	assert.ErrorIs(t, doc.SetAreaJSON("bogus", []byte("{}")), ErrUnknownArea)
}

func TestDocument_NumbersAreUnquoted(t *testing.T) {
	data, err := json.Marshal(Entry{Invested: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"invested":12.5`)
}

func TestDocument_RegisterLibraries(t *testing.T) {
	doc := sampleDocument()
	doc.Expenses.Expenses[0].Sources = []string{"Cartão"}

	doc.RegisterLibraries()

	_, ok := doc.Investments.Banks.Find("inter")
	assert.True(t, ok)
	_, ok = doc.Investments.Sources.Find("Salário")
	assert.True(t, ok)
	_, ok = doc.Expenses.Categories.Find("Casa")
	assert.True(t, ok)
	_, ok = doc.Expenses.Sources.Find("Cartão")
	assert.True(t, ok)
}
