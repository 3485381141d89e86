package validator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_planner_v1/internal/errs"
)

func codes(e *Errors) []string {
	out := make([]string, 0, len(e.All()))
	for _, d := range e.All() {
		out = append(out, d.Code)
	}
	return out
}

func TestErrors_Accumulates(t *testing.T) {
	var e Errors
	assert.True(t, e.Ok())
	assert.NoError(t, e.Err())

	ValidID(&e, "a", Number{})
	ValidQuantity(&e, "b", NumberOf(-1))
	assert.Equal(t, []string{IDMissing, QuantityInvalid}, codes(&e))

	first, ok := e.First()
	require.True(t, ok)
	assert.Equal(t, IDMissing, first.Code)

	var appErr *errs.Error
	require.ErrorAs(t, e.Err(), &appErr)
	assert.Len(t, appErr.Details, 2)
}

func TestTextDecoding(t *testing.T) {
	var body struct {
		A Text `json:"a"`
		B Text `json:"b"`
		C Text `json:"c"`
		D Text `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":null,"c":5}`), &body))
	assert.Equal(t, Text{Present: true, IsString: true, Value: "x"}, body.A)
	assert.Equal(t, Text{Present: true, Null: true}, body.B)
	assert.Equal(t, Text{Present: true}, body.C)
	assert.Equal(t, Text{}, body.D)
}

func TestNumberDecoding(t *testing.T) {
	var body struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
		D Number `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":"2.5","c":"abc","d":null}`), &body))
	assert.Equal(t, NumberOf(1.5), body.A)
	assert.Equal(t, NumberOf(2.5), body.B)
	assert.True(t, body.C.Present)
	assert.False(t, body.C.Numeric)
	assert.True(t, body.D.Null)

	_, ok := NumberFromString("NaN").Int()
	assert.False(t, ok)
}

func TestIDListDecoding(t *testing.T) {
	var l IDList
	require.NoError(t, json.Unmarshal([]byte(`[1, "2", 3]`), &l))
	assert.True(t, l.Numeric)
	assert.Equal(t, []int64{1, 2, 3}, l.IDs)

	require.NoError(t, json.Unmarshal([]byte(`[1, "x"]`), &l))
	assert.True(t, l.IsArray)
	assert.False(t, l.Numeric)

	require.NoError(t, json.Unmarshal([]byte(`"1,2"`), &l))
	assert.False(t, l.IsArray)
}

func TestParseIDList(t *testing.T) {
	l := ParseIDList([]string{"1,2", "3"})
	assert.True(t, l.Numeric)
	assert.Equal(t, []int64{1, 2, 3}, l.IDs)

	l = ParseIDList([]string{"1,abc"})
	assert.False(t, l.Numeric)

	assert.False(t, ParseIDList(nil).Present)
	assert.Equal(t, []int64{1, 2}, IDsOf(1, 2, 1).Unique())
}

func TestValidID(t *testing.T) {
	tests := []struct {
		in   Number
		want string
	}{
		{Number{}, IDMissing},
		{Number{Present: true, Null: true}, IDMissing},
		{NumberOf(-1), IDInvalid},
		{NumberOf(1.5), IDInvalid},
		{Number{Present: true}, IDInvalid},
		{NumberOf(0), ""},
		{NumberOf(42), ""},
	}
	for _, tt := range tests {
		var e Errors
		ok := ValidID(&e, "id", tt.in)
		if tt.want == "" {
			assert.True(t, ok)
			assert.True(t, e.Ok())
			continue
		}
		assert.False(t, ok)
		assert.Equal(t, []string{tt.want}, codes(&e))
	}
}

func TestParseID(t *testing.T) {
	var e Errors
	id, ok := ParseID(&e, "id", "12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), id)

	_, ok = ParseID(&e, "id", "")
	assert.False(t, ok)
	_, ok = ParseID(&e, "id", "1x")
	assert.False(t, ok)
	_, ok = ParseID(&e, "id", "-3")
	assert.False(t, ok)
	assert.Equal(t, []string{IDMissing, IDInvalid, IDInvalid}, codes(&e))
}

func TestValidAlpha_BoundsAndCharset(t *testing.T) {
	b := Bounds{Min: 1, Max: 20}
	for _, name := range []string{"A", "Main St", "Bäckerei Süd", strings.Repeat("x", 20)} {
		var e Errors
		assert.True(t, ValidAlpha(&e, "branch.name", TextOf(name), b), name)
	}

	tests := []struct {
		in   Text
		want string
	}{
		{Text{}, NameMissing},
		{Text{Present: true, Null: true}, NameMissing},
		{Text{Present: true}, NameInvalid},
		{TextOf("Main St 2"), NameInvalid},
		{TextOf("Main-St"), NameInvalid},
		{TextOf(""), NameInvalidLength},
		{TextOf(strings.Repeat("x", 21)), NameInvalidLength},
	}
	for _, tt := range tests {
		var e Errors
		assert.False(t, ValidAlpha(&e, "branch.name", tt.in, b))
		assert.Equal(t, []string{tt.want}, codes(&e), tt.in.Value)
	}
}

func TestValidAlphanumeric(t *testing.T) {
	var e Errors
	assert.True(t, ValidAlphanumeric(&e, "size.name", TextOf("20cm"), SizeName))
	assert.False(t, ValidAlphanumeric(&e, "size.name", TextOf("20 cm!"), SizeName))
	assert.Equal(t, []string{NameInvalid}, codes(&e))
}

func TestValidDescription(t *testing.T) {
	var e Errors
	assert.True(t, ValidDescription(&e, "d", TextOf("crusty")))
	assert.True(t, ValidDescription(&e, "d", Text{Present: true, Null: true}))
	assert.True(t, e.Ok())

	assert.False(t, ValidDescription(&e, "d", Text{}))
	assert.False(t, ValidDescription(&e, "d", TextOf("   ")))
	assert.False(t, ValidDescription(&e, "d", Text{Present: true}))
	assert.Equal(t, []string{DescriptionMissing, DescriptionMissing, DescriptionInvalid}, codes(&e))
}

func TestValidQuantityMultiplicatorDay(t *testing.T) {
	var e Errors
	assert.True(t, ValidQuantity(&e, "q", NumberOf(0.5)))
	assert.False(t, ValidQuantity(&e, "q", NumberOf(0)))
	assert.False(t, ValidQuantity(&e, "q", Number{}))

	assert.True(t, ValidMultiplicator(&e, "m", NumberOf(0)))
	assert.False(t, ValidMultiplicator(&e, "m", NumberOf(-0.1)))
	assert.False(t, ValidMultiplicator(&e, "m", Number{Present: true, Null: true}))

	assert.True(t, ValidDay(&e, "d", NumberOf(7)))
	assert.False(t, ValidDay(&e, "d", NumberOf(8)))
	assert.False(t, ValidDay(&e, "d", NumberOf(2.5)))
	assert.False(t, ValidDay(&e, "d", Number{}))

	assert.Equal(t, []string{
		QuantityInvalid, QuantityMissing,
		MultiplicatorInvalid, MultiplicatorMissing,
		DayInvalid, DayInvalid, DayMissing,
	}, codes(&e))
}

func TestRelationEdit(t *testing.T) {
	decode := func(s string) RelationEdit {
		var body struct {
			R RelationEdit `json:"r"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"r":`+s+`}`), &body))
		return body.R
	}

	v := &BranchValidator{}
	assert.True(t, v.RecipeIDs(decode(`{"add":[1,2],"rmv":[3]}`)))
	assert.True(t, v.RecipeIDs(decode(`{}`)))
	assert.True(t, v.Ok())

	assert.False(t, v.RecipeIDs(decode(`[1,2]`)))
	assert.False(t, v.RecipeIDs(decode(`{"add":["a"]}`)))
	assert.False(t, v.RecipeIDs(decode(`{"add":[1,2],"rmv":[2]}`)))
	assert.Equal(t, []string{ArrayInvalid, ArrayInvalid, RelationOverlap}, codes(&v.Errors))
}

func TestNamesNeedASlug(t *testing.T) {
	r := &RecipeValidator{}
	assert.True(t, r.Name(TextOf("Brot 2")))
	assert.False(t, r.Name(TextOf("123")))
	assert.Equal(t, []string{NameInvalid}, codes(&r.Errors))

	c := &CategoryValidator{}
	assert.False(t, c.Name(TextOf("Éé")))
	assert.Equal(t, []string{NameInvalid}, codes(&c.Errors))

	b := &BranchValidator{}
	assert.True(t, b.Name(TextOf("Äpfelhof")))
}

func TestVariantValidator_Ingredients(t *testing.T) {
	decode := func(s string) RawArray {
		var a RawArray
		require.NoError(t, a.UnmarshalJSON([]byte(s)))
		return a
	}

	v := &VariantValidator{}
	ings, ok := v.Ingredients(decode(`[
		{"name":"Mehl","quantity":500,"unit":"g","section":"Teig","order":1},
		{"name":"Wasser","quantity":"350","unit":"ml","section":"Teig","order":2}
	]`))
	require.True(t, ok, v.All())
	require.Len(t, ings, 2)
	assert.Equal(t, 350.0, ings[1].Quantity)
	assert.Equal(t, 2, ings[1].Order)

	v = &VariantValidator{}
	_, ok = v.Ingredients(decode(`[
		{"name":"Mehl","quantity":500,"unit":"g","section":"Teig","order":1},
		{"name":"Salz","unit":"g","section":"Teig","order":2},
		{"name":"Hefe","quantity":-1,"unit":"g","section":"Teig","order":3},
		"oops"
	]`))
	assert.False(t, ok)
	assert.Equal(t, []string{IngredientInvalid, QuantityInvalid, IngredientInvalid}, codes(&v.Errors))
	assert.Contains(t, v.All()[0].Message, "[1]")
	assert.Contains(t, v.All()[0].Message, "quantity")
	assert.Contains(t, v.All()[1].Message, "[2]")
	assert.Contains(t, v.All()[2].Message, "[3]")

	v = &VariantValidator{}
	_, ok = v.Ingredients(decode(`{"name":"x"}`))
	assert.False(t, ok)
	assert.Equal(t, []string{ArrayInvalid}, codes(&v.Errors))
}
