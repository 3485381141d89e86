package validator

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

// Text is a JSON string field that never fails to decode. It remembers whether
// the key was present, null or of another JSON type so the validators can
// report NAME_MISSING vs NAME_INVALID instead of a generic syntax error.
type Text struct {
	Present  bool
	Null     bool
	IsString bool
	Value    string
}

// TextOf builds a present string field.
func TextOf(s string) Text { return Text{Present: true, IsString: true, Value: s} }

func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{Present: true}
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		t.Null = true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		t.IsString = true
		t.Value = s
	}
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Present || t.Null || !t.IsString {
		return jsonNull, nil
	}
	return json.Marshal(t.Value)
}

// Number is a JSON numeric field. Numeric strings are coerced ("2.5" -> 2.5).
type Number struct {
	Present bool
	Null    bool
	Numeric bool
	Value   float64
}

// NumberOf builds a present numeric field.
func NumberOf(v float64) Number { return Number{Present: true, Numeric: true, Value: v} }

// NumberFromString parses form or query input. An empty string counts as absent.
func NumberFromString(s string) Number {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}
	}
	n := Number{Present: true}
	if v, ok := parseFloat(s); ok {
		n.Numeric = true
		n.Value = v
	}
	return n
}

func (n *Number) UnmarshalJSON(b []byte) error {
	*n = Number{Present: true}
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, jsonNull) {
		n.Null = true
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.Numeric, n.Value = true, f
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if v, ok := parseFloat(strings.TrimSpace(s)); ok {
			n.Numeric, n.Value = true, v
		}
	}
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present || n.Null || !n.Numeric {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// Int reports the value as an id/count when it is a whole, non-negative number.
func (n Number) Int() (int64, bool) {
	if !n.Present || n.Null || !n.Numeric {
		return 0, false
	}
	if n.Value < 0 || n.Value != math.Trunc(n.Value) || n.Value > math.MaxInt64/2 {
		return 0, false
	}
	return int64(n.Value), true
}

func parseFloat(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IDList is a JSON array (or comma separated query value) of entity ids.
type IDList struct {
	Present bool
	IsArray bool
	Numeric bool // every element is a non-negative whole number
	IDs     []int64
}

// IDsOf builds a valid list.
func IDsOf(ids ...int64) IDList {
	return IDList{Present: true, IsArray: true, Numeric: true, IDs: ids}
}

// ParseIDList reads query values such as ?recipe=1,2&recipe=3.
func ParseIDList(values []string) IDList {
	if len(values) == 0 {
		return IDList{}
	}
	l := IDList{Present: true, IsArray: true, Numeric: true}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			id, ok := NumberFromString(part).Int()
			if !ok {
				l.Numeric = false
				continue
			}
			l.IDs = append(l.IDs, id)
		}
	}
	return l
}

func (l *IDList) UnmarshalJSON(b []byte) error {
	*l = IDList{Present: true}
	var items []json.RawMessage
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) || json.Unmarshal(b, &items) != nil {
		return nil
	}
	l.IsArray, l.Numeric = true, true
	l.IDs = make([]int64, 0, len(items))
	for _, item := range items {
		var n Number
		_ = n.UnmarshalJSON(item)
		id, ok := n.Int()
		if !ok {
			l.Numeric = false
			continue
		}
		l.IDs = append(l.IDs, id)
	}
	return nil
}

func (l IDList) MarshalJSON() ([]byte, error) {
	if !l.IsArray {
		return jsonNull, nil
	}
	return json.Marshal(l.IDs)
}

// Unique returns the ids without duplicates, keeping first occurrence order.
func (l IDList) Unique() []int64 {
	seen := make(map[int64]struct{}, len(l.IDs))
	out := make([]int64, 0, len(l.IDs))
	for _, id := range l.IDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// RelationEdit is the {add: [...], rmv: [...]} body used to edit a many-to-many relation.
type RelationEdit struct {
	Present  bool
	IsObject bool
	Add      IDList
	Rmv      IDList
}

func (r *RelationEdit) UnmarshalJSON(b []byte) error {
	*r = RelationEdit{Present: true}
	var body struct {
		Add IDList `json:"add"`
		Rmv IDList `json:"rmv"`
	}
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) || json.Unmarshal(b, &body) != nil {
		return nil
	}
	r.IsObject = true
	r.Add, r.Rmv = body.Add, body.Rmv
	return nil
}

// RawArray keeps the elements of a JSON array undecoded for per-element checks.
type RawArray struct {
	Present bool
	IsArray bool
	Items   []json.RawMessage
}

func (a *RawArray) UnmarshalJSON(b []byte) error {
	*a = RawArray{Present: true}
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		return nil
	}
	if err := json.Unmarshal(b, &a.Items); err == nil {
		a.IsArray = true
	}
	return nil
}
