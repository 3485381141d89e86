package validator

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Bounds is an inclusive rune-length range.
type Bounds struct {
	Min, Max int
}

var (
	alphaPattern        = regexp.MustCompile(`^[\p{L} ]*$`)
	alphanumericPattern = regexp.MustCompile(`^[\p{L}\p{N} ]*$`)
)

const maxDescriptionLength = 5000

// ValidID checks a body id: present, not null, whole and non-negative.
func ValidID(e *Errors, label string, n Number) bool {
	if !n.Present || n.Null {
		e.Push(IDMissing, label+" is missing")
		return false
	}
	if _, ok := n.Int(); !ok {
		e.Push(IDInvalid, label+" must be a non-negative integer")
		return false
	}
	return true
}

// ParseID checks a path or query id.
func ParseID(e *Errors, label, raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		e.Push(IDMissing, label+" is missing")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		e.Push(IDInvalid, label+" must be a non-negative integer")
		return 0, false
	}
	return id, true
}

// ValidAlpha accepts letters and spaces within b.
func ValidAlpha(e *Errors, label string, t Text, b Bounds) bool {
	return validName(e, label, t, b, alphaPattern, "letters and spaces")
}

// ValidAlphanumeric accepts letters, digits and spaces within b.
func ValidAlphanumeric(e *Errors, label string, t Text, b Bounds) bool {
	return validName(e, label, t, b, alphanumericPattern, "letters, digits and spaces")
}

func validName(e *Errors, label string, t Text, b Bounds, pattern *regexp.Regexp, allowed string) bool {
	if !t.Present || t.Null {
		e.Push(NameMissing, label+" is missing")
		return false
	}
	if !t.IsString || !pattern.MatchString(t.Value) {
		e.Push(NameInvalid, label+" may only contain "+allowed)
		return false
	}
	if n := utf8.RuneCountInString(t.Value); n < b.Min || n > b.Max {
		e.Push(NameInvalidLength, label+" must be between "+strconv.Itoa(b.Min)+" and "+strconv.Itoa(b.Max)+" characters")
		return false
	}
	return true
}

// ValidDescription: null is accepted and means "clear the stored value".
// An absent key or a blank string is DESCRIPTION_MISSING, so callers only
// invoke it when the key was sent.
func ValidDescription(e *Errors, label string, t Text) bool {
	if !t.Present {
		e.Push(DescriptionMissing, label+" is missing")
		return false
	}
	if t.Null {
		return true
	}
	if !t.IsString || utf8.RuneCountInString(t.Value) > maxDescriptionLength {
		e.Push(DescriptionInvalid, label+" must be a string of at most "+strconv.Itoa(maxDescriptionLength)+" characters")
		return false
	}
	if strings.TrimSpace(t.Value) == "" {
		e.Push(DescriptionMissing, label+" is empty")
		return false
	}
	return true
}

// ValidNumberArray checks that l is an array of ids.
func ValidNumberArray(e *Errors, label string, l IDList) bool {
	if !l.Present || !l.IsArray || !l.Numeric {
		e.Push(ArrayInvalid, label+" must be an array of ids")
		return false
	}
	return true
}

// ValidArray checks that a is an array, whatever its elements.
func ValidArray(e *Errors, label string, a RawArray) bool {
	if !a.Present || !a.IsArray {
		e.Push(ArrayInvalid, label+" must be an array")
		return false
	}
	return true
}

// ValidQuantity requires a strictly positive number.
func ValidQuantity(e *Errors, label string, n Number) bool {
	if !n.Present || n.Null {
		e.Push(QuantityMissing, label+" is missing")
		return false
	}
	if !n.Numeric || n.Value <= 0 {
		e.Push(QuantityInvalid, label+" must be a positive number")
		return false
	}
	return true
}

// ValidMultiplicator requires a non-negative number.
func ValidMultiplicator(e *Errors, label string, n Number) bool {
	if !n.Present || n.Null {
		e.Push(MultiplicatorMissing, label+" is missing")
		return false
	}
	if !n.Numeric || n.Value < 0 {
		e.Push(MultiplicatorInvalid, label+" must be a non-negative number")
		return false
	}
	return true
}

// ValidDay requires a whole number 1 (Monday) .. 7 (Sunday).
func ValidDay(e *Errors, label string, n Number) bool {
	if !n.Present || n.Null {
		e.Push(DayMissing, label+" is missing")
		return false
	}
	if d, ok := n.Int(); !ok || d < 1 || d > 7 {
		e.Push(DayInvalid, label+" must be a whole number between 1 and 7")
		return false
	}
	return true
}

// ValidText checks free text such as an ingredient unit; missingCode and
// invalidCode are the field specific codes.
func ValidText(e *Errors, label string, t Text, b Bounds, missingCode, invalidCode string) bool {
	if !t.Present || t.Null {
		e.Push(missingCode, label+" is missing")
		return false
	}
	if !t.IsString {
		e.Push(invalidCode, label+" must be a string")
		return false
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(t.Value)); n < b.Min || n > b.Max {
		e.Push(invalidCode, label+" must be between "+strconv.Itoa(b.Min)+" and "+strconv.Itoa(b.Max)+" characters")
		return false
	}
	return true
}

// ValidOrder requires a whole, non-negative display position.
func ValidOrder(e *Errors, label string, n Number) bool {
	if !n.Present || n.Null {
		e.Push(OrderMissing, label+" is missing")
		return false
	}
	if _, ok := n.Int(); !ok {
		e.Push(OrderInvalid, label+" must be a non-negative integer")
		return false
	}
	return true
}
