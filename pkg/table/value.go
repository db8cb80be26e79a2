package table

import (
	"strconv"
	"strings"

	"github.com/omnigrid/omnigrid/pkg/workspace"
)

// Value is a typed cell value. The zero Value is an empty text cell. Writes
// coerce raw input against the owning column's declared type; comparisons and
// audit records always use the canonical string form.
type Value struct {
	kind workspace.FieldType
	text string
	num  float64
}

// Text creates a text value
func Text(s string) Value {
	return Value{kind: workspace.FieldText, text: s}
}

// Number creates a numeric value
func Number(f float64) Value {
	return Value{kind: workspace.FieldNumber, num: f, text: formatNumber(f)}
}

// Date creates a date value from an ISO yyyy-mm-dd string
func Date(s string) Value {
	return Value{kind: workspace.FieldDate, text: s}
}

// Option creates a select-option value
func Option(s string) Value {
	return Value{kind: workspace.FieldSelect, text: s}
}

// Coerce interprets raw input under a column type. Numeric input that fails
// to parse keeps its raw text so a bad paste degrades to a visible string
// rather than an error; a later corrected write still compares cleanly.
func Coerce(t workspace.FieldType, raw string) Value {
	switch t {
	case workspace.FieldNumber:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			return Value{kind: workspace.FieldNumber}
		}
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return Number(f)
		}
		return Value{kind: workspace.FieldNumber, text: raw}
	case workspace.FieldDate:
		return Date(raw)
	case workspace.FieldSelect:
		return Option(raw)
	default:
		return Text(raw)
	}
}

// Kind returns the field type this value was coerced under
func (v Value) Kind() workspace.FieldType {
	if v.kind == "" {
		return workspace.FieldText
	}
	return v.kind
}

// Number returns the numeric interpretation and whether one exists
func (v Value) Number() (float64, bool) {
	if v.kind != workspace.FieldNumber {
		return 0, false
	}
	if v.text != "" && v.text != formatNumber(v.num) {
		// Raw text that never parsed.
		return 0, false
	}
	return v.num, true
}

// String returns the canonical string form used for idempotence comparison,
// audit old/new values, clipboard copy, and export
func (v Value) String() string {
	if v.kind == workspace.FieldNumber && v.text == "" && v.num != 0 {
		return formatNumber(v.num)
	}
	return v.text
}

// IsZero reports whether the value is empty in its canonical string form
func (v Value) IsZero() bool {
	return v.String() == ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
