package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType defines the storage type for cell values
type ValueType string

const (
	ValueTypeNumber ValueType = "number"
	ValueTypeText   ValueType = "text"
	ValueTypeNull   ValueType = "null"
)

// Value represents a typed cell value with deterministic coercion.
// A Null value covers empty cells and undefined columns; the literal
// "null" token survives as a Text value and is counted separately by
// the statistics engine.
type Value struct {
	Type      ValueType `json:"type"`
	NumberVal *float64  `json:"number_val,omitempty"`
	TextVal   *string   `json:"text_val,omitempty"`
}

// NewNumber creates a numeric value
func NewNumber(n float64) Value {
	return Value{Type: ValueTypeNumber, NumberVal: &n}
}

// NewText creates a text value; empty text collapses to Null
func NewText(s string) Value {
	if s == "" {
		return Null()
	}
	return Value{Type: ValueTypeText, TextVal: &s}
}

// Null creates a missing value
func Null() Value {
	return Value{Type: ValueTypeNull}
}

// IsNull returns true for a missing cell
func (v Value) IsNull() bool {
	return v.Type == ValueTypeNull
}

// IsNumber returns true if the value holds a finite number
func (v Value) IsNumber() bool {
	return v.Type == ValueTypeNumber && v.NumberVal != nil && !math.IsNaN(*v.NumberVal) && !math.IsInf(*v.NumberVal, 0)
}

// IsText returns true if the value holds text
func (v Value) IsText() bool {
	return v.Type == ValueTypeText && v.TextVal != nil
}

// IsNullToken reports whether the value is the literal "null" token,
// which callers track separately from a missing cell.
func (v Value) IsNullToken() bool {
	return v.IsText() && strings.EqualFold(strings.TrimSpace(*v.TextVal), "null")
}

// Number returns the numeric payload, or 0 when not numeric
func (v Value) Number() float64 {
	if v.NumberVal == nil {
		return 0
	}
	return *v.NumberVal
}

// Text returns the text payload, or "" when not text
func (v Value) Text() string {
	if v.TextVal == nil {
		return ""
	}
	return *v.TextVal
}

// String returns the stringified form used for frequency tables.
// Numbers use the shortest representation that round-trips.
func (v Value) String() string {
	switch v.Type {
	case ValueTypeNumber:
		if v.NumberVal != nil {
			return strconv.FormatFloat(*v.NumberVal, 'f', -1, 64)
		}
	case ValueTypeText:
		if v.TextVal != nil {
			return *v.TextVal
		}
	case ValueTypeNull:
		return "<null>"
	}
	return "<invalid>"
}

// Column is an ordered sequence of cell values with a name.
type Column struct {
	Name   string  `json:"name"`
	Values []Value `json:"values"`
}

// Dataset is a parsed tabular dataset: a header row plus columns of
// equal length. Column-name uniqueness is a caller contract; the
// engine does not enforce it and keys derived results by name.
type Dataset struct {
	Columns []Column `json:"columns"`
}

// ColumnNames returns header names in column order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column, or false when absent
func (d *Dataset) Column(name string) (Column, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// RowCount returns the row count of the first column (all columns share it)
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// Validate checks that all columns have equal length
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return nil
	}
	n := len(d.Columns[0].Values)
	for _, col := range d.Columns {
		if len(col.Values) != n {
			return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), n)
		}
	}
	return nil
}
