package frame

import (
	"fmt"
	"math"

	"objectio/core/utils"
)

// Type is the element type of a column.
type Type int

const (
	Int64 Type = iota + 1
	Float64
	String
	Bool
)

func (t Type) String() string {
	switch t {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Column is a named, typed sequence of cells. A nil cell is missing.
// Non-nil cells hold int64, float64, string or bool according to Type.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// NewColumn builds a column, converting loosely typed values (int, float32, "True", ...)
// to the column's element type.
func NewColumn(name string, typ Type, values ...any) (Column, error) {
	col := Column{Name: name, Type: typ, Values: make([]any, len(values))}
	for i, v := range values {
		cell, err := convert(typ, v)
		if err != nil {
			return Column{}, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		col.Values[i] = cell
	}
	return col, nil
}

func convert(typ Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	var (
		cell any
		ok   bool
	)
	switch typ {
	case Int64:
		cell, ok = utils.ToInt64(v)
	case Float64:
		cell, ok = utils.ToFloat64(v)
	case String:
		switch s := v.(type) {
		case string:
			cell, ok = s, true
		case []byte:
			cell, ok = utils.ToString(s), true
		}
	case Bool:
		cell, ok = utils.ToBool(v)
	default:
		return nil, fmt.Errorf("unknown column type %s", typ)
	}
	if !ok {
		return nil, fmt.Errorf("cannot use %T as %s", v, typ)
	}
	return cell, nil
}

// Frame is an in-memory table of ordered named columns of equal length.
type Frame struct {
	Columns []Column
}

// New creates a frame from columns and validates it.
func New(columns ...Column) (*Frame, error) {
	f := &Frame{Columns: columns}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks column names are unique, lengths agree and every cell matches its column type.
func (f *Frame) Validate() error {
	seen := make(map[string]struct{}, len(f.Columns))
	rows := -1
	for _, col := range f.Columns {
		if _, dup := seen[col.Name]; dup {
			return fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = struct{}{}

		if rows >= 0 && len(col.Values) != rows {
			return fmt.Errorf("column %q has %d rows, expected %d", col.Name, len(col.Values), rows)
		}
		rows = len(col.Values)

		for i, v := range col.Values {
			if !matches(col.Type, v) {
				return fmt.Errorf("column %q row %d: %T is not %s", col.Name, i, v, col.Type)
			}
		}
	}
	return nil
}

func matches(typ Type, v any) bool {
	if v == nil {
		return true
	}
	switch typ {
	case Int64:
		_, ok := v.(int64)
		return ok
	case Float64:
		_, ok := v.(float64)
		return ok
	case String:
		_, ok := v.(string)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	default:
		return false
	}
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	if len(f.Columns) == 0 {
		return 0
	}
	return len(f.Columns[0].Values)
}

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.Columns))
	for i, col := range f.Columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name.
func (f *Frame) Column(name string) (Column, bool) {
	for _, col := range f.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return Column{}, false
}

// Head returns a frame holding the first n rows. The cells are shared, not copied.
func (f *Frame) Head(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > f.NumRows() {
		n = f.NumRows()
	}
	out := &Frame{Columns: make([]Column, len(f.Columns))}
	for i, col := range f.Columns {
		out.Columns[i] = Column{Name: col.Name, Type: col.Type, Values: col.Values[:n]}
	}
	return out
}

// Equal reports whether both frames have the same columns (name, type, order) and cells.
// NaN equals NaN.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if len(f.Columns) != len(other.Columns) {
		return false
	}
	for i, a := range f.Columns {
		b := other.Columns[i]
		if a.Name != b.Name || a.Type != b.Type || len(a.Values) != len(b.Values) {
			return false
		}
		for j := range a.Values {
			if !cellEqual(a.Values[j], b.Values[j]) {
				return false
			}
		}
	}
	return true
}

func cellEqual(a, b any) bool {
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok && math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
	}
	return a == b
}
