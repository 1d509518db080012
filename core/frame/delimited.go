package frame

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"objectio/core/utils"
)

// EncodeDelimited writes f as delimited text with a header row.
// Missing cells are written as empty fields; floats always carry a decimal point or
// exponent so they decode as floats again.
func EncodeDelimited(f *Frame, delimiter rune) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	if err := writeRecord(w, &buf, f.Names()); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(f.Columns))
	for row := 0; row < f.NumRows(); row++ {
		for i, col := range f.Columns {
			record[i] = formatCell(col.Values[row])
		}
		if err := writeRecord(w, &buf, record); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush rows: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRecord writes one record. A lone empty field would come out as a blank line,
// which readers skip, so it is written quoted.
func writeRecord(w *csv.Writer, buf *bytes.Buffer, record []string) error {
	if len(record) == 1 && record[0] == "" {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
		buf.WriteString("\"\"\n")
		return nil
	}
	return w.Write(record)
}

func formatCell(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return formatFloat(c)
	case bool:
		if c {
			return "True"
		}
		return "False"
	default:
		return utils.ToString(c)
	}
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// DecodeDelimited parses delimited text with a header row. Column types are inferred
// from the non-empty cells: int64, then float64, then bool (True/False), else string.
// A column with cells but none filled in decodes as float64; a column with no rows as string.
func DecodeDelimited(data []byte, delimiter rune) (*Frame, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter

	header, err := r.Read()
	if err == io.EOF {
		return &Frame{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cells := make([][]string, len(header))
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		for i, field := range record {
			cells[i] = append(cells[i], field)
		}
	}

	f := &Frame{Columns: make([]Column, len(header))}
	for i, name := range header {
		col, err := parseColumn(name, cells[i])
		if err != nil {
			return nil, err
		}
		f.Columns[i] = col
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func parseColumn(name string, fields []string) (Column, error) {
	typ := inferType(fields)
	col := Column{Name: name, Type: typ, Values: make([]any, len(fields))}
	for i, field := range fields {
		if field == "" {
			continue
		}
		cell, err := parseCell(typ, field)
		if err != nil {
			return Column{}, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
		col.Values[i] = cell
	}
	return col, nil
}

func inferType(fields []string) Type {
	if len(fields) == 0 {
		return String
	}

	isInt, isFloat, isBool, filled := true, true, true, false
	for _, field := range fields {
		if field == "" {
			continue
		}
		filled = true
		if isInt {
			if _, err := strconv.ParseInt(field, 10, 64); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := strconv.ParseFloat(field, 64); err != nil {
				isFloat = false
			}
		}
		if isBool {
			if _, ok := utils.ToBool(field); !ok {
				isBool = false
			}
		}
	}

	switch {
	case !filled:
		return Float64
	case isInt:
		return Int64
	case isFloat:
		return Float64
	case isBool:
		return Bool
	default:
		return String
	}
}

func parseCell(typ Type, field string) (any, error) {
	switch typ {
	case Int64:
		return strconv.ParseInt(field, 10, 64)
	case Float64:
		return strconv.ParseFloat(field, 64)
	case Bool:
		if b, ok := utils.ToBool(field); ok {
			return b, nil
		}
		return nil, fmt.Errorf("invalid bool %q", field)
	default:
		return field, nil
	}
}
