package frame

import (
	"bytes"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/parquet-go/parquet-go"
)

// columnOrderKey is the file metadata key holding the frame's column order.
// Parquet groups sort their fields by name, so the order has to travel separately.
const columnOrderKey = "objectio.columns"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeParquet writes f as a single parquet file. Every column is optional so missing
// cells survive the round trip.
func EncodeParquet(f *Frame) ([]byte, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if len(f.Columns) == 0 {
		return nil, fmt.Errorf("cannot encode a frame without columns as parquet")
	}

	group := parquet.Group{}
	for _, col := range f.Columns {
		node, err := leafNode(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		group[col.Name] = parquet.Optional(node)
	}
	schema := parquet.NewSchema("frame", group)

	order, err := json.Marshal(f.Names())
	if err != nil {
		return nil, fmt.Errorf("failed to encode column order: %w", err)
	}

	leaves := make([]parquet.LeafColumn, len(f.Columns))
	for i, col := range f.Columns {
		leaf, ok := schema.Lookup(col.Name)
		if !ok {
			return nil, fmt.Errorf("column %q missing from parquet schema", col.Name)
		}
		leaves[i] = leaf
	}

	rows := make([]parquet.Row, f.NumRows())
	for r := range rows {
		row := make(parquet.Row, len(f.Columns))
		for i, col := range f.Columns {
			leaf := leaves[i]
			cell := col.Values[r]
			if cell == nil {
				row[leaf.ColumnIndex] = parquet.NullValue().Level(0, 0, leaf.ColumnIndex)
				continue
			}
			row[leaf.ColumnIndex] = toValue(cell).Level(0, leaf.MaxDefinitionLevel, leaf.ColumnIndex)
		}
		rows[r] = row
	}

	var buf bytes.Buffer
	w := parquet.NewWriter(&buf, schema, parquet.KeyValueMetadata(columnOrderKey, string(order)))
	if len(rows) > 0 {
		if _, err := w.WriteRows(rows); err != nil {
			return nil, fmt.Errorf("failed to write parquet rows: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return buf.Bytes(), nil
}

func leafNode(typ Type) (parquet.Node, error) {
	switch typ {
	case Int64:
		return parquet.Leaf(parquet.Int64Type), nil
	case Float64:
		return parquet.Leaf(parquet.DoubleType), nil
	case String:
		return parquet.String(), nil
	case Bool:
		return parquet.Leaf(parquet.BooleanType), nil
	default:
		return nil, fmt.Errorf("unsupported column type %s", typ)
	}
}

func toValue(cell any) parquet.Value {
	switch c := cell.(type) {
	case int64:
		return parquet.Int64Value(c)
	case float64:
		return parquet.DoubleValue(c)
	case string:
		return parquet.ByteArrayValue([]byte(c))
	case bool:
		return parquet.BooleanValue(c)
	default:
		return parquet.NullValue()
	}
}

// DecodeParquet reads a parquet file with flat primitive columns into a frame.
// Files written by EncodeParquet keep their column order; others use schema order.
func DecodeParquet(data []byte) (*Frame, error) {
	file, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	schema := file.Schema()
	paths := schema.Columns()
	cols := make([]Column, len(paths))
	for _, path := range paths {
		if len(path) != 1 {
			return nil, fmt.Errorf("nested parquet column %v is not supported", path)
		}
		leaf, ok := schema.Lookup(path...)
		if !ok {
			return nil, fmt.Errorf("parquet column %q not found", path[0])
		}
		if leaf.MaxRepetitionLevel > 0 {
			return nil, fmt.Errorf("repeated parquet column %q is not supported", path[0])
		}
		typ, err := typeOfKind(leaf.Node.Type().Kind())
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", path[0], err)
		}
		cols[leaf.ColumnIndex] = Column{Name: path[0], Type: typ, Values: []any{}}
	}

	buf := make([]parquet.Row, 128)
	for _, rg := range file.RowGroups() {
		if err := readRowGroup(rg, cols, buf); err != nil {
			return nil, err
		}
	}

	if raw, ok := file.Lookup(columnOrderKey); ok {
		cols, err = reorder(cols, raw)
		if err != nil {
			return nil, err
		}
	}

	f := &Frame{Columns: cols}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func readRowGroup(rg parquet.RowGroup, cols []Column, buf []parquet.Row) error {
	rows := rg.Rows()
	defer rows.Close()

	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			for i := range cols {
				cols[i].Values = append(cols[i].Values, nil)
			}
			for _, v := range row {
				ci := v.Column()
				if ci < 0 || ci >= len(cols) || v.IsNull() {
					continue
				}
				cols[ci].Values[len(cols[ci].Values)-1] = fromValue(v, cols[ci].Type)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

func typeOfKind(kind parquet.Kind) (Type, error) {
	switch kind {
	case parquet.Int32, parquet.Int64:
		return Int64, nil
	case parquet.Float, parquet.Double:
		return Float64, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return String, nil
	case parquet.Boolean:
		return Bool, nil
	default:
		return 0, fmt.Errorf("unsupported parquet type %s", kind)
	}
}

func fromValue(v parquet.Value, typ Type) any {
	switch typ {
	case Int64:
		if v.Kind() == parquet.Int32 {
			return int64(v.Int32())
		}
		return v.Int64()
	case Float64:
		if v.Kind() == parquet.Float {
			return float64(v.Float())
		}
		return v.Double()
	case String:
		return string(v.ByteArray())
	case Bool:
		return v.Boolean()
	default:
		return nil
	}
}

func reorder(cols []Column, raw string) ([]Column, error) {
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, fmt.Errorf("failed to decode column order: %w", err)
	}
	if len(names) != len(cols) {
		return cols, nil
	}

	byName := make(map[string]Column, len(cols))
	for _, col := range cols {
		byName[col.Name] = col
	}
	ordered := make([]Column, 0, len(cols))
	for _, name := range names {
		col, ok := byName[name]
		if !ok {
			return cols, nil
		}
		ordered = append(ordered, col)
	}
	return ordered, nil
}
