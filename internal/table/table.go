// Package table infers one column type per field from a record batch and
// materializes the records as typed columns.
package table

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gouthamssc/jsoncol/internal/errors"
	"github.com/gouthamssc/jsoncol/internal/models"
	"github.com/gouthamssc/jsoncol/internal/normalizer"
)

// ColumnType is the inferred storage type of a column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
	TypeBool
)

// String returns the type name used in schema conflict messages.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	}
	return "unknown"
}

// Field describes one column of the inferred schema. Every column is
// nullable: fields may be absent or null in any record.
type Field struct {
	Name string
	Type ColumnType
}

// Schema is the ordered set of columns inferred from a record batch. Columns
// are sorted by name so output is deterministic regardless of map iteration.
type Schema struct {
	Fields []Field
}

// Column holds one materialized column. Values are coerced to the column
// type (string, int64, float64, or bool) with nil marking nulls.
type Column struct {
	Field  Field
	Values []interface{}
}

// Table is the in-memory columnar form of a record batch, ready for
// serialization.
type Table struct {
	Columns []Column
	NumRows int
}

// Infer derives a schema from the union of observed value kinds per field.
// Integer and float observations widen to float64; any other mix of kinds is
// a schema conflict. Fields that are always null or absent infer as string.
func Infer(records []models.Record) (*Schema, error) {
	kinds := make(map[string]ColumnType)
	seen := make(map[string]bool)

	for _, rec := range records {
		for name, value := range rec {
			if _, ok := seen[name]; !ok {
				seen[name] = false
			}
			if value == nil {
				continue
			}
			kind := kindOf(value)
			if !seen[name] {
				kinds[name] = kind
				seen[name] = true
				continue
			}
			merged, ok := mergeKinds(kinds[name], kind)
			if !ok {
				return nil, errors.NewSchemaError(
					fmt.Sprintf("field '%s' observed as both %s and %s", name, kinds[name], kind),
					errors.ErrSchemaConflict,
				)
			}
			kinds[name] = merged
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, len(names))
	for i, name := range names {
		t := TypeString
		if seen[name] {
			t = kinds[name]
		}
		fields[i] = Field{Name: name, Type: t}
	}
	return &Schema{Fields: fields}, nil
}

// Build infers a schema and materializes typed columns from the records. The
// rename hook maps input field names to output column names; pass nil to keep
// names as is.
func Build(records []models.Record, rename func(string) string) (*Table, error) {
	schema, err := Infer(records)
	if err != nil {
		return nil, err
	}

	columns := make([]Column, len(schema.Fields))
	for i, f := range schema.Fields {
		values := make([]interface{}, len(records))
		for row, rec := range records {
			v, ok := rec[f.Name]
			if !ok || v == nil {
				values[row] = nil
				continue
			}
			cell, err := coerce(v, f.Type)
			if err != nil {
				return nil, errors.NewSchemaError(
					fmt.Sprintf("field '%s' row %d: %v", f.Name, row, err),
					errors.ErrSchemaConflict,
				)
			}
			values[row] = cell
		}

		out := f
		if rename != nil {
			out.Name = rename(f.Name)
		}
		columns[i] = Column{Field: out, Values: values}
	}

	return &Table{Columns: columns, NumRows: len(records)}, nil
}

// kindOf classifies a non-null value. Nested objects and arrays are stored as
// their JSON text, so they classify as strings.
func kindOf(v models.JSONValue) ColumnType {
	switch val := v.(type) {
	case bool:
		return TypeBool
	case string:
		return TypeString
	case json.Number:
		if strings.ContainsAny(val.String(), ".eE") {
			return TypeFloat64
		}
		return TypeInt64
	case float64:
		return TypeFloat64
	default:
		return TypeString
	}
}

// mergeKinds unifies two observed kinds for the same field. The only
// reconcilable mix is integer with float, which widens to float64.
func mergeKinds(a, b ColumnType) (ColumnType, bool) {
	if a == b {
		return a, true
	}
	if (a == TypeInt64 && b == TypeFloat64) || (a == TypeFloat64 && b == TypeInt64) {
		return TypeFloat64, true
	}
	return TypeString, false
}

// coerce converts a non-null value into the column's storage representation.
func coerce(v models.JSONValue, t ColumnType) (interface{}, error) {
	switch t {
	case TypeString:
		return normalizer.Render(v), nil
	case TypeInt64:
		num, ok := v.(json.Number)
		if !ok {
			return nil, fmt.Errorf("expected number, got %T", v)
		}
		return num.Int64()
	case TypeFloat64:
		switch val := v.(type) {
		case json.Number:
			return val.Float64()
		case float64:
			return val, nil
		}
		return nil, fmt.Errorf("expected number, got %T", v)
	case TypeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		return b, nil
	}
	return nil, fmt.Errorf("unsupported column type %v", t)
}
