// Package writer serializes a table to one of the supported columnar
// encodings: Arrow IPC files or snappy-compressed Parquet.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v10/arrow"
	"github.com/apache/arrow/go/v10/arrow/array"
	"github.com/apache/arrow/go/v10/arrow/ipc"
	"github.com/apache/arrow/go/v10/arrow/memory"
	"github.com/segmentio/parquet-go"

	"github.com/gouthamssc/jsoncol/internal/errors"
	"github.com/gouthamssc/jsoncol/internal/table"
)

// Format selects the on-disk encoding of the output file.
type Format int

const (
	FormatArrow Format = iota
	FormatParquet
)

// String returns the CLI name of the format.
func (f Format) String() string {
	switch f {
	case FormatArrow:
		return "arrow"
	case FormatParquet:
		return "parquet"
	}
	return "unknown"
}

// ParseFormat maps a CLI format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "arrow":
		return FormatArrow, nil
	case "parquet":
		return FormatParquet, nil
	}
	return FormatArrow, errors.NewWriteError(
		fmt.Sprintf("unknown format '%s'", name),
		errors.ErrUnknownFormat,
	)
}

// DetectFormat infers the output format from the destination path's
// extension. Anything that is not .parquet defaults to Arrow.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		return FormatParquet
	}
	return FormatArrow
}

// Write serializes tbl to path in the chosen format. An interrupted write may
// leave a truncated file behind; runs are idempotent, so the caller simply
// re-runs.
func Write(tbl *table.Table, path string, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.NewWriteError(
			fmt.Sprintf("failed to create output file '%s'", path),
			err,
		)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case FormatArrow:
		err = writeArrow(tbl, f)
	case FormatParquet:
		err = writeParquet(tbl, f)
	default:
		err = errors.NewWriteError(
			fmt.Sprintf("unknown format %d", format),
			errors.ErrUnknownFormat,
		)
	}
	if err != nil {
		return err
	}

	if err := f.Close(); err != nil {
		return errors.NewWriteError(
			fmt.Sprintf("failed to close output file '%s'", path),
			err,
		)
	}
	return nil
}

// writeArrow writes the table as a single record batch in the Arrow IPC file
// format.
func writeArrow(tbl *table.Table, f *os.File) error {
	mem := memory.NewGoAllocator()
	schema := arrowSchema(tbl)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	for i, col := range tbl.Columns {
		switch col.Field.Type {
		case table.TypeString:
			b := builder.Field(i).(*array.StringBuilder)
			for _, v := range col.Values {
				if v == nil {
					b.AppendNull()
				} else {
					b.Append(v.(string))
				}
			}
		case table.TypeInt64:
			b := builder.Field(i).(*array.Int64Builder)
			for _, v := range col.Values {
				if v == nil {
					b.AppendNull()
				} else {
					b.Append(v.(int64))
				}
			}
		case table.TypeFloat64:
			b := builder.Field(i).(*array.Float64Builder)
			for _, v := range col.Values {
				if v == nil {
					b.AppendNull()
				} else {
					b.Append(v.(float64))
				}
			}
		case table.TypeBool:
			b := builder.Field(i).(*array.BooleanBuilder)
			for _, v := range col.Values {
				if v == nil {
					b.AppendNull()
				} else {
					b.Append(v.(bool))
				}
			}
		}
	}

	rec := builder.NewRecord()
	defer rec.Release()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return errors.NewWriteError("failed to open arrow writer", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return errors.NewWriteError("failed to write arrow record batch", err)
	}
	if err := w.Close(); err != nil {
		return errors.NewWriteError("failed to finalize arrow file", err)
	}
	return nil
}

// arrowSchema maps the inferred schema to an Arrow schema. Every column is
// nullable.
func arrowSchema(tbl *table.Table) *arrow.Schema {
	fields := make([]arrow.Field, len(tbl.Columns))
	for i, col := range tbl.Columns {
		var dt arrow.DataType
		switch col.Field.Type {
		case table.TypeInt64:
			dt = arrow.PrimitiveTypes.Int64
		case table.TypeFloat64:
			dt = arrow.PrimitiveTypes.Float64
		case table.TypeBool:
			dt = arrow.FixedWidthTypes.Boolean
		default:
			dt = arrow.BinaryTypes.String
		}
		fields[i] = arrow.Field{Name: col.Field.Name, Type: dt, Nullable: true}
	}
	return arrow.NewSchema(fields, nil)
}

// writeParquet writes the table as a snappy-compressed parquet file with one
// optional leaf column per field. Rows are assembled as parquet values with
// explicit definition levels, so null cells round-trip without relying on
// reflection over interface-typed cells.
func writeParquet(tbl *table.Table, f *os.File) error {
	if len(tbl.Columns) == 0 {
		return errors.NewWriteError(
			"parquet output requires at least one column; use the arrow format for column-less tables",
			nil,
		)
	}

	group := parquet.Group{}
	byName := make(map[string]table.Column, len(tbl.Columns))
	for _, col := range tbl.Columns {
		group[col.Field.Name] = parquet.Optional(parquetNode(col.Field.Type))
		byName[col.Field.Name] = col
	}
	schema := parquet.NewSchema("record", group)

	// Leaf columns follow the schema's field order, not the table's; emit
	// values per row in column index order. Present values carry definition
	// level 1, nulls level 0.
	fields := schema.Fields()
	rows := make([]parquet.Row, tbl.NumRows)
	for i := range rows {
		rows[i] = make(parquet.Row, 0, len(fields))
	}
	for idx, field := range fields {
		col := byName[field.Name()]
		for i, v := range col.Values {
			val := parquet.ValueOf(v)
			if v == nil {
				val = val.Level(0, 0, idx)
			} else {
				val = val.Level(0, 1, idx)
			}
			rows[i] = append(rows[i], val)
		}
	}

	w := parquet.NewWriter(f, schema, parquet.Compression(&parquet.Snappy))
	if len(rows) > 0 {
		if _, err := w.WriteRows(rows); err != nil {
			return errors.NewWriteError("failed to write parquet rows", err)
		}
	}
	if err := w.Close(); err != nil {
		return errors.NewWriteError("failed to finalize parquet file", err)
	}
	return nil
}

// parquetNode maps a column type to a parquet leaf node.
func parquetNode(t table.ColumnType) parquet.Node {
	switch t {
	case table.TypeInt64:
		return parquet.Int(64)
	case table.TypeFloat64:
		return parquet.Leaf(parquet.DoubleType)
	case table.TypeBool:
		return parquet.Leaf(parquet.BooleanType)
	default:
		return parquet.String()
	}
}
