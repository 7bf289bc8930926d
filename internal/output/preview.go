// Package output renders converted tables for humans.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/gouthamssc/jsoncol/internal/table"
)

// WritePreview renders up to limit rows of tbl as an aligned text table.
// Nulls render as empty cells.
func WritePreview(w io.Writer, tbl *table.Table, limit int) {
	if limit <= 0 || limit > tbl.NumRows {
		limit = tbl.NumRows
	}

	headers := make([]string, len(tbl.Columns))
	for i, col := range tbl.Columns {
		headers[i] = col.Field.Name
	}

	tw := tablewriter.NewWriter(w)
	tw.SetHeader(headers)
	tw.SetAutoFormatHeaders(false)

	for row := 0; row < limit; row++ {
		cells := make([]string, len(tbl.Columns))
		for i, col := range tbl.Columns {
			cells[i] = renderCell(col.Values[row])
		}
		tw.Append(cells)
	}
	tw.Render()

	if limit < tbl.NumRows {
		fmt.Fprintf(w, "... %d more row(s)\n", tbl.NumRows-limit)
	}
}

// renderCell formats one coerced column value for display.
func renderCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return fmt.Sprintf("%v", v)
}
