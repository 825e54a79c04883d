package tursu

import (
	"strings"

	messages "github.com/cucumber/messages/go/v21"
)

// Row is a single row in a step's DataTable.
type Row struct {
	cells   []string
	headers []string
}

// Get returns the cell value under the named column (case-insensitive,
// using the table's first row as headers). Returns "" when the column is
// unknown or the row is short.
func (r Row) Get(col string) string {
	for i, h := range r.headers {
		if strings.EqualFold(h, col) {
			if i < len(r.cells) {
				return r.cells[i]
			}
			return ""
		}
	}

	return ""
}

// Cell returns the cell value at the given index, or "" when out of range.
func (r Row) Cell(index int) string {
	if index < 0 || index >= len(r.cells) {
		return ""
	}

	return r.cells[index]
}

// Values returns a copy of all cell values in order.
func (r Row) Values() []string {
	cp := make([]string, len(r.cells))
	copy(cp, r.cells)

	return cp
}

func (r Row) Len() int {
	return len(r.cells)
}

// Table is the DataTable attached to a pickle step. Step functions declare
// a Table parameter to receive it.
type Table struct {
	headers []string
	rows    []Row
}

// NewTable builds a Table from raw cell data. The first row doubles as
// column headers for Get lookups.
func NewTable(data [][]string) Table {
	if len(data) == 0 {
		return Table{}
	}

	headers := make([]string, len(data[0]))
	copy(headers, data[0])

	rows := make([]Row, len(data))
	for i, cells := range data {
		cp := make([]string, len(cells))
		copy(cp, cells)
		rows[i] = Row{cells: cp, headers: headers}
	}

	return Table{headers: headers, rows: rows}
}

// NewTableFromPickleTable builds a Table from the pickle step argument.
func NewTableFromPickleTable(pt *messages.PickleTable) Table {
	if pt == nil || len(pt.Rows) == 0 {
		return Table{}
	}

	data := make([][]string, len(pt.Rows))
	for i, row := range pt.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.Value
		}
		data[i] = cells
	}

	return NewTable(data)
}

// Headers returns the values of the first row.
func (t Table) Headers() []string {
	cp := make([]string, len(t.headers))
	copy(cp, t.headers)

	return cp
}

// Len returns the total number of rows, header included.
func (t Table) Len() int {
	return len(t.rows)
}

// Rows returns every row, header included.
func (t Table) Rows() []Row {
	cp := make([]Row, len(t.rows))
	copy(cp, t.rows)

	return cp
}

// DataRows returns the rows after the header row.
func (t Table) DataRows() []Row {
	if len(t.rows) <= 1 {
		return nil
	}

	cp := make([]Row, len(t.rows)-1)
	copy(cp, t.rows[1:])

	return cp
}
