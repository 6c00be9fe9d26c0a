package schema

// RawTable is a header row plus data rows as read from one partition sheet,
// before or after normalization.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Cell returns row[col] or "" when the row is shorter than the header set.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// ColumnIndex returns the position of a header, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// DropEmptyColumns removes columns whose every cell is empty.
func (t *RawTable) DropEmptyColumns() {
	keep := make([]int, 0, len(t.Headers))
	for i := range t.Headers {
		empty := true
		for r := range t.Rows {
			if t.Cell(r, i) != "" {
				empty = false
				break
			}
		}
		if !empty {
			keep = append(keep, i)
		}
	}
	if len(keep) == len(t.Headers) {
		return
	}
	t.project(keep)
}

// project rebuilds the table keeping only the given column indexes, in order.
func (t *RawTable) project(keep []int) {
	headers := make([]string, len(keep))
	for i, idx := range keep {
		headers[i] = t.Headers[idx]
	}
	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, len(keep))
		for i, idx := range keep {
			row[i] = t.Cell(r, idx)
		}
		rows[r] = row
	}
	t.Headers = headers
	t.Rows = rows
}

// addColumn appends a column filled with the given value.
func (t *RawTable) addColumn(name, fill string) {
	t.Headers = append(t.Headers, name)
	for r := range t.Rows {
		for len(t.Rows[r]) < len(t.Headers)-1 {
			t.Rows[r] = append(t.Rows[r], "")
		}
		t.Rows[r] = append(t.Rows[r], fill)
	}
}
