package table

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MalformedTableError reports a table that cannot be mapped to columns
type MalformedTableError struct {
	Reason string
}

func (e *MalformedTableError) Error() string {
	return "malformed table: " + e.Reason
}

func malformed(format string, args ...interface{}) error {
	return &MalformedTableError{Reason: fmt.Sprintf(format, args...)}
}

// Column identifies a table column by its class token and display name
type Column struct {
	Key  string
	Name string
}

// RecordSet holds a table's columns and, per column, its cell values
type RecordSet struct {
	Columns []Column
	Values  [][]string
}

// Names returns the column display names in order
func (r *RecordSet) Names() []string {
	names := make([]string, len(r.Columns))
	for i, col := range r.Columns {
		names[i] = col.Name
	}
	return names
}

// Len returns the number of data rows
func (r *RecordSet) Len() int {
	if len(r.Values) == 0 {
		return 0
	}
	return len(r.Values[0])
}

// Rows transposes the columns into aligned rows
func (r *RecordSet) Rows() [][]string {
	rows := make([][]string, r.Len())
	for i := range rows {
		row := make([]string, len(r.Values))
		for c := range r.Values {
			row[c] = r.Values[c][i]
		}
		rows[i] = row
	}
	return rows
}

// Extract reads the columns of a table selection. Each th supplies a column:
// its first class token is the key and its trimmed text the name. The column's
// values are the trimmed texts of every td carrying that class, in document order.
func Extract(tbl *goquery.Selection) (*RecordSet, error) {
	headers := tbl.Find("th")
	if headers.Length() == 0 {
		return nil, malformed("no header cells")
	}

	rs := &RecordSet{}
	seen := make(map[string]int)
	var err error

	headers.EachWithBreak(func(i int, th *goquery.Selection) bool {
		name := strings.TrimSpace(th.Text())
		tokens := strings.Fields(th.AttrOr("class", ""))
		if len(tokens) == 0 {
			err = malformed("header %d (%q) has no class", i, name)
			return false
		}
		key := tokens[0]
		if prev, dup := seen[key]; dup {
			err = malformed("headers %d and %d share class %q", prev, i, key)
			return false
		}
		seen[key] = i
		rs.Columns = append(rs.Columns, Column{Key: key, Name: name})
		return true
	})
	if err != nil {
		return nil, err
	}

	cells := tbl.Find("td")
	for _, col := range rs.Columns {
		values := make([]string, 0)
		cells.Each(func(_ int, td *goquery.Selection) {
			if td.HasClass(col.Key) {
				values = append(values, strings.TrimSpace(td.Text()))
			}
		})
		rs.Values = append(rs.Values, values)
	}

	// Every column must be the same length or rows would misalign
	want := len(rs.Values[0])
	for i, values := range rs.Values {
		if len(values) != want {
			return nil, malformed("column %q has %d values, column %q has %d",
				rs.Columns[i].Name, len(values), rs.Columns[0].Name, want)
		}
	}

	return rs, nil
}
