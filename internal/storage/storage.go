package storage

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/bbwaa-awards/internal/table"
)

// DefaultDir is where CSV files go when no directory is configured
const DefaultDir = "./data/"

// EnsureDir expands ~, creates dir if it doesn't exist and returns it with a
// trailing separator.
func EnsureDir(dir string) (string, error) {
	if dir == "" {
		dir = DefaultDir
	}

	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir[1:], "/"))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if !strings.HasSuffix(dir, string(filepath.Separator)) && !strings.HasSuffix(dir, "/") {
		dir += string(filepath.Separator)
	}
	return dir, nil
}

// EncodeCSV writes the record set as CSV: column names, then one line per row
func EncodeCSV(w io.Writer, rs *table.RecordSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Names()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(rs.Rows()); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}

// WriteCSV encodes the record set and replaces path with it
func WriteCSV(path string, rs *table.RecordSet) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, rs); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ReadCSV loads a file written by WriteCSV. Values are kept as text.
func ReadCSV(path string) (*table.RecordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing %s: missing header row", filepath.Base(path))
	}

	header := records[0]
	rs := &table.RecordSet{
		Columns: make([]table.Column, len(header)),
		Values:  make([][]string, len(header)),
	}
	for i, name := range header {
		rs.Columns[i] = table.Column{Name: name}
		rs.Values[i] = make([]string, 0, len(records)-1)
	}
	for _, row := range records[1:] {
		for i := range header {
			rs.Values[i] = append(rs.Values[i], row[i])
		}
	}
	return rs, nil
}
