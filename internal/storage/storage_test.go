package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pfrederiksen/bbwaa-awards/internal/table"
)

func sampleRecordSet() *table.RecordSet {
	return &table.RecordSet{
		Columns: []table.Column{
			{Key: "player", Name: "Player"},
			{Key: "points", Name: "Points"},
			{Key: "team", Name: "Team"},
		},
		Values: [][]string{
			{"Dallas Keuchel", "David Price", "Sonny Gray"},
			{"186", "134", "082"},
			{"Houston, TX", `Toronto "Jays"`, ""},
		},
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{
			name: "creates nested directory and appends separator",
			dir:  filepath.Join(tmpDir, "a", "b"),
			want: filepath.Join(tmpDir, "a", "b") + string(filepath.Separator),
		},
		{
			name: "keeps existing trailing slash",
			dir:  filepath.Join(tmpDir, "c") + "/",
			want: filepath.Join(tmpDir, "c") + "/",
		},
		{
			name: "existing directory is fine",
			dir:  tmpDir,
			want: tmpDir + string(filepath.Separator),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnsureDir(tt.dir)
			if err != nil {
				t.Fatalf("EnsureDir() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("EnsureDir() = %q, want %q", got, tt.want)
			}
			info, err := os.Stat(got)
			if err != nil || !info.IsDir() {
				t.Errorf("directory %q was not created", got)
			}
		})
	}
}

func TestEnsureDir_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := EnsureDir("~/bbwaa")
	if err != nil {
		t.Fatalf("EnsureDir() error: %v", err)
	}
	want := filepath.Join(home, "bbwaa") + string(filepath.Separator)
	if got != want {
		t.Errorf("EnsureDir() = %q, want %q", got, want)
	}
}

func TestEnsureDir_FileInTheWay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := EnsureDir(path); err == nil {
		t.Error("EnsureDir() expected error when a file occupies the path")
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, sampleRecordSet()); err != nil {
		t.Fatalf("EncodeCSV() error: %v", err)
	}

	want := strings.Join([]string{
		"Player,Points,Team",
		`Dallas Keuchel,186,"Houston, TX"`,
		`David Price,134,"Toronto ""Jays"""`,
		"Sonny Gray,082,",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("EncodeCSV() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2015_AL_CyYoung_summary.csv")
	original := sampleRecordSet()

	if err := WriteCSV(path, original); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error: %v", err)
	}

	if !reflect.DeepEqual(got.Names(), original.Names()) {
		t.Errorf("Names() = %q, want %q", got.Names(), original.Names())
	}
	// No numeric coercion: "082" must survive as text
	if !reflect.DeepEqual(got.Values, original.Values) {
		t.Errorf("Values = %q, want %q", got.Values, original.Values)
	}
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	rs := &table.RecordSet{
		Columns: []table.Column{{Key: "a", Name: "Name"}},
		Values:  [][]string{{}},
	}

	if err := WriteCSV(path, rs); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "Name\n" {
		t.Errorf("file = %q, want header only", string(data))
	}
}

func TestWriteCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale contents that are longer than the new file\n"), 0644); err != nil {
		t.Fatal(err)
	}

	rs := &table.RecordSet{
		Columns: []table.Column{{Key: "a", Name: "A"}},
		Values:  [][]string{{"1"}},
	}
	if err := WriteCSV(path, rs); err != nil {
		t.Fatalf("WriteCSV() error: %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "A\n1\n" {
		t.Errorf("file = %q, want %q", string(data), "A\n1\n")
	}
}

func TestWriteCSV_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	if err := WriteCSV(path, sampleRecordSet()); err == nil {
		t.Error("WriteCSV() expected error for missing directory")
	}
}

func TestReadCSV_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadCSV(filepath.Join(dir, "nope.csv")); err == nil {
		t.Error("ReadCSV() expected error for missing file")
	}

	empty := filepath.Join(dir, "empty.csv")
	os.WriteFile(empty, nil, 0644)
	if _, err := ReadCSV(empty); err == nil {
		t.Error("ReadCSV() expected error for empty file")
	}
}
