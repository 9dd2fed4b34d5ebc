package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dkeller9/contactlens/internal/contact"
	"github.com/dkeller9/contactlens/internal/features"
)

func strPtr(s string) *string { return &s }

func testResult(t *testing.T) *features.Result {
	t.Helper()
	records := []contact.Record{
		{ID: 1, Name: "Dr. Jane Doe", Phone: "+1 (415) 555-0199",
			Email: strPtr("jane@gmail.com"), Notes: strPtr("see http://x.co"),
			CreatedAt: contact.ParseTimestamp("2024-01-05T10:00:00")},
		{ID: 2, Name: "Acme Inc", Phone: "555-1234", Category: strPtr("Work")},
	}
	return features.Enrich(records, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
}

func TestWriteDatasets(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC)

	out, err := WriteDatasets(dir, testResult(t), now)
	if err != nil {
		t.Fatalf("WriteDatasets failed: %v", err)
	}

	if out.Rows != 2 {
		t.Errorf("Rows = %d, want 2", out.Rows)
	}
	if filepath.Base(out.FullCSV) != "contacts_full_20240201_0930.csv" {
		t.Errorf("FullCSV = %q, want timestamped name", out.FullCSV)
	}
	for _, path := range []string{out.FullCSV, out.MLCSV, out.MLXLSX, out.MappingJSON} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("artifact %s missing: %v", path, err)
		}
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestMLCSVColumnOrder(t *testing.T) {
	dir := t.TempDir()
	out, err := WriteDatasets(dir, testResult(t), time.Now())
	if err != nil {
		t.Fatalf("WriteDatasets failed: %v", err)
	}

	f, err := os.Open(out.MLCSV)
	if err != nil {
		t.Fatalf("open ML CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read ML CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("ML CSV has %d rows, want header + 2", len(rows))
	}

	header := rows[0]
	if len(header) != len(features.MLColumns) {
		t.Fatalf("header has %d columns, want %d", len(header), len(features.MLColumns))
	}
	for i, want := range features.MLColumns {
		if header[i] != want {
			t.Errorf("header[%d] = %q, want %q", i, header[i], want)
		}
	}

	// Row without created_at: time-derived cells must be empty.
	for _, row := range rows[1:] {
		if row[0] == "8" { // name_length of "Acme Inc"
			monthIdx := 13
			if row[monthIdx] != "" {
				t.Errorf("created_month cell = %q, want empty for null", row[monthIdx])
			}
		}
	}
}

func TestMappingJSON(t *testing.T) {
	dir := t.TempDir()
	out, err := WriteDatasets(dir, testResult(t), time.Now())
	if err != nil {
		t.Fatalf("WriteDatasets failed: %v", err)
	}

	data, err := os.ReadFile(out.MappingJSON)
	if err != nil {
		t.Fatalf("read mapping: %v", err)
	}

	var mapping map[string]int
	if err := json.Unmarshal(data, &mapping); err != nil {
		t.Fatalf("mapping is not valid JSON: %v", err)
	}
	// Labels were {Other, Work}; sorted order gives Other=0, Work=1.
	if mapping["Other"] != 0 || mapping["Work"] != 1 {
		t.Errorf("mapping = %v, want Other=0 Work=1", mapping)
	}
}

func TestWriteDatasetsEmptyBatch(t *testing.T) {
	dir := t.TempDir()
	empty := features.Enrich(nil, time.Now())

	out, err := WriteDatasets(dir, empty, time.Now())
	if err != nil {
		t.Fatalf("WriteDatasets on empty batch failed: %v", err)
	}
	if out.Rows != 0 {
		t.Errorf("Rows = %d, want 0", out.Rows)
	}

	data, err := os.ReadFile(out.MappingJSON)
	if err != nil {
		t.Fatalf("read mapping: %v", err)
	}
	if strings.TrimSpace(string(data)) != "{}" {
		t.Errorf("empty mapping = %q, want {}", strings.TrimSpace(string(data)))
	}
}

func TestWriteFileAtomicPreservesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	if err := WriteFileAtomic(path, []byte("first")); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second")); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}
}

func TestWriteFileAtomicRefusesSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")

	if err := os.WriteFile(target, []byte("keep"), 0600); err != nil {
		t.Fatalf("write target: %v", err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if err := WriteFileAtomic(link, []byte("overwrite")); err == nil {
		t.Error("WriteFileAtomic through symlink succeeded, want error")
	}

	data, _ := os.ReadFile(target)
	if string(data) != "keep" {
		t.Errorf("symlink target content = %q, want untouched", data)
	}
}
