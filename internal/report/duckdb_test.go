package report

import (
	"path/filepath"
	"testing"

	"github.com/mutscan/mutscan/internal/mutation"
)

func TestDuckDBWriter_RoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mutations.duckdb")

	w, err := NewDuckDBWriter(dbPath)
	if err != nil {
		t.Fatalf("NewDuckDBWriter: %v", err)
	}
	defer w.Close()

	records := []mutation.Record{
		rec("s1", 7, "CCC", "CCG"),
		rec("s2", 4, "AAA", "GAA"),
	}
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}

	var count int
	if err := w.db.QueryRow("SELECT COUNT(*) FROM mutations").Scan(&count); err != nil {
		t.Fatalf("count query: %v", err)
	}
	if count != 2 {
		t.Errorf("row count = %d, want 2", count)
	}

	var sample, origCodon, mutCodon string
	var pos int
	err = w.db.QueryRow(`
		SELECT sample, nucleotide_position, original_codon, mutated_codon
		FROM mutations WHERE sample = 's1'
	`).Scan(&sample, &pos, &origCodon, &mutCodon)
	if err != nil {
		t.Fatalf("select query: %v", err)
	}
	if pos != 7 || origCodon != "CCC" || mutCodon != "CCG" {
		t.Errorf("got (%d, %s, %s), want (7, CCC, CCG)", pos, origCodon, mutCodon)
	}
}

func TestDuckDBWriter_EmptyBatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.duckdb")

	w, err := NewDuckDBWriter(dbPath)
	if err != nil {
		t.Fatalf("NewDuckDBWriter: %v", err)
	}
	defer w.Close()

	if err := w.WriteAll(nil); err != nil {
		t.Fatalf("WriteAll(nil): %v", err)
	}
}
