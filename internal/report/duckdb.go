package report

import (
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/mutscan/mutscan/internal/mutation"
)

// DuckDBWriter writes the mutation table into a DuckDB database file so
// downstream analysis can query it with SQL.
type DuckDBWriter struct {
	db *sql.DB
}

// NewDuckDBWriter opens (or creates) a DuckDB database at path and
// ensures the mutations table exists.
func NewDuckDBWriter(path string) (*DuckDBWriter, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS mutations (
			sample              VARCHAR NOT NULL,
			orientation         VARCHAR NOT NULL,
			nucleotide_position INTEGER NOT NULL,
			original_codon      VARCHAR NOT NULL,
			mutated_codon       VARCHAR NOT NULL,
			aa_position         INTEGER NOT NULL,
			original_aa         VARCHAR NOT NULL,
			mutated_aa          VARCHAR NOT NULL,
			is_silent           BOOLEAN NOT NULL,
			mutation_type       VARCHAR NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create mutations table: %w", err)
	}

	return &DuckDBWriter{db: db}, nil
}

// WriteAll inserts all records in a single transaction.
func (w *DuckDBWriter) WriteAll(records []mutation.Record) error {
	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO mutations (
			sample, orientation, nucleotide_position, original_codon,
			mutated_codon, aa_position, original_aa, mutated_aa,
			is_silent, mutation_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err := stmt.Exec(
			r.Sample,
			r.Orientation.String(),
			r.NucleotidePos,
			r.OriginalCodon,
			r.MutatedCodon,
			r.CodonPos,
			string(r.OriginalAA),
			string(r.MutatedAA),
			r.IsSilent,
			r.Type.String(),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert record for %s: %w", r.Sample, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (w *DuckDBWriter) Close() error {
	return w.db.Close()
}
