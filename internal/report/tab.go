package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mutscan/mutscan/internal/mutation"
)

// TabWriter writes mutation records in tab-delimited format.
type TabWriter struct {
	w *bufio.Writer
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(Columns, "\t") + "\n")
	return err
}

// Write writes a single record.
func (tw *TabWriter) Write(r mutation.Record) error {
	_, err := fmt.Fprintf(tw.w, "%s\t%s\t%d\t%s\t%s\t%d\t%c\t%c\t%t\t%s\n",
		r.Sample,
		r.Orientation,
		r.NucleotidePos,
		r.OriginalCodon,
		r.MutatedCodon,
		r.CodonPos,
		r.OriginalAA,
		r.MutatedAA,
		r.IsSilent,
		r.Type,
	)
	return err
}

// WriteAll writes the header and every record, then flushes.
func (tw *TabWriter) WriteAll(records []mutation.Record) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range records {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
