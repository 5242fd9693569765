// Package fasta reads reference sequences from FASTA files.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is a single FASTA record.
type Record struct {
	Header   string
	Sequence string
}

// ReadSingle reads the first record of a FASTA file and returns its
// sequence uppercased. The reference sequence is a required input, so
// a missing, unreadable, or empty file is an error.
func ReadSingle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open reference: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	records, err := Parse(reader)
	if err != nil {
		return "", err
	}
	if len(records) == 0 || records[0].Sequence == "" {
		return "", fmt.Errorf("no sequence in %s", path)
	}
	return strings.ToUpper(records[0].Sequence), nil
}

// Parse reads FASTA records from r. Lines beginning with '>' start a
// new record; sequence lines are concatenated.
func Parse(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var records []Record
	var header string
	var seq strings.Builder
	started := false

	flush := func() {
		if started {
			records = append(records, Record{Header: header, Sequence: seq.String()})
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			header = strings.TrimPrefix(line, ">")
			seq.Reset()
			started = true
		} else if started {
			seq.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}
	return records, nil
}
