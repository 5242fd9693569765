// Package trace reads basecalled sequences from AB1 (ABIF) Sanger
// trace files.
package trace

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

const (
	abifMagic     = "ABIF"
	dirEntrySize  = 28
	typeChar      = 2
	maxDirEntries = 1 << 16
)

// dirEntry is one 28-byte ABIF directory entry. All fields big-endian.
type dirEntry struct {
	Name        [4]byte
	Number      int32
	ElementType int16
	ElementSize int16
	NumElements int32
	DataSize    int32
	DataOffset  [4]byte // inline data when DataSize <= 4, else a file offset
	DataHandle  int32
}

func (e dirEntry) offset() int64 {
	return int64(binary.BigEndian.Uint32(e.DataOffset[:]))
}

// File is a parsed ABIF container.
type File struct {
	data    []byte
	entries []dirEntry
}

// Open reads and parses an AB1 file's directory.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace file: %w", err)
	}
	return Parse(data)
}

// Parse parses raw ABIF bytes.
func Parse(data []byte) (*File, error) {
	if len(data) < 6+dirEntrySize || string(data[:4]) != abifMagic {
		return nil, fmt.Errorf("not an ABIF file")
	}

	var header dirEntry
	if err := binary.Read(bytes.NewReader(data[6:6+dirEntrySize]), binary.BigEndian, &header); err != nil {
		return nil, fmt.Errorf("read ABIF header: %w", err)
	}

	count := int(header.NumElements)
	if count < 0 || count > maxDirEntries {
		return nil, fmt.Errorf("ABIF directory has implausible entry count %d", count)
	}

	dirOff := header.offset()
	end := dirOff + int64(count)*dirEntrySize
	if dirOff < 0 || end > int64(len(data)) {
		return nil, fmt.Errorf("ABIF directory out of bounds")
	}

	entries := make([]dirEntry, count)
	if err := binary.Read(bytes.NewReader(data[dirOff:end]), binary.BigEndian, entries); err != nil {
		return nil, fmt.Errorf("read ABIF directory: %w", err)
	}

	return &File{data: data, entries: entries}, nil
}

// tagData returns the raw bytes for a tag name and number.
func (f *File) tagData(name string, number int32) ([]byte, bool) {
	for _, e := range f.entries {
		if string(e.Name[:]) != name || e.Number != number {
			continue
		}
		size := int64(e.DataSize)
		if size <= 4 {
			return e.DataOffset[:size], true
		}
		off := e.offset()
		if off < 0 || off+size > int64(len(f.data)) {
			return nil, false
		}
		return f.data[off : off+size], true
	}
	return nil, false
}

// Sequence returns the basecalled nucleotide sequence. The edited
// basecalls (PBAS 2) are preferred over the original ones (PBAS 1).
func (f *File) Sequence() (string, error) {
	for _, number := range []int32{2, 1} {
		if data, ok := f.tagData("PBAS", number); ok {
			return strings.ToUpper(string(data)), nil
		}
	}
	return "", fmt.Errorf("no PBAS basecall record in trace")
}

// Read opens an AB1 file and returns its basecalled sequence with the
// first trim bases removed. Sanger reads have unreliable leading bases,
// so callers trim a fixed prefix (default 50 in the CLI).
func Read(path string, trim int) (string, error) {
	f, err := Open(path)
	if err != nil {
		return "", err
	}
	seq, err := f.Sequence()
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if trim < 0 {
		trim = 0
	}
	if trim >= len(seq) {
		return "", nil
	}
	return seq[trim:], nil
}
