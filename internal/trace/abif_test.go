package trace

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildABIF assembles a minimal ABIF container with the given tagged
// data blocks, in the layout real AB1 files use: magic, version, header
// entry pointing at the directory, data blocks, directory entries.
func buildABIF(t *testing.T, tags map[string]string) []byte {
	t.Helper()

	type block struct {
		name string
		data []byte
	}
	var blocks []block
	for name, data := range tags {
		blocks = append(blocks, block{name, []byte(data)})
	}

	putEntry := func(buf []byte, name string, number int32, size, offset uint32, inline []byte) {
		copy(buf[0:4], name)
		binary.BigEndian.PutUint32(buf[4:8], uint32(number))
		binary.BigEndian.PutUint16(buf[8:10], typeChar)
		binary.BigEndian.PutUint16(buf[10:12], 1)
		binary.BigEndian.PutUint32(buf[12:16], size) // numElements
		binary.BigEndian.PutUint32(buf[16:20], size) // dataSize
		if inline != nil {
			copy(buf[20:24], inline)
		} else {
			binary.BigEndian.PutUint32(buf[20:24], offset)
		}
	}

	// Data blocks start right after magic+version+header entry.
	dataStart := 6 + dirEntrySize
	var data []byte
	offsets := make([]uint32, len(blocks))
	for i, b := range blocks {
		if len(b.data) > 4 {
			offsets[i] = uint32(dataStart + len(data))
			data = append(data, b.data...)
		}
	}
	dirOffset := uint32(dataStart + len(data))

	out := make([]byte, 0, int(dirOffset)+len(blocks)*dirEntrySize)
	out = append(out, []byte(abifMagic)...)
	out = append(out, 0x01, 0x01) // version 257

	header := make([]byte, dirEntrySize)
	putEntry(header, "tdir", 1, uint32(len(blocks)), dirOffset, nil)
	// The header's numElements is the directory entry count, not a
	// byte size; patch it after putEntry.
	binary.BigEndian.PutUint32(header[12:16], uint32(len(blocks)))
	binary.BigEndian.PutUint32(header[16:20], uint32(len(blocks)*dirEntrySize))
	out = append(out, header...)
	out = append(out, data...)

	for i, b := range blocks {
		entry := make([]byte, dirEntrySize)
		if len(b.data) <= 4 {
			inline := make([]byte, 4)
			copy(inline, b.data)
			putEntry(entry, b.name, 1, uint32(len(b.data)), 0, inline)
		} else {
			putEntry(entry, b.name, 1, uint32(len(b.data)), offsets[i], nil)
		}
		out = append(out, entry...)
	}

	return out
}

func TestParse_BasecallSequence(t *testing.T) {
	data := buildABIF(t, map[string]string{"PBAS": "ATGAAACCGTTT"})

	f, err := Parse(data)
	require.NoError(t, err)

	seq, err := f.Sequence()
	require.NoError(t, err)
	assert.Equal(t, "ATGAAACCGTTT", seq)
}

func TestParse_InlineData(t *testing.T) {
	// Data of 4 bytes or fewer is stored inside the offset field.
	data := buildABIF(t, map[string]string{"PBAS": "ACGT"})

	f, err := Parse(data)
	require.NoError(t, err)

	seq, err := f.Sequence()
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)
}

func TestParse_LowercaseBasecallsUppercased(t *testing.T) {
	data := buildABIF(t, map[string]string{"PBAS": "atgaaaccg"})

	f, err := Parse(data)
	require.NoError(t, err)

	seq, err := f.Sequence()
	require.NoError(t, err)
	assert.Equal(t, "ATGAAACCG", seq)
}

func TestParse_NotABIF(t *testing.T) {
	_, err := Parse([]byte("this is not a trace file, not even close"))
	assert.Error(t, err)

	_, err = Parse([]byte("AB"))
	assert.Error(t, err)
}

func TestParse_MissingBasecalls(t *testing.T) {
	data := buildABIF(t, map[string]string{"DATA": "xxxx-not-basecalls"})

	f, err := Parse(data)
	require.NoError(t, err)

	_, err = f.Sequence()
	assert.Error(t, err)
}

func TestRead_TrimsPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.ab1")
	data := buildABIF(t, map[string]string{"PBAS": "NNNNNATGAAACCG"})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	seq, err := Read(path, 5)
	require.NoError(t, err)
	assert.Equal(t, "ATGAAACCG", seq)
}

func TestRead_TrimLongerThanRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.ab1")
	data := buildABIF(t, map[string]string{"PBAS": "ATG"})
	require.NoError(t, os.WriteFile(path, data, 0o644))

	seq, err := Read(path, 50)
	require.NoError(t, err)
	assert.Equal(t, "", seq)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.ab1"), 50)
	assert.Error(t, err)
}
