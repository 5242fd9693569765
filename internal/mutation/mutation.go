package mutation

import (
	"fmt"

	"github.com/mutscan/mutscan/internal/align"
)

// Substitution is a single-base difference between the read and the
// reference, in 1-based reference coordinates. It exists only for
// alignment columns where both sides carry a base; indel columns are
// never reported as substitutions.
type Substitution struct {
	RefPos   int // 1-based position in the reference
	RefBase  byte
	ReadBase byte
}

// Type classifies a codon-level mutation by its effect on the
// translated amino acid.
type Type int

const (
	Silent Type = iota
	Missense
)

func (t Type) String() string {
	if t == Missense {
		return "Missense"
	}
	return "Silent"
}

// CodonMutation is one mutated reference codon, with both codons
// translated and the change classified. All positions are 1-based;
// NucleotidePos is the first base of the codon.
type CodonMutation struct {
	CodonPos      int
	NucleotidePos int
	OriginalCodon string
	MutatedCodon  string
	OriginalAA    byte
	MutatedAA     byte
	IsSilent      bool
	Type          Type
}

// AminoAcidChange renders the mutation in protein notation, e.g. "P3P".
func (m CodonMutation) AminoAcidChange() string {
	return fmt.Sprintf("%c%d%c", m.OriginalAA, m.CodonPos, m.MutatedAA)
}

// Record is the engine's unit of output: a codon mutation tagged with
// the sample it was observed in and the orientation its read aligned in.
type Record struct {
	Sample      string
	Orientation align.Orientation
	CodonMutation
}

// TagRecords attaches sample identity and orientation to each codon
// mutation, preserving order.
func TagRecords(sample string, orient align.Orientation, muts []CodonMutation) []Record {
	records := make([]Record, len(muts))
	for i, m := range muts {
		records[i] = Record{Sample: sample, Orientation: orient, CodonMutation: m}
	}
	return records
}
