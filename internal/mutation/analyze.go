package mutation

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/mutscan/mutscan/internal/align"
)

// Analyzer runs the full per-sample pipeline against one reference
// sequence: orientation detection, global alignment, substitution
// extraction, codon classification, and record tagging. Analyzers are
// safe for concurrent use; the reference is read-only after construction.
type Analyzer struct {
	ref    string
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer for the given reference sequence.
func NewAnalyzer(ref string) *Analyzer {
	return &Analyzer{ref: ref, logger: zap.NewNop()}
}

// SetLogger sets the logger for warning messages.
func (a *Analyzer) SetLogger(l *zap.Logger) {
	a.logger = l
}

// AnalyzeSample classifies every point mutation in one sample's read
// against the reference and returns the tagged records.
func (a *Analyzer) AnalyzeSample(sample, read string) ([]Record, error) {
	if a.ref == "" {
		return nil, fmt.Errorf("analyze sample %s: empty reference sequence", sample)
	}

	orient, oriented := align.Orient(read, a.ref)
	aln := align.Align(oriented, a.ref)

	subs := ExtractSubstitutions(aln)
	muts := a.AnalyzeCodons(subs)

	return TagRecords(sample, orient, muts), nil
}

// AnalyzeCodons groups substitutions by the reference codon they fall
// in, rebuilds each affected codon with the read bases overlaid, and
// classifies the change as silent or missense. A trailing partial codon
// (fewer than 3 reference bases left) is skipped. Output is ordered by
// ascending codon position.
func (a *Analyzer) AnalyzeCodons(subs []Substitution) []CodonMutation {
	byCodon := make(map[int][]Substitution)
	for _, s := range subs {
		idx := (s.RefPos - 1) / 3
		byCodon[idx] = append(byCodon[idx], s)
	}

	indexes := make([]int, 0, len(byCodon))
	for idx := range byCodon {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)

	var muts []CodonMutation
	for _, idx := range indexes {
		start := idx * 3
		if start+3 > len(a.ref) {
			// Trailing partial codon; nothing to translate.
			continue
		}
		orig := a.ref[start : start+3]

		mutated := []byte(orig)
		for _, s := range byCodon[idx] {
			mutated[(s.RefPos-1)%3] = s.ReadBase
		}

		origAA := TranslateCodon(orig)
		mutAA := TranslateCodon(string(mutated))
		if origAA == UnknownAA && orig != "" && codonHasAmbiguity(orig) {
			a.logger.Warn("codon contains ambiguous reference base",
				zap.Int("codon", idx+1),
				zap.String("codon_seq", orig))
		}

		silent := origAA == mutAA
		typ := Missense
		if silent {
			typ = Silent
		}

		muts = append(muts, CodonMutation{
			CodonPos:      idx + 1,
			NucleotidePos: start + 1,
			OriginalCodon: orig,
			MutatedCodon:  string(mutated),
			OriginalAA:    origAA,
			MutatedAA:     mutAA,
			IsSilent:      silent,
			Type:          typ,
		})
	}

	return muts
}

func codonHasAmbiguity(codon string) bool {
	for i := 0; i < len(codon); i++ {
		switch codon[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return true
		}
	}
	return false
}
