// Package report formats the engine's mutation table for downstream
// consumers: tab-delimited text, a styled Excel workbook, and a DuckDB
// table.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mutscan/mutscan/internal/mutation"
)

// Columns is the output table's column order. Every writer in this
// package emits fields in exactly this order.
var Columns = []string{
	"sample",
	"orientation",
	"nucleotide_position",
	"original_codon",
	"mutated_codon",
	"aa_position",
	"original_aa",
	"mutated_aa",
	"is_silent",
	"mutation_type",
}

// SortRecords orders records by sample, then nucleotide position.
func SortRecords(records []mutation.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Sample != records[j].Sample {
			return records[i].Sample < records[j].Sample
		}
		return records[i].NucleotidePos < records[j].NucleotidePos
	})
}

// Variant is a group of samples sharing an identical mutation signature.
type Variant struct {
	Name      string // name of the first sample carrying the signature
	Samples   []string
	Mutations []mutation.Record // one representative record per mutated codon
}

// Signature builds a canonical key for a sample's mutation set: the
// (position, original codon, mutated codon) triples sorted by position
// and joined. Samples with the same key carry the same variant.
func Signature(records []mutation.Record) string {
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = fmt.Sprintf("%d:%s>%s", r.NucleotidePos, r.OriginalCodon, r.MutatedCodon)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// ClusterVariants groups samples by identical mutation signature.
// Variants are ordered by descending sample count, then by name.
func ClusterVariants(records []mutation.Record) []Variant {
	bySample := make(map[string][]mutation.Record)
	var sampleOrder []string
	for _, r := range records {
		if _, seen := bySample[r.Sample]; !seen {
			sampleOrder = append(sampleOrder, r.Sample)
		}
		bySample[r.Sample] = append(bySample[r.Sample], r)
	}
	sort.Strings(sampleOrder)

	bySig := make(map[string]*Variant)
	var sigOrder []string
	for _, sample := range sampleOrder {
		recs := bySample[sample]
		sig := Signature(recs)
		v, ok := bySig[sig]
		if !ok {
			muts := make([]mutation.Record, len(recs))
			copy(muts, recs)
			sort.Slice(muts, func(i, j int) bool {
				return muts[i].NucleotidePos < muts[j].NucleotidePos
			})
			v = &Variant{Name: sample, Mutations: muts}
			bySig[sig] = v
			sigOrder = append(sigOrder, sig)
		}
		v.Samples = append(v.Samples, sample)
	}

	variants := make([]Variant, 0, len(sigOrder))
	for _, sig := range sigOrder {
		variants = append(variants, *bySig[sig])
	}
	sort.SliceStable(variants, func(i, j int) bool {
		if len(variants[i].Samples) != len(variants[j].Samples) {
			return len(variants[i].Samples) > len(variants[j].Samples)
		}
		return variants[i].Name < variants[j].Name
	})
	return variants
}

// MutationSummary renders a variant's mutations in a compact single-line
// form, e.g. "7: CCC->CCG (P->P); 13: GAA->AAA (E->K)".
func (v Variant) MutationSummary() string {
	parts := make([]string, len(v.Mutations))
	for i, m := range v.Mutations {
		parts[i] = fmt.Sprintf("%d: %s->%s (%c->%c)",
			m.NucleotidePos, m.OriginalCodon, m.MutatedCodon, m.OriginalAA, m.MutatedAA)
	}
	return strings.Join(parts, "; ")
}
