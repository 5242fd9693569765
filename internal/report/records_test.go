package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mutscan/mutscan/internal/align"
	"github.com/mutscan/mutscan/internal/mutation"
)

func rec(sample string, pos int, orig, mut string) mutation.Record {
	return mutation.Record{
		Sample:      sample,
		Orientation: align.Forward,
		CodonMutation: mutation.CodonMutation{
			CodonPos:      (pos-1)/3 + 1,
			NucleotidePos: pos,
			OriginalCodon: orig,
			MutatedCodon:  mut,
			OriginalAA:    mutation.TranslateCodon(orig),
			MutatedAA:     mutation.TranslateCodon(mut),
		},
	}
}

func TestSortRecords(t *testing.T) {
	records := []mutation.Record{
		rec("s2", 7, "CCC", "CCG"),
		rec("s1", 13, "GGG", "GGA"),
		rec("s1", 1, "ATG", "GTG"),
		rec("s2", 1, "ATG", "GTG"),
	}

	SortRecords(records)

	assert.Equal(t, "s1", records[0].Sample)
	assert.Equal(t, 1, records[0].NucleotidePos)
	assert.Equal(t, "s1", records[1].Sample)
	assert.Equal(t, 13, records[1].NucleotidePos)
	assert.Equal(t, "s2", records[2].Sample)
	assert.Equal(t, 1, records[2].NucleotidePos)
}

func TestSignature_OrderIndependent(t *testing.T) {
	a := []mutation.Record{
		rec("s1", 7, "CCC", "CCG"),
		rec("s1", 1, "ATG", "GTG"),
	}
	b := []mutation.Record{
		rec("s2", 1, "ATG", "GTG"),
		rec("s2", 7, "CCC", "CCG"),
	}

	assert.Equal(t, Signature(a), Signature(b))
}

func TestSignature_DistinguishesMutationSets(t *testing.T) {
	a := []mutation.Record{rec("s1", 7, "CCC", "CCG")}
	b := []mutation.Record{rec("s2", 7, "CCC", "CCA")}

	assert.NotEqual(t, Signature(a), Signature(b))
	assert.NotEqual(t, Signature(a), Signature(nil))
}

func TestClusterVariants(t *testing.T) {
	records := []mutation.Record{
		// s1 and s3 share a signature; s2 has its own.
		rec("s1", 7, "CCC", "CCG"),
		rec("s1", 1, "ATG", "GTG"),
		rec("s2", 7, "CCC", "CCA"),
		rec("s3", 1, "ATG", "GTG"),
		rec("s3", 7, "CCC", "CCG"),
	}

	variants := ClusterVariants(records)

	require.Len(t, variants, 2)
	// Most frequent variant first.
	assert.Equal(t, "s1", variants[0].Name)
	assert.Equal(t, []string{"s1", "s3"}, variants[0].Samples)
	require.Len(t, variants[0].Mutations, 2)
	assert.Equal(t, 1, variants[0].Mutations[0].NucleotidePos)
	assert.Equal(t, 7, variants[0].Mutations[1].NucleotidePos)

	assert.Equal(t, "s2", variants[1].Name)
	assert.Equal(t, []string{"s2"}, variants[1].Samples)
}

func TestVariantMutationSummary(t *testing.T) {
	v := Variant{
		Mutations: []mutation.Record{
			rec("s1", 1, "ATG", "GTG"),
			rec("s1", 7, "CCC", "CCG"),
		},
	}

	assert.Equal(t, "1: ATG->GTG (M->V); 7: CCC->CCG (P->P)", v.MutationSummary())
}
