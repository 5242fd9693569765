package mutation

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) <-chan WorkItem {
	ch := make(chan WorkItem, n)
	for i := range n {
		// Alternate clean and mutated reads so some samples yield
		// records and some none.
		read := "ATGAAACCC"
		if i%2 == 1 {
			read = "ATGAAACCG"
		}
		ch <- WorkItem{
			Seq:    i,
			Sample: fmt.Sprintf("sample%03d", i),
			Read:   read,
		}
	}
	close(ch)
	return ch
}

func TestParallelAnalyze_OrderPreservation(t *testing.T) {
	a := NewAnalyzer("ATGAAACCC")

	items := makeItems(200)
	results := a.ParallelAnalyze(items, 8)

	var collected []int
	err := OrderedCollect(results, func(r WorkResult) error {
		require.NoError(t, r.Err)
		collected = append(collected, r.Seq)
		return nil
	})
	require.NoError(t, err)

	assert.Len(t, collected, 200)
	for i, seq := range collected {
		assert.Equal(t, i, seq, "result %d out of order", i)
	}
}

func TestParallelAnalyze_SingleWorker(t *testing.T) {
	a := NewAnalyzer("ATGAAACCC")

	items := makeItems(50)
	results := a.ParallelAnalyze(items, 1)

	var records []Record
	err := OrderedCollect(results, func(r WorkResult) error {
		records = append(records, r.Records...)
		return nil
	})
	require.NoError(t, err)

	// Every odd-numbered sample carries the CCC->CCG mutation.
	assert.Len(t, records, 25)
}

func TestParallelAnalyze_SamplesIndependent(t *testing.T) {
	a := NewAnalyzer("ATGAAACCC")

	items := makeItems(40)
	results := a.ParallelAnalyze(items, 4)

	bySample := make(map[string][]Record)
	err := OrderedCollect(results, func(r WorkResult) error {
		bySample[r.Sample] = append(bySample[r.Sample], r.Records...)
		return nil
	})
	require.NoError(t, err)

	for sample, recs := range bySample {
		for _, r := range recs {
			assert.Equal(t, sample, r.Sample)
			assert.Equal(t, "CCG", r.MutatedCodon)
		}
	}
}

func TestOrderedCollect_StopsOnError(t *testing.T) {
	a := NewAnalyzer("ATGAAACCC")

	items := makeItems(100)
	results := a.ParallelAnalyze(items, 4)

	calls := 0
	err := OrderedCollect(results, func(r WorkResult) error {
		calls++
		if calls == 3 {
			return fmt.Errorf("writer failed")
		}
		return nil
	})

	assert.EqualError(t, err, "writer failed")
	assert.Equal(t, 3, calls)
}
