package mutation

import (
	"runtime"
	"sync"
)

// WorkItem holds one sample's read, ready for analysis.
type WorkItem struct {
	Seq    int
	Sample string
	Read   string
}

// WorkResult holds the records produced for a single sample.
type WorkResult struct {
	Seq     int
	Sample  string
	Records []Record
	Err     error
}

// ParallelAnalyze processes work items using a pool of workers. Samples
// are mutually independent, so results are sent to the returned channel
// in arrival order (not sequence order); use OrderedCollect to consume
// them in sequence-number order. If workers is 0, runtime.NumCPU() is used.
func (a *Analyzer) ParallelAnalyze(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				records, err := a.AnalyzeSample(item.Sample, item.Read)
				results <- WorkResult{
					Seq:     item.Seq,
					Sample:  item.Sample,
					Records: records,
					Err:     err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// Out-of-order results are buffered in a pending map and emitted as
// soon as the next expected sequence number arrives. Blocks until the
// results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
