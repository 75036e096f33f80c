package md

import (
	"context"
	"sync"
)

// Ensemble runs the same parameters under consecutive seeds in
// parallel. Runs are fully independent: each gets its own runner and
// state buffers, so no synchronization beyond the final join.
type Ensemble struct {
	params    Params
	numRuns   int
	seedStart int32
}

// NewEnsemble configures numRuns runs seeded seedStart, seedStart+1, …
func NewEnsemble(p Params, numRuns int, seedStart int32) *Ensemble {
	return &Ensemble{params: p, numRuns: numRuns, seedStart: seedStart}
}

// Run executes all runs and returns their results in seed order.
// The first error (including a zero derived seed) fails the ensemble.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			p := e.params
			p.Seed = e.seedStart + int32(idx)

			r, err := NewRunner(p)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = r.Run(ctx)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
