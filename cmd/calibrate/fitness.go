package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/sample"
)

// FitnessEvaluator measures how far the auto-estimated minimum distance
// lands from the requested point count.
type FitnessEvaluator struct {
	params *ParamVector
	sizes  []int // kernel sides; the target count is side*side
	probes int
	seeds  []int64

	mu         sync.Mutex
	lastCounts []float64 // mean saturated count per size from the latest call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, sizes []int, probes int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		sizes:  sizes,
		probes: probes,
		seeds:  seeds,
	}
}

// LastCounts returns the mean saturated count per size from the most recent
// evaluation.
func (fe *FitnessEvaluator) LastCounts() []float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return append([]float64(nil), fe.lastCounts...)
}

// runResult holds the result of one sampler run.
type runResult struct {
	count int
	err   error
}

// Evaluate computes fitness for a parameter vector (lower = better): the
// mean relative deviation |saturated - target| / target over all sizes and
// seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	eff := fe.params.Clamp(x)[0]

	counts := make([]float64, len(fe.sizes))
	var total float64
	for si, side := range fe.sizes {
		target := side * side
		minDist := sample.EstimateMinDist(target, eff)

		// Run all seeds in parallel
		results := make([]runResult, len(fe.seeds))
		var wg sync.WaitGroup
		for i, seed := range fe.seeds {
			wg.Add(1)
			go func(idx int, s int64) {
				defer wg.Done()
				n, err := saturatedCount(side, minDist, fe.probes, s)
				results[idx] = runResult{count: n, err: err}
			}(i, seed)
		}
		wg.Wait()

		for _, r := range results {
			if r.err != nil {
				return math.Inf(1)
			}
			counts[si] += float64(r.count)
			total += math.Abs(float64(r.count-target)) / float64(target)
		}
		counts[si] /= float64(len(fe.seeds))
	}

	fe.mu.Lock()
	fe.lastCounts = counts
	fe.mu.Unlock()

	return total / float64(len(fe.sizes)*len(fe.seeds))
}

// saturatedCount runs the sampler on a kernel with four times the target
// capacity so that the count is limited by the distance, not by the slots.
func saturatedCount(side int, minDist float64, probes int, seed int64) (int, error) {
	k, err := kernel.New[float32, kernel.Vec2[float32]](2*side, 2*side, 1)
	if err != nil {
		return 0, err
	}
	return sample.PoissonSquareMinDist(k, sample.NewRand(seed), minDist, probes)
}
