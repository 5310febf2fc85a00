// Package sample fills 2D kernels with sampling patterns: Poisson-disk
// (blue-noise) points on a torus and stratified jitter.
//
// Every sampler takes its random source explicitly, so a fixed seed
// reproduces the same kernel. Points are stored normalized to [0,1) per axis.
package sample

import "math/rand"

// Rand is the random source samplers draw from. *rand.Rand satisfies it.
// A Rand must not be shared between goroutines.
type Rand interface {
	Float64() float64
	Intn(n int) int
	NormFloat64() float64
}

// defaultSeed replaces a zero seed so that NewRand(0) stays reproducible.
const defaultSeed int64 = 1

// NewRand returns a deterministic generator for seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
