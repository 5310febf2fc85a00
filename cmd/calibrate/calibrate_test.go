package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/glkernel/config"
)

func TestParamVectorNormalize(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{0.45}
	back := pv.Denormalize(pv.Normalize(raw))
	require.InDeltaSlice(t, raw, back, 1e-12)

	require.Equal(t, []float64{0.2}, pv.Clamp([]float64{-3}))
	require.Equal(t, []float64{0.8}, pv.Clamp([]float64{3}))
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Sampler.MinDist = 0.1

	pv := NewParamVector()
	require.NoError(t, pv.ApplyToConfig(cfg, []float64{0.5}))
	require.Equal(t, 0.5, cfg.Sampler.PackingEfficiency)
	require.Zero(t, cfg.Sampler.MinDist)
	require.Equal(t, []float64{0.5}, pv.ExtractFromConfig(cfg))
}

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("8, 16,32")
	require.NoError(t, err)
	require.Equal(t, []int{8, 16, 32}, sizes)

	_, err = parseSizes("8,x")
	require.Error(t, err)
	_, err = parseSizes("0")
	require.Error(t, err)
}

func TestEvaluatePrefersDefaultEfficiency(t *testing.T) {
	fe := NewFitnessEvaluator(NewParamVector(), []int{8}, 32, []int64{1, 2, 3, 4})

	good := fe.Evaluate([]float64{0.45})
	counts := fe.LastCounts()
	require.Len(t, counts, 1)
	require.Greater(t, counts[0], 0.0)

	loose := fe.Evaluate([]float64{0.2})
	require.Less(t, good, loose)
	require.Less(t, good, 0.3)
}

func TestSaturatedCountExceedsTarget(t *testing.T) {
	// a distance small enough for 4x the target is limited only by capacity
	n, err := saturatedCount(4, 0.01, 8, 1)
	require.NoError(t, err)
	require.Equal(t, 64, n)
}
