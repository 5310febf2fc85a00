package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/sample"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{3}, 0.5, 3},
		{"min", []float64{1, 2, 3}, 0, 1},
		{"max", []float64{1, 2, 3}, 1, 3},
		{"median", []float64{1, 2, 3}, 0.5, 2},
		{"interpolated", []float64{0, 10}, 0.25, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Percentile(tt.sorted, tt.p), 1e-12)
		})
	}
}

func TestNearestNeighborsWrap(t *testing.T) {
	pts := [][2]float64{{0.05, 0.5}, {0.95, 0.5}, {0.5, 0.5}}
	nn := NearestNeighbors(pts)
	require.InDelta(t, 0.1, nn[0], 1e-12)
	require.InDelta(t, 0.1, nn[1], 1e-12)
	require.InDelta(t, 0.45, nn[2], 1e-12)

	require.True(t, math.IsInf(NearestNeighbors([][2]float64{{0, 0}})[0], 1))
}

func TestAnalyzeGrid(t *testing.T) {
	k, err := kernel.New[float32, kernel.Vec2[float32]](4, 4, 1)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			p := kernel.Vec2[float32]{(float32(x) + 0.5) / 4, (float32(y) + 0.5) / 4}
			require.NoError(t, k.Set(x, y, 0, p))
		}
	}

	r, err := Analyze(k, -1)
	require.NoError(t, err)
	require.Equal(t, 16, r.Count)
	require.Equal(t, 16, r.Capacity)
	require.Equal(t, 1.0, r.Fill)
	require.InDelta(t, 0.25, r.MinNN, 1e-6)
	require.InDelta(t, 0.25, r.MaxNN, 1e-6)
	require.InDelta(t, 0.25, r.MeanNN, 1e-6)
	require.InDelta(t, 0, r.StdNN, 1e-6)
	require.InDelta(t, 16*math.Pi*0.25*0.25/4, r.Packing, 1e-5)
}

func TestAnalyzePoisson(t *testing.T) {
	k, err := kernel.New[float32, kernel.Vec2[float32]](16, 16, 1)
	require.NoError(t, err)
	n, err := sample.PoissonSquareMinDist(k, sample.NewRand(42), 0.1, 32)
	require.NoError(t, err)

	r, err := Analyze(k, n)
	require.NoError(t, err)
	require.Equal(t, n, r.Count)
	require.GreaterOrEqual(t, r.MinNN, 0.1-1e-6)
	require.LessOrEqual(t, r.MinNN, r.P10NN)
	require.LessOrEqual(t, r.P10NN, r.P50NN)
	require.LessOrEqual(t, r.P50NN, r.P90NN)
	require.LessOrEqual(t, r.P90NN, r.MaxNN)
}

func TestAnalyzeEdgeCases(t *testing.T) {
	k, err := kernel.New[float32, kernel.Vec2[float32]](2, 2, 1)
	require.NoError(t, err)

	r, err := Analyze(k, 1)
	require.NoError(t, err)
	require.Equal(t, 1, r.Count)
	require.Zero(t, r.MinNN)
	require.Equal(t, 0.25, r.Fill)

	_, err = Analyze(k, 5)
	require.ErrorIs(t, err, kernel.ErrOutOfRange)
}

func TestValueRange(t *testing.T) {
	k, err := kernel.New[float64, kernel.Vec3[float64]](2, 1, 1)
	require.NoError(t, err)
	require.NoError(t, k.SetAt(0, kernel.Vec3[float64]{1, -2, 5}))
	require.NoError(t, k.SetAt(1, kernel.Vec3[float64]{-1, 4, 5}))

	lo, hi := ValueRange(k)
	require.Equal(t, kernel.Vec3[float64]{-1, -2, 5}, lo)
	require.Equal(t, kernel.Vec3[float64]{1, 4, 5}, hi)
}
