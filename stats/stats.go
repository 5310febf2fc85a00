// Package stats measures the spacing quality of generated point kernels and
// logs the results of generation runs.
package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/sample"
)

// Report summarizes the nearest-neighbour spacing of a point kernel on the
// unit torus.
type Report struct {
	Count    int     `csv:"count"`
	Capacity int     `csv:"capacity"`
	Fill     float64 `csv:"fill"` // Count / Capacity

	// Nearest-neighbour toroidal distances
	MinNN  float64 `csv:"nn_min"`
	MeanNN float64 `csv:"nn_mean"`
	StdNN  float64 `csv:"nn_std"`
	MaxNN  float64 `csv:"nn_max"`
	P10NN  float64 `csv:"nn_p10"`
	P50NN  float64 `csv:"nn_p50"`
	P90NN  float64 `csv:"nn_p90"`

	// Fraction of the unit square covered by Count disks of diameter MinNN
	Packing float64 `csv:"packing"`
}

// Analyze computes a Report over the first count points of k. A negative
// count analyzes every slot.
func Analyze[T kernel.Float](k *kernel.Kernel[T, kernel.Vec2[T]], count int) (Report, error) {
	if count < 0 {
		count = k.Size()
	}
	if count > k.Size() {
		return Report{}, fmt.Errorf("%w: count %d exceeds capacity %d", kernel.ErrOutOfRange, count, k.Size())
	}

	pts := make([][2]float64, count)
	for i := range pts {
		v, err := k.At(i)
		if err != nil {
			return Report{}, err
		}
		pts[i] = [2]float64{float64(v[0]), float64(v[1])}
	}

	r := Report{Count: count, Capacity: k.Size()}
	if k.Size() > 0 {
		r.Fill = float64(count) / float64(k.Size())
	}
	if count < 2 {
		return r, nil
	}

	nn := NearestNeighbors(pts)
	sorted := make([]float64, len(nn))
	copy(sorted, nn)
	sort.Float64s(sorted)

	r.MinNN = sorted[0]
	r.MaxNN = sorted[len(sorted)-1]
	r.MeanNN, r.StdNN = stat.MeanStdDev(nn, nil)
	r.P10NN = Percentile(sorted, 0.10)
	r.P50NN = Percentile(sorted, 0.50)
	r.P90NN = Percentile(sorted, 0.90)
	r.Packing = float64(count) * math.Pi * r.MinNN * r.MinNN / 4

	return r, nil
}

// NearestNeighbors returns, for each point, the toroidal distance to its
// closest other point. It is quadratic in the number of points.
func NearestNeighbors(pts [][2]float64) []float64 {
	nn := make([]float64, len(pts))
	for i := range nn {
		nn[i] = math.Inf(1)
	}
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d := sample.ToroidalDistance(pts[i], pts[j])
			if d < nn[i] {
				nn[i] = d
			}
			if d < nn[j] {
				nn[j] = d
			}
		}
	}
	return nn
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ValueRange returns the per-component minimum and maximum over every slot
// of k, as the PNG exporter rescales them.
func ValueRange[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V]) (lo, hi V) {
	vals := k.Values()
	if len(vals) == 0 {
		return lo, hi
	}
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		for c := 0; c < len(v); c++ {
			lo[c] = min(lo[c], v[c])
			hi[c] = max(hi[c], v[c])
		}
	}
	return lo, hi
}
