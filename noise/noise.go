// Package noise fills kernels of any component count with random or
// coherent noise values.
//
// Unlike the samplers in package sample, these fillers write every slot and
// make no spacing guarantees. Coherent fillers (Perlin, Simplex) evaluate the
// noise at slot centres in [0,1) and use an independent plane per component.
package noise

import (
	"errors"
	"fmt"
	"math"

	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/sample"
)

var (
	// ErrInvalidRange indicates a lower bound above the upper bound or a
	// negative standard deviation.
	ErrInvalidRange = errors.New("noise: invalid value range")
	// ErrInvalidOctaves indicates a coherent noise request with scale <= 0 or
	// fewer than one octave.
	ErrInvalidOctaves = errors.New("noise: scale must be positive and octaves at least 1")
)

// planeOffset separates the noise planes used for different components.
const planeOffset = 17.31

// Uniform sets every component to a value drawn uniformly from [lo, hi).
func Uniform[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V], rng sample.Rand, lo, hi T) error {
	if rng == nil {
		return sample.ErrNilRand
	}
	if !(lo <= hi) {
		return fmt.Errorf("%w: [%v, %v)", ErrInvalidRange, lo, hi)
	}
	span := float64(hi) - float64(lo)
	return fill(k, func(_, _, _ float64, _ int) float64 {
		return float64(lo) + rng.Float64()*span
	})
}

// Normal sets every component to a value drawn from N(mean, stddev^2).
func Normal[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V], rng sample.Rand, mean, stddev T) error {
	if rng == nil {
		return sample.ErrNilRand
	}
	if !(stddev >= 0) {
		return fmt.Errorf("%w: stddev %v", ErrInvalidRange, stddev)
	}
	return fill(k, func(_, _, _ float64, _ int) float64 {
		return float64(mean) + rng.NormFloat64()*float64(stddev)
	})
}

// evaluator is coherent noise over the unit square that repeats every
// period lattice cells along x and y; z selects a plane.
type evaluator func(x, y, z float64, period int) float64

// fbm sums octaves of eval at (x, y) on the given plane, doubling the
// frequency and halving the amplitude each octave. Each octave's frequency
// is rounded to a whole period, at least 1. The result is normalized by the
// total amplitude, so it stays in the range of eval.
func fbm(eval evaluator, x, y, plane, scale float64, octaves int) float64 {
	var sum, norm float64
	amp := 1.0
	freq := scale
	for o := 0; o < octaves; o++ {
		period := max(1, int(math.Round(freq)))
		sum += amp * eval(x, y, plane, period)
		norm += amp
		freq *= 2
		amp *= 0.5
	}
	return sum / norm
}

func coherent[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V], eval evaluator, scale float64, octaves int) error {
	if !(scale > 0) || octaves < 1 {
		return fmt.Errorf("%w: scale %v, octaves %d", ErrInvalidOctaves, scale, octaves)
	}
	return fill(k, func(x, y, z float64, c int) float64 {
		return fbm(eval, x, y, z*scale+float64(c)*planeOffset, scale, octaves)
	})
}

// fill writes f(x, y, z, c) into component c of every slot, where (x, y, z)
// is the slot centre normalized to [0,1).
func fill[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V], f func(x, y, z float64, c int) float64) error {
	if k == nil || k.Size() == 0 {
		return fmt.Errorf("%w: empty kernel", kernel.ErrInvalidDimensions)
	}

	w, h, d := k.Width(), k.Height(), k.Depth()
	for z := 0; z < d; z++ {
		fz := (float64(z) + 0.5) / float64(d)
		for y := 0; y < h; y++ {
			fy := (float64(y) + 0.5) / float64(h)
			for x := 0; x < w; x++ {
				fx := (float64(x) + 0.5) / float64(w)

				var v V
				for c := 0; c < len(v); c++ {
					v[c] = T(f(fx, fy, fz, c))
				}
				if err := k.Set(x, y, z, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
