package sample

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/pthm-cable/glkernel/kernel"
)

// Stratified splits the unit square into k.Width() x k.Height() strata and
// writes one uniformly jittered point per stratum: slot (i, j) receives a
// point inside [i/w, (i+1)/w) x [j/h, (j+1)/h). Each depth layer is
// stratified independently, so every slot is filled.
func Stratified[T kernel.Float](k *kernel.Kernel[T, kernel.Vec2[T]], rng Rand) error {
	if rng == nil {
		return ErrNilRand
	}
	if k == nil || k.Size() == 0 {
		return fmt.Errorf("%w: empty kernel", kernel.ErrInvalidDimensions)
	}

	w, h := k.Width(), k.Height()

	for z := 0; z < k.Depth(); z++ {
		for j := 0; j < h; j++ {
			for i := 0; i < w; i++ {
				x := stratum[T](i, w, rng.Float64())
				y := stratum[T](j, h, rng.Float64())
				if err := k.Set(i, j, z, kernel.Vec2[T]{x, y}); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// stratum returns the point at fraction u of cell i out of n, nudged to
// the nearest representable T inside [i/n, (i+1)/n) after rounding.
func stratum[T kernel.Float](i, n int, u float64) T {
	lo := float64(i) / float64(n)
	hi := float64(i+1) / float64(n)
	v := T(lo + u*(hi-lo))
	for float64(v) < lo {
		v = nextToward(v, math.Inf(1))
	}
	for float64(v) >= hi {
		v = nextToward(v, math.Inf(-1))
	}
	return v
}

// nextToward returns the T adjacent to v in the direction of target.
func nextToward[T kernel.Float](v T, target float64) T {
	if unsafe.Sizeof(v) == 4 {
		return T(math.Nextafter32(float32(v), float32(target)))
	}
	return T(math.Nextafter(float64(v), target))
}
