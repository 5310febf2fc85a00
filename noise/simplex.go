package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/glkernel/kernel"
)

// Simplex fills every component of k with fractal OpenSimplex noise in
// roughly [-1, 1]. scale is the base frequency over the unit square; like
// Perlin it is rounded per octave so the kernel wraps without seams.
func Simplex[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V], seed int64, scale float64, octaves int) error {
	return coherent(k, torus{opensimplex.New(seed)}.eval, scale, octaves)
}

// torus samples 4D noise on the product of two circles, one per axis, whose
// circumference is period. Moving the circle centres selects the plane.
type torus struct {
	noise opensimplex.Noise
}

func (t torus) eval(x, y, z float64, period int) float64 {
	r := float64(period) / (2 * math.Pi)
	ax, ay := 2*math.Pi*x, 2*math.Pi*y
	return t.noise.Eval4(
		r*math.Cos(ax)+z, r*math.Sin(ax),
		r*math.Cos(ay), r*math.Sin(ay)+z,
	)
}
