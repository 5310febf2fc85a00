package noise

import (
	"math"

	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/sample"
)

// gradients are the twelve cube-edge directions.
var gradients = [12][3]float64{
	{1, 1, 0}, {-1, 1, 0}, {1, -1, 0}, {-1, -1, 0},
	{1, 0, 1}, {-1, 0, 1}, {1, 0, -1}, {-1, 0, -1},
	{0, 1, 1}, {0, -1, 1}, {0, 1, -1}, {0, -1, -1},
}

// lattice is gradient noise on an integer grid. Along x and y the grid
// repeats every period cells, so noise sampled over [0,1) tiles.
type lattice struct {
	perm [256]int
}

func newLattice(seed int64) *lattice {
	l := &lattice{}
	copy(l.perm[:], sample.NewRand(seed).Perm(256))
	return l
}

// Perlin fills every component of k with fractal gradient noise in roughly
// [-1, 1]. scale is the base frequency over the unit square, rounded to a
// whole number of cells per octave so the kernel wraps without seams.
func Perlin[T kernel.Float, V kernel.Tuple[T]](k *kernel.Kernel[T, V], seed int64, scale float64, octaves int) error {
	return coherent(k, newLattice(seed).eval, scale, octaves)
}

// eval samples the lattice at (x, y) in unit-square coordinates, with the
// square spanning period cells, and at plane z.
func (l *lattice) eval(x, y, z float64, period int) float64 {
	px, py := x*float64(period), y*float64(period)
	x0, y0, z0 := math.Floor(px), math.Floor(py), math.Floor(z)
	fx, fy, fz := px-x0, py-y0, z-z0

	ix := [2]int{wrapCell(int(x0), period), wrapCell(int(x0)+1, period)}
	iy := [2]int{wrapCell(int(y0), period), wrapCell(int(y0)+1, period)}
	iz := [2]int{int(z0) & 255, (int(z0) + 1) & 255}

	var corners [2][2][2]float64
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			for c := 0; c < 2; c++ {
				g := gradients[l.hash(ix[a], iy[b], iz[c])%12]
				corners[a][b][c] = g[0]*(fx-float64(a)) + g[1]*(fy-float64(b)) + g[2]*(fz-float64(c))
			}
		}
	}

	u, v, w := fade(fx), fade(fy), fade(fz)
	return lerp(w,
		lerp(v, lerp(u, corners[0][0][0], corners[1][0][0]), lerp(u, corners[0][1][0], corners[1][1][0])),
		lerp(v, lerp(u, corners[0][0][1], corners[1][0][1]), lerp(u, corners[0][1][1], corners[1][1][1])),
	)
}

func (l *lattice) hash(x, y, z int) int {
	return l.perm[(l.perm[(l.perm[x&255]+y)&255]+z)&255]
}

// wrapCell maps a cell index into [0, period).
func wrapCell(i, period int) int {
	i %= period
	if i < 0 {
		i += period
	}
	return i
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}
