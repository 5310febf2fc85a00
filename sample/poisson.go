package sample

import (
	"fmt"
	"math"

	"github.com/pthm-cable/glkernel/kernel"
)

// DefaultProbes is the number of candidates drawn per dart-throwing step.
const DefaultProbes = 32

// DefaultPackingEfficiency is the covered area fraction assumed by
// PoissonSquare when it derives a minimum distance. Saturated runs with
// DefaultProbes cover about 0.47 of the torus; assuming slightly less lets a
// single pass reach the kernel's capacity.
const DefaultPackingEfficiency = 0.45

// EstimateMinDist returns the disk diameter at which count disks cover the
// fraction efficiency of the unit square: count * pi * (d/2)^2 = efficiency.
func EstimateMinDist(count int, efficiency float64) float64 {
	if count < 1 || efficiency <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(4 * efficiency / (math.Pi * float64(count)))
}

// PoissonSquare fills k with Poisson-disk points, choosing the minimum
// distance so that the number of points approximates k.Size(). See
// PoissonSquareMinDist for the returned count.
func PoissonSquare[T kernel.Float](k *kernel.Kernel[T, kernel.Vec2[T]], rng Rand, numProbes int) (int, error) {
	if k == nil {
		return 0, fmt.Errorf("%w: nil kernel", kernel.ErrInvalidDimensions)
	}
	return PoissonSquareMinDist(k, rng, EstimateMinDist(k.Size(), DefaultPackingEfficiency), numProbes)
}

// candidate is a probe position and its distance to the nearest accepted point.
type candidate struct {
	pos   [2]float64
	score float64
}

// PoissonSquareMinDist fills k with points whose pairwise toroidal distance
// is at least minDist. Each step picks a random active point, throws
// numProbes darts into the annulus [minDist, 2*minDist] around it and keeps
// the valid dart farthest from all accepted points. An active point with no
// valid dart is retired.
//
// It returns the number of points written to slots [0, n) in linear order;
// the remaining slots are zeroed. n may be smaller than k.Size() and is the
// only reliable count. Arguments are validated before k is modified.
func PoissonSquareMinDist[T kernel.Float](k *kernel.Kernel[T, kernel.Vec2[T]], rng Rand, minDist float64, numProbes int) (int, error) {
	if rng == nil {
		return 0, ErrNilRand
	}
	if k == nil || k.Size() == 0 {
		return 0, fmt.Errorf("%w: empty kernel", kernel.ErrInvalidDimensions)
	}
	if numProbes < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidProbes, numProbes)
	}
	if !(minDist > 0) || math.IsInf(minDist, 0) {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidMinDist, minDist)
	}

	capacity := k.Size()
	k.Clear()

	g := newGrid(minDist, capacity)
	actives := make([]int, 0, capacity)

	accept := func(p [2]float64) {
		idx := g.insert(p)
		actives = append(actives, idx)
		// idx < capacity is guaranteed by the loop condition
		_ = k.SetAt(idx, kernel.Vec2[T]{T(p[0]), T(p[1])})
	}

	accept(quantize[T](rng.Float64(), rng.Float64()))

	for len(actives) > 0 && len(g.points) < capacity {
		pick := rng.Intn(len(actives))
		active := g.points[actives[pick]]

		best := candidate{score: -1}
		for i := 0; i < numProbes; i++ {
			angle := rng.Float64() * 2 * math.Pi
			radius := minDist * (1 + rng.Float64())

			pos := quantize[T](
				active[0]+radius*math.Cos(angle),
				active[1]+radius*math.Sin(angle),
			)
			score := g.nearest(pos, 2)
			if score >= minDist && score > best.score {
				best = candidate{pos: pos, score: score}
			}
		}

		if best.score < 0 {
			// exhausted: retire it, order of actives does not matter
			last := len(actives) - 1
			actives[pick] = actives[last]
			actives = actives[:last]
			continue
		}
		accept(best.pos)
	}

	return len(g.points), nil
}

// quantize wraps (x, y) into [0,1)^2 and rounds it to the kernel's
// precision so that distance checks see exactly the stored values.
func quantize[T kernel.Float](x, y float64) [2]float64 {
	qx := wrapUnit(float64(T(wrapUnit(x))))
	qy := wrapUnit(float64(T(wrapUnit(y))))
	return [2]float64{qx, qy}
}
