package sample

import "math"

// ToroidalDelta returns the shortest signed per-axis offset from p to q on
// the unit torus. Each component lies in [-0.5, 0.5].
func ToroidalDelta(p, q [2]float64) (dx, dy float64) {
	dx = wrapDelta(q[0] - p[0])
	dy = wrapDelta(q[1] - p[1])
	return dx, dy
}

// ToroidalDistance is the Euclidean distance between p and q on the unit
// torus: opposite edges of [0,1)^2 are treated as adjacent.
func ToroidalDistance(p, q [2]float64) float64 {
	return math.Sqrt(toroidalDistSq(p, q))
}

func toroidalDistSq(p, q [2]float64) float64 {
	dx := wrapDelta(p[0] - q[0])
	dy := wrapDelta(p[1] - q[1])
	return dx*dx + dy*dy
}

// wrapDelta folds an axis offset into [-0.5, 0.5]. For |d| <= 1 its
// magnitude equals min(|d|, 1-|d|).
func wrapDelta(d float64) float64 {
	return d - math.Round(d)
}

// wrapUnit maps x into [0,1).
func wrapUnit(x float64) float64 {
	x -= math.Floor(x)
	if x >= 1 {
		// x was a tiny negative number that rounded up
		x = 0
	}
	return x
}
