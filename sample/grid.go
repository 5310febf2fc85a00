package sample

import "math"

// grid is the background acceleration structure for dart throwing. It
// buckets accepted points into n*n cells on the unit torus. The cell side
// 1/n is never smaller than the minimum distance, so any point closer than
// the minimum distance to a query lies in the 3x3 block around it.
type grid struct {
	n      int
	cells  [][]int // flat grid of point indices
	points [][2]float64
}

// newGrid creates an empty grid sized for minDist with room for capacity points.
func newGrid(minDist float64, capacity int) *grid {
	n := 1
	if minDist < 1 {
		n = int(math.Floor(1 / minDist))
		for n > 1 && 1/float64(n) < minDist {
			n--
		}
	}
	// keep the cell count bounded for tiny distances on small kernels
	if limit := int(math.Ceil(math.Sqrt(float64(capacity)))) * 2; n > limit {
		n = max(limit, 1)
	}

	cells := make([][]int, n*n)
	for i := range cells {
		cells[i] = make([]int, 0, 2)
	}

	return &grid{
		n:      n,
		cells:  cells,
		points: make([][2]float64, 0, capacity),
	}
}

// insert adds p and returns its index.
func (g *grid) insert(p [2]float64) int {
	idx := len(g.points)
	g.points = append(g.points, p)
	col, row := g.cell(p)
	g.cells[row*g.n+col] = append(g.cells[row*g.n+col], idx)
	return idx
}

// nearest returns the smallest toroidal distance from p to any point within
// reach cells of p's cell, or +Inf if there is none.
func (g *grid) nearest(p [2]float64, reach int) float64 {
	best := math.Inf(1)
	centerCol, centerRow := g.cell(p)

	for dr := -reach; dr <= reach; dr++ {
		// Toroidal wrap
		row := ((centerRow+dr)%g.n + g.n) % g.n
		for dc := -reach; dc <= reach; dc++ {
			col := ((centerCol+dc)%g.n + g.n) % g.n
			for _, i := range g.cells[row*g.n+col] {
				if d := toroidalDistSq(p, g.points[i]); d < best {
					best = d
				}
			}
		}
	}

	return math.Sqrt(best)
}

// cell returns the column and row holding p, which must lie in [0,1)^2.
func (g *grid) cell(p [2]float64) (col, row int) {
	col = int(p[0] * float64(g.n))
	row = int(p[1] * float64(g.n))

	// Clamp to valid range
	if col >= g.n {
		col = g.n - 1
	} else if col < 0 {
		col = 0
	}
	if row >= g.n {
		row = g.n - 1
	} else if row < 0 {
		row = 0
	}

	return col, row
}
