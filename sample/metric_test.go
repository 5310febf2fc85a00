package sample

import (
	"math"
	"testing"
)

func TestToroidalDistance(t *testing.T) {
	tests := []struct {
		name string
		p, q [2]float64
		want float64
	}{
		{"same point", [2]float64{0.3, 0.3}, [2]float64{0.3, 0.3}, 0},
		{"interior", [2]float64{0.2, 0.2}, [2]float64{0.5, 0.6}, 0.5},
		{"wraps x", [2]float64{0.05, 0.5}, [2]float64{0.95, 0.5}, 0.1},
		{"wraps y", [2]float64{0.5, 0.98}, [2]float64{0.5, 0.01}, 0.03},
		{"wraps both", [2]float64{0.1, 0.1}, [2]float64{0.9, 0.9}, math.Sqrt(0.08)},
		{"farthest", [2]float64{0, 0}, [2]float64{0.5, 0.5}, math.Sqrt(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToroidalDistance(tt.p, tt.q)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ToroidalDistance(%v, %v) = %v, want %v", tt.p, tt.q, got, tt.want)
			}
			if back := ToroidalDistance(tt.q, tt.p); math.Abs(back-got) > 1e-12 {
				t.Errorf("distance not symmetric: %v vs %v", got, back)
			}
		})
	}
}

func TestToroidalDelta(t *testing.T) {
	dx, dy := ToroidalDelta([2]float64{0.9, 0.1}, [2]float64{0.1, 0.9})
	if math.Abs(dx-0.2) > 1e-12 || math.Abs(dy+0.2) > 1e-12 {
		t.Errorf("ToroidalDelta = (%v, %v), want (0.2, -0.2)", dx, dy)
	}

	dx, dy = ToroidalDelta([2]float64{0.25, 0.25}, [2]float64{0.5, 0.1})
	if math.Abs(dx-0.25) > 1e-12 || math.Abs(dy+0.15) > 1e-12 {
		t.Errorf("ToroidalDelta = (%v, %v), want (0.25, -0.15)", dx, dy)
	}
}

func TestWrapUnit(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{1.75, 0.75},
		{-0.25, 0.75},
		{-2.5, 0.5},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := wrapUnit(tt.in)
		if math.Abs(got-tt.want) > 1e-12 || got < 0 || got >= 1 {
			t.Errorf("wrapUnit(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGridNearestWraps(t *testing.T) {
	g := newGrid(0.1, 16)
	if g.n != 8 {
		// capacity 16 limits the grid to 8x8 cells
		t.Fatalf("grid size = %d, want 8", g.n)
	}

	g.insert([2]float64{0.02, 0.5})
	g.insert([2]float64{0.5, 0.5})

	got := g.nearest([2]float64{0.97, 0.5}, 1)
	if math.Abs(got-0.05) > 1e-12 {
		t.Errorf("nearest across edge = %v, want 0.05", got)
	}

	if got := g.nearest([2]float64{0.25, 0.05}, 1); !math.IsInf(got, 1) {
		t.Errorf("nearest with empty neighbourhood = %v, want +Inf", got)
	}
}

func TestGridCellSideCoversMinDist(t *testing.T) {
	for _, d := range []float64{0.01, 0.07, 0.1, 0.33, 0.5, 0.9, 2} {
		g := newGrid(d, 1<<20)
		if side := 1 / float64(g.n); side < d && g.n > 1 {
			t.Errorf("minDist %v: cell side %v smaller than minDist", d, side)
		}
	}
}
