package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/pthm-cable/glkernel/config"
	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/noise"
	"github.com/pthm-cable/glkernel/sample"
	"github.com/pthm-cable/glkernel/stats"
)

// PreviewParams holds the slider state.
type PreviewParams struct {
	Method   string
	GridSize int
	Probes   int
	MinDist  float32 // 0 = estimate from capacity
	Seed     int64
}

// View is one generated kernel ready to draw.
type View struct {
	Method  string
	MinDist float64

	// Sampling methods
	Points [][2]float64
	Report stats.Report

	// Noise methods: a scalar field sampled at texture resolution
	Field              []float32
	FieldMin, FieldMax float32
}

func (p PreviewParams) toConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	cfg.Seed = p.Seed
	cfg.Kernel.Width = p.GridSize
	cfg.Kernel.Height = p.GridSize
	cfg.Kernel.Components = 1
	cfg.Sampler.Method = p.Method
	cfg.Sampler.Probes = p.Probes
	cfg.Sampler.MinDist = float64(p.MinDist)
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Generate builds the view for p. Noise methods are evaluated on a
// textureSize grid with the kernel's grid size as the base frequency.
func Generate(p PreviewParams, textureSize int) (*View, error) {
	cfg, err := p.toConfig()
	if err != nil {
		return nil, err
	}
	view := &View{Method: cfg.Sampler.Method, MinDist: cfg.Derived.MinDist}

	if !cfg.IsSampler() {
		k, err := kernel.New[float32, kernel.Vec1[float32]](textureSize, textureSize, 1)
		if err != nil {
			return nil, err
		}
		scale := float64(cfg.Kernel.Width) / 4
		if cfg.Sampler.Method == config.MethodPerlin {
			err = noise.Perlin(k, cfg.Seed, scale, cfg.Noise.Octaves)
		} else {
			err = noise.Simplex(k, cfg.Seed, scale, cfg.Noise.Octaves)
		}
		if err != nil {
			return nil, err
		}
		view.Field = make([]float32, k.Size())
		for i, v := range k.Values() {
			view.Field[i] = v[0]
		}
		lo, hi := stats.ValueRange(k)
		view.FieldMin, view.FieldMax = lo[0], hi[0]
		return view, nil
	}

	k, err := kernel.New[float32, kernel.Vec2[float32]](cfg.Kernel.Width, cfg.Kernel.Height, 1)
	if err != nil {
		return nil, err
	}
	rng := sample.NewRand(cfg.Seed)
	count := k.Size()
	if cfg.Sampler.Method == config.MethodPoisson {
		count, err = sample.PoissonSquareMinDist(k, rng, cfg.Derived.MinDist, cfg.Sampler.Probes)
	} else {
		err = sample.Stratified(k, rng)
	}
	if err != nil {
		return nil, err
	}

	view.Report, err = stats.Analyze(k, count)
	if err != nil {
		return nil, err
	}
	for _, v := range k.Values()[:count] {
		view.Points = append(view.Points, [2]float64{float64(v[0]), float64(v[1])})
	}
	return view, nil
}

// Pixels maps the field to colours for the preview texture.
func (v *View) Pixels() []color.RGBA {
	pixels := make([]color.RGBA, len(v.Field))
	span := v.FieldMax - v.FieldMin
	for i, f := range v.Field {
		t := float32(0)
		if span > 0 {
			t = (f - v.FieldMin) / span
		}
		pixels[i] = gradient(t)
	}
	return pixels
}

// gradient maps [0,1] to dark blue -> cyan -> yellow -> white.
func gradient(v float32) color.RGBA {
	var r, g, b uint8
	if v < 0.25 {
		t := v / 0.25
		r = uint8(10 + t*30)
		g = uint8(20 + t*60)
		b = uint8(60 + t*100)
	} else if v < 0.5 {
		t := (v - 0.25) / 0.25
		r = uint8(40 + t*20)
		g = uint8(80 + t*120)
		b = uint8(160 + t*40)
	} else if v < 0.75 {
		t := (v - 0.5) / 0.25
		r = uint8(60 + t*140)
		g = uint8(200 - t*40)
		b = uint8(200 - t*150)
	} else {
		t := min((v-0.75)/0.25, 1)
		r = uint8(200 + t*55)
		g = uint8(160 + t*95)
		b = uint8(50 + t*205)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// YAMLLines returns the config keys matching the current sliders.
func (p PreviewParams) YAMLLines() []string {
	return []string{
		"seed: " + fmt.Sprint(p.Seed),
		"kernel:",
		fmt.Sprintf("  width: %d", p.GridSize),
		fmt.Sprintf("  height: %d", p.GridSize),
		"sampler:",
		"  method: " + p.Method,
		fmt.Sprintf("  min_dist: %.4f", p.MinDist),
		fmt.Sprintf("  probes: %d", p.Probes),
	}
}

// YAML returns YAMLLines joined for the clipboard.
func (p PreviewParams) YAML() string {
	return strings.Join(p.YAMLLines(), "\n")
}
