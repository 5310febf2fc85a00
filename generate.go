package main

import (
	"fmt"

	"github.com/pthm-cable/glkernel/config"
	"github.com/pthm-cable/glkernel/kernel"
	"github.com/pthm-cable/glkernel/noise"
	"github.com/pthm-cable/glkernel/sample"
)

// result is the output of one generation run.
type result struct {
	kernel kernel.Variant[float32]
	points *kernel.Kernel2 // set for the sampling methods
	count  int             // slots written
}

// generate builds a kernel according to cfg. cfg must be finalized.
func generate(cfg *config.Config, seed int64) (result, error) {
	k := cfg.Kernel
	if cfg.IsSampler() {
		pts, err := kernel.New[float32, kernel.Vec2[float32]](k.Width, k.Height, k.Depth)
		if err != nil {
			return result{}, err
		}
		rng := sample.NewRand(seed)

		count := pts.Size()
		switch cfg.Sampler.Method {
		case config.MethodPoisson:
			count, err = sample.PoissonSquareMinDist(pts, rng, cfg.Derived.MinDist, cfg.Sampler.Probes)
		case config.MethodStratified:
			err = sample.Stratified(pts, rng)
		}
		if err != nil {
			return result{}, fmt.Errorf("%s: %w", cfg.Sampler.Method, err)
		}
		return result{kernel: kernel.Wrap2(pts), points: pts, count: count}, nil
	}

	var v kernel.Variant[float32]
	var err error
	switch cfg.Derived.Components {
	case 1:
		var kk *kernel.Kernel1
		kk, err = fillNoise[kernel.Vec1[float32]](cfg, seed)
		v = kernel.Wrap1(kk)
	case 2:
		var kk *kernel.Kernel2
		kk, err = fillNoise[kernel.Vec2[float32]](cfg, seed)
		v = kernel.Wrap2(kk)
	case 3:
		var kk *kernel.Kernel3
		kk, err = fillNoise[kernel.Vec3[float32]](cfg, seed)
		v = kernel.Wrap3(kk)
	default:
		var kk *kernel.Kernel4
		kk, err = fillNoise[kernel.Vec4[float32]](cfg, seed)
		v = kernel.Wrap4(kk)
	}
	if err != nil {
		return result{}, fmt.Errorf("%s: %w", cfg.Sampler.Method, err)
	}
	return result{kernel: v, count: cfg.Derived.Capacity}, nil
}

func fillNoise[V kernel.Tuple[float32]](cfg *config.Config, seed int64) (*kernel.Kernel[float32, V], error) {
	k, err := kernel.New[float32, V](cfg.Kernel.Width, cfg.Kernel.Height, cfg.Kernel.Depth)
	if err != nil {
		return nil, err
	}

	n := cfg.Noise
	switch cfg.Sampler.Method {
	case config.MethodUniform:
		err = noise.Uniform(k, sample.NewRand(seed), float32(n.Min), float32(n.Max))
	case config.MethodNormal:
		err = noise.Normal(k, sample.NewRand(seed), float32(n.Mean), float32(n.StdDev))
	case config.MethodPerlin:
		err = noise.Perlin(k, seed, n.Scale, n.Octaves)
	case config.MethodSimplex:
		err = noise.Simplex(k, seed, n.Scale, n.Octaves)
	default:
		err = fmt.Errorf("%w: method %q", config.ErrInvalidConfig, cfg.Sampler.Method)
	}
	if err != nil {
		return nil, err
	}
	return k, nil
}
