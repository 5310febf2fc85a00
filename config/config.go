// Package config provides configuration loading for kernel generation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/glkernel/export"
	"github.com/pthm-cable/glkernel/sample"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig indicates a value outside its allowed range.
var ErrInvalidConfig = errors.New("config: invalid value")

// Methods accepted by SamplerConfig.Method.
const (
	MethodPoisson    = "poisson"
	MethodStratified = "stratified"
	MethodUniform    = "uniform"
	MethodNormal     = "normal"
	MethodPerlin     = "perlin"
	MethodSimplex    = "simplex"
)

// Config holds all generation parameters.
type Config struct {
	Seed    int64         `yaml:"seed"`
	Kernel  KernelConfig  `yaml:"kernel"`
	Sampler SamplerConfig `yaml:"sampler"`
	Noise   NoiseConfig   `yaml:"noise"`
	Export  ExportConfig  `yaml:"export"`
	Stats   StatsConfig   `yaml:"stats"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// KernelConfig holds the kernel dimensions.
type KernelConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	Depth      int `yaml:"depth"`
	Components int `yaml:"components"` // 1..4; samplers always produce 2
}

// SamplerConfig selects the generation method.
type SamplerConfig struct {
	Method            string  `yaml:"method"`
	MinDist           float64 `yaml:"min_dist"`           // 0 = estimate from capacity
	Probes            int     `yaml:"probes"`             // candidates per dart-throwing step
	PackingEfficiency float64 `yaml:"packing_efficiency"` // area fraction assumed by the estimate
}

// NoiseConfig holds parameters of the noise methods.
type NoiseConfig struct {
	Min     float64 `yaml:"min"`     // uniform lower bound
	Max     float64 `yaml:"max"`     // uniform upper bound
	Mean    float64 `yaml:"mean"`    // normal mean
	StdDev  float64 `yaml:"stddev"`  // normal standard deviation
	Scale   float64 `yaml:"scale"`   // coherent noise base frequency
	Octaves int     `yaml:"octaves"` // coherent noise octaves
}

// ExportConfig controls where and how the kernel is written.
type ExportConfig struct {
	Format string `yaml:"format"` // export.FormatPNG, FormatCSV or FormatJSON
	Scale  int    `yaml:"scale"` // png upscale factor
	Path   string `yaml:"path"`
}

// StatsConfig controls the run log.
type StatsConfig struct {
	Output string `yaml:"output"` // directory, empty = disabled
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Capacity   int     // Width * Height * Depth
	MinDist    float64 // effective Poisson minimum distance
	Components int     // effective component count for the chosen method
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values. Call it
// after changing fields of a loaded config.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate checks that every value is in range.
func (c *Config) Validate() error {
	k := c.Kernel
	if k.Width < 1 || k.Height < 1 || k.Depth < 1 {
		return fmt.Errorf("%w: kernel dimensions %dx%dx%d", ErrInvalidConfig, k.Width, k.Height, k.Depth)
	}
	if k.Components < 1 || k.Components > 4 {
		return fmt.Errorf("%w: kernel.components %d not in 1..4", ErrInvalidConfig, k.Components)
	}

	s := c.Sampler
	switch s.Method {
	case MethodPoisson, MethodStratified, MethodUniform, MethodNormal, MethodPerlin, MethodSimplex:
	default:
		return fmt.Errorf("%w: sampler.method %q", ErrInvalidConfig, s.Method)
	}
	if s.Probes < 1 {
		return fmt.Errorf("%w: sampler.probes %d", ErrInvalidConfig, s.Probes)
	}
	if s.MinDist < 0 || math.IsNaN(s.MinDist) || math.IsInf(s.MinDist, 0) {
		return fmt.Errorf("%w: sampler.min_dist %v", ErrInvalidConfig, s.MinDist)
	}
	if !(s.PackingEfficiency > 0 && s.PackingEfficiency <= 1) {
		return fmt.Errorf("%w: sampler.packing_efficiency %v not in (0, 1]", ErrInvalidConfig, s.PackingEfficiency)
	}

	n := c.Noise
	if !(n.Min <= n.Max) {
		return fmt.Errorf("%w: noise range [%v, %v)", ErrInvalidConfig, n.Min, n.Max)
	}
	if !(n.StdDev >= 0) {
		return fmt.Errorf("%w: noise.stddev %v", ErrInvalidConfig, n.StdDev)
	}
	if !(n.Scale > 0) || n.Octaves < 1 {
		return fmt.Errorf("%w: noise.scale %v, noise.octaves %d", ErrInvalidConfig, n.Scale, n.Octaves)
	}

	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		return fmt.Errorf("%w: export.format: %w", ErrInvalidConfig, err)
	}
	if c.Export.Scale < 1 {
		return fmt.Errorf("%w: export.scale %d", ErrInvalidConfig, c.Export.Scale)
	}

	return nil
}

// IsSampler reports whether the configured method places 2D points rather
// than filling values.
func (c *Config) IsSampler() bool {
	return c.Sampler.Method == MethodPoisson || c.Sampler.Method == MethodStratified
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Capacity = c.Kernel.Width * c.Kernel.Height * c.Kernel.Depth

	c.Derived.MinDist = c.Sampler.MinDist
	if c.Derived.MinDist == 0 {
		c.Derived.MinDist = sample.EstimateMinDist(c.Derived.Capacity, c.Sampler.PackingEfficiency)
	}

	// Validate accepted it, so only the spelling changes
	c.Export.Format, _ = export.ParseFormat(c.Export.Format)

	c.Derived.Components = c.Kernel.Components
	if c.IsSampler() {
		c.Derived.Components = 2
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
