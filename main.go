package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/glkernel/config"
	"github.com/pthm-cable/glkernel/export"
	"github.com/pthm-cable/glkernel/stats"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	width := flag.Int("width", 0, "Kernel width (0 = use config)")
	height := flag.Int("height", 0, "Kernel height (0 = use config)")
	method := flag.String("method", "", "poisson | stratified | uniform | normal | perlin | simplex (empty = use config)")
	components := flag.Int("components", 0, "Components per slot for noise methods, 1..4 (0 = use config)")
	minDist := flag.Float64("min-dist", -1, "Poisson minimum distance (0 = estimate, negative = use config)")
	probes := flag.Int("probes", 0, "Poisson candidates per step (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config seed, then time-based)")
	format := flag.String("format", "", "png | csv | json (empty = use config)")
	out := flag.String("out", "", "Output file (empty = use config, - = stdout)")
	statsOut := flag.String("stats-out", "", "Directory for runs.csv and config snapshot")
	writeConfig := flag.String("write-config", "", "Write the effective config to this path and exit")
	logLevel := flag.String("log-level", "info", "debug | info | warn | error")

	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}

	// Set up slog (JSON to stderr so stdout can carry the kernel)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	export.SetLogger(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Flags override config values
	overrides := flagOverrides{
		width:      *width,
		height:     *height,
		method:     *method,
		components: *components,
		minDist:    *minDist,
		probes:     *probes,
		seed:       *seed,
		format:     *format,
		out:        *out,
		statsOut:   *statsOut,
	}
	if err := overrides.apply(cfg); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			slog.Error("failed to write config", "error", err)
			os.Exit(1)
		}
		slog.Info("config written", "path", *writeConfig)
		return
	}

	// Set up seed
	rngSeed := cfg.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	if err := run(cfg, rngSeed); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

type flagOverrides struct {
	width, height, components, probes int
	minDist                           float64
	seed                              int64
	method, format, out, statsOut     string
}

func (o flagOverrides) apply(cfg *config.Config) error {
	if o.width > 0 {
		cfg.Kernel.Width = o.width
	}
	if o.height > 0 {
		cfg.Kernel.Height = o.height
	}
	if o.method != "" {
		cfg.Sampler.Method = o.method
	}
	if o.components > 0 {
		cfg.Kernel.Components = o.components
	}
	if o.minDist >= 0 {
		cfg.Sampler.MinDist = o.minDist
	}
	if o.probes > 0 {
		cfg.Sampler.Probes = o.probes
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	if o.format != "" {
		f, err := export.ParseFormat(o.format)
		if err != nil {
			return err
		}
		cfg.Export.Format = f
	}
	if o.out != "" {
		cfg.Export.Path = o.out
	}
	if o.statsOut != "" {
		cfg.Stats.Output = o.statsOut
	}
	return cfg.Finalize()
}

// run generates one kernel, records its statistics and exports it.
func run(cfg *config.Config, seed int64) error {
	start := time.Now()
	res, err := generate(cfg, seed)
	if err != nil {
		return err
	}

	slog.Info("kernel generated",
		"method", cfg.Sampler.Method,
		"seed", seed,
		"width", cfg.Kernel.Width,
		"height", cfg.Kernel.Height,
		"depth", cfg.Kernel.Depth,
		"components", res.kernel.ComponentCount(),
		"count", res.count,
		"elapsed", time.Since(start),
	)

	if res.points != nil {
		report, err := stats.Analyze(res.points, res.count)
		if err != nil {
			return err
		}
		slog.Info("kernel stats",
			"fill", report.Fill,
			"nn_min", report.MinNN,
			"nn_mean", report.MeanNN,
			"packing", report.Packing,
		)

		om, err := stats.NewOutputManager(cfg.Stats.Output)
		if err != nil {
			return err
		}
		defer om.Close()
		if err := om.WriteConfig(cfg); err != nil {
			return err
		}
		if err := om.WriteRun(stats.RunRecord{
			Method:  cfg.Sampler.Method,
			Seed:    seed,
			Width:   cfg.Kernel.Width,
			Height:  cfg.Kernel.Height,
			Depth:   cfg.Kernel.Depth,
			Probes:  cfg.Sampler.Probes,
			MinDist: cfg.Derived.MinDist,
			Report:  report,
		}); err != nil {
			return err
		}
	}

	return writeKernel(cfg, res)
}

func writeKernel(cfg *config.Config, res result) error {
	opts := export.PNGOptions{Scale: cfg.Export.Scale}
	path := cfg.Export.Path

	if path == "-" {
		return export.Write(os.Stdout, cfg.Export.Format, res.kernel, res.count, opts)
	}
	if cfg.Export.Format == export.FormatPNG {
		if err := export.WritePNGFile(path, res.kernel, opts); err != nil {
			return err
		}
	} else {
		if err := writeFile(path, func(f *os.File) error {
			return export.Write(f, cfg.Export.Format, res.kernel, res.count, opts)
		}); err != nil {
			return err
		}
	}
	slog.Info("kernel written", "path", path, "format", cfg.Export.Format)
	return nil
}

func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}
