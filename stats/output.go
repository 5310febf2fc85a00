package stats

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/glkernel/config"
)

// RunRecord is one row of runs.csv: the generation parameters followed by
// the spacing report.
type RunRecord struct {
	Method  string  `csv:"method"`
	Seed    int64   `csv:"seed"`
	Width   int     `csv:"width"`
	Height  int     `csv:"height"`
	Depth   int     `csv:"depth"`
	Probes  int     `csv:"probes"`
	MinDist float64 `csv:"min_dist"`
	Report
}

// OutputManager writes run records as CSV and a snapshot of the config
// into an output directory.
type OutputManager struct {
	dir     string
	runFile *os.File

	// Track if headers have been written
	runHeaderWritten bool
}

// NewOutputManager creates the output directory and runs.csv inside it.
// Returns nil if dir is empty (output disabled); all methods accept a nil
// receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}

	return &OutputManager{dir: dir, runFile: f}, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRun appends a record to runs.csv.
func (om *OutputManager) WriteRun(rec RunRecord) error {
	if om == nil {
		return nil
	}

	records := []RunRecord{rec}

	if !om.runHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.runFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
		om.runHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.runFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes runs.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.runFile == nil {
		return nil
	}
	return om.runFile.Close()
}
