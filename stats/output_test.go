package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/glkernel/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	require.Nil(t, om)

	require.NoError(t, om.WriteRun(RunRecord{}))
	require.NoError(t, om.WriteConfig(nil))
	require.Empty(t, om.Dir())
	require.NoError(t, om.Close())
}

func TestOutputManagerWritesRuns(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	require.Equal(t, dir, om.Dir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))

	for seed := int64(1); seed <= 2; seed++ {
		require.NoError(t, om.WriteRun(RunRecord{
			Method: config.MethodPoisson,
			Seed:   seed,
			Width:  16,
			Height: 16,
			Depth:  1,
			Report: Report{Count: 60, Capacity: 256},
		}))
	}
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "runs.csv"))
	require.NoError(t, err)
	var rows []RunRecord
	require.NoError(t, gocsv.UnmarshalBytes(data, &rows))
	require.Len(t, rows, 2, "header written once")
	require.Equal(t, int64(2), rows[1].Seed)
	require.Equal(t, 60, rows[1].Count)

	back, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, cfg.Kernel, back.Kernel)
}
