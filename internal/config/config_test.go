package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWithEmptyPathReturnsDefaults(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Defaults(), p)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
scheduler:
  cluster_count: 8
assets:
  max_robot_num: 20
`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8, p.Scheduler.ClusterCount)
	require.Equal(t, 20, p.Assets.MaxRobotNum)
	// Untouched fields keep their defaults.
	require.Equal(t, Defaults().Sim.TotalFrames, p.Sim.TotalFrames)
}

func TestLoadRejectsInvalidClusterCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler:\n  cluster_count: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidateSchemaRejectsOutOfRangeDepartScale(t *testing.T) {
	p := Defaults()
	p.Scheduler.ABLEDepartScale = 2.5
	require.Error(t, ValidateSchema(p))
}

func TestValidateSchemaAcceptsDefaults(t *testing.T) {
	require.NoError(t, ValidateSchema(Defaults()))
}
