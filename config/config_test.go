package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 20, cfg.Simulation.FleetSize)
	assert.Equal(t, 3, cfg.Simulation.ChargerCapacity)
	assert.InDelta(t, 3.0, cfg.Simulation.WindowHours, 1e-9)
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.AcquireTimeout())
	assert.Equal(t, 100*time.Millisecond, cfg.Simulation.ChargeScale())
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.PrometheusEnabled)
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
simulation:
  fleet_size: 5
  charger_capacity: 2
  window_hours: 1.5
  acquire_timeout_ms: 50
  seed: 42
logging:
  level: debug
metrics:
  prometheus_enabled: true
  prometheus_port: 9191
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Simulation.FleetSize)
	assert.Equal(t, 2, cfg.Simulation.ChargerCapacity)
	assert.InDelta(t, 1.5, cfg.Simulation.WindowHours, 1e-9)
	assert.Equal(t, 50*time.Millisecond, cfg.Simulation.AcquireTimeout())
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	// Unset fields fall back to defaults.
	assert.Equal(t, 100, cfg.Simulation.ChargeScaleMS)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, 9191, cfg.Metrics.PrometheusPort)
}

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "config.json", `{"simulation":{"fleet_size":2}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Simulation.FleetSize)
	assert.Equal(t, 3, cfg.Simulation.ChargerCapacity)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EVTOL_SIMULATION__FLEET_SIZE", "7")
	path := writeTemp(t, "config.yaml", `simulation: {fleet_size: 5}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Simulation.FleetSize)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := writeTemp(t, "config.yaml", `simulation: {fleet_size: -1}`)
	_, err := Load(path)
	assert.Error(t, err)

	path = writeTemp(t, "config.yaml", `simulation: {window_hours: -3}`)
	_, err = Load(path)
	assert.Error(t, err)

	path = writeTemp(t, "config.yaml", `logging: {level: loud}`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeTemp(t, "config.toml", `x = 1`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSimulationValidate(t *testing.T) {
	cfg := Default().Simulation
	assert.NoError(t, cfg.Validate())

	bad := cfg
	bad.ChargerCapacity = 0
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.AcquireTimeoutMS = -5
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.ChargeScaleMS = -1
	assert.Error(t, bad.Validate())
}
