package config

import (
	"fmt"
	"time"
)

// SimulationConfig defines the run parameters of the fleet simulation.
type SimulationConfig struct {
	// FleetSize is the number of vehicles deployed.
	FleetSize int `json:"fleet_size"`
	// ChargerCapacity is the number of shared charging slots.
	ChargerCapacity int `json:"charger_capacity"`
	// WindowHours is the simulated operating window per vehicle.
	WindowHours float64 `json:"window_hours"`
	// AcquireTimeoutMS bounds a single charge attempt's wait in real
	// milliseconds. A vehicle that misses the bound stalls; there is no retry.
	AcquireTimeoutMS int `json:"acquire_timeout_ms"`
	// ChargeScaleMS is the real time slept per simulated charging hour.
	ChargeScaleMS int `json:"charge_scale_ms"`
	// Seed initialises the random source. Zero means time-based.
	Seed int64 `json:"seed"`
	// SpecTable optionally points at a YAML/JSON vehicle spec table that
	// replaces the builtin manufacturer profiles.
	SpecTable string `json:"spec_table"`
}

// SetDefaults applies the standard run parameters.
func (c *SimulationConfig) SetDefaults() {
	if c.FleetSize == 0 {
		c.FleetSize = 20
	}
	if c.ChargerCapacity == 0 {
		c.ChargerCapacity = 3
	}
	if c.WindowHours == 0 {
		c.WindowHours = 3.0
	}
	if c.AcquireTimeoutMS == 0 {
		c.AcquireTimeoutMS = 100
	}
	if c.ChargeScaleMS == 0 {
		c.ChargeScaleMS = 100
	}
}

// Validate rejects parameters that would make the run meaningless. Violations
// are fatal and reported before any simulation work starts.
func (c SimulationConfig) Validate() error {
	if c.FleetSize <= 0 {
		return fmt.Errorf("config: fleet_size must be positive, got %d", c.FleetSize)
	}
	if c.ChargerCapacity <= 0 {
		return fmt.Errorf("config: charger_capacity must be positive, got %d", c.ChargerCapacity)
	}
	if c.WindowHours <= 0 {
		return fmt.Errorf("config: window_hours must be positive, got %v", c.WindowHours)
	}
	if c.AcquireTimeoutMS <= 0 {
		return fmt.Errorf("config: acquire_timeout_ms must be positive, got %d", c.AcquireTimeoutMS)
	}
	if c.ChargeScaleMS <= 0 {
		return fmt.Errorf("config: charge_scale_ms must be positive, got %d", c.ChargeScaleMS)
	}
	return nil
}

// AcquireTimeout returns the wait bound as a duration.
func (c SimulationConfig) AcquireTimeout() time.Duration {
	return time.Duration(c.AcquireTimeoutMS) * time.Millisecond
}

// ChargeScale returns the per-simulated-hour sleep as a duration.
func (c SimulationConfig) ChargeScale() time.Duration {
	return time.Duration(c.ChargeScaleMS) * time.Millisecond
}
