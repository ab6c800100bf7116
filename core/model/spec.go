package model

import "fmt"

// VehicleSpec describes one manufacturer's eVTOL profile. Specs are immutable
// during a run; units hold their own copy.
type VehicleSpec struct {
	Company          string  `json:"company" yaml:"company"`
	CruiseSpeedMPH   float64 `json:"cruise_speed_mph" yaml:"cruise_speed_mph"`
	BatteryKWh       float64 `json:"battery_kwh" yaml:"battery_kwh"`
	ChargeTimeHours  float64 `json:"charge_time_hours" yaml:"charge_time_hours"`
	EnergyPerMile    float64 `json:"energy_per_mile" yaml:"energy_per_mile"`
	PassengerCount   int     `json:"passenger_count" yaml:"passenger_count"`
	FaultProbability float64 `json:"fault_probability" yaml:"fault_probability"`
}

// Validate checks that the spec is usable for simulation.
func (s VehicleSpec) Validate() error {
	if s.Company == "" {
		return fmt.Errorf("company name must not be empty")
	}
	if s.CruiseSpeedMPH <= 0 {
		return fmt.Errorf("%s: cruise speed must be positive", s.Company)
	}
	if s.BatteryKWh <= 0 {
		return fmt.Errorf("%s: battery capacity must be positive", s.Company)
	}
	if s.ChargeTimeHours <= 0 {
		return fmt.Errorf("%s: charge time must be positive", s.Company)
	}
	if s.EnergyPerMile <= 0 {
		return fmt.Errorf("%s: energy use must be positive", s.Company)
	}
	if s.PassengerCount <= 0 {
		return fmt.Errorf("%s: passenger count must be positive", s.Company)
	}
	if s.FaultProbability < 0 || s.FaultProbability > 1 {
		return fmt.Errorf("%s: fault probability must be in [0,1]", s.Company)
	}
	return nil
}

// MaxFlightHours returns the time to fully deplete the battery at cruise speed.
func (s VehicleSpec) MaxFlightHours() float64 {
	return s.BatteryKWh / (s.EnergyPerMile * s.CruiseSpeedMPH)
}

// BuiltinSpecs returns the default manufacturer table.
func BuiltinSpecs() []VehicleSpec {
	return []VehicleSpec{
		{Company: "Alpha Company", CruiseSpeedMPH: 120, BatteryKWh: 320, ChargeTimeHours: 0.6, EnergyPerMile: 1.6, PassengerCount: 4, FaultProbability: 0.25},
		{Company: "Bravo Company", CruiseSpeedMPH: 100, BatteryKWh: 100, ChargeTimeHours: 0.2, EnergyPerMile: 1.5, PassengerCount: 5, FaultProbability: 0.10},
		{Company: "Charlie Company", CruiseSpeedMPH: 160, BatteryKWh: 220, ChargeTimeHours: 0.8, EnergyPerMile: 2.2, PassengerCount: 3, FaultProbability: 0.05},
		{Company: "Delta Company", CruiseSpeedMPH: 90, BatteryKWh: 120, ChargeTimeHours: 0.62, EnergyPerMile: 0.8, PassengerCount: 2, FaultProbability: 0.22},
		{Company: "Echo Company", CruiseSpeedMPH: 30, BatteryKWh: 150, ChargeTimeHours: 0.3, EnergyPerMile: 5.8, PassengerCount: 2, FaultProbability: 0.61},
	}
}
