package metrics

import "time"

// FlightSegment represents one completed flight leg of a unit.
type FlightSegment struct {
	VehicleID      int
	Company        string
	Hours          float64
	DistanceMiles  float64
	PassengerMiles float64
	Faults         int
}

// ChargeSession represents one completed charging session.
type ChargeSession struct {
	VehicleID int
	Company   string
	Hours     float64
	Waited    time.Duration
}

// Sink records simulation events for observability purposes.
type Sink interface {
	RecordFlightSegment(seg FlightSegment) error
	RecordChargeSession(sess ChargeSession) error
	RecordStall(vehicleID int, company, reason string) error
	SetFreeSlots(free int) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordFlightSegment(FlightSegment) error { return nil }
func (NopSink) RecordChargeSession(ChargeSession) error { return nil }
func (NopSink) RecordStall(int, string, string) error   { return nil }
func (NopSink) SetFreeSlots(int) error                  { return nil }
