package metrics

// MultiSink fans out simulation events to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordFlightSegment forwards the segment to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordFlightSegment(seg FlightSegment) error {
	for _, s := range m.Sinks {
		if err := s.RecordFlightSegment(seg); err != nil {
			return err
		}
	}
	return nil
}

// RecordChargeSession forwards the session to all sinks.
func (m *MultiSink) RecordChargeSession(sess ChargeSession) error {
	for _, s := range m.Sinks {
		if err := s.RecordChargeSession(sess); err != nil {
			return err
		}
	}
	return nil
}

// RecordStall forwards the stall event to all sinks.
func (m *MultiSink) RecordStall(vehicleID int, company, reason string) error {
	for _, s := range m.Sinks {
		if err := s.RecordStall(vehicleID, company, reason); err != nil {
			return err
		}
	}
	return nil
}

// SetFreeSlots forwards the gauge update to all sinks.
func (m *MultiSink) SetFreeSlots(free int) error {
	for _, s := range m.Sinks {
		if err := s.SetFreeSlots(free); err != nil {
			return err
		}
	}
	return nil
}
