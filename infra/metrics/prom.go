package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/evtolsim/core/metrics"
)

// PromSink records simulation events in Prometheus metrics.
type PromSink struct {
	flights   *prometheus.CounterVec
	faults    *prometheus.CounterVec
	sessions  *prometheus.CounterVec
	stalls    *prometheus.CounterVec
	chargeAge *prometheus.HistogramVec
	freeSlots prometheus.Gauge
}

// NewPromSink registers simulation metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the collectors
// are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	flights := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtol_flight_segments_total",
		Help: "Total number of completed flight segments",
	}, []string{"company"})
	faults := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtol_faults_total",
		Help: "Total number of in-flight faults",
	}, []string{"company"})
	sessions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtol_charge_sessions_total",
		Help: "Total number of completed charge sessions",
	}, []string{"company"})
	stalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "evtol_stalls_total",
		Help: "Total number of vehicles stalled during a charge attempt",
	}, []string{"company", "reason"})
	chargeAge := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "evtol_charge_wait_seconds",
		Help:    "Real time spent waiting for a charger slot",
		Buckets: prometheus.DefBuckets,
	}, []string{"company"})
	freeSlots := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "evtol_charger_free_slots",
		Help: "Current number of free charger slots",
	})

	s := &PromSink{flights: flights, faults: faults, sessions: sessions, stalls: stalls, chargeAge: chargeAge, freeSlots: freeSlots}
	for _, c := range []prometheus.Collector{flights, faults, sessions, stalls, chargeAge, freeSlots} {
		if err := reg.Register(c); err != nil {
			are, ok := err.(prometheus.AlreadyRegisteredError)
			if !ok {
				return nil, err
			}
			switch existing := are.ExistingCollector.(type) {
			case *prometheus.CounterVec:
				switch c {
				case flights:
					s.flights = existing
				case faults:
					s.faults = existing
				case sessions:
					s.sessions = existing
				case stalls:
					s.stalls = existing
				}
			case *prometheus.HistogramVec:
				s.chargeAge = existing
			case prometheus.Gauge:
				s.freeSlots = existing
			}
		}
	}
	return s, nil
}

// RecordFlightSegment increments the flight and fault counters.
func (s *PromSink) RecordFlightSegment(seg coremetrics.FlightSegment) error {
	s.flights.WithLabelValues(seg.Company).Inc()
	if seg.Faults > 0 {
		s.faults.WithLabelValues(seg.Company).Add(float64(seg.Faults))
	}
	return nil
}

// RecordChargeSession increments the session counter and observes the wait.
func (s *PromSink) RecordChargeSession(sess coremetrics.ChargeSession) error {
	s.sessions.WithLabelValues(sess.Company).Inc()
	s.chargeAge.WithLabelValues(sess.Company).Observe(sess.Waited.Seconds())
	return nil
}

// RecordStall increments the stall counter. Vehicle ids are not used as label
// values to keep cardinality bounded.
func (s *PromSink) RecordStall(_ int, company, reason string) error {
	s.stalls.WithLabelValues(company, reason).Inc()
	return nil
}

// SetFreeSlots updates the free-slot gauge.
func (s *PromSink) SetFreeSlots(free int) error {
	s.freeSlots.Set(float64(free))
	return nil
}
