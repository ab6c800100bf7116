package fleet

import (
	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/evtolsim/core/model"
)

// Summary aggregates fleet-level statistics over a finished run.
type Summary struct {
	Units               int     `json:"units"`
	Depleted            int     `json:"depleted"`
	Stalled             int     `json:"stalled"`
	TotalFlightHours    float64 `json:"total_flight_hours"`
	TotalDistanceMiles  float64 `json:"total_distance_miles"`
	TotalChargeHours    float64 `json:"total_charge_hours"`
	TotalFaults         int     `json:"total_faults"`
	TotalPassengerMiles float64 `json:"total_passenger_miles"`
	MeanDistanceMiles   float64 `json:"mean_distance_miles"`
	StdDevDistanceMiles float64 `json:"stddev_distance_miles"`
	MeanFlightHours     float64 `json:"mean_flight_hours"`
}

// Summarize computes fleet aggregates from per-unit reports.
func Summarize(reports []Report) Summary {
	s := Summary{Units: len(reports)}
	if len(reports) == 0 {
		return s
	}
	distances := make([]float64, 0, len(reports))
	flightHours := make([]float64, 0, len(reports))
	for _, r := range reports {
		s.TotalFlightHours += r.Stats.FlightHours
		s.TotalDistanceMiles += r.Stats.DistanceMiles
		s.TotalChargeHours += r.Stats.ChargeHours
		s.TotalFaults += r.Stats.Faults
		s.TotalPassengerMiles += r.Stats.PassengerMiles
		distances = append(distances, r.Stats.DistanceMiles)
		flightHours = append(flightHours, r.Stats.FlightHours)
		switch r.FinalState {
		case model.StateDepleted.String():
			s.Depleted++
		case model.StateStalled.String():
			s.Stalled++
		}
	}
	s.MeanDistanceMiles = stat.Mean(distances, nil)
	s.MeanFlightHours = stat.Mean(flightHours, nil)
	if len(distances) > 1 {
		s.StdDevDistanceMiles = stat.StdDev(distances, nil)
	}
	return s
}
