package model

// Stats accumulates one unit's flight and charge statistics. Owned by the
// unit's goroutine during a run, read-only afterwards.
type Stats struct {
	FlightHours    float64 `json:"flight_hours"`
	DistanceMiles  float64 `json:"distance_miles"`
	ChargeHours    float64 `json:"charge_hours"`
	Faults         int     `json:"faults"`
	PassengerMiles float64 `json:"passenger_miles"`
}
