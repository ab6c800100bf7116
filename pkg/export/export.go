package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/evtolsim/core/fleet"
)

// WriteJSON writes the per-vehicle reports and fleet summary to w in JSON
// format.
func WriteJSON(w io.Writer, reports []fleet.Report, summary fleet.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Vehicles []fleet.Report `json:"vehicles"`
		Summary  fleet.Summary  `json:"summary"`
	}{Vehicles: reports, Summary: summary})
}

// WriteCSV writes the per-vehicle reports to w in CSV format.
func WriteCSV(w io.Writer, reports []fleet.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"vehicle_id", "company", "flight_hours", "distance_miles", "charge_hours", "faults", "passenger_miles", "final_state"}); err != nil {
		return err
	}
	for _, r := range reports {
		rec := []string{
			strconv.Itoa(r.VehicleID),
			r.Company,
			formatFloat(r.Stats.FlightHours),
			formatFloat(r.Stats.DistanceMiles),
			formatFloat(r.Stats.ChargeHours),
			strconv.Itoa(r.Stats.Faults),
			formatFloat(r.Stats.PassengerMiles),
			r.FinalState,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes a human-readable report to w, one block per vehicle in id
// order, followed by the fleet summary.
func WriteText(w io.Writer, reports []fleet.Report, summary fleet.Summary) error {
	for _, r := range reports {
		if _, err := fmt.Fprintf(w, "Vehicle ID: %d | Company: %s | State: %s\n", r.VehicleID, r.Company, r.FinalState); err != nil {
			return err
		}
		fmt.Fprintf(w, "  Total Flight Time: %.4f hours\n", r.Stats.FlightHours)
		fmt.Fprintf(w, "  Total Distance: %.2f miles\n", r.Stats.DistanceMiles)
		fmt.Fprintf(w, "  Total Charge Time: %.4f hours\n", r.Stats.ChargeHours)
		fmt.Fprintf(w, "  Total Faults: %d\n", r.Stats.Faults)
		fmt.Fprintf(w, "  Total Passenger Miles: %.2f miles\n", r.Stats.PassengerMiles)
		fmt.Fprintln(w, "-----------------------------------")
	}
	fmt.Fprintf(w, "Fleet: %d vehicles (%d depleted, %d stalled)\n", summary.Units, summary.Depleted, summary.Stalled)
	fmt.Fprintf(w, "  Total Distance: %.2f miles (mean %.2f, stddev %.2f)\n", summary.TotalDistanceMiles, summary.MeanDistanceMiles, summary.StdDevDistanceMiles)
	fmt.Fprintf(w, "  Total Flight Time: %.4f hours (mean %.4f)\n", summary.TotalFlightHours, summary.MeanFlightHours)
	fmt.Fprintf(w, "  Total Charge Time: %.4f hours\n", summary.TotalChargeHours)
	fmt.Fprintf(w, "  Total Faults: %d\n", summary.TotalFaults)
	_, err := fmt.Fprintf(w, "  Total Passenger Miles: %.2f miles\n", summary.TotalPassengerMiles)
	return err
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
