package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evtolsim/core/model"
)

var specsCmd = &cobra.Command{
	Use:   "specs",
	Short: "Print the active vehicle spec table",
	RunE:  printSpecs,
}

func init() {
	rootCmd.AddCommand(specsCmd)
}

func printSpecs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	specs := model.BuiltinSpecs()
	if cfg.Simulation.SpecTable != "" {
		specs, err = model.LoadSpecTable(cfg.Simulation.SpecTable)
		if err != nil {
			return fmt.Errorf("load spec table: %w", err)
		}
	}
	w := cmd.OutOrStdout()
	for _, s := range specs {
		fmt.Fprintf(w, "%-16s cruise %v mph, battery %v kWh, charge %v h, %v kWh/mile, %d pax, fault p=%v\n",
			s.Company, s.CruiseSpeedMPH, s.BatteryKWh, s.ChargeTimeHours, s.EnergyPerMile, s.PassengerCount, s.FaultProbability)
	}
	return nil
}
