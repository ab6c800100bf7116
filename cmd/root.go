package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evtolsim/config"
	"github.com/kilianp07/evtolsim/core/charger"
	"github.com/kilianp07/evtolsim/core/fleet"
	coremetrics "github.com/kilianp07/evtolsim/core/metrics"
	"github.com/kilianp07/evtolsim/core/model"
	"github.com/kilianp07/evtolsim/infra/logger"
	"github.com/kilianp07/evtolsim/infra/metrics"
	"github.com/kilianp07/evtolsim/internal/eventbus"
	"github.com/kilianp07/evtolsim/pkg/export"
)

var (
	cfgPath   string
	outFormat string
	outPath   string
)

var rootCmd = &cobra.Command{
	Use:   "evtolsim",
	Short: "eVTOL fleet charging simulation",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.Flags().StringVarP(&outFormat, "format", "f", "text", "report format: text, json or csv")
	rootCmd.Flags().StringVarP(&outPath, "output", "o", "", "report file (default stdout)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(cfgPath)
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.SetGlobalLevel(cfg.Logging.Level)
	logg := logger.New("evtolsim")

	sink, closeSink, err := buildSink(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closeSink()

	specs := model.BuiltinSpecs()
	if cfg.Simulation.SpecTable != "" {
		specs, err = model.LoadSpecTable(cfg.Simulation.SpecTable)
		if err != nil {
			return fmt.Errorf("load spec table: %w", err)
		}
	}

	pool, err := charger.NewPool(cfg.Simulation.ChargerCapacity, cfg.Simulation.AcquireTimeout(), sink)
	if err != nil {
		return err
	}

	bus := eventbus.New[fleet.StateTransition]()
	defer bus.Close()

	orch, err := fleet.NewOrchestrator(specs, pool, fleet.Options{
		FleetSize:   cfg.Simulation.FleetSize,
		WindowHours: cfg.Simulation.WindowHours,
		ChargeScale: cfg.Simulation.ChargeScale(),
		Seed:        cfg.Simulation.Seed,
		Deps:        fleet.Deps{Log: logg, Sink: sink, Bus: bus},
	})
	if err != nil {
		return err
	}

	orch.Run()
	reports := orch.Results()
	summary := fleet.Summarize(reports)

	out := cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	switch outFormat {
	case "text":
		return export.WriteText(out, reports, summary)
	case "json":
		return export.WriteJSON(out, reports, summary)
	case "csv":
		return export.WriteCSV(out, reports)
	}
	return fmt.Errorf("unknown report format: %s", outFormat)
}

func buildSink(ctx context.Context, cfg *config.Config, logg logger.Logger) (coremetrics.Sink, func(), error) {
	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		ps, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, ps)
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusPort); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}
	var influx *metrics.InfluxSink
	if cfg.Metrics.InfluxEnabled {
		s := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if is, ok := s.(*metrics.InfluxSink); ok {
			influx = is
		}
		sinks = append(sinks, s)
	}
	closer := func() {
		if influx != nil {
			influx.Close()
		}
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, closer, nil
	case 1:
		return sinks[0], closer, nil
	}
	return coremetrics.NewMultiSink(sinks...), closer, nil
}
