// Package cmd - simulate command
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chaincost/core/output"
	"chaincost/core/simulate"
	"chaincost/internal/config"
)

var (
	samples               int
	demandVolatility      float64
	reliabilityVolatility float64
	simSeed               int64
)

// simulateCmd runs Monte Carlo robustness assessment
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Monte Carlo robustness assessment of a configuration",
	Long: `Repeatedly evaluate a fixed configuration under randomized demand and
supplier-reliability shocks, and report the probability of meeting the
service target plus the cost distribution. This assesses robustness; it
never re-optimizes.

Examples:
  chaincost simulate --seed 42 --scenario baseline.hcl
  chaincost simulate --seed 42 --scenario baseline.hcl --samples 1000 --demand-vol 0.25`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "scenario HCL file")
	simulateCmd.Flags().StringVarP(&scenarioName, "name", "n", "", "scenario name within the file")
	simulateCmd.Flags().IntVar(&samples, "samples", 0, "sample count (default from config)")
	simulateCmd.Flags().Float64Var(&demandVolatility, "demand-vol", -1, "demand volatility (default from config)")
	simulateCmd.Flags().Float64Var(&reliabilityVolatility, "reliability-vol", -1, "reliability volatility (default from config)")
	simulateCmd.Flags().Int64Var(&simSeed, "sim-seed", 1, "shock generator seed")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	simCfg := config.Get().Simulation
	opts := simulate.Options{
		Samples:               simCfg.Samples,
		DemandVolatility:      simCfg.DemandVolatility,
		ReliabilityVolatility: simCfg.ReliabilityVolatility,
		Seed:                  simSeed,
	}
	if samples > 0 {
		opts.Samples = samples
	}
	if demandVolatility >= 0 {
		opts.DemandVolatility = demandVolatility
	}
	if reliabilityVolatility >= 0 {
		opts.ReliabilityVolatility = reliabilityVolatility
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := simulate.Run(ctx, buildModel(), sc.Configuration, sc.Parameters, sc.Overrides, opts)
	if err != nil {
		return err
	}
	return render(&output.Report{Seed: seed, Simulation: summary})
}
