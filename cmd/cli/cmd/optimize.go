// Package cmd - optimize command
package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chaincost/adapters/solver"
	"chaincost/core/optimize"
	"chaincost/core/output"
	"chaincost/core/scenario"
	"chaincost/internal/config"
)

var remoteURL string

// optimizeCmd searches for the best feasible configuration
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find the best feasible configuration by objective",
	Long: `Exhaustively search the configuration space for the feasible configuration
with the lowest objective (cost plus weighted risk). Parameters and product
overrides come from a scenario file when given, otherwise defaults apply.

With --remote, solving is delegated to an external service; any failure
falls back to the local exhaustive search.

The search is exhaustive by design and tractable only for small catalogs.

Examples:
  chaincost optimize --seed 42
  chaincost optimize --seed 42 --scenario baseline.hcl
  chaincost optimize --seed 42 --remote http://solver.internal/solve`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "scenario HCL file (parameters and overrides)")
	optimizeCmd.Flags().StringVarP(&scenarioName, "name", "n", "", "scenario name within the file")
	optimizeCmd.Flags().StringVar(&remoteURL, "remote", "", "remote solver URL")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	params := scenario.DefaultParameters()
	var overrides scenario.Overrides
	var current scenario.Configuration
	if scenarioFile != "" {
		sc, err := loadScenario()
		if err != nil {
			return err
		}
		params = sc.Parameters
		overrides = sc.Overrides
		current = sc.Configuration
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := buildSolver(current)
	result, err := s.Solve(ctx, buildModel(), params, overrides)
	if err != nil {
		return err
	}
	return render(&output.Report{Seed: seed, Optimization: result})
}

// buildSolver wires the solver strategy: remote delegate in front of the
// local exhaustive search when a URL is configured, plain local otherwise.
func buildSolver(current scenario.Configuration) optimize.Solver {
	local := optimize.NewExhaustive()
	url := remoteURL
	if url == "" {
		url = config.Get().Solver.RemoteURL
	}
	if url == "" {
		return local
	}
	timeout := time.Duration(config.Get().Solver.TimeoutSeconds) * time.Second
	return optimize.NewFallback(solver.NewRemote(url, timeout, current), local)
}
