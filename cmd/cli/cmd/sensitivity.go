// Package cmd - sensitivity command
package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"chaincost/core/output"
	"chaincost/core/sensitivity"
)

// sensitivityCmd produces the tornado ranking
var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Rank parameter levers by objective impact",
	Long: `Perturb each scalar parameter by its step in both directions while holding
the configuration fixed, and rank levers by how far they move the objective
(a tornado ranking).

Examples:
  chaincost sensitivity --seed 42 --scenario baseline.hcl`,
	RunE: runSensitivity,
}

func init() {
	sensitivityCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "scenario HCL file")
	sensitivityCmd.Flags().StringVarP(&scenarioName, "name", "n", "", "scenario name within the file")
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entries, err := sensitivity.Analyze(ctx, buildModel(), sc.Configuration, sc.Parameters, sc.Overrides)
	if err != nil {
		return err
	}
	return render(&output.Report{Seed: seed, Sensitivity: entries})
}
