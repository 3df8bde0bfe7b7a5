// Package cmd - evaluate command
package cmd

import (
	"github.com/spf13/cobra"

	"chaincost/core/evaluate"
	"chaincost/core/load"
	"chaincost/core/output"
)

var showLoads bool

// evaluateCmd evaluates one configuration against the generated network
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate a scenario's configuration",
	Long: `Evaluate the cost/service/risk report for the configuration defined in a
scenario file, against the network generated from --seed.

Examples:
  chaincost evaluate --seed 42 --scenario baseline.hcl
  chaincost evaluate --seed 42 --scenario fleet.hcl --name high-demand --format json`,
	RunE: runEvaluate,
}

func init() {
	evaluateCmd.Flags().StringVarP(&scenarioFile, "scenario", "s", "", "scenario HCL file")
	evaluateCmd.Flags().StringVarP(&scenarioName, "name", "n", "", "scenario name within the file")
	evaluateCmd.Flags().BoolVar(&showLoads, "loads", false, "include the per-site load table")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	sc, err := loadScenario()
	if err != nil {
		return err
	}

	net := buildModel()
	result, err := evaluate.Evaluate(net, sc.Configuration, sc.Parameters, sc.Overrides)
	if err != nil {
		return err
	}

	report := &output.Report{Seed: seed, Evaluation: result}
	if showLoads {
		loads, err := load.Compute(net, sc.Configuration, sc.Parameters, sc.Overrides)
		if err != nil {
			return err
		}
		report.Loads = loads
	}
	return render(report)
}
