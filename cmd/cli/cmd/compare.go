// Package cmd - compare command
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	scenariohcl "chaincost/adapters/scenario/hcl"
	"chaincost/core/compare"
	"chaincost/core/evaluate"
	"chaincost/core/output"
)

var (
	compareBaseline  string
	compareCandidate string
)

// compareCmd diffs two scenarios against the same network
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two scenarios on the same network",
	Long: `Evaluate a baseline and a candidate scenario against the network generated
from --seed and report the cost, service, and risk movement between them,
bucket by bucket, plus any routing changes.

Examples:
  chaincost compare --seed 42 --baseline current.hcl --candidate proposal.hcl
  chaincost compare --seed 42 --baseline plans.hcl --name q3 --candidate plans.hcl --format json`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareBaseline, "baseline", "", "baseline scenario HCL file")
	compareCmd.Flags().StringVar(&compareCandidate, "candidate", "", "candidate scenario HCL file")
	compareCmd.Flags().StringVarP(&scenarioName, "name", "n", "", "scenario name within the candidate file")
}

func runCompare(cmd *cobra.Command, args []string) error {
	if compareBaseline == "" || compareCandidate == "" {
		return fmt.Errorf("both --baseline and --candidate are required")
	}

	base, err := loadNamedScenario(compareBaseline, "")
	if err != nil {
		return err
	}
	cand, err := loadNamedScenario(compareCandidate, scenarioName)
	if err != nil {
		return err
	}

	net := buildModel()
	before, err := evaluate.Evaluate(net, base.Configuration, base.Parameters, base.Overrides)
	if err != nil {
		return err
	}
	after, err := evaluate.Evaluate(net, cand.Configuration, cand.Parameters, cand.Overrides)
	if err != nil {
		return err
	}

	return render(&output.Report{
		Seed:       seed,
		Comparison: compare.Evaluations(before, after, base.Configuration, cand.Configuration),
	})
}

// loadNamedScenario reads one scenario file and picks name (or the only
// scenario present)
func loadNamedScenario(path, name string) (scenariohcl.Scenario, error) {
	scenarios, err := scenariohcl.LoadFile(path)
	if err != nil {
		return scenariohcl.Scenario{}, err
	}
	if name == "" {
		if len(scenarios) != 1 {
			return scenariohcl.Scenario{}, fmt.Errorf("%s defines %d scenarios, select one with --name", path, len(scenarios))
		}
		return scenarios[0], nil
	}
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return scenariohcl.Scenario{}, fmt.Errorf("scenario %q not found in %s", name, path)
}
