// Package cmd - shared command helpers
package cmd

import (
	"fmt"
	"os"

	scenariohcl "chaincost/adapters/scenario/hcl"
	"chaincost/core/network"
	"chaincost/core/output"
	"chaincost/internal/config"
)

// buildModel generates the network snapshot from the seed flag and the
// configured sizes
func buildModel() *network.Model {
	nc := config.Get().Network
	spec := network.Spec{
		Suppliers:           nc.Suppliers,
		AssemblySites:       nc.AssemblySites,
		DistributionCenters: nc.DistributionCenters,
		Products:            nc.Products,
	}
	if spec.Suppliers == 0 {
		spec = network.DefaultSpec()
	}
	return network.Generate(seed, spec)
}

// loadScenario reads the --scenario file and picks the named scenario (or the
// only one present)
func loadScenario() (scenariohcl.Scenario, error) {
	if scenarioFile == "" {
		return scenariohcl.Scenario{}, fmt.Errorf("a scenario file is required (--scenario)")
	}
	return loadNamedScenario(scenarioFile, scenarioName)
}

// render writes a report in the selected output format
func render(report *output.Report) error {
	formatter, err := output.New(output.Format(outputFormat))
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, report)
}
