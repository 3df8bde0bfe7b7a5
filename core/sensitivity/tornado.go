// Package sensitivity ranks parameter levers by how much a symmetric
// finite-difference perturbation moves the objective around the current
// operating point (a tornado ranking). The configuration is held fixed.
package sensitivity

import (
	"context"
	"math"
	"sort"

	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/scenario"
)

// lever is one perturbable scalar parameter with its documented step size and
// valid range. Perturbed values are clamped to [min, max].
type lever struct {
	name  string
	step  float64
	min   float64
	max   float64
	apply func(*scenario.Parameters, float64)
	read  func(scenario.Parameters) float64
}

// levers is the fixed analysis list
var levers = []lever{
	{
		name: "serviceTarget", step: 0.02, min: 0.50, max: 0.999,
		apply: func(p *scenario.Parameters, v float64) { p.ServiceTarget = v },
		read:  func(p scenario.Parameters) float64 { return p.ServiceTarget },
	},
	{
		name: "laborRate", step: 10, min: 5, max: 500,
		apply: func(p *scenario.Parameters, v float64) { p.LaborRate = v },
		read:  func(p scenario.Parameters) float64 { return p.LaborRate },
	},
	{
		name: "tariffMultiplier", step: 0.25, min: 0.01, max: 5,
		apply: func(p *scenario.Parameters, v float64) { p.TariffMultiplier = v },
		read:  func(p scenario.Parameters) float64 { return p.TariffMultiplier },
	},
	{
		name: "carbonPrice", step: 0.01, min: 0, max: 10,
		apply: func(p *scenario.Parameters, v float64) { p.CarbonPrice = v },
		read:  func(p scenario.Parameters) float64 { return p.CarbonPrice },
	},
	{
		name: "inventoryCarryPct", step: 0.02, min: 0, max: 0.9,
		apply: func(p *scenario.Parameters, v float64) { p.InventoryCarryPct = v },
		read:  func(p scenario.Parameters) float64 { return p.InventoryCarryPct },
	},
	{
		name: "riskWeight", step: 0.1, min: 0, max: 10,
		apply: func(p *scenario.Parameters, v float64) { p.RiskWeight = v },
		read:  func(p scenario.Parameters) float64 { return p.RiskWeight },
	},
}

// Entry is one lever's objective swing
type Entry struct {
	// Parameter is the lever label
	Parameter string `json:"parameter"`

	// Low and High are the objective at -step and +step
	Low  float64 `json:"low"`
	High float64 `json:"high"`

	// Min and Max order Low/High for plotting
	Min float64 `json:"min"`
	Max float64 `json:"max"`

	// Delta is |High - Low|; entries sort descending by it
	Delta float64 `json:"delta"`
}

// Analyze perturbs each lever by -step and +step (clamped to its range) with
// the configuration fixed, and returns entries sorted descending by Delta.
// Levers whose perturbed evaluations are infeasible or non-finite are
// excluded from the ranking.
func Analyze(ctx context.Context, net *network.Model, cfg scenario.Configuration, params scenario.Parameters, overrides scenario.Overrides) ([]Entry, error) {
	entries := make([]Entry, 0, len(levers))
	for _, lv := range levers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		base := lv.read(params)
		low, ok, err := objectiveAt(net, cfg, params, overrides, lv, clampTo(base-lv.step, lv.min, lv.max))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		high, ok, err := objectiveAt(net, cfg, params, overrides, lv, clampTo(base+lv.step, lv.min, lv.max))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		entries = append(entries, Entry{
			Parameter: lv.name,
			Low:       low,
			High:      high,
			Min:       math.Min(low, high),
			Max:       math.Max(low, high),
			Delta:     math.Abs(high - low),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Delta > entries[j].Delta
	})
	return entries, nil
}

func objectiveAt(net *network.Model, cfg scenario.Configuration, params scenario.Parameters, overrides scenario.Overrides, lv lever, value float64) (float64, bool, error) {
	perturbed := params
	lv.apply(&perturbed, value)
	res, err := evaluate.Evaluate(net, cfg, perturbed, overrides)
	if err != nil {
		return 0, false, err
	}
	if !res.Feasible || math.IsInf(res.Objective, 0) || math.IsNaN(res.Objective) {
		return 0, false, nil
	}
	return res.Objective, true, nil
}

func clampTo(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
