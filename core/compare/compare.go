// Package compare diffs two evaluated scenarios. It answers "what changed and
// what did it buy us": per-bucket cost deltas, service and risk movement, and
// routing changes between the two configurations.
package compare

import (
	"math"
	"sort"

	"chaincost/core/evaluate"
	"chaincost/core/scenario"
)

// Line is one cost bucket's movement
type Line struct {
	Bucket string  `json:"bucket"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Delta  float64 `json:"delta"`
}

// RoutingChange is one product whose assignment differs
type RoutingChange struct {
	Product string              `json:"product"`
	Before  scenario.Assignment `json:"before"`
	After   scenario.Assignment `json:"after"`
}

// Result is the complete diff between two evaluations
type Result struct {
	CostBefore   float64 `json:"cost_before"`
	CostAfter    float64 `json:"cost_after"`
	CostDelta    float64 `json:"cost_delta"`
	DeltaPercent float64 `json:"delta_percent"`

	ObjectiveDelta float64 `json:"objective_delta"`
	ServiceDelta   float64 `json:"service_delta"`
	RiskDelta      float64 `json:"risk_delta"`

	// Lines holds per-bucket deltas, largest absolute movement first
	Lines []Line `json:"lines"`

	// Routing lists products whose assignment changed, in product-id order;
	// nil configurations produce no routing section
	Routing []RoutingChange `json:"routing,omitempty"`
}

// Evaluations compares two evaluation results. Either configuration may be
// nil when the caller only has the reports.
func Evaluations(before, after *evaluate.Result, beforeCfg, afterCfg scenario.Configuration) *Result {
	r := &Result{
		CostBefore:     before.Cost,
		CostAfter:      after.Cost,
		CostDelta:      after.Cost - before.Cost,
		ObjectiveDelta: after.Objective - before.Objective,
		ServiceDelta:   after.Totals.ServiceLevel - before.Totals.ServiceLevel,
		RiskDelta:      after.Totals.RiskIndex - before.Totals.RiskIndex,
	}
	if before.Cost != 0 && !math.IsInf(before.Cost, 0) {
		r.DeltaPercent = r.CostDelta / before.Cost * 100
	}

	buckets := []struct {
		name          string
		before, after float64
	}{
		{"material", before.Totals.Material, after.Totals.Material},
		{"tariffs", before.Totals.Tariffs, after.Totals.Tariffs},
		{"transport", before.Totals.Transport, after.Totals.Transport},
		{"assembly", before.Totals.Assembly, after.Totals.Assembly},
		{"overhead", before.Totals.Overhead, after.Totals.Overhead},
		{"inventory", before.Totals.Inventory, after.Totals.Inventory},
		{"overflow", before.OverflowPenalty, after.OverflowPenalty},
	}
	for _, b := range buckets {
		r.Lines = append(r.Lines, Line{
			Bucket: b.name,
			Before: b.before,
			After:  b.after,
			Delta:  b.after - b.before,
		})
	}
	sort.SliceStable(r.Lines, func(i, j int) bool {
		return math.Abs(r.Lines[i].Delta) > math.Abs(r.Lines[j].Delta)
	})

	r.Routing = routingChanges(beforeCfg, afterCfg)
	return r
}

func routingChanges(before, after scenario.Configuration) []RoutingChange {
	if before == nil || after == nil {
		return nil
	}
	products := make([]string, 0, len(after))
	for id := range after {
		products = append(products, id)
	}
	sort.Strings(products)

	var out []RoutingChange
	for _, id := range products {
		if before[id] == after[id] {
			continue
		}
		out = append(out, RoutingChange{Product: id, Before: before[id], After: after[id]})
	}
	return out
}
