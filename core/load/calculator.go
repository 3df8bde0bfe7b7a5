// Package load aggregates per-site load and utilization for a configuration
// without running the full cost evaluation. It backs fast dashboard refresh
// and bottleneck listing.
package load

import (
	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/scenario"
)

// BottleneckThreshold flags sites at or above this utilization
const BottleneckThreshold = 0.85

// SiteLoad is one site's aggregated load
type SiteLoad struct {
	ID   string            `json:"id"`
	Kind evaluate.SiteKind `json:"kind"`

	// Load is the sum of rounded per-product demand routed to the site
	Load int64 `json:"load"`

	Capacity    float64 `json:"capacity"`
	Utilization float64 `json:"utilization"`

	// Bottleneck reports utilization >= BottleneckThreshold
	Bottleneck bool `json:"bottleneck"`
}

// Compute aggregates load per supplier and per assembly site, in network
// order (suppliers first). overrides may be nil.
func Compute(net *network.Model, cfg scenario.Configuration, params scenario.Parameters, overrides scenario.Overrides) ([]SiteLoad, error) {
	if err := cfg.Validate(net); err != nil {
		return nil, err
	}

	supplierLoad := make(map[string]int64, len(net.Suppliers))
	assemblyLoad := make(map[string]int64, len(net.AssemblySites))
	for _, base := range net.Products {
		p := scenario.Effective(base, overrides)
		a := cfg[p.ID]
		demand := evaluate.Demand(p.BaseDemand, params.DemandMultiplier)
		supplierLoad[a.Supplier] += demand
		assemblyLoad[a.Assembly] += demand
	}

	loads := make([]SiteLoad, 0, len(supplierLoad)+len(assemblyLoad))
	for _, s := range net.Suppliers {
		if l, ok := supplierLoad[s.ID]; ok {
			loads = append(loads, siteLoad(s.ID, evaluate.SiteSupplier, l, s.Capacity))
		}
	}
	for _, s := range net.AssemblySites {
		if l, ok := assemblyLoad[s.ID]; ok {
			loads = append(loads, siteLoad(s.ID, evaluate.SiteAssembly, l, s.Capacity))
		}
	}
	return loads, nil
}

// Bottlenecks filters loads down to flagged sites
func Bottlenecks(loads []SiteLoad) []SiteLoad {
	var out []SiteLoad
	for _, l := range loads {
		if l.Bottleneck {
			out = append(out, l)
		}
	}
	return out
}

func siteLoad(id string, kind evaluate.SiteKind, load int64, capacity float64) SiteLoad {
	u := float64(load) / capacity
	return SiteLoad{
		ID:          id,
		Kind:        kind,
		Load:        load,
		Capacity:    capacity,
		Utilization: u,
		Bottleneck:  u >= BottleneckThreshold,
	}
}
