// Package evaluate - evaluation result types
package evaluate

import (
	"encoding/json"
	"math"
)

// SiteKind distinguishes the two capacitated site classes
type SiteKind string

const (
	SiteSupplier SiteKind = "supplier"
	SiteAssembly SiteKind = "assembly"
)

// SiteReport is the per-site load and cost-at-risk breakdown used for
// bottleneck reporting
type SiteReport struct {
	ID   string   `json:"id"`
	Kind SiteKind `json:"kind"`

	// Load is the total rounded demand routed through the site
	Load int64 `json:"load"`

	// Capacity is the site's nominal capacity
	Capacity float64 `json:"capacity"`

	// Utilization is Load / Capacity
	Utilization float64 `json:"utilization"`

	// CostAtRisk is the cost routed through the site (material cost for
	// suppliers, assembly cost for assembly sites)
	CostAtRisk float64 `json:"cost_at_risk"`

	// Overloaded reports load strictly above capacity
	Overloaded bool `json:"overloaded"`
}

// Totals holds the accumulated cost/service/risk components
type Totals struct {
	// Units is the total rounded demand across products
	Units int64 `json:"units"`

	Material  float64 `json:"material"`
	Tariffs   float64 `json:"tariffs"`
	Transport float64 `json:"transport_cost"`
	Assembly  float64 `json:"assembly"`
	Overhead  float64 `json:"overhead"`
	Inventory float64 `json:"inventory"`

	// CarbonKg is total transport carbon in kilograms
	CarbonKg float64 `json:"carbon_kg"`

	// RiskIndex is the accumulated risk score including the HHI
	// concentration term
	RiskIndex float64 `json:"risk_index"`

	// ServiceLevel is the minimum per-product service score (the
	// bottleneck, not an average), after any overflow degrade
	ServiceLevel float64 `json:"service_level"`
}

// Result is the full evaluation report for one candidate configuration
type Result struct {
	Totals Totals `json:"totals"`

	// Cost is the total annualized cost including any overflow penalty.
	// +Inf marks a hard capacity violation with overflow disallowed.
	Cost float64 `json:"cost"`

	// OverflowPenalty is the soft-overflow surcharge included in Cost
	OverflowPenalty float64 `json:"overflow_penalty"`

	// Objective is Cost + riskWeight * RiskIndex * 1e6; used only for
	// optimizer comparison, distinct from raw cost
	Objective float64 `json:"objective"`

	// Feasible is ServiceLevel >= serviceTarget and Cost finite.
	// Infeasibility is a result state, not an error; callers must check
	// this flag and never assume a finite objective.
	Feasible bool `json:"feasible"`

	// Sites is the per-site breakdown, suppliers first then assembly
	// sites, in network order
	Sites []SiteReport `json:"sites"`
}

// An infeasible result carries cost = objective = +Inf, which encoding/json
// refuses to emit. Those two fields round-trip as the JSON string "inf".

type resultAlias Result

type resultJSON struct {
	*resultAlias
	Cost      jsonFloat `json:"cost"`
	Objective jsonFloat `json:"objective"`
}

// MarshalJSON implements json.Marshaler
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(&resultJSON{
		resultAlias: (*resultAlias)(r),
		Cost:        jsonFloat(r.Cost),
		Objective:   jsonFloat(r.Objective),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Result) UnmarshalJSON(data []byte) error {
	aux := resultJSON{resultAlias: (*resultAlias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.Cost = float64(aux.Cost)
	r.Objective = float64(aux.Objective)
	return nil
}

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(f), 1) {
		return []byte(`"inf"`), nil
	}
	return json.Marshal(float64(f))
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	if string(data) == `"inf"` {
		*f = jsonFloat(math.Inf(1))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}
