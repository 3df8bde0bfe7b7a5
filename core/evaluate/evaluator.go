// Package evaluate computes the cost/service/risk report for a single
// candidate configuration. It is the single source of truth for this math:
// the load calculator, optimizer, Monte Carlo simulator, and sensitivity
// analyzer all defer to it. Evaluation is pure: immutable inputs in, a fresh
// Result out, no retained state.
package evaluate

import (
	"math"

	"go.uber.org/zap"

	"chaincost/core/network"
	"chaincost/core/scenario"
	"chaincost/internal/logging"
)

const (
	// tonsPerUnit converts unit demand to tons for the ton-mile basis
	tonsPerUnit = 0.02

	// riskObjectiveScale lifts the risk index to cost order of magnitude
	riskObjectiveScale = 1e6

	// hhiRiskWeight scales the supplier concentration (HHI) risk term;
	// the term is maximal (0.5) under single-sourcing
	hhiRiskWeight = 0.5

	// leadTimeGraceDays is the lead time absorbed before service decays
	leadTimeGraceDays = 20

	// leadTimeSpanDays is the decay horizon beyond the grace period
	leadTimeSpanDays = 60

	supplierOverflowCostRate = 0.20
	assemblyOverflowCostRate = 0.30
	supplierDegradeRate      = 0.03 * 5
	assemblyDegradeRate      = 0.04 * 5
)

// Demand is the rounded per-product demand: round(effectiveBaseDemand *
// demandMultiplier), floored at zero.
func Demand(baseDemand, demandMultiplier float64) int64 {
	d := int64(math.Round(baseDemand * demandMultiplier))
	if d < 0 {
		return 0
	}
	return d
}

// siteAccum aggregates per-site load and routed cost during evaluation
type siteAccum struct {
	load int64
	cost float64
}

// Evaluate produces the full report for one configuration. The configuration
// must be complete and reference only existing node ids; a bad reference
// fails fast before any accumulation. overrides may be nil.
func Evaluate(net *network.Model, cfg scenario.Configuration, params scenario.Parameters, overrides scenario.Overrides) (*Result, error) {
	if err := cfg.Validate(net); err != nil {
		return nil, err
	}

	var t Totals
	t.ServiceLevel = 1.0

	supplierAccum := make(map[string]*siteAccum, len(net.Suppliers))
	assemblyAccum := make(map[string]*siteAccum, len(net.AssemblySites))
	supplierDemand := make(map[string]int64, len(net.Suppliers))

	for _, base := range net.Products {
		p := scenario.Effective(base, overrides)
		a := cfg[p.ID]

		sup, _ := net.SupplierByID(a.Supplier)
		asm, _ := net.AssemblyByID(a.Assembly)
		dc, _ := net.DistributionCenterByID(a.DistributionCenter)
		supMode := network.Modes[a.SupplierLegMode]
		dcMode := network.Modes[a.DCLegMode]

		demand := Demand(p.BaseDemand, params.DemandMultiplier)
		t.Units += demand
		fdemand := float64(demand)

		material := fdemand * (1 + p.BOMScrapRate) * sup.UnitCost
		tariff := material * sup.TariffRate * params.TariffMultiplier

		supLegCost, supLegCarbon := legCost(net, fdemand, sup.Region, asm.Region, supMode)
		dcLegCost, dcLegCarbon := legCost(net, fdemand, asm.Region, dc.Region, dcMode)
		transport := supLegCost + dcLegCost
		carbon := supLegCarbon + dcLegCarbon

		assemblyCost := fdemand * p.BOMLaborHours * params.LaborRate * asm.LaborCostMultiplier

		// Overhead is prorated by this product's share of site capacity,
		// not by aggregate utilization: products sharing a site each
		// contribute independently, so charged overhead can exceed the
		// site's nominal fixed overhead when the site is overloaded.
		// That excess is what feeds the overflow penalty.
		overhead := asm.FixedOverhead * (fdemand / asm.Capacity)

		inventory := (material + tariff + assemblyCost + overhead + transport) * params.InventoryCarryPct

		t.Material += material
		t.Tariffs += tariff
		t.Transport += transport
		t.Assembly += assemblyCost
		t.Overhead += overhead
		t.Inventory += inventory
		t.CarbonKg += carbon

		// Service: supplier reliability decayed by lead time on the
		// supplier leg. Network service is the worst product, not the mean.
		lead := sup.LeadTimeDays + supMode.LeadPenaltyDays
		leadFactor := clamp(1-math.Max(0, lead-leadTimeGraceDays)/leadTimeSpanDays, 0.7, 1)
		service := clamp(sup.Reliability*leadFactor, 0, 1)
		if service < t.ServiceLevel {
			t.ServiceLevel = service
		}

		regionRisk := 0.0
		if reg, ok := net.RegionByID(sup.Region); ok {
			regionRisk = reg.Risk
		}
		modeRisk := (network.ModeRisk(a.SupplierLegMode) + network.ModeRisk(a.DCLegMode)) / 2
		t.RiskIndex += (regionRisk + clamp(1-sup.Reliability, 0, 0.2) + modeRisk) * (fdemand / 10000)

		accum(supplierAccum, a.Supplier, demand, material)
		accum(assemblyAccum, a.Assembly, demand, assemblyCost)
		supplierDemand[a.Supplier] += demand
	}

	// Supplier concentration penalty: Herfindahl-Hirschman index over
	// demand shares, scaled into [0, 0.5].
	t.RiskIndex += hhiRiskWeight * herfindahl(supplierDemand, t.Units)

	res := &Result{Totals: t}
	res.Sites = siteReports(net, supplierAccum, assemblyAccum)

	// Capacity policy. Overflow triggers on load strictly above capacity:
	// load exactly equal to capacity is never penalized.
	overloaded := false
	serviceDegrade := 0.0
	for _, s := range res.Sites {
		if !s.Overloaded {
			continue
		}
		overloaded = true
		if !params.AllowOverflow {
			continue
		}
		ratio := (float64(s.Load) - s.Capacity) / float64(s.Load)
		if s.Kind == SiteSupplier {
			res.OverflowPenalty += s.CostAtRisk * ratio * supplierOverflowCostRate
			serviceDegrade = math.Max(serviceDegrade, supplierDegradeRate*ratio)
		} else {
			res.OverflowPenalty += s.CostAtRisk * ratio * assemblyOverflowCostRate
			serviceDegrade = math.Max(serviceDegrade, assemblyDegradeRate*ratio)
		}
	}

	if overloaded && !params.AllowOverflow {
		// Hard constraint: short-circuits all further adjustment.
		res.Cost = math.Inf(1)
		res.Objective = math.Inf(1)
		res.Feasible = false
		return res, nil
	}

	if serviceDegrade > 0 {
		res.Totals.ServiceLevel = clamp(t.ServiceLevel*(1-serviceDegrade), 0, 1)
	}

	res.Cost = t.Material + t.Tariffs + t.Transport + t.Assembly + t.Overhead +
		t.Inventory + t.CarbonKg*params.CarbonPrice + res.OverflowPenalty
	res.Objective = res.Cost + params.RiskWeight*res.Totals.RiskIndex*riskObjectiveScale
	res.Feasible = res.Totals.ServiceLevel >= params.ServiceTarget && !math.IsInf(res.Cost, 1)
	return res, nil
}

// legCost computes one transport leg's cost and carbon from the ton-mile
// basis: demand * tonsPerUnit * distance(in thousand miles) * 1000.
func legCost(net *network.Model, demand float64, fromRegion, toRegion string, mode network.TransportMode) (cost, carbon float64) {
	distance, ok := net.Distance(fromRegion, toRegion)
	if !ok {
		logging.Debug("distance lookup miss, using fallback",
			zap.String("from", fromRegion),
			zap.String("to", toRegion),
			zap.Float64("fallback", network.DefaultDistance))
	}
	tonMiles := demand * tonsPerUnit * distance * 1000
	return tonMiles * mode.CostPerTonMi, tonMiles * mode.CarbonPerTonMi
}

func accum(m map[string]*siteAccum, id string, demand int64, cost float64) {
	a, ok := m[id]
	if !ok {
		a = &siteAccum{}
		m[id] = a
	}
	a.load += demand
	a.cost += cost
}

// herfindahl returns the sum of squared supplier demand shares, in [0, 1]:
// 1 under single-sourcing, approaching 1/n under even distribution.
func herfindahl(supplierDemand map[string]int64, totalUnits int64) float64 {
	if totalUnits <= 0 {
		return 0
	}
	hhi := 0.0
	for _, d := range supplierDemand {
		share := float64(d) / float64(totalUnits)
		hhi += share * share
	}
	return hhi
}

func siteReports(net *network.Model, suppliers, assemblies map[string]*siteAccum) []SiteReport {
	reports := make([]SiteReport, 0, len(suppliers)+len(assemblies))
	for _, s := range net.Suppliers {
		a, ok := suppliers[s.ID]
		if !ok {
			continue
		}
		reports = append(reports, SiteReport{
			ID:          s.ID,
			Kind:        SiteSupplier,
			Load:        a.load,
			Capacity:    s.Capacity,
			Utilization: float64(a.load) / s.Capacity,
			CostAtRisk:  a.cost,
			Overloaded:  float64(a.load) > s.Capacity,
		})
	}
	for _, s := range net.AssemblySites {
		a, ok := assemblies[s.ID]
		if !ok {
			continue
		}
		reports = append(reports, SiteReport{
			ID:          s.ID,
			Kind:        SiteAssembly,
			Load:        a.load,
			Capacity:    s.Capacity,
			Utilization: float64(a.load) / s.Capacity,
			CostAtRisk:  a.cost,
			Overloaded:  float64(a.load) > s.Capacity,
		})
	}
	return reports
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
