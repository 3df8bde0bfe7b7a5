package load

import (
	"testing"

	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/scenario"
)

func testModel() *network.Model {
	m := &network.Model{
		Regions: []network.Region{
			{ID: "REG-1", Name: "North America", Risk: 0.1, CarbonFactor: 1.0},
		},
		Suppliers: []network.Supplier{
			{ID: "SUP-1", Region: "REG-1", UnitCost: 100, Reliability: 0.95, LeadTimeDays: 10, Capacity: 1000},
			{ID: "SUP-2", Region: "REG-1", UnitCost: 120, Reliability: 0.95, LeadTimeDays: 10, Capacity: 2000},
		},
		AssemblySites: []network.AssemblySite{
			{ID: "ASM-1", Region: "REG-1", LaborCostMultiplier: 1, FixedOverhead: 50000, Capacity: 3000},
		},
		DistributionCenters: []network.DistributionCenter{
			{ID: "DC-1", Region: "REG-1"},
		},
		Products: []network.Product{
			{ID: "LRU-1", BaseDemand: 900, BOMLaborHours: 1},
			{ID: "LRU-2", BaseDemand: 400, BOMLaborHours: 1},
		},
		Distances: map[network.RegionPair]float64{
			{From: "REG-1", To: "REG-1"}: 0.25,
		},
	}
	m.Reindex()
	return m
}

func testConfig() scenario.Configuration {
	return scenario.Configuration{
		"LRU-1": {Supplier: "SUP-1", Assembly: "ASM-1", DistributionCenter: "DC-1",
			SupplierLegMode: network.ModeGround, DCLegMode: network.ModeGround},
		"LRU-2": {Supplier: "SUP-2", Assembly: "ASM-1", DistributionCenter: "DC-1",
			SupplierLegMode: network.ModeGround, DCLegMode: network.ModeGround},
	}
}

func TestComputeConservation(t *testing.T) {
	net := testModel()
	loads, err := Compute(net, testConfig(), scenario.DefaultParameters(), nil)
	if err != nil {
		t.Fatal(err)
	}

	var supplierTotal, assemblyTotal, demandTotal int64
	for _, l := range loads {
		switch l.Kind {
		case evaluate.SiteSupplier:
			supplierTotal += l.Load
		case evaluate.SiteAssembly:
			assemblyTotal += l.Load
		}
	}
	for _, p := range net.Products {
		demandTotal += evaluate.Demand(p.BaseDemand, 1)
	}
	if supplierTotal != demandTotal {
		t.Fatalf("supplier load %d does not conserve total demand %d", supplierTotal, demandTotal)
	}
	if assemblyTotal != demandTotal {
		t.Fatalf("assembly load %d does not conserve total demand %d", assemblyTotal, demandTotal)
	}
}

func TestComputeOrderAndUtilization(t *testing.T) {
	loads, err := Compute(testModel(), testConfig(), scenario.DefaultParameters(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(loads) != 3 {
		t.Fatalf("expected 3 loaded sites, got %d", len(loads))
	}
	// Suppliers come first, in network order.
	if loads[0].ID != "SUP-1" || loads[1].ID != "SUP-2" || loads[2].ID != "ASM-1" {
		t.Fatalf("unexpected site order: %s, %s, %s", loads[0].ID, loads[1].ID, loads[2].ID)
	}

	// SUP-1: 900/1000 = 0.90 >= threshold.
	if !loads[0].Bottleneck {
		t.Fatalf("SUP-1 at %.2f utilization should be a bottleneck", loads[0].Utilization)
	}
	// SUP-2: 400/2000 = 0.20.
	if loads[1].Bottleneck {
		t.Fatal("SUP-2 at 0.20 utilization should not be a bottleneck")
	}
}

func TestBottlenecksFilter(t *testing.T) {
	loads, err := Compute(testModel(), testConfig(), scenario.DefaultParameters(), nil)
	if err != nil {
		t.Fatal(err)
	}
	hot := Bottlenecks(loads)
	if len(hot) != 1 || hot[0].ID != "SUP-1" {
		t.Fatalf("expected only SUP-1 flagged, got %v", hot)
	}
}

func TestComputeDemandMultiplier(t *testing.T) {
	params := scenario.DefaultParameters()
	params.DemandMultiplier = 2

	loads, err := Compute(testModel(), testConfig(), params, nil)
	if err != nil {
		t.Fatal(err)
	}
	if loads[0].Load != 1800 {
		t.Fatalf("SUP-1 load with doubled demand: got %d, want 1800", loads[0].Load)
	}
	// 1800/1000 = 1.8: over capacity still reports, just flagged.
	if !loads[0].Bottleneck {
		t.Fatal("overloaded site must be flagged")
	}
}

func TestComputeRejectsInvalidConfiguration(t *testing.T) {
	cfg := testConfig()
	a := cfg["LRU-1"]
	a.Assembly = "ASM-404"
	cfg["LRU-1"] = a

	if _, err := Compute(testModel(), cfg, scenario.DefaultParameters(), nil); err == nil {
		t.Fatal("expected an error for an unknown assembly id")
	}
}
