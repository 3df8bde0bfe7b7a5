package scenario

import (
	"testing"

	"chaincost/core/network"
	"chaincost/internal/errors"
)

func validationModel() *network.Model {
	m := &network.Model{
		Regions: []network.Region{
			{ID: "REG-1", Name: "North America", Risk: 0.1, CarbonFactor: 1.0},
		},
		Suppliers: []network.Supplier{
			{ID: "SUP-1", Region: "REG-1", UnitCost: 100, Reliability: 0.95, Capacity: 1000},
		},
		AssemblySites: []network.AssemblySite{
			{ID: "ASM-1", Region: "REG-1", LaborCostMultiplier: 1, Capacity: 1000},
		},
		DistributionCenters: []network.DistributionCenter{
			{ID: "DC-1", Region: "REG-1"},
		},
		Products: []network.Product{
			{ID: "LRU-1", BaseDemand: 100, BOMLaborHours: 1},
		},
	}
	m.Reindex()
	return m
}

func validConfiguration() Configuration {
	return Configuration{
		"LRU-1": {Supplier: "SUP-1", Assembly: "ASM-1", DistributionCenter: "DC-1",
			SupplierLegMode: network.ModeGround, DCLegMode: network.ModeGround},
	}
}

func TestConfigurationValidate(t *testing.T) {
	net := validationModel()

	if err := validConfiguration().Validate(net); err != nil {
		t.Fatalf("valid configuration rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Configuration)
	}{
		{"missing product", func(c Configuration) { delete(c, "LRU-1") }},
		{"unknown supplier", func(c Configuration) {
			a := c["LRU-1"]
			a.Supplier = "SUP-404"
			c["LRU-1"] = a
		}},
		{"unknown assembly", func(c Configuration) {
			a := c["LRU-1"]
			a.Assembly = "ASM-404"
			c["LRU-1"] = a
		}},
		{"unknown dc", func(c Configuration) {
			a := c["LRU-1"]
			a.DistributionCenter = "DC-404"
			c["LRU-1"] = a
		}},
		{"unknown mode", func(c Configuration) {
			a := c["LRU-1"]
			a.SupplierLegMode = network.Mode("teleport")
			c["LRU-1"] = a
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfiguration()
			tt.mutate(cfg)
			if err := cfg.Validate(net); err == nil {
				t.Fatal("expected a validation error")
			}
		})
	}
}

func TestConfigurationCloneIndependence(t *testing.T) {
	orig := validConfiguration()
	cp := orig.Clone()

	a := cp["LRU-1"]
	a.Supplier = "SUP-2"
	cp["LRU-1"] = a

	if orig["LRU-1"].Supplier != "SUP-1" {
		t.Fatal("clone shares storage with the original")
	}
}

func TestEffectiveMerge(t *testing.T) {
	base := network.Product{ID: "LRU-1", BaseDemand: 100, BOMLaborHours: 2, BOMScrapRate: 0.05}

	if got := Effective(base, nil); got != base {
		t.Fatal("nil overrides must pass the base through")
	}

	demand := 250.0
	got := Effective(base, Overrides{"LRU-1": {BaseDemand: &demand}})
	if got.BaseDemand != 250 {
		t.Fatalf("demand override: got %v", got.BaseDemand)
	}
	if got.BOMLaborHours != 2 || got.BOMScrapRate != 0.05 {
		t.Fatalf("untouched fields changed: %+v", got)
	}

	// Overrides for other products are ignored.
	other := Effective(base, Overrides{"LRU-9": {BaseDemand: &demand}})
	if other != base {
		t.Fatal("override for a different product leaked")
	}
}

func TestParametersValidate(t *testing.T) {
	if err := DefaultParameters().Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"service target zero", func(p *Parameters) { p.ServiceTarget = 0 }},
		{"service target one", func(p *Parameters) { p.ServiceTarget = 1 }},
		{"labor rate zero", func(p *Parameters) { p.LaborRate = 0 }},
		{"tariff multiplier negative", func(p *Parameters) { p.TariffMultiplier = -1 }},
		{"carbon price negative", func(p *Parameters) { p.CarbonPrice = -0.01 }},
		{"inventory carry full", func(p *Parameters) { p.InventoryCarryPct = 1 }},
		{"risk weight negative", func(p *Parameters) { p.RiskWeight = -0.1 }},
		{"demand multiplier zero", func(p *Parameters) { p.DemandMultiplier = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !errors.IsType(err, errors.TypeInput) {
				t.Fatalf("expected an input error, got %v", err)
			}
		})
	}
}
