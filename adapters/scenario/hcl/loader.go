// Package hcl loads scenario definition files. Scenarios are HCL so they can
// live in review-friendly text form next to the configuration they describe:
//
//	scenario "baseline" {
//	  parameters {
//	    service_target = 0.92
//	    allow_overflow = true
//	  }
//
//	  override "LRU-1" {
//	    base_demand = 1400
//	  }
//
//	  assign "LRU-1" {
//	    supplier      = "SUP-2"
//	    assembly      = "ASM-1"
//	    dc            = "DC-1"
//	    supplier_mode = "ocean"
//	    dc_mode       = "ground"
//	  }
//	}
//
// Unset parameters fall back to scenario.DefaultParameters; unset leg modes
// default to ground.
package hcl

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"chaincost/core/network"
	"chaincost/core/scenario"
	"chaincost/internal/errors"
)

// Scenario is one fully-resolved scenario from a file
type Scenario struct {
	Name          string
	Parameters    scenario.Parameters
	Configuration scenario.Configuration
	Overrides     scenario.Overrides
}

type fileRoot struct {
	Scenarios []scenarioBlock `hcl:"scenario,block"`
}

type scenarioBlock struct {
	Name       string           `hcl:"name,label"`
	Parameters *parametersBlock `hcl:"parameters,block"`
	Assigns    []assignBlock    `hcl:"assign,block"`
	Overrides  []overrideBlock  `hcl:"override,block"`
}

type parametersBlock struct {
	ServiceTarget     *float64 `hcl:"service_target"`
	LaborRate         *float64 `hcl:"labor_rate"`
	TariffMultiplier  *float64 `hcl:"tariff_multiplier"`
	CarbonPrice       *float64 `hcl:"carbon_price"`
	InventoryCarryPct *float64 `hcl:"inventory_carry_pct"`
	RiskWeight        *float64 `hcl:"risk_weight"`
	DemandMultiplier  *float64 `hcl:"demand_multiplier"`
	AllowOverflow     *bool    `hcl:"allow_overflow"`
}

type assignBlock struct {
	Product      string  `hcl:"product,label"`
	Supplier     string  `hcl:"supplier"`
	Assembly     string  `hcl:"assembly"`
	DC           string  `hcl:"dc"`
	SupplierMode *string `hcl:"supplier_mode"`
	DCMode       *string `hcl:"dc_mode"`
}

type overrideBlock struct {
	Product       string   `hcl:"product,label"`
	BaseDemand    *float64 `hcl:"base_demand"`
	BOMLaborHours *float64 `hcl:"bom_labor_hours"`
	BOMScrapRate  *float64 `hcl:"bom_scrap_rate"`
}

// LoadFile parses one scenario file
func LoadFile(path string) ([]Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Parsing("parse "+path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, errors.Parsing("decode "+path, diags)
	}

	scenarios := make([]Scenario, 0, len(root.Scenarios))
	for _, sb := range root.Scenarios {
		s, err := resolve(sb)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// LoadDir parses every *.hcl file in a directory, in name order
func LoadDir(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Parsing("read scenario directory", err)
	}
	var out []Scenario
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".hcl") {
			continue
		}
		scenarios, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, scenarios...)
	}
	return out, nil
}

func resolve(sb scenarioBlock) (Scenario, error) {
	s := Scenario{
		Name:          sb.Name,
		Parameters:    scenario.DefaultParameters(),
		Configuration: make(scenario.Configuration, len(sb.Assigns)),
		Overrides:     make(scenario.Overrides, len(sb.Overrides)),
	}

	if p := sb.Parameters; p != nil {
		setIf(&s.Parameters.ServiceTarget, p.ServiceTarget)
		setIf(&s.Parameters.LaborRate, p.LaborRate)
		setIf(&s.Parameters.TariffMultiplier, p.TariffMultiplier)
		setIf(&s.Parameters.CarbonPrice, p.CarbonPrice)
		setIf(&s.Parameters.InventoryCarryPct, p.InventoryCarryPct)
		setIf(&s.Parameters.RiskWeight, p.RiskWeight)
		setIf(&s.Parameters.DemandMultiplier, p.DemandMultiplier)
		if p.AllowOverflow != nil {
			s.Parameters.AllowOverflow = *p.AllowOverflow
		}
	}
	if err := s.Parameters.Validate(); err != nil {
		return Scenario{}, err
	}

	for _, a := range sb.Assigns {
		if _, dup := s.Configuration[a.Product]; dup {
			return Scenario{}, errors.Input("duplicate assign block for product: " + a.Product)
		}
		supplierMode, err := parseMode(a.SupplierMode, a.Product)
		if err != nil {
			return Scenario{}, err
		}
		dcMode, err := parseMode(a.DCMode, a.Product)
		if err != nil {
			return Scenario{}, err
		}
		s.Configuration[a.Product] = scenario.Assignment{
			Supplier:           a.Supplier,
			Assembly:           a.Assembly,
			DistributionCenter: a.DC,
			SupplierLegMode:    supplierMode,
			DCLegMode:          dcMode,
		}
	}

	for _, o := range sb.Overrides {
		if _, dup := s.Overrides[o.Product]; dup {
			return Scenario{}, errors.Input("duplicate override block for product: " + o.Product)
		}
		s.Overrides[o.Product] = scenario.ProductOverride{
			BaseDemand:    o.BaseDemand,
			BOMLaborHours: o.BOMLaborHours,
			BOMScrapRate:  o.BOMScrapRate,
		}
	}

	return s, nil
}

func parseMode(raw *string, product string) (network.Mode, error) {
	if raw == nil || *raw == "" {
		return network.ModeGround, nil
	}
	m := network.Mode(*raw)
	if !m.Valid() {
		return "", errors.Input("unknown transport mode " + *raw + " for product " + product)
	}
	return m, nil
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
