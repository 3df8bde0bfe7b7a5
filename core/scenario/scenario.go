// Package scenario defines the value inputs to the engine: the configuration
// (per-product assignment), the evaluation parameters, and sparse product
// overrides. All types are plain values; the engine never mutates them.
package scenario

import (
	"chaincost/core/network"
	"chaincost/internal/errors"
)

// Assignment routes one product through the network
type Assignment struct {
	// Supplier is the supplier id
	Supplier string `json:"supplier"`

	// Assembly is the assembly site id
	Assembly string `json:"assembly"`

	// DistributionCenter is the distribution center id
	DistributionCenter string `json:"dc"`

	// SupplierLegMode is the transport mode supplier -> assembly
	SupplierLegMode network.Mode `json:"supplier_leg_mode"`

	// DCLegMode is the transport mode assembly -> dc
	DCLegMode network.Mode `json:"dc_leg_mode"`
}

// Configuration assigns every product to exactly one routing tuple, keyed by
// product id. It must be complete: evaluation rejects a configuration that
// misses a product or references an unknown node id.
type Configuration map[string]Assignment

// Validate checks completeness and that every referenced id exists in the
// network. A reference to a missing id is a caller error, never a silent
// default, since ignoring it would corrupt load aggregation.
func (c Configuration) Validate(net *network.Model) error {
	for _, p := range net.Products {
		a, ok := c[p.ID]
		if !ok {
			return errors.Input("configuration missing product: " + p.ID)
		}
		if _, ok := net.SupplierByID(a.Supplier); !ok {
			return errors.InvalidReference("supplier", a.Supplier, p.ID)
		}
		if _, ok := net.AssemblyByID(a.Assembly); !ok {
			return errors.InvalidReference("assembly site", a.Assembly, p.ID)
		}
		if _, ok := net.DistributionCenterByID(a.DistributionCenter); !ok {
			return errors.InvalidReference("distribution center", a.DistributionCenter, p.ID)
		}
		if !a.SupplierLegMode.Valid() {
			return errors.InvalidReference("transport mode", string(a.SupplierLegMode), p.ID)
		}
		if !a.DCLegMode.Valid() {
			return errors.InvalidReference("transport mode", string(a.DCLegMode), p.ID)
		}
	}
	return nil
}

// Clone returns an independent copy
func (c Configuration) Clone() Configuration {
	out := make(Configuration, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// ProductOverride overrides any subset of a product's demand/BOM fields.
// Nil fields fall back to the base product.
type ProductOverride struct {
	BaseDemand    *float64 `json:"base_demand,omitempty"`
	BOMLaborHours *float64 `json:"bom_labor_hours,omitempty"`
	BOMScrapRate  *float64 `json:"bom_scrap_rate,omitempty"`
}

// Overrides is a sparse override map keyed by product id
type Overrides map[string]ProductOverride

// Effective merges a base product with its override, field by field,
// producing the fully-resolved product every calculation works from.
func Effective(base network.Product, overrides Overrides) network.Product {
	o, ok := overrides[base.ID]
	if !ok {
		return base
	}
	if o.BaseDemand != nil {
		base.BaseDemand = *o.BaseDemand
	}
	if o.BOMLaborHours != nil {
		base.BOMLaborHours = *o.BOMLaborHours
	}
	if o.BOMScrapRate != nil {
		base.BOMScrapRate = *o.BOMScrapRate
	}
	return base
}

// Parameters are the evaluation levers
type Parameters struct {
	// ServiceTarget is the minimum acceptable service level in (0, 1)
	ServiceTarget float64 `json:"service_target"`

	// LaborRate is the assembly labor rate per hour, > 0
	LaborRate float64 `json:"labor_rate"`

	// TariffMultiplier scales supplier tariff rates, > 0
	TariffMultiplier float64 `json:"tariff_multiplier"`

	// CarbonPrice is the cost per kg CO2, >= 0
	CarbonPrice float64 `json:"carbon_price"`

	// InventoryCarryPct is the inventory carrying fraction in [0, 1)
	InventoryCarryPct float64 `json:"inventory_carry_pct"`

	// RiskWeight weights the risk index in the objective, >= 0
	RiskWeight float64 `json:"risk_weight"`

	// DemandMultiplier scales every product's base demand, > 0
	DemandMultiplier float64 `json:"demand_multiplier"`

	// AllowOverflow selects soft penalties instead of hard infeasibility
	// when a site's load exceeds its capacity
	AllowOverflow bool `json:"allow_overflow"`
}

// DefaultParameters returns the baseline operating point
func DefaultParameters() Parameters {
	return Parameters{
		ServiceTarget:     0.90,
		LaborRate:         75,
		TariffMultiplier:  1.0,
		CarbonPrice:       0.02,
		InventoryCarryPct: 0.10,
		RiskWeight:        0.4,
		DemandMultiplier:  1.0,
		AllowOverflow:     true,
	}
}

// Validate rejects parameters outside their documented ranges
func (p Parameters) Validate() error {
	switch {
	case p.ServiceTarget <= 0 || p.ServiceTarget >= 1:
		return errors.Input("serviceTarget must be in (0, 1)")
	case p.LaborRate <= 0:
		return errors.Input("laborRate must be > 0")
	case p.TariffMultiplier <= 0:
		return errors.Input("tariffMultiplier must be > 0")
	case p.CarbonPrice < 0:
		return errors.Input("carbonPrice must be >= 0")
	case p.InventoryCarryPct < 0 || p.InventoryCarryPct >= 1:
		return errors.Input("inventoryCarryPct must be in [0, 1)")
	case p.RiskWeight < 0:
		return errors.Input("riskWeight must be >= 0")
	case p.DemandMultiplier <= 0:
		return errors.Input("demandMultiplier must be > 0")
	}
	return nil
}
