// Package network - static model types
package network

import (
	"fmt"
	"strings"
)

// Region is a geographic region nodes belong to
type Region struct {
	// ID uniquely identifies the region
	ID string `json:"id"`

	// Name is a human-readable label
	Name string `json:"name"`

	// Risk is the regional disruption risk in [0, 1]
	Risk float64 `json:"risk"`

	// CarbonFactor scales regional carbon intensity
	CarbonFactor float64 `json:"carbon_factor"`
}

// Supplier is a component source
type Supplier struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Region is the id of the supplier's region
	Region string `json:"region"`

	// UnitCost is the material cost per unit, > 0
	UnitCost float64 `json:"unit_cost"`

	// LeadTimeDays is the quoted lead time, >= 0
	LeadTimeDays float64 `json:"lead_time_days"`

	// Reliability is the on-spec delivery rate in (0, 1]
	Reliability float64 `json:"reliability"`

	// Capacity is units per period, > 0
	Capacity float64 `json:"capacity"`

	// TariffRate is the import tariff fraction, >= 0
	TariffRate float64 `json:"tariff_rate"`
}

// AssemblySite is a final-assembly location
type AssemblySite struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Region is the id of the site's region
	Region string `json:"region"`

	// LaborCostMultiplier scales the labor rate, > 0
	LaborCostMultiplier float64 `json:"labor_cost_multiplier"`

	// FixedOverhead is the site overhead per period, >= 0
	FixedOverhead float64 `json:"fixed_overhead"`

	// Capacity is units per period, > 0
	Capacity float64 `json:"capacity"`
}

// DistributionCenter is a downstream shipping point
type DistributionCenter struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Mode identifies a transport mode
type Mode string

const (
	ModeAir    Mode = "air"
	ModeGround Mode = "ground"
	ModeOcean  Mode = "ocean"
)

// TransportMode holds per-mode cost and carbon coefficients
type TransportMode struct {
	// CostPerTonMi is the freight cost per ton-mile
	CostPerTonMi float64 `json:"cost_per_ton_mi"`

	// LeadPenaltyDays is added to the supplier lead time (signed; air is negative)
	LeadPenaltyDays float64 `json:"lead_penalty_days"`

	// CarbonPerTonMi is kg CO2 per ton-mile
	CarbonPerTonMi float64 `json:"carbon_per_ton_mi"`
}

// Modes is the fixed transport mode enumeration. Exactly these three exist.
var Modes = map[Mode]TransportMode{
	ModeAir:    {CostPerTonMi: 1.25, LeadPenaltyDays: -10, CarbonPerTonMi: 1.1},
	ModeGround: {CostPerTonMi: 0.35, LeadPenaltyDays: 0, CarbonPerTonMi: 0.6},
	ModeOcean:  {CostPerTonMi: 0.12, LeadPenaltyDays: 15, CarbonPerTonMi: 0.15},
}

// ModeOrder is the canonical enumeration order used wherever modes are iterated
var ModeOrder = []Mode{ModeAir, ModeGround, ModeOcean}

// ModeRisk returns the discrete disruption risk of a mode
func ModeRisk(m Mode) float64 {
	switch m {
	case ModeAir:
		return 0.02
	case ModeGround:
		return 0.04
	default:
		return 0.06
	}
}

// Valid reports whether m is one of the three known modes
func (m Mode) Valid() bool {
	_, ok := Modes[m]
	return ok
}

// Product is a top-level deliverable item (LRU) whose demand drives all
// cost/service/risk computation
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// BaseDemand is units per period before the demand multiplier, > 0
	BaseDemand float64 `json:"base_demand"`

	// BOMLaborHours is assembly labor hours per unit, >= 0
	BOMLaborHours float64 `json:"bom_labor_hours"`

	// BOMScrapRate is the material scrap fraction in [0, 1)
	BOMScrapRate float64 `json:"bom_scrap_rate"`
}

// RegionPair keys the distance table
type RegionPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MarshalText lets RegionPair serve as a JSON map key ("FROM|TO")
func (p RegionPair) MarshalText() ([]byte, error) {
	return []byte(p.From + "|" + p.To), nil
}

// UnmarshalText parses the "FROM|TO" key form
func (p *RegionPair) UnmarshalText(text []byte) error {
	from, to, ok := strings.Cut(string(text), "|")
	if !ok {
		return fmt.Errorf("malformed region pair key: %q", text)
	}
	p.From, p.To = from, to
	return nil
}

// DefaultDistance is the fallback (in thousand-mile units) for a region pair
// absent from the distance table. A deliberate fallback, not an error.
const DefaultDistance = 2.0

// Model is the static supply network. It is built once and read-only
// thereafter; every engine function takes it as an immutable snapshot.
type Model struct {
	Seed int64 `json:"seed"`

	Regions             []Region             `json:"regions"`
	Suppliers           []Supplier           `json:"suppliers"`
	AssemblySites       []AssemblySite       `json:"assembly_sites"`
	DistributionCenters []DistributionCenter `json:"distribution_centers"`
	Products            []Product            `json:"products"`

	// Distances maps region pairs to thousand-mile distances
	Distances map[RegionPair]float64 `json:"distances"`

	regionIndex   map[string]int
	supplierIndex map[string]int
	assemblyIndex map[string]int
	dcIndex       map[string]int
}

// Reindex rebuilds the id lookup tables; call after constructing a Model by hand.
func (m *Model) Reindex() {
	m.regionIndex = make(map[string]int, len(m.Regions))
	for i, r := range m.Regions {
		m.regionIndex[r.ID] = i
	}
	m.supplierIndex = make(map[string]int, len(m.Suppliers))
	for i, s := range m.Suppliers {
		m.supplierIndex[s.ID] = i
	}
	m.assemblyIndex = make(map[string]int, len(m.AssemblySites))
	for i, a := range m.AssemblySites {
		m.assemblyIndex[a.ID] = i
	}
	m.dcIndex = make(map[string]int, len(m.DistributionCenters))
	for i, d := range m.DistributionCenters {
		m.dcIndex[d.ID] = i
	}
}

// RegionByID returns the region with the given id
func (m *Model) RegionByID(id string) (*Region, bool) {
	i, ok := m.regionIndex[id]
	if !ok {
		return nil, false
	}
	return &m.Regions[i], true
}

// SupplierByID returns the supplier with the given id
func (m *Model) SupplierByID(id string) (*Supplier, bool) {
	i, ok := m.supplierIndex[id]
	if !ok {
		return nil, false
	}
	return &m.Suppliers[i], true
}

// AssemblyByID returns the assembly site with the given id
func (m *Model) AssemblyByID(id string) (*AssemblySite, bool) {
	i, ok := m.assemblyIndex[id]
	if !ok {
		return nil, false
	}
	return &m.AssemblySites[i], true
}

// DistributionCenterByID returns the distribution center with the given id
func (m *Model) DistributionCenterByID(id string) (*DistributionCenter, bool) {
	i, ok := m.dcIndex[id]
	if !ok {
		return nil, false
	}
	return &m.DistributionCenters[i], true
}

// Distance returns the distance between two regions in thousand-mile units.
// The second return reports whether the pair was present; on a miss the
// caller gets DefaultDistance.
func (m *Model) Distance(from, to string) (float64, bool) {
	if d, ok := m.Distances[RegionPair{From: from, To: to}]; ok {
		return d, true
	}
	return DefaultDistance, false
}
