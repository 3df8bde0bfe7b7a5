// Package network - deterministic model generation
package network

import "fmt"

// Spec sizes a generated network
type Spec struct {
	Suppliers           int `json:"suppliers"`
	AssemblySites       int `json:"assembly_sites"`
	DistributionCenters int `json:"distribution_centers"`
	Products            int `json:"products"`
}

// DefaultSpec returns a small network tractable for the exhaustive optimizer
func DefaultSpec() Spec {
	return Spec{
		Suppliers:           4,
		AssemblySites:       3,
		DistributionCenters: 2,
		Products:            3,
	}
}

// regionNames is the fixed region roster. Region count is not part of Spec:
// regions anchor the distance table and changing their number would silently
// shift every later draw.
var regionNames = []string{
	"North America",
	"Europe",
	"East Asia",
	"South Asia",
	"Latin America",
}

// sameRegionDistance is the intra-region distance in thousand-mile units.
// Constant, not drawn, so the draw sequence covers distinct pairs only.
const sameRegionDistance = 0.25

// Generate builds the static network from a seed. Draws are consumed in a
// fixed order; do not reorder the loops below without bumping the seed
// contract, since identical seeds must keep producing bit-identical networks:
//
//  1. per region, in roster order: risk, carbon factor
//  2. per distinct region pair (i < j, index order): distance
//  3. per supplier: region pick, unit cost, lead time, reliability, capacity, tariff rate
//  4. per assembly site: region pick, labor multiplier, fixed overhead, capacity
//  5. per distribution center: region pick
//  6. per product: base demand, BOM labor hours, BOM scrap rate
func Generate(seed int64, spec Spec) *Model {
	rng := NewRand(seed)

	m := &Model{
		Seed:      seed,
		Distances: make(map[RegionPair]float64),
	}

	for i, name := range regionNames {
		m.Regions = append(m.Regions, Region{
			ID:           fmt.Sprintf("REG-%d", i+1),
			Name:         name,
			Risk:         0.05 + 0.30*rng.Next(),
			CarbonFactor: 0.8 + 0.4*rng.Next(),
		})
	}

	for i := range m.Regions {
		m.Distances[RegionPair{From: m.Regions[i].ID, To: m.Regions[i].ID}] = sameRegionDistance
		for j := i + 1; j < len(m.Regions); j++ {
			d := 0.5 + 9.5*rng.Next()
			m.Distances[RegionPair{From: m.Regions[i].ID, To: m.Regions[j].ID}] = d
			m.Distances[RegionPair{From: m.Regions[j].ID, To: m.Regions[i].ID}] = d
		}
	}

	for i := 0; i < spec.Suppliers; i++ {
		m.Suppliers = append(m.Suppliers, Supplier{
			ID:           fmt.Sprintf("SUP-%d", i+1),
			Name:         fmt.Sprintf("Supplier %d", i+1),
			Region:       m.pickRegion(rng),
			UnitCost:     40 + 160*rng.Next(),
			LeadTimeDays: 3 + 42*rng.Next(),
			Reliability:  0.86 + 0.13*rng.Next(),
			Capacity:     800 + 4200*rng.Next(),
			TariffRate:   0.12 * rng.Next(),
		})
	}

	for i := 0; i < spec.AssemblySites; i++ {
		m.AssemblySites = append(m.AssemblySites, AssemblySite{
			ID:                  fmt.Sprintf("ASM-%d", i+1),
			Name:                fmt.Sprintf("Assembly %d", i+1),
			Region:              m.pickRegion(rng),
			LaborCostMultiplier: 0.7 + 0.9*rng.Next(),
			FixedOverhead:       40000 + 160000*rng.Next(),
			Capacity:            1000 + 5000*rng.Next(),
		})
	}

	for i := 0; i < spec.DistributionCenters; i++ {
		m.DistributionCenters = append(m.DistributionCenters, DistributionCenter{
			ID:     fmt.Sprintf("DC-%d", i+1),
			Name:   fmt.Sprintf("Distribution Center %d", i+1),
			Region: m.pickRegion(rng),
		})
	}

	for i := 0; i < spec.Products; i++ {
		m.Products = append(m.Products, Product{
			ID:            fmt.Sprintf("LRU-%d", i+1),
			Name:          fmt.Sprintf("LRU %d", i+1),
			BaseDemand:    200 + 1800*rng.Next(),
			BOMLaborHours: 0.5 + 7.5*rng.Next(),
			BOMScrapRate:  0.12 * rng.Next(),
		})
	}

	m.Reindex()
	return m
}

func (m *Model) pickRegion(rng *Rand) string {
	i := int(rng.Next() * float64(len(m.Regions)))
	if i >= len(m.Regions) {
		i = len(m.Regions) - 1
	}
	return m.Regions[i].ID
}
