// Package simulate runs Monte Carlo robustness assessment of a fixed
// configuration under randomized demand and supplier-reliability
// perturbation. It never re-optimizes: each sample re-evaluates the same
// configuration against a perturbed network and parameters.
package simulate

import (
	"context"
	"encoding/json"
	"math"
	"sort"

	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/scenario"
	"chaincost/internal/errors"
)

// DefaultSamples is the sample count when Options.Samples is unset
const DefaultSamples = 200

// Perturbed reliability is clamped to this band
const (
	reliabilityFloor   = 0.80
	reliabilityCeiling = 0.995
)

// Options controls a simulation run
type Options struct {
	// Samples is the number of independent samples (default DefaultSamples)
	Samples int `json:"samples"`

	// DemandVolatility scales the demand shock
	DemandVolatility float64 `json:"demand_volatility"`

	// ReliabilityVolatility scales the per-supplier reliability shock
	ReliabilityVolatility float64 `json:"reliability_volatility"`

	// Seed drives the shock generator; equal seeds reproduce the run
	Seed int64 `json:"seed"`
}

// Summary aggregates a simulation run
type Summary struct {
	Samples int `json:"samples"`

	// ProbabilityMeetsTarget is the fraction of samples whose evaluation
	// met the service target (with finite cost)
	ProbabilityMeetsTarget float64 `json:"probability_meets_target"`

	// MeanCost is the arithmetic mean of sample costs. A hard-infeasible
	// sample contributes +Inf; the cliff is surfaced, not hidden.
	MeanCost float64 `json:"mean_cost"`

	// P10Cost and P90Cost are nearest-rank percentiles over the sorted
	// sample costs (index = floor(p * (N-1)))
	P10Cost float64 `json:"p10_cost"`
	P90Cost float64 `json:"p90_cost"`
}

// Cost aggregates can be +Inf when samples hit hard infeasibility; those
// fields round-trip as the JSON string "inf" like evaluate.Result does.

type summaryAlias Summary

type summaryJSON struct {
	*summaryAlias
	MeanCost jsonFloat `json:"mean_cost"`
	P10Cost  jsonFloat `json:"p10_cost"`
	P90Cost  jsonFloat `json:"p90_cost"`
}

// MarshalJSON implements json.Marshaler
func (s *Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(&summaryJSON{
		summaryAlias: (*summaryAlias)(s),
		MeanCost:     jsonFloat(s.MeanCost),
		P10Cost:      jsonFloat(s.P10Cost),
		P90Cost:      jsonFloat(s.P90Cost),
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Summary) UnmarshalJSON(data []byte) error {
	aux := summaryJSON{summaryAlias: (*summaryAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.MeanCost = float64(aux.MeanCost)
	s.P10Cost = float64(aux.P10Cost)
	s.P90Cost = float64(aux.P90Cost)
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

// Run executes the simulation. The configuration is held fixed; demand and
// reliability are perturbed independently per sample.
func Run(ctx context.Context, net *network.Model, cfg scenario.Configuration, params scenario.Parameters, overrides scenario.Overrides, opts Options) (*Summary, error) {
	samples := opts.Samples
	if samples <= 0 {
		samples = DefaultSamples
	}
	if opts.DemandVolatility < 0 || opts.ReliabilityVolatility < 0 {
		return nil, errors.Input("volatility must be >= 0")
	}

	rng := network.NewRand(opts.Seed)
	costs := make([]float64, 0, samples)
	met := 0

	for i := 0; i < samples; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		perturbedParams := params
		perturbedParams.DemandMultiplier = params.DemandMultiplier * (1 + normal(rng)*opts.DemandVolatility)

		perturbedNet := perturbSuppliers(net, rng, opts.ReliabilityVolatility)

		res, err := evaluate.Evaluate(perturbedNet, cfg, perturbedParams, overrides)
		if err != nil {
			return nil, err
		}
		costs = append(costs, res.Cost)
		if res.Feasible {
			met++
		}
	}

	sort.Float64s(costs)
	sum := 0.0
	for _, c := range costs {
		sum += c
	}

	return &Summary{
		Samples:                samples,
		ProbabilityMeetsTarget: float64(met) / float64(samples),
		MeanCost:               sum / float64(samples),
		P10Cost:                costs[nearestRank(0.10, samples)],
		P90Cost:                costs[nearestRank(0.90, samples)],
	}, nil
}

// perturbSuppliers returns a copy of the network with each supplier's
// reliability shocked and clamped to [0.80, 0.995]. Only the supplier slice
// is copied; everything else in the model is shared read-only.
func perturbSuppliers(net *network.Model, rng *network.Rand, volatility float64) *network.Model {
	perturbed := *net
	perturbed.Suppliers = make([]network.Supplier, len(net.Suppliers))
	copy(perturbed.Suppliers, net.Suppliers)
	for i := range perturbed.Suppliers {
		shock := normal(rng)
		r := perturbed.Suppliers[i].Reliability + shock*volatility
		if r < reliabilityFloor {
			r = reliabilityFloor
		}
		if r > reliabilityCeiling {
			r = reliabilityCeiling
		}
		perturbed.Suppliers[i].Reliability = r
	}
	perturbed.Reindex()
	return &perturbed
}

// normal draws a standard normal via Box-Muller. A uniform draw of exactly 0
// would send the logarithm to -Inf, so such draws are resampled.
func normal(rng *network.Rand) float64 {
	u := rng.Next()
	for u == 0 {
		u = rng.Next()
	}
	v := rng.Next()
	for v == 0 {
		v = rng.Next()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

func nearestRank(percentile float64, n int) int {
	return int(math.Floor(percentile * float64(n-1)))
}
