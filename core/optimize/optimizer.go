// Package optimize searches the configuration space for the best feasible
// configuration by objective. The local solver is an exhaustive depth-first
// enumeration: a documented correctness baseline with no pruning, tractable
// only for small catalogs.
package optimize

import (
	"context"

	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/scenario"
)

// Result is the outcome of a solve
type Result struct {
	// Configuration is the best feasible configuration found; nil when
	// Found is false
	Configuration scenario.Configuration `json:"configuration,omitempty"`

	// Evaluation is the full report for Configuration
	Evaluation *evaluate.Result `json:"evaluation,omitempty"`

	// Found is false when no feasible configuration exists
	Found bool `json:"found"`

	// Explored counts complete configurations evaluated
	Explored int `json:"explored"`
}

// Solver is the strategy contract. Implementations map (network, parameters,
// overrides) to a configuration-or-none result; callers get the same shape
// whether the local search or a delegated solver ran.
type Solver interface {
	Solve(ctx context.Context, net *network.Model, params scenario.Parameters, overrides scenario.Overrides) (*Result, error)
}

// Exhaustive is the local brute-force solver
type Exhaustive struct{}

// NewExhaustive returns the local exhaustive solver
func NewExhaustive() *Exhaustive {
	return &Exhaustive{}
}

// Solve enumerates, for each product in fixed order, every supplier x
// assembly x distribution center x supplier-leg mode x dc-leg mode tuple, and
// evaluates each complete configuration. The best feasible configuration by
// strictly lower objective wins; ties keep the first found in enumeration
// order. Complexity is O((|S| * |A| * |D| * 9)^|P|).
func (e *Exhaustive) Solve(ctx context.Context, net *network.Model, params scenario.Parameters, overrides scenario.Overrides) (*Result, error) {
	s := &search{
		ctx:       ctx,
		net:       net,
		params:    params,
		overrides: overrides,
		partial:   make(scenario.Configuration, len(net.Products)),
		result:    &Result{},
	}
	if err := s.descend(0); err != nil {
		return nil, err
	}
	return s.result, nil
}

type search struct {
	ctx       context.Context
	net       *network.Model
	params    scenario.Parameters
	overrides scenario.Overrides

	partial scenario.Configuration
	result  *Result
}

func (s *search) descend(depth int) error {
	if depth == len(s.net.Products) {
		return s.evaluateComplete()
	}
	productID := s.net.Products[depth].ID
	for _, sup := range s.net.Suppliers {
		for _, asm := range s.net.AssemblySites {
			for _, dc := range s.net.DistributionCenters {
				for _, supMode := range network.ModeOrder {
					for _, dcMode := range network.ModeOrder {
						s.partial[productID] = scenario.Assignment{
							Supplier:           sup.ID,
							Assembly:           asm.ID,
							DistributionCenter: dc.ID,
							SupplierLegMode:    supMode,
							DCLegMode:          dcMode,
						}
						if err := s.descend(depth + 1); err != nil {
							return err
						}
					}
				}
			}
		}
	}
	delete(s.partial, productID)
	return nil
}

func (s *search) evaluateComplete() error {
	if err := s.ctx.Err(); err != nil {
		return err
	}
	res, err := evaluate.Evaluate(s.net, s.partial, s.params, s.overrides)
	if err != nil {
		return err
	}
	s.result.Explored++
	if !res.Feasible {
		return nil
	}
	if !s.result.Found || res.Objective < s.result.Evaluation.Objective {
		s.result.Found = true
		s.result.Configuration = s.partial.Clone()
		s.result.Evaluation = res
	}
	return nil
}
