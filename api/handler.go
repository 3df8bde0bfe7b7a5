// Package api - engine orchestration
package api

import (
	"context"

	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/optimize"
	"chaincost/core/sensitivity"
	"chaincost/core/simulate"
)

// Handler orchestrates engine calls for the server. It holds no mutable
// engine state: every call regenerates the network snapshot from the request
// seed and passes value inputs through.
type Handler struct {
	solver optimize.Solver
}

// NewHandler creates a handler. solver is the optimize strategy, typically
// an optimize.Fallback of remote delegate over local exhaustive search; nil
// means plain local search.
func NewHandler(solver optimize.Solver) *Handler {
	if solver == nil {
		solver = optimize.NewExhaustive()
	}
	return &Handler{solver: solver}
}

func (h *Handler) model(ref NetworkRef) *network.Model {
	spec := network.DefaultSpec()
	if ref.Spec != nil {
		spec = *ref.Spec
	}
	return network.Generate(ref.Seed, spec)
}

func (h *Handler) evaluate(_ context.Context, req *EvaluateRequest) (*evaluate.Result, error) {
	if err := req.Parameters.Validate(); err != nil {
		return nil, err
	}
	return evaluate.Evaluate(h.model(req.Network), req.Configuration, req.Parameters, req.Overrides)
}

func (h *Handler) optimize(ctx context.Context, req *OptimizeRequest) (*optimize.Result, error) {
	if err := req.Parameters.Validate(); err != nil {
		return nil, err
	}
	return h.solver.Solve(ctx, h.model(req.Network), req.Parameters, req.Overrides)
}

func (h *Handler) simulate(ctx context.Context, req *SimulateRequest) (*simulate.Summary, error) {
	if err := req.Parameters.Validate(); err != nil {
		return nil, err
	}
	return simulate.Run(ctx, h.model(req.Network), req.Configuration, req.Parameters, req.Overrides, req.Options)
}

func (h *Handler) sensitivity(ctx context.Context, req *SensitivityRequest) ([]sensitivity.Entry, error) {
	if err := req.Parameters.Validate(); err != nil {
		return nil, err
	}
	return sensitivity.Analyze(ctx, h.model(req.Network), req.Configuration, req.Parameters, req.Overrides)
}
