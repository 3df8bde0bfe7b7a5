// Package optimize - solver fallback strategy
package optimize

import (
	"context"

	"go.uber.org/zap"

	"chaincost/core/network"
	"chaincost/core/scenario"
	"chaincost/internal/logging"
)

// Fallback runs a primary solver (typically a remote delegate) and falls back
// to a secondary on any failure. The fallback is deterministic and non-fatal:
// the caller always receives a configuration-or-none result, never a solver
// transport error, and the previous in-memory configuration is untouched
// until a result is returned (apply-or-keep-previous is the caller's side of
// the contract).
type Fallback struct {
	primary   Solver
	secondary Solver
}

// NewFallback wires a primary solver with a secondary fallback
func NewFallback(primary, secondary Solver) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// Solve tries the primary solver first. Any error from it (transport failure,
// timeout, malformed response) is logged and answered by the secondary.
func (f *Fallback) Solve(ctx context.Context, net *network.Model, params scenario.Parameters, overrides scenario.Overrides) (*Result, error) {
	if f.primary != nil {
		res, err := f.primary.Solve(ctx, net, params, overrides)
		if err == nil {
			return res, nil
		}
		if ctx.Err() != nil {
			// Caller cancellation is not a solver failure.
			return nil, ctx.Err()
		}
		logging.Warn("primary solver failed, falling back to local search", zap.Error(err))
	}
	return f.secondary.Solve(ctx, net, params, overrides)
}
