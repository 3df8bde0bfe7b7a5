// Package solver provides the remote optimizer delegate. It implements the
// optimize.Solver strategy so callers can put it in front of the local
// exhaustive search via optimize.Fallback: any transport error, non-2xx
// status, or response missing a configuration is returned as an error and
// never propagates past the fallback.
package solver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/optimize"
	"chaincost/core/scenario"
	"chaincost/internal/errors"
)

// DefaultTimeout bounds a remote solve when no timeout is configured
const DefaultTimeout = 10 * time.Second

// Remote delegates solving to an external service
type Remote struct {
	url     string
	client  *http.Client
	timeout time.Duration

	// current is the caller's present configuration, forwarded so the
	// service can warm-start; may be nil
	current scenario.Configuration
}

// NewRemote creates a remote delegate. current may be nil.
func NewRemote(url string, timeout time.Duration, current scenario.Configuration) *Remote {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Remote{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
		current: current,
	}
}

// solveRequest is the delegation payload
type solveRequest struct {
	Configuration scenario.Configuration `json:"configuration,omitempty"`
	Parameters    scenario.Parameters    `json:"parameters"`
	Overrides     scenario.Overrides     `json:"overrides,omitempty"`
	Network       *network.Model         `json:"network"`
}

// solveResponse accepts the result under either of two field names
type solveResponse struct {
	Configuration scenario.Configuration `json:"configuration"`
	Assignment    scenario.Configuration `json:"assignment"`
}

// Solve posts the problem to the remote service, validates the returned
// configuration against the network, and evaluates it locally so the caller
// gets the same Result shape as from the exhaustive solver.
func (r *Remote) Solve(ctx context.Context, net *network.Model, params scenario.Parameters, overrides scenario.Overrides) (*optimize.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	body, err := json.Marshal(solveRequest{
		Configuration: r.current,
		Parameters:    params,
		Overrides:     overrides,
		Network:       net,
	})
	if err != nil {
		return nil, errors.Solver("encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Solver("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Solver("remote solve request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Solver(fmt.Sprintf("remote solver returned status %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, errors.Solver("read response", err)
	}

	var sr solveResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, errors.Solver("decode response", err)
	}

	cfg := sr.Configuration
	if cfg == nil {
		cfg = sr.Assignment
	}
	if cfg == nil {
		return nil, errors.Solver("response missing configuration", nil)
	}

	res, err := evaluate.Evaluate(net, cfg, params, overrides)
	if err != nil {
		return nil, errors.Solver("remote configuration rejected", err)
	}

	return &optimize.Result{
		Configuration: cfg,
		Evaluation:    res,
		Found:         true,
		Explored:      0,
	}, nil
}
