// Package api - request/response types
package api

import (
	"chaincost/core/evaluate"
	"chaincost/core/network"
	"chaincost/core/optimize"
	"chaincost/core/scenario"
	"chaincost/core/sensitivity"
	"chaincost/core/simulate"
)

// NetworkRef selects the network a request runs against. The network is
// regenerated from the seed so requests stay small and reproducible.
type NetworkRef struct {
	// Seed drives deterministic generation
	Seed int64 `json:"seed"`

	// Spec sizes the network; zero value means the default spec
	Spec *network.Spec `json:"spec,omitempty"`
}

// EvaluateRequest asks for a single-configuration evaluation
type EvaluateRequest struct {
	Network       NetworkRef             `json:"network"`
	Configuration scenario.Configuration `json:"configuration"`
	Parameters    scenario.Parameters    `json:"parameters"`
	Overrides     scenario.Overrides     `json:"overrides,omitempty"`
}

// EvaluateResponse wraps the evaluation report
type EvaluateResponse struct {
	Result   *evaluate.Result `json:"result"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// OptimizeRequest asks for the best feasible configuration
type OptimizeRequest struct {
	Network    NetworkRef          `json:"network"`
	Parameters scenario.Parameters `json:"parameters"`
	Overrides  scenario.Overrides  `json:"overrides,omitempty"`
}

// OptimizeResponse wraps the solver result; Found=false means no feasible
// configuration exists
type OptimizeResponse struct {
	Result   *optimize.Result `json:"result"`
	Metadata *Metadata        `json:"metadata,omitempty"`
}

// SimulateRequest asks for a Monte Carlo robustness run of a fixed
// configuration
type SimulateRequest struct {
	Network       NetworkRef             `json:"network"`
	Configuration scenario.Configuration `json:"configuration"`
	Parameters    scenario.Parameters    `json:"parameters"`
	Overrides     scenario.Overrides     `json:"overrides,omitempty"`
	Options       simulate.Options       `json:"options"`
}

// SimulateResponse wraps the simulation summary
type SimulateResponse struct {
	Summary  *simulate.Summary `json:"summary"`
	Metadata *Metadata         `json:"metadata,omitempty"`
}

// SensitivityRequest asks for a tornado ranking
type SensitivityRequest struct {
	Network       NetworkRef             `json:"network"`
	Configuration scenario.Configuration `json:"configuration"`
	Parameters    scenario.Parameters    `json:"parameters"`
	Overrides     scenario.Overrides     `json:"overrides,omitempty"`
}

// SensitivityResponse wraps the ranked entries
type SensitivityResponse struct {
	Entries  []sensitivity.Entry `json:"entries"`
	Metadata *Metadata           `json:"metadata,omitempty"`
}

// Metadata carries execution context on every response
type Metadata struct {
	Version    string `json:"version"`
	DurationMs int64  `json:"duration_ms"`
	Seed       int64  `json:"seed"`
}

// ErrorResponse is the error envelope
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
