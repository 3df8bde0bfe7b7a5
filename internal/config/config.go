// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"chaincost/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Network contains network generation settings
	Network NetworkConfig `json:"network"`

	// Solver contains optimizer delegation settings
	Solver SolverConfig `json:"solver"`

	// Simulation contains Monte Carlo settings
	Simulation SimulationConfig `json:"simulation"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// NetworkConfig controls deterministic network generation
type NetworkConfig struct {
	// Seed drives the Lehmer generator; equal seeds produce identical networks
	Seed int64 `json:"seed"`

	// Suppliers is the number of suppliers to generate
	Suppliers int `json:"suppliers"`

	// AssemblySites is the number of assembly sites to generate
	AssemblySites int `json:"assembly_sites"`

	// DistributionCenters is the number of distribution centers to generate
	DistributionCenters int `json:"distribution_centers"`

	// Products is the number of products (LRUs) to generate
	Products int `json:"products"`
}

// SolverConfig controls remote optimizer delegation
type SolverConfig struct {
	// RemoteURL is the delegated solver endpoint; empty disables delegation
	RemoteURL string `json:"remote_url,omitempty"`

	// TimeoutSeconds bounds each remote solve attempt
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SimulationConfig controls Monte Carlo defaults
type SimulationConfig struct {
	// Samples is the default sample count
	Samples int `json:"samples"`

	// DemandVolatility is the default demand shock scale
	DemandVolatility float64 `json:"demand_volatility"`

	// ReliabilityVolatility is the default reliability shock scale
	ReliabilityVolatility float64 `json:"reliability_volatility"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format
	DefaultFormat string `json:"default_format"`

	// ShowBreakdown shows the per-site load/cost breakdown
	ShowBreakdown bool `json:"show_breakdown"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Network: NetworkConfig{
			Seed:                42,
			Suppliers:           4,
			AssemblySites:       3,
			DistributionCenters: 2,
			Products:            3,
		},
		Solver: SolverConfig{
			TimeoutSeconds: 10,
		},
		Simulation: SimulationConfig{
			Samples:               200,
			DemandVolatility:      0.15,
			ReliabilityVolatility: 0.02,
		},
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowBreakdown: true,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
