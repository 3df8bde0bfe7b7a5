// Package cmd provides the CLI commands for chaincost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"chaincost/internal/config"
	"chaincost/internal/logging"
)

var (
	cfgFile string
	verbose bool

	// shared flags across engine commands
	seed         int64
	outputFormat string
	scenarioFile string
	scenarioName string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chaincost",
	Short: "Evaluate and optimize supply network configurations",
	Long: `chaincost estimates annualized cost, service level, carbon output, and
risk for discrete configurations of a multi-tier supply network
(suppliers -> assembly sites -> distribution centers), and searches for
near-optimal configurations under capacity and service constraints.

Networks are generated deterministically from a seed, so results are
reproducible and shareable. Scenarios live in HCL files.

Examples:
  chaincost evaluate --seed 42 --scenario baseline.hcl
  chaincost optimize --seed 42
  chaincost simulate --seed 42 --scenario baseline.hcl --samples 500
  chaincost sensitivity --seed 42 --scenario baseline.hcl`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.chaincost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 42, "network generation seed")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "cli", "output format (cli, json)")

	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(sensitivityCmd)
	rootCmd.AddCommand(networkCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chaincost version 0.1.0")
	},
}
