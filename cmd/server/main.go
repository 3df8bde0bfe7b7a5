// Package main - entry point for the chaincost API server
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"chaincost/adapters/solver"
	"chaincost/adapters/storage"
	"chaincost/api"
	"chaincost/core/optimize"
	"chaincost/internal/config"
	"chaincost/internal/logging"
)

const version = "0.1.0"

func main() {
	addr := flag.String("addr", ":8080", "server address")
	cfgPath := flag.String("config", "", "config file path")
	storeDir := flag.String("store", "", "scenario store directory (empty for in-memory)")
	flag.Parse()

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}
	if err := logging.Initialize(config.Get().Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	defer logging.Sync()

	var store storage.Store
	var err error
	if *storeDir != "" {
		store, err = storage.New(storage.BackendFile, *storeDir)
	} else {
		store, err = storage.New(storage.BackendMemory, "")
	}
	if err != nil {
		logging.Error("open scenario store", zap.Error(err))
		os.Exit(1)
	}
	defer store.Close()

	handler := api.NewHandler(buildSolver())
	server := api.NewServer(version, handler, store)

	logging.Info("chaincost server listening",
		zap.String("addr", *addr),
		zap.String("version", version))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logging.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

// buildSolver wires the remote delegate, when configured, in front of the
// local exhaustive search
func buildSolver() optimize.Solver {
	local := optimize.NewExhaustive()
	sc := config.Get().Solver
	if sc.RemoteURL == "" {
		return local
	}
	timeout := time.Duration(sc.TimeoutSeconds) * time.Second
	return optimize.NewFallback(solver.NewRemote(sc.RemoteURL, timeout, nil), local)
}
