package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/0xPuncker/network-config/internal/deploy"
	pkgconfig "github.com/0xPuncker/network-config/pkg/config"
	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type lookupOutput struct {
	ChainID     int64               `json:"chain_id"`
	Development bool                `json:"development"`
	Config      types.NetworkConfig `json:"config"`
	Plan        *deploy.Plan        `json:"plan"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("netconfig", flag.ContinueOnError)
	fs.SetOutput(stderr)

	chainID := fs.Int64("chain-id", 0, "chain id to look up")
	network := fs.String("network", "", "network name (defaults to the configured name)")
	networksPath := fs.String("networks", os.Getenv("NETWORKS_FILE"), "path to a networks override file")
	validate := fs.Bool("validate", false, "check the integrity of the network table")
	list := fs.Bool("list", false, "print every configured network")
	verbose := fs.Bool("v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	chainIDSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "chain-id" {
			chainIDSet = true
		}
	})

	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load(".env.local")
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	table, err := pkgconfig.LoadNetworks(*networksPath)
	if err != nil {
		logger.Errorf("Failed to load networks: %v", err)
		return 1
	}

	switch {
	case *validate:
		if err := networks.Validate(table); err != nil {
			for _, p := range networks.FieldErrors(err) {
				fmt.Fprintln(stderr, p.Error())
			}
			return 1
		}
		fmt.Fprintf(stdout, "ok: %d networks, development chains %v\n", table.Len(), table.DevelopmentChains())
		return 0

	case *list:
		for _, id := range table.ChainIDs() {
			cfg, _ := table.Lookup(id)
			fmt.Fprintln(stdout, networks.Summary(id, cfg))
		}
		return 0

	case chainIDSet:
		cfg, ok := table.Lookup(*chainID)
		if !ok {
			fmt.Fprintf(stderr, "chain id %d is not configured\n", *chainID)
			return 1
		}

		planner := deploy.NewPlanner(table, logger, os.Getenv("ETHERSCAN_API_KEY"), time.Minute)
		plan, err := planner.Plan(*chainID, *network)
		if err != nil {
			logger.Errorf("Failed to plan deployment: %v", err)
			return 1
		}

		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(lookupOutput{
			ChainID:     *chainID,
			Development: plan.Development,
			Config:      cfg,
			Plan:        plan,
		}); err != nil {
			logger.Errorf("Failed to encode output: %v", err)
			return 1
		}
		return 0
	}

	fs.Usage()
	return 2
}
