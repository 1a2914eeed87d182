package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/0xPuncker/network-config/pkg/types"
	"gopkg.in/yaml.v3"
)

// NetworksFile is the layout of a networks override file.
type NetworksFile struct {
	Networks          map[int64]types.NetworkConfig `yaml:"networks"`
	DevelopmentChains []string                      `yaml:"development_chains"`
	MockFeed          *types.MockFeedConstants      `yaml:"mock_feed"`
}

// LoadNetworks overlays the file at configPath onto the built-in table. Entries replace
// built-in ones by chain id; omitted development chains and mock feed values are kept.
// An empty path yields the built-in table.
func LoadNetworks(configPath string) (*networks.Table, error) {
	base := networks.Default()
	if configPath == "" {
		return base, nil
	}

	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read networks file: %w", err)
	}

	var file NetworksFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse networks file: %w", err)
	}

	return file.Overlay(base), nil
}

func (f *NetworksFile) Overlay(base *networks.Table) *networks.Table {
	entries := base.Entries()
	for id, cfg := range f.Networks {
		entries[id] = cfg
	}

	devChains := base.DevelopmentChains()
	if len(f.DevelopmentChains) > 0 {
		devChains = f.DevelopmentChains
	}

	mockFeed := base.MockFeed()
	if f.MockFeed != nil {
		if f.MockFeed.Decimals != "" {
			mockFeed.Decimals = f.MockFeed.Decimals
		}
		if f.MockFeed.InitialPrice != "" {
			mockFeed.InitialPrice = f.MockFeed.InitialPrice
		}
	}

	return networks.NewTable(entries, devChains, mockFeed)
}
