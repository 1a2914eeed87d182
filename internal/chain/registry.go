package chain

import (
	"errors"
	"fmt"

	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/sirupsen/logrus"
)

var ErrNetworkNotFound = errors.New("network not found")

// Registry serves the network table to the HTTP layer, jobs and notifiers.
type Registry struct {
	table  *networks.Table
	logger *logrus.Logger
}

var _ types.NetworkRegistry = (*Registry)(nil)

func NewRegistry(table *networks.Table, logger *logrus.Logger) *Registry {
	if table == nil {
		table = networks.Default()
	}
	return &Registry{
		table:  table,
		logger: logger,
	}
}

func (r *Registry) Table() *networks.Table {
	return r.table
}

func (r *Registry) GetNetwork(chainID int64) (*types.Network, error) {
	cfg, ok := r.table.Lookup(chainID)
	if !ok {
		r.logger.Debugf("No network configured for chain id %d", chainID)
		return nil, fmt.Errorf("chain id %d: %w", chainID, ErrNetworkNotFound)
	}
	return r.network(chainID, cfg), nil
}

func (r *Registry) GetNetworkByName(name string) (*types.Network, error) {
	id, cfg, ok := r.table.LookupByName(name)
	if !ok {
		r.logger.Debugf("No network configured with name %q", name)
		return nil, fmt.Errorf("network %q: %w", name, ErrNetworkNotFound)
	}
	return r.network(id, cfg), nil
}

// ListNetworks returns every configured network in ascending chain id order.
func (r *Registry) ListNetworks() []types.Network {
	ids := r.table.ChainIDs()
	out := make([]types.Network, 0, len(ids))
	for _, id := range ids {
		cfg, _ := r.table.Lookup(id)
		out = append(out, *r.network(id, cfg))
	}
	return out
}

func (r *Registry) IsDevelopmentChain(name string) bool {
	return r.table.IsDevelopmentChain(name)
}

func (r *Registry) DevelopmentChains() []string {
	return r.table.DevelopmentChains()
}

func (r *Registry) MockFeed() types.MockFeedConstants {
	return r.table.MockFeed()
}

func (r *Registry) network(id int64, cfg types.NetworkConfig) *types.Network {
	return &types.Network{
		ChainID:       id,
		Development:   r.table.IsDevelopmentChain(cfg.Name),
		NetworkConfig: cfg,
	}
}
