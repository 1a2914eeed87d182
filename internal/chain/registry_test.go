package chain

import (
	"io"
	"testing"

	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewRegistry(networks.Default(), logger)
}

func TestRegistry_GetNetwork(t *testing.T) {
	tests := []struct {
		name          string
		chainID       int64
		expectedName  string
		expectedDev   bool
		expectedError bool
	}{
		{name: "development chain", chainID: 31337, expectedName: "localhost", expectedDev: true},
		{name: "public testnet", chainID: 4, expectedName: "rinkeby"},
		{name: "unknown chain", chainID: 1, expectedError: true},
	}

	registry := newTestRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network, err := registry.GetNetwork(tt.chainID)
			if tt.expectedError {
				assert.ErrorIs(t, err, ErrNetworkNotFound)
				assert.Nil(t, network)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.chainID, network.ChainID)
			assert.Equal(t, tt.expectedName, network.Name)
			assert.Equal(t, tt.expectedDev, network.Development)
		})
	}
}

func TestRegistry_GetNetworkByName(t *testing.T) {
	registry := newTestRegistry()

	network, err := registry.GetNetworkByName("bsctest")
	require.NoError(t, err)
	assert.Equal(t, int64(97), network.ChainID)

	_, err = registry.GetNetworkByName("hardhat")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}

func TestRegistry_ListNetworks(t *testing.T) {
	list := newTestRegistry().ListNetworks()
	require.Len(t, list, 3)

	var ids []int64
	for _, n := range list {
		ids = append(ids, n.ChainID)
	}
	assert.Equal(t, []int64{4, 97, 31337}, ids)
}

func TestRegistry_DevelopmentAndMockFeed(t *testing.T) {
	registry := newTestRegistry()

	assert.True(t, registry.IsDevelopmentChain("hardhat"))
	assert.False(t, registry.IsDevelopmentChain("bsctest"))
	assert.Equal(t, []string{"hardhat", "localhost"}, registry.DevelopmentChains())
	assert.Equal(t, types.MockFeedConstants{Decimals: "18", InitialPrice: "200000000000000000000"}, registry.MockFeed())
}

func TestNewRegistry_NilTableUsesDefault(t *testing.T) {
	registry := NewRegistry(nil, logrus.New())
	assert.Same(t, networks.Default(), registry.Table())
}
