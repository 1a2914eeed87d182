package networks

import (
	"math/big"
	"sync"
	"testing"

	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Entries(t *testing.T) {
	table := Default()

	assert.Equal(t, []int64{4, 97, 31337}, table.ChainIDs())
	assert.Equal(t, 3, table.Len())

	tests := []struct {
		chainID          int64
		name             string
		hasPriceFeed     bool
		hasVRF           bool
		subscriptionID   string
		mintFee          string
		callbackGasLimit string
	}{
		{chainID: 31337, name: "localhost", hasPriceFeed: true, mintFee: "10000000000000000", callbackGasLimit: "500000"},
		{chainID: 4, name: "rinkeby", hasVRF: true, subscriptionID: "14422", mintFee: "100000000000000", callbackGasLimit: "500000"},
		{chainID: 97, name: "bsctest", hasVRF: true, subscriptionID: "1594", mintFee: "100000000000000", callbackGasLimit: "500000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, ok := table.Lookup(tt.chainID)
			require.True(t, ok)
			assert.Equal(t, tt.name, cfg.Name)
			assert.Equal(t, tt.hasPriceFeed, cfg.HasPriceFeed())
			assert.Equal(t, tt.hasVRF, cfg.HasVRFCoordinator())
			assert.Equal(t, tt.subscriptionID, cfg.SubscriptionID)
			assert.Equal(t, tt.mintFee, cfg.MintFee)
			assert.Equal(t, tt.callbackGasLimit, cfg.CallbackGasLimit)
		})
	}
}

func TestDefault_NamesNonEmpty(t *testing.T) {
	table := Default()
	for _, id := range table.ChainIDs() {
		cfg, _ := table.Lookup(id)
		assert.NotEmpty(t, cfg.Name, "chain %d has no name", id)
	}
}

func TestDefault_NumericFieldsParse(t *testing.T) {
	table := Default()
	for _, id := range table.ChainIDs() {
		cfg, _ := table.Lookup(id)
		if cfg.MintFee != "" {
			fee, err := cfg.MintFeeWei()
			require.NoError(t, err, "chain %d", id)
			assert.GreaterOrEqual(t, fee.Sign(), 0)
		}
		if cfg.CallbackGasLimit != "" {
			_, err := cfg.CallbackGasLimitValue()
			require.NoError(t, err, "chain %d", id)
		}
	}
}

func TestDefault_LocalhostMintFee(t *testing.T) {
	cfg, ok := Default().Lookup(31337)
	require.True(t, ok)

	fee, err := cfg.MintFeeWei()
	require.NoError(t, err)
	assert.Equal(t, 0, fee.Cmp(big.NewInt(10000000000000000)))
}

func TestDefault_DevelopmentChains(t *testing.T) {
	table := Default()

	assert.Equal(t, []string{"hardhat", "localhost"}, table.DevelopmentChains())
	assert.True(t, table.IsDevelopmentChain("hardhat"))
	assert.True(t, table.IsDevelopmentChain("localhost"))
	assert.False(t, table.IsDevelopmentChain("rinkeby"))
	assert.False(t, table.IsDevelopmentChain(""))
}

func TestDefault_MockFeed(t *testing.T) {
	feed := Default().MockFeed()
	assert.Equal(t, Decimals, feed.Decimals)
	assert.Equal(t, InitialPrice, feed.InitialPrice)

	decimals, err := feed.DecimalsValue()
	require.NoError(t, err)
	assert.Equal(t, uint8(18), decimals)

	price, err := feed.InitialPriceValue()
	require.NoError(t, err)
	assert.Equal(t, "200000000000000000000", price.String())
}

func TestTable_LookupUnknown(t *testing.T) {
	cfg, ok := Default().Lookup(1)
	assert.False(t, ok)
	assert.Equal(t, types.NetworkConfig{}, cfg)

	_, _, ok = Default().LookupByName("mainnet")
	assert.False(t, ok)
}

func TestTable_LookupByName(t *testing.T) {
	id, cfg, ok := Default().LookupByName("bsctest")
	require.True(t, ok)
	assert.Equal(t, int64(97), id)
	assert.Equal(t, "1594", cfg.SubscriptionID)
}

func TestTable_Immutable(t *testing.T) {
	entries := map[int64]types.NetworkConfig{1: {Name: "mainnet"}}
	dev := []string{"hardhat"}
	table := NewTable(entries, dev, types.MockFeedConstants{Decimals: "8", InitialPrice: "1"})

	entries[1] = types.NetworkConfig{Name: "changed"}
	entries[2] = types.NetworkConfig{Name: "added"}
	dev[0] = "changed"

	cfg, _ := table.Lookup(1)
	assert.Equal(t, "mainnet", cfg.Name)
	assert.Equal(t, 1, table.Len())
	assert.True(t, table.IsDevelopmentChain("hardhat"))

	got := table.DevelopmentChains()
	got[0] = "mutated"
	assert.Equal(t, []string{"hardhat"}, table.DevelopmentChains())

	copied := table.Entries()
	delete(copied, 1)
	assert.Equal(t, 1, table.Len())
}

func TestNewTable_DedupesDevelopmentChains(t *testing.T) {
	table := NewTable(nil, []string{"hardhat", "localhost", "hardhat"}, types.MockFeedConstants{})
	assert.Equal(t, []string{"hardhat", "localhost"}, table.DevelopmentChains())
}

func TestTable_ConcurrentReads(t *testing.T) {
	table := Default()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range table.ChainIDs() {
				_, ok := table.Lookup(id)
				assert.True(t, ok)
			}
			table.IsDevelopmentChain("localhost")
			table.DevelopmentChains()
		}()
	}
	wg.Wait()
}
