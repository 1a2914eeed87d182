package networks

import (
	"sort"

	"github.com/0xPuncker/network-config/pkg/types"
)

// Seed values for the mock ETH/USD aggregator deployed on development chains.
const (
	Decimals     = "18"
	InitialPrice = "200000000000000000000"
)

// Built-in deployment parameters keyed by chain id.
var networkConfig = map[int64]types.NetworkConfig{
	31337: {
		Name:             "localhost",
		EthUsdPriceFeed:  "0x9326BFA02ADD2366b30bacB125260Af641031331",
		GasLane:          "0xd89b2bf150e3b9e13446986e571fb9cab24b13cea0a43ea20a6049a85cc807cc", // 30 gwei
		MintFee:          "10000000000000000",                                                  // 0.01 ETH
		CallbackGasLimit: "500000",
	},
	4: {
		Name:             "rinkeby",
		VRFCoordinatorV2: "0x6168499c0cFfCaCD319c818142124B7A15E857ab",
		GasLane:          "0xd89b2bf150e3b9e13446986e571fb9cab24b13cea0a43ea20a6049a85cc807cc",
		CallbackGasLimit: "500000",
		MintFee:          "100000000000000",
		SubscriptionID:   "14422",
	},
	97: {
		Name:             "bsctest",
		VRFCoordinatorV2: "0x6A2AAd07396B36Fe02a22b33cf443582f682c82f",
		GasLane:          "0xd4bb89654db74673a187bd804519e65e3f71a52bc55f11da7601a13dcf505314",
		CallbackGasLimit: "500000",
		MintFee:          "100000000000000", // 0.0001 ETH
		SubscriptionID:   "1594",
	},
}

var developmentChains = []string{"hardhat", "localhost"}

var defaultTable = NewTable(networkConfig, developmentChains, types.MockFeedConstants{
	Decimals:     Decimals,
	InitialPrice: InitialPrice,
})

// Table is an immutable chain id -> NetworkConfig mapping together with the development
// chain names and mock feed seed. It is safe for concurrent use without locking.
type Table struct {
	entries   map[int64]types.NetworkConfig
	devChains []string
	devSet    map[string]struct{}
	mockFeed  types.MockFeedConstants
}

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// NewTable copies its arguments; later changes by the caller are not observed.
func NewTable(entries map[int64]types.NetworkConfig, devChains []string, mockFeed types.MockFeedConstants) *Table {
	t := &Table{
		entries:   make(map[int64]types.NetworkConfig, len(entries)),
		devChains: make([]string, 0, len(devChains)),
		devSet:    make(map[string]struct{}, len(devChains)),
		mockFeed:  mockFeed,
	}
	for id, cfg := range entries {
		t.entries[id] = cfg
	}
	for _, name := range devChains {
		if _, dup := t.devSet[name]; dup {
			continue
		}
		t.devSet[name] = struct{}{}
		t.devChains = append(t.devChains, name)
	}
	return t
}

func (t *Table) Lookup(chainID int64) (types.NetworkConfig, bool) {
	cfg, ok := t.entries[chainID]
	return cfg, ok
}

// LookupByName returns the first entry, in ascending chain id order, whose name matches.
func (t *Table) LookupByName(name string) (int64, types.NetworkConfig, bool) {
	for _, id := range t.ChainIDs() {
		if cfg := t.entries[id]; cfg.Name == name {
			return id, cfg, true
		}
	}
	return 0, types.NetworkConfig{}, false
}

func (t *Table) ChainIDs() []int64 {
	ids := make([]int64, 0, len(t.entries))
	for id := range t.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (t *Table) Len() int {
	return len(t.entries)
}

func (t *Table) DevelopmentChains() []string {
	out := make([]string, len(t.devChains))
	copy(out, t.devChains)
	return out
}

func (t *Table) IsDevelopmentChain(name string) bool {
	_, ok := t.devSet[name]
	return ok
}

func (t *Table) MockFeed() types.MockFeedConstants {
	return t.mockFeed
}

// Entries returns a copy of the underlying mapping.
func (t *Table) Entries() map[int64]types.NetworkConfig {
	out := make(map[int64]types.NetworkConfig, len(t.entries))
	for id, cfg := range t.entries {
		out[id] = cfg
	}
	return out
}
