package types

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
)

// ErrFieldNotSet is returned by the typed accessors when the field is absent for the network.
var ErrFieldNotSet = errors.New("field not set")

// NetworkRegistry is the read surface shared by the HTTP handlers, the audit job and the notifiers.
type NetworkRegistry interface {
	GetNetwork(chainID int64) (*Network, error)
	GetNetworkByName(name string) (*Network, error)
	ListNetworks() []Network
	IsDevelopmentChain(name string) bool
	DevelopmentChains() []string
	MockFeed() MockFeedConstants
}

// NetworkConfig holds the deployment parameters of one chain. Every field is optional;
// an empty string means the value is not configured for that chain.
type NetworkConfig struct {
	Name             string `yaml:"name" json:"name"`
	EthUsdPriceFeed  string `yaml:"ethUsdPriceFeed,omitempty" json:"ethUsdPriceFeed,omitempty"`
	VRFCoordinatorV2 string `yaml:"vrfCoordinatorV2,omitempty" json:"vrfCoordinatorV2,omitempty"`
	GasLane          string `yaml:"gasLane,omitempty" json:"gasLane,omitempty"`
	MintFee          string `yaml:"mintFee,omitempty" json:"mintFee,omitempty"`
	CallbackGasLimit string `yaml:"callbackGasLimit,omitempty" json:"callbackGasLimit,omitempty"`
	SubscriptionID   string `yaml:"subscriptionId,omitempty" json:"subscriptionId,omitempty"`
}

// Network is a NetworkConfig paired with the chain id it is registered under.
type Network struct {
	ChainID     int64 `json:"chain_id"`
	Development bool  `json:"development"`
	NetworkConfig
}

func (c NetworkConfig) HasPriceFeed() bool {
	return strings.TrimSpace(c.EthUsdPriceFeed) != ""
}

func (c NetworkConfig) HasVRFCoordinator() bool {
	return strings.TrimSpace(c.VRFCoordinatorV2) != ""
}

func (c NetworkConfig) HasSubscription() bool {
	return strings.TrimSpace(c.SubscriptionID) != ""
}

// PriceFeedAddress reports the ETH/USD aggregator address. ok is false when none is configured.
func (c NetworkConfig) PriceFeedAddress() (addr common.Address, ok bool, err error) {
	return parseAddress("ethUsdPriceFeed", c.EthUsdPriceFeed)
}

// VRFCoordinatorAddress reports the VRF coordinator v2 address. ok is false when none is configured.
func (c NetworkConfig) VRFCoordinatorAddress() (addr common.Address, ok bool, err error) {
	return parseAddress("vrfCoordinatorV2", c.VRFCoordinatorV2)
}

// GasLaneHash decodes the key hash selecting the VRF gas lane.
func (c NetworkConfig) GasLaneHash() (common.Hash, error) {
	raw := strings.TrimSpace(c.GasLane)
	if raw == "" {
		return common.Hash{}, fmt.Errorf("gasLane: %w", ErrFieldNotSet)
	}
	b, err := hexutil.Decode(raw)
	if err != nil {
		return common.Hash{}, fmt.Errorf("gasLane %q: %w", raw, err)
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("gasLane %q: expected %d bytes, got %d", raw, common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

// MintFeeWei parses the mint fee, denominated in wei.
func (c NetworkConfig) MintFeeWei() (*big.Int, error) {
	return ParseAmount("mintFee", c.MintFee)
}

func (c NetworkConfig) CallbackGasLimitValue() (uint64, error) {
	return parseUint("callbackGasLimit", c.CallbackGasLimit)
}

func (c NetworkConfig) SubscriptionIDValue() (uint64, error) {
	return parseUint("subscriptionId", c.SubscriptionID)
}

// MockFeedConstants seed the mock price aggregator deployed on development chains.
type MockFeedConstants struct {
	Decimals     string `yaml:"decimals" json:"decimals"`
	InitialPrice string `yaml:"initial_price" json:"initial_price"`
}

func (m MockFeedConstants) DecimalsValue() (uint8, error) {
	v, err := parseUint("decimals", m.Decimals)
	if err != nil {
		return 0, err
	}
	if v > 255 {
		return 0, fmt.Errorf("decimals %d does not fit in uint8", v)
	}
	return uint8(v), nil
}

func (m MockFeedConstants) InitialPriceValue() (*big.Int, error) {
	return ParseAmount("initial_price", m.InitialPrice)
}

// ParseAmount parses a non-negative base-10 integer of up to 256 bits.
func ParseAmount(field, raw string) (*big.Int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%s: %w", field, ErrFieldNotSet)
	}
	if !isDecimal(raw) {
		return nil, fmt.Errorf("%s %q: not a non-negative integer", field, raw)
	}
	v, ok := math.ParseBig256(raw)
	if !ok {
		return nil, fmt.Errorf("%s %q: out of range", field, raw)
	}
	return v, nil
}

func parseUint(field, raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s: %w", field, ErrFieldNotSet)
	}
	if !isDecimal(raw) {
		return 0, fmt.Errorf("%s %q: not a non-negative integer", field, raw)
	}
	v, ok := math.ParseUint64(raw)
	if !ok {
		return 0, fmt.Errorf("%s %q: out of range", field, raw)
	}
	return v, nil
}

// Addresses are trimmed before parsing: some configured values carry stray whitespace.
func parseAddress(field, raw string) (common.Address, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return common.Address{}, false, nil
	}
	if !common.IsHexAddress(raw) {
		return common.Address{}, true, fmt.Errorf("%s %q: not a hex address", field, raw)
	}
	return common.HexToAddress(raw), true, nil
}

func isDecimal(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
