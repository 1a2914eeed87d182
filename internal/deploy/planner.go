package deploy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/0xPuncker/network-config/pkg/utils"
	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
)

var ErrUnknownChain = errors.New("unknown chain id")

// Constructor arguments of the VRFCoordinatorV2Mock and the amount a fresh mock
// subscription is funded with, all in the smallest LINK unit.
const (
	MockVRFBaseFee          = "250000000000000000"
	MockVRFGasPriceLink     = "1000000000"
	SubscriptionFundAmount  = "1000000000000000000000"
	DevBlockConfirmations   = 1
	ChainBlockConfirmations = 6
)

// Lookup is the part of the network table the planner reads.
type Lookup interface {
	Lookup(chainID int64) (types.NetworkConfig, bool)
	IsDevelopmentChain(name string) bool
	MockFeed() types.MockFeedConstants
}

type MockAggregatorArgs struct {
	Decimals     uint8  `json:"decimals"`
	InitialPrice string `json:"initial_answer"`
	DisplayPrice string `json:"display_price"`
}

type MockVRFArgs struct {
	BaseFee      string `json:"base_fee"`
	GasPriceLink string `json:"gas_price_link"`
}

type ContractPlan struct {
	Mock     bool                `json:"mock"`
	Address  string              `json:"address,omitempty"`
	MockFeed *MockAggregatorArgs `json:"mock_feed_args,omitempty"`
	MockVRF  *MockVRFArgs        `json:"mock_vrf_args,omitempty"`
}

type SubscriptionPlan struct {
	Create     bool   `json:"create"`
	ID         uint64 `json:"id,omitempty"`
	FundAmount string `json:"fund_amount,omitempty"`
}

// Plan describes how a deployment script should set up contracts on one network.
type Plan struct {
	ChainID            int64            `json:"chain_id"`
	Network            string           `json:"network"`
	Development        bool             `json:"development"`
	PriceFeed          ContractPlan     `json:"price_feed"`
	VRFCoordinator     ContractPlan     `json:"vrf_coordinator"`
	Subscription       SubscriptionPlan `json:"subscription"`
	GasLane            string           `json:"gas_lane,omitempty"`
	MintFeeWei         string           `json:"mint_fee_wei,omitempty"`
	MintFeeEther       string           `json:"mint_fee_ether,omitempty"`
	CallbackGasLimit   uint64           `json:"callback_gas_limit,omitempty"`
	BlockConfirmations int              `json:"block_confirmations"`
	Verify             bool             `json:"verify"`
}

// clone copies the plan together with the mock constructor arguments it points to.
func (p *Plan) clone() *Plan {
	out := *p
	if p.PriceFeed.MockFeed != nil {
		args := *p.PriceFeed.MockFeed
		out.PriceFeed.MockFeed = &args
	}
	if p.VRFCoordinator.MockVRF != nil {
		args := *p.VRFCoordinator.MockVRF
		out.VRFCoordinator.MockVRF = &args
	}
	return &out
}

type Planner struct {
	table           Lookup
	logger          *logrus.Logger
	cache           *cache.Cache
	etherscanAPIKey string
}

func NewPlanner(table Lookup, logger *logrus.Logger, etherscanAPIKey string, ttl time.Duration) *Planner {
	return &Planner{
		table:           table,
		logger:          logger,
		cache:           cache.New(ttl, 2*ttl),
		etherscanAPIKey: etherscanAPIKey,
	}
}

// Plan resolves the deployment plan for chainID. networkName selects development-chain
// behaviour; when empty the configured name of the chain is used.
func (p *Planner) Plan(chainID int64, networkName string) (*Plan, error) {
	cfg, ok := p.table.Lookup(chainID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	if networkName == "" {
		networkName = cfg.Name
	}

	key := fmt.Sprintf("%d/%s", chainID, networkName)
	if cached, found := p.cache.Get(key); found {
		return cached.(*Plan).clone(), nil
	}

	plan, err := p.build(chainID, networkName, cfg)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, plan.clone(), cache.DefaultExpiration)

	p.logger.WithFields(logrus.Fields{
		"chain_id":       chainID,
		"network":        networkName,
		"development":    plan.Development,
		"mock_feed":      plan.PriceFeed.Mock,
		"mock_vrf":       plan.VRFCoordinator.Mock,
		"mint_fee_ether": plan.MintFeeEther,
		"verify":         plan.Verify,
	}).Debug("Deployment plan resolved")

	return plan, nil
}

func (p *Planner) build(chainID int64, networkName string, cfg types.NetworkConfig) (*Plan, error) {
	dev := p.table.IsDevelopmentChain(networkName)

	plan := &Plan{
		ChainID:            chainID,
		Network:            networkName,
		Development:        dev,
		GasLane:            cfg.GasLane,
		BlockConfirmations: ChainBlockConfirmations,
		Verify:             !dev && p.etherscanAPIKey != "",
	}
	if dev {
		plan.BlockConfirmations = DevBlockConfirmations
	}

	if err := p.planPriceFeed(plan, cfg, dev); err != nil {
		return nil, err
	}
	if err := p.planVRF(plan, cfg, dev); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.MintFee) != "" {
		fee, err := cfg.MintFeeWei()
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", chainID, err)
		}
		plan.MintFeeWei = fee.String()
		plan.MintFeeEther = utils.FormatEther(fee)
	}

	if strings.TrimSpace(cfg.CallbackGasLimit) != "" {
		limit, err := cfg.CallbackGasLimitValue()
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", chainID, err)
		}
		plan.CallbackGasLimit = limit
	}

	return plan, nil
}

// A configured feed is used only off development chains; otherwise a mock is deployed.
func (p *Planner) planPriceFeed(plan *Plan, cfg types.NetworkConfig, dev bool) error {
	addr, ok, err := cfg.PriceFeedAddress()
	if err != nil {
		return fmt.Errorf("chain %d: %w", plan.ChainID, err)
	}
	if ok && !dev {
		plan.PriceFeed = ContractPlan{Address: addr.Hex()}
		return nil
	}

	seed := p.table.MockFeed()
	decimals, err := seed.DecimalsValue()
	if err != nil {
		return fmt.Errorf("mock feed: %w", err)
	}
	price, err := seed.InitialPriceValue()
	if err != nil {
		return fmt.Errorf("mock feed: %w", err)
	}

	plan.PriceFeed = ContractPlan{
		Mock: true,
		MockFeed: &MockAggregatorArgs{
			Decimals:     decimals,
			InitialPrice: price.String(),
			DisplayPrice: utils.FormatUnits(price, decimals),
		},
	}
	return nil
}

func (p *Planner) planVRF(plan *Plan, cfg types.NetworkConfig, dev bool) error {
	addr, ok, err := cfg.VRFCoordinatorAddress()
	if err != nil {
		return fmt.Errorf("chain %d: %w", plan.ChainID, err)
	}

	if ok && !dev {
		plan.VRFCoordinator = ContractPlan{Address: addr.Hex()}
		if !cfg.HasSubscription() {
			plan.Subscription = SubscriptionPlan{Create: true}
			return nil
		}
		id, err := cfg.SubscriptionIDValue()
		if err != nil {
			return fmt.Errorf("chain %d: %w", plan.ChainID, err)
		}
		plan.Subscription = SubscriptionPlan{ID: id}
		return nil
	}

	plan.VRFCoordinator = ContractPlan{
		Mock: true,
		MockVRF: &MockVRFArgs{
			BaseFee:      MockVRFBaseFee,
			GasPriceLink: MockVRFGasPriceLink,
		},
	}
	plan.Subscription = SubscriptionPlan{
		Create:     true,
		FundAmount: SubscriptionFundAmount,
	}
	return nil
}
