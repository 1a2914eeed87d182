package networks

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xPuncker/network-config/pkg/types"
)

// FieldError describes one integrity problem. Table is set for fields that belong to
// the table rather than to a chain entry; ChainID is then meaningless.
type FieldError struct {
	ChainID int64
	Table   bool
	Field   string
	Reason  string
}

func (e *FieldError) Error() string {
	if e.Table {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("chain %d: %s: %s", e.ChainID, e.Field, e.Reason)
}

// Validate checks the static integrity of t and returns every problem found, joined.
// Optional fields are only checked when present.
func Validate(t *Table) error {
	var errs []error
	add := func(chainID int64, field string, err error) {
		errs = append(errs, &FieldError{ChainID: chainID, Field: field, Reason: err.Error()})
	}
	addTable := func(field string, err error) {
		errs = append(errs, &FieldError{Table: true, Field: field, Reason: err.Error()})
	}

	for _, id := range t.ChainIDs() {
		cfg, _ := t.Lookup(id)

		if strings.TrimSpace(cfg.Name) == "" {
			add(id, "name", errors.New("must not be empty"))
		}
		if strings.TrimSpace(cfg.MintFee) != "" {
			if _, err := cfg.MintFeeWei(); err != nil {
				add(id, "mintFee", err)
			}
		}
		if strings.TrimSpace(cfg.CallbackGasLimit) != "" {
			if _, err := cfg.CallbackGasLimitValue(); err != nil {
				add(id, "callbackGasLimit", err)
			}
		}
		if strings.TrimSpace(cfg.SubscriptionID) != "" {
			if _, err := cfg.SubscriptionIDValue(); err != nil {
				add(id, "subscriptionId", err)
			}
		}
		if strings.TrimSpace(cfg.GasLane) != "" {
			if _, err := cfg.GasLaneHash(); err != nil {
				add(id, "gasLane", err)
			}
		}
		if _, _, err := cfg.PriceFeedAddress(); err != nil {
			add(id, "ethUsdPriceFeed", err)
		}
		if _, _, err := cfg.VRFCoordinatorAddress(); err != nil {
			add(id, "vrfCoordinatorV2", err)
		}
	}

	devChains := t.DevelopmentChains()
	if len(devChains) == 0 {
		addTable("developmentChains", errors.New("must not be empty"))
	}
	for _, name := range devChains {
		if strings.TrimSpace(name) == "" {
			addTable("developmentChains", errors.New("contains a blank name"))
		}
	}

	if _, err := t.MockFeed().DecimalsValue(); err != nil {
		addTable("DECIMALS", err)
	}
	if _, err := t.MockFeed().InitialPriceValue(); err != nil {
		addTable("INITIAL_PRICE", err)
	}

	return errors.Join(errs...)
}

// FieldErrors unwraps the individual problems from an error returned by Validate.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		var fe *FieldError
		if errors.As(err, &fe) {
			return []*FieldError{fe}
		}
		return nil
	}
	var out []*FieldError
	for _, e := range joined.Unwrap() {
		var fe *FieldError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

// Summary is a short human-readable rendering of one network, used in logs and notifications.
func Summary(id int64, cfg types.NetworkConfig) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("%s (%d)", cfg.Name, id))
	if cfg.HasPriceFeed() {
		parts = append(parts, "price feed")
	}
	if cfg.HasVRFCoordinator() {
		parts = append(parts, "vrf coordinator")
	}
	if cfg.HasSubscription() {
		parts = append(parts, "subscription "+cfg.SubscriptionID)
	}
	return strings.Join(parts, ", ")
}
