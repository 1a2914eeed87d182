package notifications

import (
	"fmt"
	"time"

	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/sirupsen/logrus"
)

type StartupNotifier struct {
	registry      types.NetworkRegistry
	notifications *NotificationService
	logger        *logrus.Logger
	initialDelay  time.Duration
}

func NewStartupNotifier(registry types.NetworkRegistry, slack *SlackService, logger *logrus.Logger) *StartupNotifier {
	return &StartupNotifier{
		registry:      registry,
		notifications: NewNotificationService(slack),
		logger:        logger,
		initialDelay:  5 * time.Second,
	}
}

// NotifyStartup logs the configured networks and posts a summary to Slack when it is configured.
func (n *StartupNotifier) NotifyStartup() error {
	time.Sleep(n.initialDelay)

	list := n.registry.ListNetworks()
	for _, network := range list {
		n.logger.WithFields(logrus.Fields{
			"chain_id":        network.ChainID,
			"name":            network.Name,
			"development":     network.Development,
			"price_feed":      network.HasPriceFeed(),
			"vrf_coordinator": network.HasVRFCoordinator(),
		}).Info("Network configured")
	}

	if n.notifications.slackService == nil {
		n.logger.Debug("Slack not configured, skipping startup notification")
		return nil
	}

	if err := n.notifications.SendStartupNotification(list, n.registry.DevelopmentChains()); err != nil {
		return fmt.Errorf("failed to send startup notification: %w", err)
	}
	return nil
}
