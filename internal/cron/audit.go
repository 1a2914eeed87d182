package cron

import (
	"fmt"
	"strings"

	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/sirupsen/logrus"
)

// Alerter receives the problems found by a failed audit.
type Alerter interface {
	SendAuditNotification(problems []*networks.FieldError) error
}

// AuditJob checks the integrity of the network table.
type AuditJob struct {
	table   *networks.Table
	logger  *logrus.Logger
	alerter Alerter
}

func NewAuditJob(table *networks.Table, logger *logrus.Logger, alerter Alerter) *AuditJob {
	return &AuditJob{
		table:   table,
		logger:  logger,
		alerter: alerter,
	}
}

func (j *AuditJob) Run() error {
	j.logger.Infof("Auditing %d configured networks...", j.table.Len())

	for _, id := range j.table.ChainIDs() {
		cfg, _ := j.table.Lookup(id)
		j.logger.Debug("  " + networks.Summary(id, cfg))
	}
	j.logger.Debugf("Development chains: %s", strings.Join(j.table.DevelopmentChains(), ", "))

	err := networks.Validate(j.table)
	if err == nil {
		j.logger.Info("Network configuration audit passed")
		return nil
	}

	problems := networks.FieldErrors(err)
	for _, p := range problems {
		j.logger.WithFields(logrus.Fields{
			"chain_id": p.ChainID,
			"table":    p.Table,
			"field":    p.Field,
			"reason":   p.Reason,
		}).Warn("Network configuration problem")
	}

	if j.alerter != nil {
		if alertErr := j.alerter.SendAuditNotification(problems); alertErr != nil {
			j.logger.Errorf("Failed to send audit notification: %v", alertErr)
		}
	}

	return fmt.Errorf("network configuration audit found %d problem(s): %w", len(problems), err)
}
