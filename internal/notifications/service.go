package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/0xPuncker/network-config/pkg/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type NotificationService struct {
	slackService *SlackService
}

func NewNotificationService(slackService *SlackService) *NotificationService {
	return &NotificationService{
		slackService: slackService,
	}
}

func (s *NotificationService) formatJobNotification(jobName string, status string, duration time.Duration, details string) *SlackMessage {
	var color string
	var icon string

	switch status {
	case "success":
		color = "good"
		icon = "✅"
	case "failed":
		color = "danger"
		icon = "❌"
	case "started":
		color = "warning"
		icon = "🚀"
	default:
		color = "#808080"
		icon = "ℹ️"
	}

	fields := []Field{
		{
			Title: "Job Name",
			Value: jobName,
			Short: true,
		},
		{
			Title: "Status",
			Value: status,
			Short: true,
		},
	}

	if duration > 0 {
		fields = append(fields, Field{
			Title: "Duration",
			Value: utils.FormatDuration(duration),
			Short: true,
		})
	}

	if details != "" {
		fields = append(fields, Field{
			Title: "Details",
			Value: details,
			Short: false,
		})
	}

	return &SlackMessage{
		Text: fmt.Sprintf("%s Job Status Update", icon),
		Attachments: []Attachment{
			{
				Color:  color,
				Fields: fields,
				Ts:     time.Now().Unix(),
			},
		},
	}
}

// One field per problem; table-level problems are reported under "Table".
func (s *NotificationService) formatAuditNotification(problems []*networks.FieldError) *SlackMessage {
	fields := make([]Field, 0, len(problems))
	for _, p := range problems {
		title := fmt.Sprintf("Chain %d", p.ChainID)
		if p.Table {
			title = "Table"
		}
		fields = append(fields, Field{
			Title: fmt.Sprintf("%s · %s", title, p.Field),
			Value: p.Reason,
			Short: false,
		})
	}

	return &SlackMessage{
		Text: fmt.Sprintf("❌ Network configuration audit found %d problem(s)", len(problems)),
		Attachments: []Attachment{
			{
				Color:  "danger",
				Fields: fields,
				Footer: fmt.Sprintf("Audited at %s", time.Now().Format(time.RFC1123)),
				Ts:     time.Now().Unix(),
			},
		},
	}
}

func (s *NotificationService) formatStartupNotification(list []types.Network, devChains []string) *SlackMessage {
	title := cases.Title(language.English)

	fields := make([]Field, 0, len(list)+1)
	for _, n := range list {
		var details []string
		details = append(details, fmt.Sprintf("Chain ID: %d", n.ChainID))
		if fee, err := n.MintFeeWei(); err == nil {
			details = append(details, fmt.Sprintf("Mint fee: %s ETH", utils.FormatEther(fee)))
		}
		if n.HasPriceFeed() {
			details = append(details, "📈 Price feed")
		}
		if n.HasVRFCoordinator() {
			details = append(details, "🎲 VRF coordinator")
		}
		if n.Development {
			details = append(details, "🧪 Development")
		}
		fields = append(fields, Field{
			Title: title.String(n.Name),
			Value: strings.Join(details, " | "),
			Short: true,
		})
	}

	fields = append(fields, Field{
		Title: "Development Chains",
		Value: strings.Join(devChains, ", "),
		Short: false,
	})

	return &SlackMessage{
		Text: fmt.Sprintf("🌐 Network config service started with %d network(s)", len(list)),
		Attachments: []Attachment{
			{
				Color:  "#36a64f",
				Fields: fields,
				Ts:     time.Now().Unix(),
			},
		},
	}
}

func (s *NotificationService) SendJobNotification(jobName string, status string, duration time.Duration, details string) error {
	message := s.formatJobNotification(jobName, status, duration, details)
	return s.slackService.SendSlackMessage(message)
}

func (s *NotificationService) SendAuditNotification(problems []*networks.FieldError) error {
	message := s.formatAuditNotification(problems)
	return s.slackService.SendSlackMessage(message)
}

func (s *NotificationService) SendStartupNotification(list []types.Network, devChains []string) error {
	message := s.formatStartupNotification(list, devChains)
	return s.slackService.SendSlackMessage(message)
}
