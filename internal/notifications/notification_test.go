package notifications

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/0xPuncker/network-config/internal/chain"
	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type webhookRecorder struct {
	mu       sync.Mutex
	messages []SlackMessage
	status   int
}

func (w *webhookRecorder) server(t *testing.T) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		var msg SlackMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			rw.WriteHeader(http.StatusBadRequest)
			return
		}
		w.mu.Lock()
		w.messages = append(w.messages, msg)
		w.mu.Unlock()
		rw.WriteHeader(w.status)
	}))
	t.Cleanup(ts.Close)
	return ts
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestNewSlackService(t *testing.T) {
	t.Setenv("SLACK_WEBHOOK_URL", "")
	_, err := NewSlackService(quietLogger(), "")
	assert.Error(t, err)

	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/env")
	slack, err := NewSlackService(quietLogger(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.slack.com/services/env", slack.webhookURL)
}

func TestSendSlackMessage_Status(t *testing.T) {
	rec := &webhookRecorder{status: http.StatusInternalServerError}
	ts := rec.server(t)

	slack, err := NewSlackService(quietLogger(), ts.URL)
	require.NoError(t, err)

	err = slack.SendSlackMessage(&SlackMessage{Text: "hello"})
	assert.Error(t, err)

	var nilService *SlackService
	assert.Error(t, nilService.SendSlackMessage(&SlackMessage{Text: "hello"}))
}

func TestSendAuditNotification(t *testing.T) {
	rec := &webhookRecorder{status: http.StatusOK}
	ts := rec.server(t)

	slack, err := NewSlackService(quietLogger(), ts.URL)
	require.NoError(t, err)

	problems := []*networks.FieldError{
		{ChainID: 4, Field: "mintFee", Reason: "not a non-negative integer"},
		{Table: true, Field: "DECIMALS", Reason: "field not set"},
		{ChainID: 0, Field: "name", Reason: "must not be empty"},
	}
	require.NoError(t, NewNotificationService(slack).SendAuditNotification(problems))

	require.Len(t, rec.messages, 1)
	msg := rec.messages[0]
	assert.Contains(t, msg.Text, "3 problem(s)")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "danger", msg.Attachments[0].Color)
	require.Len(t, msg.Attachments[0].Fields, 3)
	assert.Equal(t, "Chain 4 · mintFee", msg.Attachments[0].Fields[0].Title)
	assert.Equal(t, "Table · DECIMALS", msg.Attachments[0].Fields[1].Title)
	assert.Equal(t, "Chain 0 · name", msg.Attachments[0].Fields[2].Title)
}

func TestFormatStartupNotification(t *testing.T) {
	registry := chain.NewRegistry(networks.Default(), quietLogger())
	svc := NewNotificationService(nil)

	msg := svc.formatStartupNotification(registry.ListNetworks(), registry.DevelopmentChains())

	assert.Contains(t, msg.Text, "3 network(s)")
	fields := msg.Attachments[0].Fields
	require.Len(t, fields, 4)
	assert.Equal(t, "Rinkeby", fields[0].Title)
	assert.Contains(t, fields[0].Value, "Mint fee: 0.0001 ETH")
	assert.Contains(t, fields[0].Value, "VRF coordinator")
	assert.Equal(t, "Localhost", fields[2].Title)
	assert.Contains(t, fields[2].Value, "Mint fee: 0.01 ETH")
	assert.Contains(t, fields[2].Value, "Development")
	assert.Equal(t, "hardhat, localhost", fields[3].Value)
}

func TestFormatJobNotification(t *testing.T) {
	msg := NewNotificationService(nil).formatJobNotification("audit-networks", "failed", 1500*time.Millisecond, "boom")

	assert.Equal(t, "❌ Job Status Update", msg.Text)
	fields := msg.Attachments[0].Fields
	require.Len(t, fields, 4)
	assert.Equal(t, "1.50s", fields[2].Value)
	assert.Equal(t, "boom", fields[3].Value)
}

func TestStartupNotifier(t *testing.T) {
	rec := &webhookRecorder{status: http.StatusOK}
	ts := rec.server(t)

	slack, err := NewSlackService(quietLogger(), ts.URL)
	require.NoError(t, err)

	registry := chain.NewRegistry(networks.Default(), quietLogger())
	notifier := NewStartupNotifier(registry, slack, quietLogger())
	notifier.initialDelay = 0

	require.NoError(t, notifier.NotifyStartup())
	assert.Len(t, rec.messages, 1)

	withoutSlack := NewStartupNotifier(registry, nil, quietLogger())
	withoutSlack.initialDelay = 0
	assert.NoError(t, withoutSlack.NotifyStartup())
}

func TestSlackNotificationManual(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	rootDir := filepath.Dir(filepath.Dir(wd))
	if err := godotenv.Load(filepath.Join(rootDir, ".env.test")); err != nil {
		t.Log("No .env.test file found, using environment variables")
	}

	if os.Getenv("SLACK_WEBHOOK_URL") == "" {
		t.Skip("SLACK_WEBHOOK_URL not set")
	}

	slack, err := NewSlackService(logrus.New(), "")
	require.NoError(t, err)

	registry := chain.NewRegistry(networks.Default(), quietLogger())
	err = NewNotificationService(slack).SendStartupNotification(registry.ListNetworks(), registry.DevelopmentChains())
	require.NoError(t, err)
}
