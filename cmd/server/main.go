package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/0xPuncker/network-config/internal/api"
	"github.com/0xPuncker/network-config/internal/chain"
	"github.com/0xPuncker/network-config/internal/config"
	"github.com/0xPuncker/network-config/internal/deploy"
	"github.com/0xPuncker/network-config/internal/notifications"
	pkgconfig "github.com/0xPuncker/network-config/pkg/config"
	"github.com/0xPuncker/network-config/pkg/networks"
	"github.com/dimiro1/banner"
	"github.com/mattn/go-colorable"
	"github.com/sirupsen/logrus"
)

const bannerText = `
{{ .Title "Network Config" "" 0 }}
{{ .AnsiBackground.BrightBlue }}{{ .AnsiColor.White }}
{{ .AnsiReset }}
`

func main() {
	banner.Init(colorable.NewColorableStdout(), true, true, strings.NewReader(bannerText))

	configPath := flag.String("config", "config/config.json", "path to config file")
	networksPath := flag.String("networks", "", "path to a networks override file (overrides NETWORKS_FILE)")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05-07:00",
	})

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel())

	if *networksPath != "" {
		cfg.Networks.File = *networksPath
	}

	table, err := pkgconfig.LoadNetworks(cfg.Networks.File)
	if err != nil {
		logger.Fatalf("Failed to load networks: %v", err)
	}
	if err := networks.Validate(table); err != nil {
		logger.Warnf("Network configuration has problems: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"networks":           table.Len(),
		"development_chains": strings.Join(table.DevelopmentChains(), ","),
		"overrides":          cfg.Networks.File,
	}).Info("Network table loaded")

	registry := chain.NewRegistry(table, logger)
	planner := deploy.NewPlanner(table, logger, cfg.Deploy.EtherscanAPIKey, cfg.PlanCacheTTL())

	slack, err := notifications.NewSlackService(logger, cfg.Slack.WebhookURL)
	if err != nil {
		logger.Warnf("Slack notifications disabled: %v", err)
	}

	handler, err := api.NewHandler(registry, planner, slack, logger, cfg)
	if err != nil {
		logger.Fatalf("Failed to create handler: %v", err)
	}
	startupNotifier := notifications.NewStartupNotifier(registry, slack, logger)
	go func() {
		if err := startupNotifier.NotifyStartup(); err != nil {
			logger.Errorf("Startup notification failed: %v", err)
		}
	}()

	if err := handler.Scheduler.Start(); err != nil {
		logger.Fatalf("Failed to start scheduler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := api.StartServer(ctx, handler, cfg.Server.Port); err != nil {
		logger.Errorf("Server stopped with error: %v", err)
	}

	logger.Info("Shutting down...")
	handler.Scheduler.Stop()
	logger.Info("Server stopped")
}
