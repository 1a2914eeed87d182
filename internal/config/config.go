package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/0xPuncker/network-config/pkg/types"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Server   ServerConfig    `json:"server"`
	Log      LogConfig       `json:"log"`
	Networks NetworksConfig  `json:"networks"`
	Deploy   DeployConfig    `json:"deploy"`
	Slack    SlackConfig     `json:"slack"`
	Jobs     types.JobConfig `json:"jobs"`
}

type ServerConfig struct {
	Port         string `json:"port"`
	ReadTimeout  string `json:"read_timeout"`
	WriteTimeout string `json:"write_timeout"`
}

type LogConfig struct {
	Level string `json:"level"`
}

type NetworksConfig struct {
	File string `json:"file"`
}

type DeployConfig struct {
	EtherscanAPIKey string `json:"etherscan_api_key"`
	PlanCacheTTL    string `json:"plan_cache_ttl"`
}

type SlackConfig struct {
	WebhookURL string `json:"webhook_url"`
}

// Load reads the JSON config at configPath. When the file cannot be read the config is
// built from the environment, after loading .env or .env.local if present.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if err := godotenv.Load(); err != nil {
			if err := godotenv.Load(".env.local"); err != nil {
				fmt.Printf("No .env or .env.local file found. Using environment variables.\n")
			}
		}
		return FromEnv(), nil
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

func FromEnv() *Config {
	def := DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", def.Server.Port),
			ReadTimeout:  getEnv("READ_TIMEOUT", def.Server.ReadTimeout),
			WriteTimeout: getEnv("WRITE_TIMEOUT", def.Server.WriteTimeout),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", def.Log.Level),
		},
		Networks: NetworksConfig{
			File: getEnv("NETWORKS_FILE", def.Networks.File),
		},
		Deploy: DeployConfig{
			EtherscanAPIKey: getEnv("ETHERSCAN_API_KEY", def.Deploy.EtherscanAPIKey),
			PlanCacheTTL:    getEnv("PLAN_CACHE_TTL", def.Deploy.PlanCacheTTL),
		},
		Slack: SlackConfig{
			WebhookURL: getEnv("SLACK_WEBHOOK_URL", def.Slack.WebhookURL),
		},
		Jobs: def.Jobs,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  "10s",
			WriteTimeout: "10s",
		},
		Log: LogConfig{
			Level: "info",
		},
		Deploy: DeployConfig{
			PlanCacheTTL: "10m",
		},
		Jobs: types.DefaultJobConfig(),
	}
}

func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

func (c *Config) PlanCacheTTL() time.Duration {
	return parseDuration(c.Deploy.PlanCacheTTL, 10*time.Minute)
}

func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, 10*time.Second)
}

func (c *Config) WriteTimeout() time.Duration {
	return parseDuration(c.Server.WriteTimeout, 10*time.Second)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
