// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package config loads daemon configuration from an optional YAML file with
// TICKD_* environment overrides on top.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/platform-engineering-labs/tickd/internal/util"
)

const (
	DefaultPort      = 8463
	DefaultBaseTopic = "tickd"
)

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	TLSCert string `yaml:"tlsCert"`
	TLSKey  string `yaml:"tlsKey"`
}

type MQTTConfig struct {
	// Broker URL, mqtt:// or mqtts://. MQTT publishing is disabled when empty.
	Broker    string `yaml:"broker"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	BaseTopic string `yaml:"baseTopic"`
}

func (m *MQTTConfig) Enabled() bool {
	return m.Broker != ""
}

type LoggingConfig struct {
	FilePath string `yaml:"filePath"`
	Level    string `yaml:"level"`
}

// ConsoleLogLevel maps the configured level name onto slog.
func (l *LoggingConfig) ConsoleLogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MQTT    MQTTConfig    `yaml:"mqtt"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: DefaultPort,
		},
		MQTT: MQTTConfig{
			BaseTopic: DefaultBaseTopic,
		},
		Logging: LoggingConfig{
			FilePath: "~/.local/state/tickd/log/tickd.log",
			Level:    "info",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (skipped when path is empty and the file does not exist), then
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(util.ExpandHomePath(path))
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Server.Host, "TICKD_HOST")
	setInt(&c.Server.Port, "TICKD_PORT")
	setString(&c.Server.TLSCert, "TICKD_TLS_CERT")
	setString(&c.Server.TLSKey, "TICKD_TLS_KEY")
	setString(&c.MQTT.Broker, "TICKD_MQTT_BROKER")
	setString(&c.MQTT.Username, "TICKD_MQTT_USERNAME")
	setString(&c.MQTT.Password, "TICKD_MQTT_PASSWORD")
	setString(&c.MQTT.BaseTopic, "TICKD_MQTT_BASE_TOPIC")
	setString(&c.Logging.Level, "TICKD_LOG_LEVEL")
}

func setString(target *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		*target = value
	}
}

func setInt(target *int, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			*target = n
		}
	}
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if (c.Server.TLSCert == "") != (c.Server.TLSKey == "") {
		return fmt.Errorf("TLS requires both a certificate and a key")
	}
	if c.Server.TLSCert != "" {
		if _, err := os.Stat(util.ExpandHomePath(c.Server.TLSCert)); err != nil {
			return fmt.Errorf("TLS certificate not found: %s", c.Server.TLSCert)
		}
		if _, err := os.Stat(util.ExpandHomePath(c.Server.TLSKey)); err != nil {
			return fmt.Errorf("TLS private key not found: %s", c.Server.TLSKey)
		}
	}

	if c.MQTT.Enabled() {
		if !strings.HasPrefix(c.MQTT.Broker, "mqtt://") && !strings.HasPrefix(c.MQTT.Broker, "mqtts://") {
			return fmt.Errorf("MQTT broker must start with mqtt:// or mqtts://")
		}
	}

	return nil
}
