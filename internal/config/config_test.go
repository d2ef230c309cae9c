// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, DefaultBaseTopic, cfg.MQTT.BaseTopic)
	assert.False(t, cfg.MQTT.Enabled())
	assert.True(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickd.conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
mqtt:
  broker: mqtt://localhost:1883
  baseTopic: lab/time
logging:
  level: debug
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.MQTT.Enabled())
	assert.Equal(t, "lab/time", cfg.MQTT.BaseTopic)
	assert.Equal(t, slog.LevelDebug, cfg.Logging.ConsoleLogLevel())
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tickd.conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0600))

	t.Setenv("TICKD_PORT", "9100")
	t.Setenv("TICKD_MQTT_BROKER", "mqtt://broker:1883")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "mqtt://broker:1883", cfg.MQTT.Broker)
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/tickd.conf.yaml")
	assert.Error(t, err)
}

func TestValidate_PortRange(t *testing.T) {
	cfg := Default()
	cfg.Server.Port = 0

	assert.Error(t, cfg.Validate())
}

func TestValidate_BrokerScheme(t *testing.T) {
	cfg := Default()
	cfg.MQTT.Broker = "http://localhost:1883"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mqtt://")
}

func TestValidate_TLSRequiresBothFiles(t *testing.T) {
	cfg := Default()
	cfg.Server.TLSCert = "/tmp/cert.pem"

	assert.Error(t, cfg.Validate())
}

func TestValidate_TLSFilesMustExist(t *testing.T) {
	cfg := Default()
	cfg.Server.TLSCert = "/nonexistent/cert.pem"
	cfg.Server.TLSKey = "/nonexistent/key.pem"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificate not found")
}

func TestConsoleLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for name, want := range cases {
		cfg := LoggingConfig{Level: name}
		assert.Equal(t, want, cfg.ConsoleLogLevel(), "level %q", name)
	}
}
