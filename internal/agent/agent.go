// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/platform-engineering-labs/tickd/internal/api"
	"github.com/platform-engineering-labs/tickd/internal/clock"
	"github.com/platform-engineering-labs/tickd/internal/config"
	"github.com/platform-engineering-labs/tickd/internal/logging"
	"github.com/platform-engineering-labs/tickd/internal/mqtt"
	"github.com/platform-engineering-labs/tickd/internal/quality"
	"github.com/platform-engineering-labs/tickd/internal/taskgroup"
)

const (
	pidFile         = "/tmp/tickd.pid"
	shutdownTimeout = 10 * time.Second
)

type Agent struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	cfg    *config.Config
	id     string
}

func New(cfg *config.Config, id string) *Agent {
	ctx, cancel := context.WithCancel(context.Background())
	return &Agent{
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		cfg:    cfg,
		id:     id,
	}
}

func (a *Agent) Start() error {
	// Check if already running
	if _, err := os.Stat(pidFile); err == nil {
		return fmt.Errorf("agent appears to be already running (PID file exists)")
	}

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	// Write PID
	pid := os.Getpid()
	if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", pid)), 0600); err != nil {
		return fmt.Errorf("failed to write pid file: %w", err)
	}

	group := taskgroup.New()
	go func() {
		defer func() {
			a.cleanup()
			close(a.done)
		}()

		logging.SetupDaemonLogging(&a.cfg.Logging)

		slog.Info("Starting agent", "id", a.id)

		clk := clock.System{}
		tracker := quality.NewTracker()

		var metricsHandler http.Handler
		if a.cfg.Metrics.Enabled {
			metricsHandler = api.NewMetricsHandler()
		}

		var broker *mqtt.Client
		if a.cfg.MQTT.Enabled() {
			var err error
			broker, err = mqtt.NewClient(&a.cfg.MQTT)
			if err != nil {
				// The HTTP API is still useful without a broker.
				slog.Error("Failed to connect to MQTT broker, continuing without it", "error", err)
			} else {
				slog.Info("Connected to MQTT broker", "broker", a.cfg.MQTT.Broker, "base_topic", a.cfg.MQTT.BaseTopic)

				pps := mqtt.NewPpsPublisher(broker, clk)
				group.Add(pps)
				group.Go(pps.Run)

				healthPublisher := mqtt.NewHealthPublisher(broker, clk, tracker)
				group.Add(healthPublisher)
				group.Go(healthPublisher.Run)
			}
		}

		apiServer := api.NewServer(a.ctx, clk, tracker, &a.cfg.Server, metricsHandler)
		group.Add(apiServer)
		group.Go(func() {
			apiServer.Start()
		})

		slog.Info("Agent started", "host", a.cfg.Server.Host, "port", a.cfg.Server.Port)

		// Handle signals and shutdown
		go func() {
			select {
			case sig := <-sigChan:
				slog.Info("Received signal", "signal", sig)
				a.cancel()
			case <-a.ctx.Done():
				slog.Info("Context canceled")
			}
		}()
		<-a.ctx.Done()

		// Signal every component to stop before waiting; the publishers'
		// run loops only exit once their done channel closes.
		group.Stop(false)

		// Ensure the agent doesn't hang indefinitely on shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		done := make(chan struct{})
		go func() {
			group.Wait()
			close(done)
		}()

		select {
		case <-done:
			slog.Info("Components stopped gracefully")
		case <-shutdownCtx.Done():
			slog.Warn("Shutdown timed out, forcing stop")
			group.Stop(true)
		}

		if broker != nil {
			broker.Close()
		}
	}()

	return nil
}

func (a *Agent) Stop() error {
	// Try to read PID file
	pidBytes, err := os.ReadFile(pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("agent is not running (no PID file found)")
		}
		return fmt.Errorf("failed to read pid file: %w", err)
	}

	// Parse PID
	var pid int
	if _, err := fmt.Sscanf(string(pidBytes), "%d", &pid); err != nil {
		return fmt.Errorf("invalid pid file content: %w", err)
	}

	// Check if we are the process
	if pid == os.Getpid() {
		if a.cancel != nil {
			a.cancel()
		}
		<-a.done
		return nil
	}

	// We are not the process, try to stop it
	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	// First, try SIGTERM
	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err.Error() == "os: process already finished" {
			a.cleanup()
			return fmt.Errorf("agent is not running (stale PID file)")
		}
		return fmt.Errorf("failed to send signal to process: %w", err)
	}

	if waitForPidFileRemoval(10 * time.Second) {
		return nil
	}

	// If SIGTERM didn't work, try SIGKILL as a last resort
	slog.Warn("SIGTERM timeout, attempting SIGKILL")
	if err := process.Signal(syscall.SIGKILL); err != nil {
		return fmt.Errorf("failed to SIGKILL process: %w", err)
	}

	// Clean up the PID file since SIGKILL won't trigger normal cleanup
	a.cleanup()
	return nil
}

func (a *Agent) Wait() {
	<-a.done
}

func (a *Agent) cleanup() {
	slog.Info("Cleaning up")
	// Remove PID file
	if err := os.Remove(pidFile); err != nil && !os.IsNotExist(err) {
		slog.Error("Failed to remove pid file", "error", err)
	}
}

func waitForPidFileRemoval(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(pidFile); os.IsNotExist(err) {
			return true
		}
		time.Sleep(100 * time.Millisecond)
	}
	return false
}
