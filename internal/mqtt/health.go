// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package mqtt

import (
	"log/slog"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/platform-engineering-labs/tickd/internal/clock"
	"github.com/platform-engineering-labs/tickd/internal/health"
	"github.com/platform-engineering-labs/tickd/internal/quality"
)

// HealthTopic carries a retained message published on status transitions,
// rate-limited so a flapping chrony cannot flood the broker.
const HealthTopic = "health"

const (
	healthPollInterval = time.Second
	minPublishInterval = 5 * time.Second
)

type HealthPublisher struct {
	publisher Publisher
	clock     clock.Clock
	source    quality.Source
	done      chan struct{}
	stopOnce  sync.Once

	lastStatus    health.Status
	lastPublished time.Time
}

func NewHealthPublisher(publisher Publisher, clk clock.Clock, source quality.Source) *HealthPublisher {
	return &HealthPublisher{
		publisher: publisher,
		clock:     clk,
		source:    source,
		done:      make(chan struct{}),
	}
}

func (p *HealthPublisher) Run() {
	ticker := time.NewTicker(healthPollInterval)
	defer ticker.Stop()

	// the first evaluation always publishes, seeding the retained message
	p.evaluate(p.clock.Now())

	for {
		select {
		case <-p.done:
			return
		case now := <-ticker.C:
			p.evaluate(now)
		}
	}
}

func (p *HealthPublisher) Stop(force bool) {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

func (p *HealthPublisher) evaluate(now time.Time) {
	report := health.Evaluate(p.clock, p.source)
	if !p.shouldPublish(report.Status, now) {
		return
	}

	payload, err := json.Marshal(report)
	if err != nil {
		slog.Error("Failed to encode health message", "error", err)
		return
	}

	if err := p.publisher.Publish(HealthTopic, payload, true); err != nil {
		slog.Warn("Failed to publish health message", "error", err)
		return
	}

	p.lastStatus = report.Status
	p.lastPublished = now
}

func (p *HealthPublisher) shouldPublish(status health.Status, now time.Time) bool {
	if status == p.lastStatus {
		return false
	}
	if !p.lastPublished.IsZero() && now.Sub(p.lastPublished) < minPublishInterval {
		return false
	}
	return true
}
