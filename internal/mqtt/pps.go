// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package mqtt

import (
	"log/slog"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/platform-engineering-labs/tickd/internal/api/model"
	"github.com/platform-engineering-labs/tickd/internal/clock"
)

// PpsTopic carries one retained message per second, published on the
// second boundary, so subscribers always see the current unix second.
const PpsTopic = "pps"

type PpsPublisher struct {
	publisher Publisher
	clock     clock.Clock
	done      chan struct{}
	stopOnce  sync.Once
}

func NewPpsPublisher(publisher Publisher, clk clock.Clock) *PpsPublisher {
	return &PpsPublisher{
		publisher: publisher,
		clock:     clk,
		done:      make(chan struct{}),
	}
}

func (p *PpsPublisher) Run() {
	for {
		select {
		case <-p.done:
			return
		case <-time.After(untilNextSecond(p.clock.Now())):
			p.publish()
		}
	}
}

func (p *PpsPublisher) Stop(force bool) {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

func (p *PpsPublisher) publish() {
	payload, err := json.Marshal(model.PpsMessage{Unix: p.clock.Now().Unix()})
	if err != nil {
		slog.Error("Failed to encode pps message", "error", err)
		return
	}

	if err := p.publisher.Publish(PpsTopic, payload, true); err != nil {
		slog.Warn("Failed to publish pps message", "error", err)
	}
}

func untilNextSecond(now time.Time) time.Duration {
	return now.Truncate(time.Second).Add(time.Second).Sub(now)
}
