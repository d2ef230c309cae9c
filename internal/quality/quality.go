// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package quality reports how well the host clock is synchronized by asking
// chrony. Absence of chrony is not an error: callers get no quality block and
// decide for themselves how degraded that makes them.
package quality

import (
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TimeQuality is the subset of `chronyc tracking` the API exposes.
type TimeQuality struct {
	// NTP stratum (16 means unsynchronized).
	Stratum uint8 `json:"stratum"`

	// System clock offset from NTP time in seconds, negative when slow.
	OffsetSeconds float64 `json:"offset_seconds"`

	// Reference source, e.g. "PPS" or "192.168.0.1".
	ReferenceID string `json:"reference_id"`

	// Leap status, e.g. "Normal".
	LeapStatus string `json:"leap_status"`
}

// Source yields the current time quality, or nil when unknown.
type Source interface {
	Quality() *TimeQuality
}

// Tracker shells out to chronyc and caches the parsed result briefly so a
// burst of requests does not fork a process per request.
type Tracker struct {
	mu       sync.RWMutex
	cached   *TimeQuality
	cachedAt time.Time
	ttl      time.Duration

	// run is swapped in tests.
	run func() ([]byte, error)
}

func NewTracker() *Tracker {
	return &Tracker{
		ttl: 250 * time.Millisecond,
		run: func() ([]byte, error) {
			return exec.Command("chronyc", "tracking").Output()
		},
	}
}

func (t *Tracker) Quality() *TimeQuality {
	t.mu.RLock()
	if !t.cachedAt.IsZero() && time.Since(t.cachedAt) < t.ttl {
		cached := t.cached
		t.mu.RUnlock()
		return cached
	}
	t.mu.RUnlock()

	var quality *TimeQuality
	if out, err := t.run(); err == nil {
		quality = ParseTracking(string(out))
	}

	t.mu.Lock()
	t.cached = quality
	t.cachedAt = time.Now()
	t.mu.Unlock()

	return quality
}

var offsetPattern = regexp.MustCompile(`[-+]?\d+\.?\d*`)

// ParseTracking extracts a TimeQuality from `chronyc tracking` output.
// Returns nil unless every field is present.
func ParseTracking(output string) *TimeQuality {
	var (
		stratum     *uint8
		offset      *float64
		referenceID string
		leapStatus  string
	)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		value, ok := fieldValue(line)
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Stratum"):
			if n, err := strconv.ParseUint(value, 10, 8); err == nil {
				s := uint8(n)
				stratum = &s
			}

		case strings.HasPrefix(line, "Reference ID"):
			// Prefer the name in parentheses: "50505300 (PPS)" -> "PPS"
			if start := strings.Index(value, "("); start >= 0 {
				if end := strings.Index(value, ")"); end > start {
					referenceID = value[start+1 : end]
				}
			}
			if referenceID == "" {
				referenceID = strings.Fields(value)[0]
			}

		case strings.HasPrefix(line, "System time"):
			// "0.000000012 seconds slow of NTP time"
			if match := offsetPattern.FindString(value); match != "" {
				if f, err := strconv.ParseFloat(match, 64); err == nil {
					if strings.Contains(value, "slow") {
						f = -f
					}
					offset = &f
				}
			}

		case strings.HasPrefix(line, "Leap status"):
			leapStatus = value
		}
	}

	if stratum == nil || offset == nil || referenceID == "" || leapStatus == "" {
		return nil
	}

	return &TimeQuality{
		Stratum:       *stratum,
		OffsetSeconds: *offset,
		ReferenceID:   referenceID,
		LeapStatus:    leapStatus,
	}
}

// fieldValue splits a "Name : value" chronyc line.
func fieldValue(line string) (string, bool) {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return "", false
	}
	return strings.TrimSpace(value), true
}
