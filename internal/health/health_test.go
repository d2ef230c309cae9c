// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/platform-engineering-labs/tickd/internal/clock"
	"github.com/platform-engineering-labs/tickd/internal/quality"
)

type fakeSource struct {
	quality *quality.TimeQuality
}

func (f fakeSource) Quality() *quality.TimeQuality {
	return f.quality
}

func saneClock() clock.Clock {
	return clock.Fixed{Instant: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func syncedQuality(stratum uint8) *quality.TimeQuality {
	return &quality.TimeQuality{
		Stratum:       stratum,
		OffsetSeconds: 0.000001,
		ReferenceID:   "PPS",
		LeapStatus:    "Normal",
	}
}

func TestEvaluate_Healthy(t *testing.T) {
	report := Evaluate(saneClock(), fakeSource{quality: syncedQuality(1)})

	assert.Equal(t, StatusHealthy, report.Status)
	assert.Equal(t, "ok", report.Checks.SystemClock.Status)
	assert.Equal(t, "ok", report.Checks.Chrony.Status)
	assert.NotNil(t, report.TimeQuality)
}

func TestEvaluate_DegradedWithoutChrony(t *testing.T) {
	report := Evaluate(saneClock(), fakeSource{})

	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, "warning", report.Checks.Chrony.Status)
	assert.Nil(t, report.TimeQuality)
}

func TestEvaluate_DegradedAtHighStratum(t *testing.T) {
	report := Evaluate(saneClock(), fakeSource{quality: syncedQuality(5)})

	assert.Equal(t, StatusDegraded, report.Status)
}

func TestEvaluate_UnhealthyWhenUnsynced(t *testing.T) {
	report := Evaluate(saneClock(), fakeSource{quality: syncedQuality(16)})

	assert.Equal(t, StatusUnhealthy, report.Status)
}

func TestEvaluate_UnhealthyClockOutOfRange(t *testing.T) {
	past := clock.Fixed{Instant: time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)}

	report := Evaluate(past, fakeSource{quality: syncedQuality(1)})

	assert.Equal(t, StatusUnhealthy, report.Status)
	assert.Equal(t, "error", report.Checks.SystemClock.Status)
	assert.Contains(t, report.Checks.SystemClock.Message, "out of range")
}
