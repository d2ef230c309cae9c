// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/platform-engineering-labs/tickd/internal/api/model"
	"github.com/platform-engineering-labs/tickd/internal/health"
	"github.com/platform-engineering-labs/tickd/internal/tz"
)

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "+00:00", formatOffset(0))
	assert.Equal(t, "-05:00", formatOffset(-18000))
	assert.Equal(t, "+09:00", formatOffset(32400))
	assert.Equal(t, "+05:30", formatOffset(19800))
	assert.Equal(t, "-03:30", formatOffset(-12600))
}

func TestRenderTimes(t *testing.T) {
	out := RenderTimes(&model.TimesResponse{
		Unix: 1704067200,
		Zones: map[string]tz.ZoneResult{
			"UTC":              {Local: "2024-01-01T00:00:00", Offset: 0},
			"America/New_York": {Local: "2023-12-31T19:00:00", Offset: -18000},
		},
	})

	assert.Contains(t, out, "1704067200")
	assert.Contains(t, out, "America/New_York")
	assert.Contains(t, out, "2023-12-31T19:00:00")
	assert.Contains(t, out, "-05:00")
}

func TestRenderHealth(t *testing.T) {
	out := RenderHealth(&health.Report{
		Status: health.StatusDegraded,
		Checks: health.Checks{
			SystemClock: health.CheckStatus{Status: "ok"},
			Chrony:      health.CheckStatus{Status: "warning", Message: "chrony unavailable or not synchronized"},
		},
	})

	assert.Contains(t, out, "degraded")
	assert.Contains(t, out, "system_clock")
	assert.Contains(t, out, "chrony unavailable")
}
