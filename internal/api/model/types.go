// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"github.com/platform-engineering-labs/tickd/internal/quality"
	"github.com/platform-engineering-labs/tickd/internal/tz"
)

// TimesResponse is the GET /times body.
type TimesResponse struct {
	// Unix timestamp in whole seconds, captured once at request start.
	Unix int64 `json:"unix"`

	// Per-zone results, keyed by the identifier as requested.
	Zones map[string]tz.ZoneResult `json:"zones"`

	// Present only when the request asked for include_quality.
	TimeQuality *quality.TimeQuality `json:"time_quality,omitempty"`
}

// PpsMessage is published on the MQTT pps topic at every second boundary.
type PpsMessage struct {
	Unix int64 `json:"unix"`
}
