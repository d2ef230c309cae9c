// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package health evaluates daemon health from the system clock and chrony.
// The HTTP handler and the MQTT health publisher share this evaluation so
// they can never disagree about the status.
package health

import (
	"fmt"

	"github.com/platform-engineering-labs/tickd/internal/clock"
	"github.com/platform-engineering-labs/tickd/internal/quality"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Sanity bounds for the system clock, 2020-01-01 to 2100-01-01 UTC.
const (
	minSaneUnix = 1577836800
	maxSaneUnix = 4102444800
)

// Stratum thresholds: chrony reports 16 for an unsynchronized clock.
const (
	stratumDegraded = 4
	stratumUnsynced = 16
)

type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func checkOK() CheckStatus {
	return CheckStatus{Status: "ok"}
}

func checkWarning(message string) CheckStatus {
	return CheckStatus{Status: "warning", Message: message}
}

func checkError(message string) CheckStatus {
	return CheckStatus{Status: "error", Message: message}
}

type Checks struct {
	SystemClock CheckStatus `json:"system_clock"`
	Chrony      CheckStatus `json:"chrony"`
}

// Report is the full health evaluation at one instant.
type Report struct {
	Status      Status               `json:"status"`
	Checks      Checks               `json:"checks"`
	TimeQuality *quality.TimeQuality `json:"time_quality,omitempty"`
}

// Evaluate runs all checks and folds them into an overall status.
func Evaluate(clk clock.Clock, source quality.Source) Report {
	systemClock := checkSystemClock(clk)

	chrony := checkOK()
	timeQuality := source.Quality()
	if timeQuality == nil {
		chrony = checkWarning("chrony unavailable or not synchronized")
	}

	return Report{
		Status:      overallStatus(systemClock, chrony, timeQuality),
		Checks:      Checks{SystemClock: systemClock, Chrony: chrony},
		TimeQuality: timeQuality,
	}
}

func checkSystemClock(clk clock.Clock) CheckStatus {
	unix := clk.Now().Unix()
	if unix < minSaneUnix || unix > maxSaneUnix {
		return checkError(fmt.Sprintf("System clock out of range: %d", unix))
	}
	return checkOK()
}

func overallStatus(systemClock, chrony CheckStatus, timeQuality *quality.TimeQuality) Status {
	if systemClock.Status == "error" {
		return StatusUnhealthy
	}

	if chrony.Status != "ok" {
		return StatusDegraded
	}

	if timeQuality != nil {
		if timeQuality.Stratum >= stratumUnsynced {
			return StatusUnhealthy
		}
		if timeQuality.Stratum >= stratumDegraded {
			return StatusDegraded
		}
	}

	return StatusHealthy
}
