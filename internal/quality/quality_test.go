// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package quality

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trackingOutput = `
Reference ID    : 50505300 (PPS)
Stratum         : 1
Ref time (UTC)  : Thu Feb 06 00:00:00 2025
System time     : 0.000000012 seconds slow of NTP time
Last offset     : -0.000000023 seconds
RMS offset      : 0.000000045 seconds
Frequency       : 1.234 ppm fast
Residual freq   : +0.001 ppm
Skew            : 0.012 ppm
Root delay      : 0.000000001 seconds
Root dispersion : 0.000000002 seconds
Update interval : 16.0 seconds
Leap status     : Normal
`

func TestParseTracking(t *testing.T) {
	q := ParseTracking(trackingOutput)
	require.NotNil(t, q)

	assert.Equal(t, uint8(1), q.Stratum)
	assert.Equal(t, "PPS", q.ReferenceID)
	assert.Equal(t, "Normal", q.LeapStatus)
	assert.Negative(t, q.OffsetSeconds)
}

func TestParseTracking_FastClockIsPositive(t *testing.T) {
	q := ParseTracking(`
Stratum         : 2
Reference ID    : C0A80001 (192.168.0.1)
System time     : 0.000123456 seconds fast of NTP time
Leap status     : Normal
`)
	require.NotNil(t, q)

	assert.Equal(t, uint8(2), q.Stratum)
	assert.Equal(t, "192.168.0.1", q.ReferenceID)
	assert.Positive(t, q.OffsetSeconds)
}

func TestParseTracking_MissingFieldsYieldNil(t *testing.T) {
	assert.Nil(t, ParseTracking("Stratum : 1"))
	assert.Nil(t, ParseTracking(""))
	assert.Nil(t, ParseTracking("506 Cannot talk to daemon"))
}

func TestTracker_CachesWithinTTL(t *testing.T) {
	calls := 0
	tracker := NewTracker()
	tracker.run = func() ([]byte, error) {
		calls++
		return []byte(trackingOutput), nil
	}

	first := tracker.Quality()
	second := tracker.Quality()

	require.NotNil(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestTracker_RefreshesAfterTTL(t *testing.T) {
	calls := 0
	tracker := NewTracker()
	tracker.ttl = time.Millisecond
	tracker.run = func() ([]byte, error) {
		calls++
		return []byte(trackingOutput), nil
	}

	tracker.Quality()
	time.Sleep(5 * time.Millisecond)
	tracker.Quality()

	assert.Equal(t, 2, calls)
}

func TestTracker_ChronyUnavailable(t *testing.T) {
	tracker := NewTracker()
	tracker.run = func() ([]byte, error) {
		return nil, errors.New("exec: \"chronyc\": executable file not found in $PATH")
	}

	assert.Nil(t, tracker.Quality())
}
