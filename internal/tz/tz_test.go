// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package tz

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var instant = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestConvert_UTC(t *testing.T) {
	zones, err := Convert(instant, []string{"UTC"})
	require.NoError(t, err)

	require.Len(t, zones, 1)
	assert.Equal(t, "2024-01-01T00:00:00", zones["UTC"].Local)
	assert.Equal(t, 0, zones["UTC"].Offset)
}

func TestConvert_NewYorkStandardTime(t *testing.T) {
	zones, err := Convert(instant, []string{"America/New_York"})
	require.NoError(t, err)

	// EST at that instant, UTC-5
	assert.Equal(t, "2023-12-31T19:00:00", zones["America/New_York"].Local)
	assert.Equal(t, -18000, zones["America/New_York"].Offset)
}

func TestConvert_DaylightSavingOffset(t *testing.T) {
	july := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	zones, err := Convert(july, []string{"America/New_York"})
	require.NoError(t, err)

	// EDT, UTC-4
	assert.Equal(t, -14400, zones["America/New_York"].Offset)
}

func TestConvert_MultipleZonesShareInstant(t *testing.T) {
	zones, err := Convert(instant, []string{"UTC", "America/New_York", "Europe/London", "Asia/Tokyo"})
	require.NoError(t, err)

	assert.Len(t, zones, 4)
	assert.Equal(t, "2024-01-01T09:00:00", zones["Asia/Tokyo"].Local)
	assert.Equal(t, 9*3600, zones["Asia/Tokyo"].Offset)
}

func TestConvert_UnrecognizedZoneAbortsWholeRequest(t *testing.T) {
	zones, err := Convert(instant, []string{"UTC", "Nonexistent/Zone", "Europe/London"})

	assert.Nil(t, zones)
	var unrecognized UnrecognizedZoneError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, "Nonexistent/Zone", unrecognized.Zone)
	assert.Contains(t, err.Error(), "Nonexistent/Zone")
}

func TestConvert_FirstFailingIdentifierWins(t *testing.T) {
	_, err := Convert(instant, []string{"Bad/First", "Bad/Second"})

	var unrecognized UnrecognizedZoneError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, "Bad/First", unrecognized.Zone)
}

func TestConvert_TooManyZones(t *testing.T) {
	names := make([]string, MaxZones+1)
	for i := range names {
		names[i] = "UTC"
	}

	_, err := Convert(instant, names)

	var tooMany TooManyZonesError
	require.ErrorAs(t, err, &tooMany)
	assert.Equal(t, MaxZones+1, tooMany.Requested)
}

func TestParseZoneList(t *testing.T) {
	cases := []struct {
		name   string
		values []string
		want   []string
	}{
		{"empty defaults to UTC", nil, []string{"UTC"}},
		{"blank value defaults to UTC", []string{""}, []string{"UTC"}},
		{"repeated params", []string{"UTC", "America/New_York"}, []string{"UTC", "America/New_York"}},
		{"comma separated", []string{"UTC,Europe/London"}, []string{"UTC", "Europe/London"}},
		{"mixed with spaces", []string{" UTC , Europe/London ", "Asia/Tokyo"}, []string{"UTC", "Europe/London", "Asia/Tokyo"}},
		{"empty tokens dropped", []string{",,UTC,"}, []string{"UTC"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseZoneList(tc.values))
		})
	}
}

// Conversions of any instant must produce a parseable local timestamp and an
// offset chronologically consistent with it.
func TestConvert_Properties(t *testing.T) {
	names := []string{
		"UTC", "America/New_York", "America/Denver", "Europe/London",
		"Europe/Berlin", "Asia/Tokyo", "Asia/Kolkata", "Australia/Sydney",
		"Pacific/Chatham",
	}

	rapid.Check(t, func(t *rapid.T) {
		unix := rapid.Int64Range(0, 4102444800).Draw(t, "unix")
		name := rapid.SampledFrom(names).Draw(t, "zone")
		now := time.Unix(unix, 0).UTC()

		zones, err := Convert(now, []string{name})
		if err != nil {
			t.Fatalf("convert failed for %q: %v", name, err)
		}

		result := zones[name]
		if strings.ContainsAny(result.Local, "Z+") {
			t.Fatalf("local %q carries an offset suffix", result.Local)
		}

		local, err := time.Parse(LocalLayout, result.Local)
		if err != nil {
			t.Fatalf("local %q does not parse: %v", result.Local, err)
		}

		// UTC offsets stay within ±14h and the formatted wall clock is the
		// instant shifted by exactly that offset.
		if result.Offset < -14*3600 || result.Offset > 14*3600 {
			t.Fatalf("offset %d out of range", result.Offset)
		}
		if got := now.Add(time.Duration(result.Offset) * time.Second).Format(LocalLayout); got != local.Format(LocalLayout) {
			t.Fatalf("local %q inconsistent with offset %d", result.Local, result.Offset)
		}
	})
}
