// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package tz converts a single captured instant into the local wall-clock
// representation of one or more IANA time zones.
package tz

import (
	"fmt"
	"strings"
	"time"
)

// LocalLayout is ISO-8601 at second precision with no offset suffix.
const LocalLayout = "2006-01-02T15:04:05"

// MaxZones caps the number of zones a single request may ask for.
const MaxZones = 50

// ZoneResult is the per-zone conversion outcome.
type ZoneResult struct {
	// Local wall-clock time, LocalLayout formatted.
	Local string `json:"local"`

	// Offset from UTC in seconds at the captured instant, DST included.
	Offset int `json:"offset"`
}

// UnrecognizedZoneError reports the first requested identifier that does not
// resolve in the IANA time zone database.
type UnrecognizedZoneError struct {
	Zone string
}

func (e UnrecognizedZoneError) Error() string {
	return fmt.Sprintf("Unrecognized time zone '%s'", e.Zone)
}

// TooManyZonesError reports a request exceeding MaxZones.
type TooManyZonesError struct {
	Requested int
}

func (e TooManyZonesError) Error() string {
	return fmt.Sprintf("Too many time zones requested: %d (max: %d)", e.Requested, MaxZones)
}

// ParseZoneList flattens the raw tz query values into zone identifiers.
// Each value may itself be a comma-separated list; tokens are trimmed and
// empty tokens dropped. An empty result defaults to ["UTC"].
func ParseZoneList(values []string) []string {
	var names []string
	for _, value := range values {
		for token := range strings.SplitSeq(value, ",") {
			token = strings.TrimSpace(token)
			if token != "" {
				names = append(names, token)
			}
		}
	}

	if len(names) == 0 {
		return []string{"UTC"}
	}

	return names
}

// Convert maps every requested identifier to its ZoneResult at the given
// instant. The instant must be captured exactly once by the caller so all
// zones in one request reflect the same moment.
//
// The first identifier that does not resolve aborts the whole conversion with
// UnrecognizedZoneError; no partial map is returned. Only a failed database
// lookup is treated as an unrecognized zone.
func Convert(now time.Time, names []string) (map[string]ZoneResult, error) {
	if len(names) > MaxZones {
		return nil, TooManyZonesError{Requested: len(names)}
	}

	zones := make(map[string]ZoneResult, len(names))
	for _, name := range names {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, UnrecognizedZoneError{Zone: name}
		}

		local := now.In(loc)
		_, offset := local.Zone()

		// Keyed by the identifier as supplied, not a canonicalized form.
		zones[name] = ZoneResult{
			Local:  local.Format(LocalLayout),
			Offset: offset,
		}
	}

	return zones, nil
}
