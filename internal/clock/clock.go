// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package clock abstracts time.Now so request handlers and background
// publishers can be tested against a fixed instant.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// System reads the actual system clock.
type System struct{}

func (System) Now() time.Time {
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed struct {
	Instant time.Time
}

func (f Fixed) Now() time.Time {
	return f.Instant
}
