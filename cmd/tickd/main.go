// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package main

import (
	// Embed the zone database so conversions work on hosts without tzdata.
	_ "time/tzdata"

	"github.com/platform-engineering-labs/tickd/internal/cli"
	"github.com/platform-engineering-labs/tickd/internal/logging"
)

func main() {
	logging.SetupInitialLogging()
	cli.Start()
}
