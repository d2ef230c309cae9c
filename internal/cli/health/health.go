// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package health

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/tickd/internal/api"
	"github.com/platform-engineering-labs/tickd/internal/cli/cmd"
	"github.com/platform-engineering-labs/tickd/internal/cli/display"
	"github.com/platform-engineering-labs/tickd/internal/cli/renderer"
)

const (
	defaultEndpoint = "http://127.0.0.1:8463"
	readyAttempts   = 8
)

func HealthCmd() *cobra.Command {
	var endpoint string

	command := &cobra.Command{
		Use:   "health",
		Short: "Show an agent's health report",
		Annotations: map[string]string{
			"type":     "Query",
			"examples": "{{.Name}} {{.Command}} --endpoint http://timeserver:8463",
		},
		SilenceErrors: true,
		Run: func(command *cobra.Command, args []string) {
			client := api.NewClient(endpoint, nil)

			// Tolerate an agent that is still coming up before querying.
			if !client.WaitOnAvailable(readyAttempts) {
				display.Error("no agent answering at " + endpoint)
				return
			}

			report, err := client.Health()
			if err != nil {
				display.Error(err.Error())
				return
			}

			fmt.Println(renderer.RenderHealth(report))
		},
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().StringVarP(&endpoint, "endpoint", "e", defaultEndpoint, "Agent endpoint to query")

	return command
}
