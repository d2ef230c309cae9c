// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package times

import (
	"fmt"
	"strings"

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

type timesOptions struct {
	endpoint string
	zones    []string
	quality  bool
}

func validateTimesOptions(opts *timesOptions) error {
	if opts.endpoint == "" {
		return cmd.FlagErrorf("endpoint must not be empty")
	}

	if !strings.HasPrefix(opts.endpoint, "http://") && !strings.HasPrefix(opts.endpoint, "https://") {
		return cmd.FlagErrorf("endpoint must start with http:// or https://, got %q", opts.endpoint)
	}

	return nil
}

func TimesCmd() *cobra.Command {
	opts := &timesOptions{}

	command := &cobra.Command{
		Use:   "times",
		Short: "Query an agent for the current time in one or more zones",
		Annotations: map[string]string{
			"type":     "Query",
			"examples": "{{.Name}} {{.Command}} --tz America/New_York --tz Asia/Tokyo",
		},
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			if err := validateTimesOptions(opts); err != nil {
				return err
			}

			client := api.NewClient(opts.endpoint, nil)

			// Tolerate an agent that is still coming up before querying.
			if !client.WaitOnAvailable(readyAttempts) {
				display.Error("no agent answering at " + opts.endpoint)
				return nil
			}

			resp, err := client.Times(opts.zones, opts.quality)
			if err != nil {
				display.Error(err.Error())
				return nil
			}

			fmt.Println(renderer.RenderTimes(resp))
			return nil
		},
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	command.Flags().StringVarP(&opts.endpoint, "endpoint", "e", defaultEndpoint, "Agent endpoint to query")
	command.Flags().StringArrayVarP(&opts.zones, "tz", "t", nil, "IANA zone identifier, repeatable (defaults to UTC)")
	command.Flags().BoolVarP(&opts.quality, "quality", "q", false, "Include time quality information")

	return command
}
