// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package agent

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/platform-engineering-labs/tickd/internal/agent"
	tickdconfig "github.com/platform-engineering-labs/tickd/internal/config"

	"github.com/platform-engineering-labs/tickd/internal/cli/cmd"
	"github.com/platform-engineering-labs/tickd/internal/cli/config"
	"github.com/platform-engineering-labs/tickd/internal/cli/display"
)

func startCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "start",
		Short: "Start the agent",
		Run: func(command *cobra.Command, args []string) {
			configPath, _ := command.Flags().GetString("config")
			if configPath == "" {
				// Only load the default config file when it exists; a missing
				// file means environment variables and defaults apply.
				if path := config.Config.ConfigFilePath(); path != "" {
					if _, err := os.Stat(path); err == nil {
						configPath = path
					}
				}
			}

			cfg, err := tickdconfig.Load(configPath)
			if err != nil {
				display.Error(err.Error())
				return
			}

			if err := cfg.Validate(); err != nil {
				display.Error(err.Error())
				return
			}

			// Ensure agent ID
			if err := config.Config.EnsureAgentID(); err != nil {
				display.Error("Error starting agent: " + err.Error())
				return
			}

			agentID, err := config.Config.AgentID()
			if err != nil {
				display.Error("Error retrieving agent ID: " + err.Error())
				return
			}

			a := agent.New(cfg, agentID)

			if err := a.Start(); err != nil {
				display.Error("Error starting agent: " + err.Error())
				return
			}

			a.Wait()
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			display.PrintBanner()
		},
		SilenceErrors: true,
	}

	command.Flags().StringP("config", "c", "", "Path to the configuration file")

	return command
}

func stopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the agent",
		Run: func(cmd *cobra.Command, args []string) {
			a := agent.Agent{}
			if err := a.Stop(); err != nil {
				display.Error("Error stopping agent: " + err.Error())
				return
			}

			display.Success("Agent stopped")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			display.PrintBanner()
		},
		SilenceErrors: true,
	}
}

func AgentCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "agent",
		Short: "Agent management commands",
		Annotations: map[string]string{
			"type":     "Execution",
			"examples": "{{.Name}} {{.Command}} start  |  {{.Name}} {{.Command}} stop",
		},
		SilenceErrors: true,
	}

	command.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)

	start := startCmd()
	stop := stopCmd()

	command.AddCommand(start, stop)
	return command
}
