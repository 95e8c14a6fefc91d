// Package main is the entry point for the mcwatch CLI.
//
// mcwatch can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary approach.
//
// Usage:
//
//	mcwatch run -c config.yaml      # Start the monitor
//	mcwatch validate -c config.yaml # Validate configuration
//	mcwatch version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "mcwatch",
	Short: "A Minecraft server status monitor with chat notifications",
	Long: `mcwatch polls a Minecraft server's public status API on a fixed
interval and posts notifications to a chat webhook when the server goes
online or offline, changes version or gamemode, or players join and leave.

Offline detection is debounced: a configurable number of consecutive
offline-or-failed polls is required before an OFFLINE alert is sent, so a
single flaky poll never produces a false alarm.

Quick start:
  1. Create a config file (mcwatch.yaml)
  2. Run: mcwatch run -c mcwatch.yaml

Example config:
  server: play.example.com:19132
  server_type: bedrock
  check_interval: 5m
  webhook_url: ${DISCORD_WEBHOOK_URL:-}`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this mcwatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mcwatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
