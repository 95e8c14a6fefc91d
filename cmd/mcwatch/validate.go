package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipovic/mcwatch/config"
)

// validateCmd validates a config file without starting the monitor.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate an mcwatch configuration file without starting the monitor.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for CI/CD pipelines or pre-deployment checks.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  mcwatch validate -c config.yaml
  mcwatch validate --config /etc/mcwatch/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	notify := "stdout"
	if cfg.WebhookURL != "" {
		notify = "webhook"
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Server:            %s (%s)\n", cfg.Server, cfg.ServerType)
	fmt.Printf("  Check interval:    %s\n", cfg.CheckInterval.Duration())
	fmt.Printf("  Offline threshold: %d\n", cfg.OfflineThreshold)
	fmt.Printf("  Notifications:     %s\n", notify)
	fmt.Printf("  State path:        %s\n", cfg.StatePath)

	return nil
}
