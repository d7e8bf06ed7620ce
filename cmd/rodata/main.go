// Package main provides the rodata CLI, a streaming client for OData v4
// JSON services.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/recera/rodata/internal/obs"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var metricsShutdown func(context.Context) error
var tracingShutdown func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "rodata",
	Short: "Streaming OData v4 JSON client",
	Long: `rodata reads OData v4 JSON responses without ever buffering a full
response in memory: it fetches one page at a time, walks it token by
token, and renders JSON, XML, or CSV output incrementally.

Commands:
  entityset - read a paginated entity-set collection
  entity    - read a single entity by key
  function  - call an OData function import
  property  - read a single raw property value
  describe  - print the JSON Schema for a command's query options
  probe     - inspect a response's top-level shape without streaming it`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if enabled, _ := cmd.Flags().GetBool("metrics"); enabled {
			shutdown, err := obs.EnableStdoutMetrics(cmd.Context())
			if err != nil {
				return fmt.Errorf("enabling metrics: %w", err)
			}
			metricsShutdown = shutdown
		}
		if enabled, _ := cmd.Flags().GetBool("trace"); enabled {
			shutdown, err := obs.EnableStdoutTracing(cmd.Context())
			if err != nil {
				return fmt.Errorf("enabling tracing: %w", err)
			}
			tracingShutdown = shutdown
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if metricsShutdown != nil {
			if err := metricsShutdown(cmd.Context()); err != nil {
				return err
			}
		}
		if tracingShutdown != nil {
			return tracingShutdown(cmd.Context())
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		diag.Error("Error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML defaults file (default: $HOME/.rodata/config.yaml)")
	rootCmd.PersistentFlags().Bool("metrics", false, "Export pipeline metrics to standard output as JSON")
	rootCmd.PersistentFlags().Bool("trace", false, "Export a span per run to standard output as JSON")
	rootCmd.PersistentFlags().Float64("rate", 0, "Max fetches per second, 0 for unlimited")
}
