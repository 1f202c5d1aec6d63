package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dropletform/internal/orchestrator"
	"dropletform/internal/state"
)

func main() {
	var applyFlag bool
	var destroyFlag bool
	var statePath string
	var outputFormat string
	var logLevel string
	var pollInterval time.Duration
	var pollMaxAttempts int

	rootCmd := &cobra.Command{
		Use:   "dropletform <config.tf>",
		Short: "Apply or destroy a single DigitalOcean droplet from a Terraform-subset configuration",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if applyFlag && destroyFlag {
				fmt.Println("--apply and --destroy are mutually exclusive")
				_ = cmd.Help()
				os.Exit(1)
			}

			cfg := orchestrator.Config{
				ConfigPath:      args[0],
				StatePath:       statePath,
				OutputFormat:    outputFormat,
				LogLevel:        logLevel,
				PollInterval:    pollInterval,
				PollMaxAttempts: pollMaxAttempts,
			}

			service := orchestrator.NewDefaultService(cfg)

			ctx := context.Background()
			var err error
			if destroyFlag {
				err = service.Destroy(ctx)
			} else {
				// Apply is the default when neither flag is given.
				err = service.Apply(ctx)
			}

			if err != nil {
				log.Fatalf("Error: %v", err)
			}
		},
	}

	// Define flags
	rootCmd.Flags().BoolVar(&applyFlag, "apply", false, "Apply the configuration (default)")
	rootCmd.Flags().BoolVar(&destroyFlag, "destroy", false, "Destroy the droplet recorded in the state file")
	rootCmd.Flags().StringVar(&statePath, "state", state.DefaultPath, "Path to the state file")
	rootCmd.Flags().StringVar(&outputFormat, "output", "table", "Output format: table or json")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Minimum log level: debug, info, warn or error")
	rootCmd.Flags().DurationVar(&pollInterval, "poll-interval", orchestrator.DefaultPollInterval, "Delay between droplet readiness checks")
	rootCmd.Flags().IntVar(&pollMaxAttempts, "poll-max-attempts", orchestrator.DefaultPollMaxAttempts, "Readiness checks before giving up")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
