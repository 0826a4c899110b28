package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/provider"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/provider/aws"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/provider/azure"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/telemetry"
)

var (
	// Global provider registry
	registry *provider.Registry

	// Root command
	rootCmd = &cobra.Command{
		Use:   "dic",
		Short: "DocuFlow Infrastructure Core - Cloud infrastructure management for DocuFlow",
		Long: `DocuFlow Infrastructure Core (DIC) is a standalone CLI tool that manages
the cloud infrastructure and database backing the DocuFlow document-processing
platform using native cloud SDKs with declarative semantics.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup structured logging
			logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}))
			slog.SetDefault(logger)
		},
	}
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	// This allows users to optionally use .env for local development
	_ = godotenv.Load()

	// Initialize provider registry
	registry = provider.NewRegistry()

	// Register all providers explicitly (no blank imports or init() magic)
	ctx := context.Background()

	if err := registry.Register(ctx, "azure", azure.NewProvider()); err != nil {
		log.Fatalf("Failed to register Azure provider: %v", err)
	}

	if err := registry.Register(ctx, "aws", aws.NewProvider()); err != nil {
		log.Fatalf("Failed to register AWS provider: %v", err)
	}

	// Add subcommands
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(kubeconfigCmd)
	rootCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	ctx := context.Background()

	// Setup OpenTelemetry
	_, shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		slog.Error("Failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			slog.Error("Failed to shutdown telemetry", "error", err)
		}
	}()

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
