package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/tofu"
)

const (
	version = "0.1.0"
	commit  = "dev"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the version information for DocuFlow Infrastructure Core (DIC).`,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "cmd.version")
	defer span.End()

	slog.Info("Version command executed", "version", version, "commit", commit)

	fmt.Printf("DocuFlow Infrastructure Core (DIC)\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Commit: %s\n", commit)
	fmt.Printf("OpenTofu version: %s\n", tofu.DefaultVersion)

	// Show registered providers
	providers := registry.List(ctx)
	fmt.Printf("Registered cloud providers: %v\n", providers)

	return nil
}
