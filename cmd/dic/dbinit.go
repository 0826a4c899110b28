package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/database"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/kubernetes"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

var (
	dbInitConfigFile string
	dbInitTimeout    string

	dbInitCmd = &cobra.Command{
		Use:   "db-init",
		Short: "Initialize the document-processing database",
		Long: `Initialize the PostgreSQL database used by the DocuFlow platform.
This command creates the required extensions, ensures the application role
exists, and grants it full privileges on the application database. Every
statement is idempotent, so re-running db-init is safe.

When the database block in docuflow-config.yaml contains an in_cluster
section, PostgreSQL is first installed onto the deployed cluster via Helm.

The admin password is read from the PGPASSWORD environment variable.`,
		RunE: runDBInit,
	}
)

func init() {
	dbInitCmd.Flags().StringVarP(&dbInitConfigFile, "file", "f", "", "Path to docuflow-config.yaml file (required)")
	dbInitCmd.Flags().StringVar(&dbInitTimeout, "timeout", "", "Override default timeout (e.g., '15m', '1h')")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := dbInitCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runDBInit(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "cmd.dbinit")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", dbInitConfigFile))

	slog.Info("Starting database initialization", "config_file", dbInitConfigFile)

	// Setup status handler for progress updates
	ctx, cleanupStatus := status.StartHandler(ctx, statusLogHandler())
	defer cleanupStatus()

	// Handle context cancellation (from signal interrupt)
	defer func() {
		if ctx.Err() == context.Canceled {
			slog.Warn("Database initialization interrupted by user")
		}
	}()

	// Parse configuration
	cfg, err := config.ParseConfig(ctx, dbInitConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", dbInitConfigFile)
		return err
	}

	// Apply custom timeout if specified
	if dbInitTimeout != "" {
		duration, err := time.ParseDuration(dbInitTimeout)
		if err != nil {
			span.RecordError(err)
			slog.Error("Invalid timeout duration", "error", err, "timeout", dbInitTimeout)
			return fmt.Errorf("invalid timeout duration %q: %w", dbInitTimeout, err)
		}
		cfg.Timeout = duration
		span.SetAttributes(attribute.String("timeout", dbInitTimeout))
		slog.Info("Using custom timeout", "timeout", duration)
	}

	// Install PostgreSQL onto the cluster first when configured
	if cfg.Database != nil && cfg.Database.InCluster != nil {
		if err := installInClusterPostgres(ctx, cfg); err != nil {
			span.RecordError(err)
			slog.Error("In-cluster PostgreSQL installation failed", "error", err)
			return err
		}
	}

	settings := database.ResolveSettings(cfg.Database)

	slog.Info("Bootstrapping database",
		"host", settings.Host,
		"port", settings.Port,
		"database", settings.Name,
		"role", settings.Role,
	)

	if err := database.Bootstrap(ctx, settings); err != nil {
		span.RecordError(err)
		slog.Error("Database bootstrap failed", "error", err, "database", settings.Name)
		return err
	}

	slog.Info("Database initialization completed successfully", "database", settings.Name)

	return nil
}

// installInClusterPostgres fetches cluster credentials from the provider,
// waits for the cluster to become ready, and installs PostgreSQL via Helm
func installInClusterPostgres(ctx context.Context, cfg *config.DocuflowConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "cmd.installInClusterPostgres")
	defer span.End()

	prov, err := registry.Get(ctx, cfg.Provider)
	if err != nil {
		span.RecordError(err)
		return err
	}

	kubeconfigBytes, err := prov.GetKubeconfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to get cluster credentials: %w", err)
	}

	client, err := kubernetes.NewClientFromKubeconfig(ctx, kubeconfigBytes)
	if err != nil {
		span.RecordError(err)
		return err
	}

	readyTimeout := cfg.Timeout
	if readyTimeout == 0 {
		readyTimeout = 10 * time.Minute
	}

	if err := kubernetes.WaitForClusterReady(ctx, client, readyTimeout); err != nil {
		span.RecordError(err)
		return err
	}

	inCluster := database.ResolveInClusterConfig(cfg.Database.InCluster)
	if cfg.Timeout != 0 {
		inCluster.Timeout = cfg.Timeout
	}

	if err := kubernetes.CreateNamespace(ctx, client, inCluster.Namespace); err != nil {
		span.RecordError(err)
		return err
	}

	return database.InstallPostgres(ctx, kubeconfigBytes, inCluster)
}
