package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
)

var (
	kubeconfigConfigFile string
	kubeconfigOutputFile string

	kubeconfigCmd = &cobra.Command{
		Use:   "kubeconfig",
		Short: "Generate kubeconfig for the deployed cluster",
		Long: `Generate and output the kubeconfig file for accessing the Kubernetes
cluster deployed by DIC. This command retrieves the cluster credentials from
the cloud provider and writes a kubeconfig file that can be used with kubectl
or other Kubernetes clients.`,
		RunE: runKubeconfig,
	}
)

func init() {
	kubeconfigCmd.Flags().StringVarP(&kubeconfigConfigFile, "file", "f", "", "Path to docuflow-config.yaml file (required)")
	kubeconfigCmd.Flags().StringVarP(&kubeconfigOutputFile, "output", "o", "", "Path to output kubeconfig file (defaults to stdout)")
	// Panic is appropriate in init() since we cannot return errors and this indicates a programming error
	if err := kubeconfigCmd.MarkFlagRequired("file"); err != nil {
		panic(err)
	}
}

func runKubeconfig(cmd *cobra.Command, args []string) error {
	// Get cancellable context from cobra (for signal handling)
	ctx := cmd.Context()
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "cmd.kubeconfig")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", kubeconfigConfigFile))

	// Parse configuration
	cfg, err := config.ParseConfig(ctx, kubeconfigConfigFile)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to parse configuration", "error", err, "file", kubeconfigConfigFile)
		return err
	}

	slog.Info("Configuration parsed successfully",
		"provider", cfg.Provider,
		"project_name", cfg.ProjectName,
	)

	// Get the appropriate provider
	prov, err := registry.Get(ctx, cfg.Provider)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to get provider", "error", err, "provider", cfg.Provider)
		return err
	}

	kubeconfigBytes, err := prov.GetKubeconfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		slog.Error("Failed to generate kubeconfig", "error", err, "provider", prov.Name())
		return err
	}

	if kubeconfigOutputFile != "" {
		if err := os.WriteFile(kubeconfigOutputFile, kubeconfigBytes, 0600); err != nil {
			span.RecordError(err)
			slog.Error("Failed to write kubeconfig file", "error", err, "file", kubeconfigOutputFile)
			return err
		}
		slog.Info("Kubeconfig written successfully", "file", kubeconfigOutputFile)
	} else {
		slog.Info("Kubeconfig written successfully to stdout")
		os.Stdout.Write(kubeconfigBytes)
	}

	return nil
}
