package azure

import (
	"context"
	"fmt"

	"github.com/hashicorp/terraform-exec/tfexec"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	docuflowconfig "github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/tofu"
)

// Provider implements the Azure provider
type Provider struct{}

// NewProvider creates a new Azure provider
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "azure"
}

// ConfigKey returns the YAML key for the Azure configuration block
func (p *Provider) ConfigKey() string {
	return "azure"
}

// extractAzureConfig converts the any provider config to Azure Config type
func extractAzureConfig(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) (*Config, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.extractAzureConfig")
	defer span.End()

	if cfg.Azure == nil {
		err := fmt.Errorf("azure configuration is required")
		span.RecordError(err)
		return nil, err
	}

	var azureCfg Config
	if err := docuflowconfig.UnmarshalProviderConfig(ctx, cfg.Azure, &azureCfg); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal Azure config: %w", err)
	}

	return &azureCfg, nil
}

// Validate validates the Azure configuration with pre-flight checks.
// All checks here are local - no cloud API calls are made. Use the optional
// ValidateCredentials for a live check against the ARM API.
func (p *Provider) Validate(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.Validate")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("project_name", cfg.ProjectName),
	)

	azureCfg, err := extractAzureConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	azureCfg.applyDefaults()

	// Validate Kubernetes version format
	if azureCfg.KubernetesVersion != "" {
		// Basic validation - should be like "1.31", "1.31.2", etc.
		if len(azureCfg.KubernetesVersion) < 3 {
			err := fmt.Errorf("invalid Kubernetes version format: %s", azureCfg.KubernetesVersion)
			span.RecordError(err)
			return err
		}
	}

	// Validate autoscaler bounds locally before any cloud call
	if azureCfg.MinNodeCount < 1 {
		err := fmt.Errorf("min_node_count must be at least 1, got %d", azureCfg.MinNodeCount)
		span.RecordError(err)
		return err
	}

	if azureCfg.MaxNodeCount < 1 {
		err := fmt.Errorf("max_node_count must be at least 1, got %d", azureCfg.MaxNodeCount)
		span.RecordError(err)
		return err
	}

	if azureCfg.MinNodeCount > azureCfg.MaxNodeCount {
		err := fmt.Errorf("min_node_count (%d) cannot be greater than max_node_count (%d)", azureCfg.MinNodeCount, azureCfg.MaxNodeCount)
		span.RecordError(err)
		return err
	}

	if azureCfg.OSDiskSizeGB < 1 {
		err := fmt.Errorf("os_disk_size must be at least 1 GB, got %d", azureCfg.OSDiskSizeGB)
		span.RecordError(err)
		return err
	}

	// User tags cannot use the reserved DIC tag namespace
	for key := range azureCfg.Tags {
		switch key {
		case TagManagedBy, TagProjectName, TagResourceType, TagVersion:
			err := fmt.Errorf("tag key %s is reserved for DIC-managed tags", key)
			span.RecordError(err)
			return err
		}
	}

	span.SetAttributes(
		attribute.Bool("validation_passed", true),
		attribute.String("azure.region", azureCfg.Region),
	)

	return nil
}

// Deploy provisions Azure infrastructure through OpenTofu
func (p *Provider) Deploy(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.Deploy")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("project_name", cfg.ProjectName),
		attribute.Bool("dry_run", cfg.DryRun),
	)

	azureCfg, err := extractAzureConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}
	azureCfg.applyDefaults()

	span.SetAttributes(attribute.String("azure.region", azureCfg.Region))

	if cfg.DryRun {
		if err := p.dryRunDeploy(ctx, cfg, azureCfg); err != nil {
			span.RecordError(err)
			return err
		}
	}

	status.Progressf(ctx, "Preparing OpenTofu workspace for %s...", cfg.ProjectName)

	tf, err := tofu.Setup(ctx, cfg.ProjectName, tofuTemplates, azureCfg.toTFVars(ctx, cfg.ProjectName))
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := tf.Init(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	if cfg.DryRun {
		if _, err := tf.Plan(ctx); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	status.Progressf(ctx, "Applying infrastructure changes in %s...", azureCfg.Region)

	// Long-running tofu operations get the platform's SIGINT-safe context so
	// Ctrl+C reaches tofu exactly once
	if err := tf.Apply(tofu.SignalSafeContext(ctx)); err != nil {
		span.RecordError(err)
		return err
	}

	status.Successf(ctx, "AKS cluster %s is ready in resource group %s", cfg.ProjectName, azureCfg.resourceGroupName(cfg.ProjectName))

	return nil
}

// Destroy tears down Azure infrastructure in dependency order:
// node pools, then the cluster, then the resource group.
func (p *Provider) Destroy(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.Destroy")
	defer span.End()

	azureCfg, err := extractAzureConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}
	azureCfg.applyDefaults()

	resourceGroupName := azureCfg.resourceGroupName(cfg.ProjectName)

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("cluster_name", cfg.ProjectName),
		attribute.String("resource_group", resourceGroupName),
		attribute.Bool("dry_run", cfg.DryRun),
		attribute.Bool("force", cfg.Force),
	)

	if cfg.DryRun {
		clients, err := newClientsFunc(ctx)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to create Azure clients: %w", err)
		}
		if err := p.dryRunDestroy(ctx, clients, cfg.ProjectName, resourceGroupName); err != nil {
			span.RecordError(err)
			return err
		}
	}

	tf, err := tofu.Setup(ctx, cfg.ProjectName, tofuTemplates, azureCfg.toTFVars(ctx, cfg.ProjectName))
	if err != nil {
		span.RecordError(err)
		return err
	}

	if err := tf.Init(ctx); err != nil {
		span.RecordError(err)
		return err
	}

	if cfg.DryRun {
		if _, err := tf.Plan(ctx, tfexec.Destroy(true)); err != nil {
			span.RecordError(err)
			return err
		}
		return nil
	}

	status.Progressf(ctx, "Destroying infrastructure in resource group %s...", resourceGroupName)

	if err := tf.Destroy(tofu.SignalSafeContext(ctx)); err != nil {
		span.RecordError(err)
		return err
	}

	// Local state is no longer meaningful once the resources are gone
	if err := tofu.RemoveWorkspace(cfg.ProjectName); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to remove workspace: %w", err)
	}

	status.Successf(ctx, "Infrastructure for %s destroyed", cfg.ProjectName)

	return nil
}

// GetKubeconfig fetches admin credentials for the AKS cluster
func (p *Provider) GetKubeconfig(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) ([]byte, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.GetKubeconfig")
	defer span.End()

	azureCfg, err := extractAzureConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	azureCfg.applyDefaults()

	clusterName := cfg.ProjectName
	resourceGroupName := azureCfg.resourceGroupName(cfg.ProjectName)

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("cluster_name", clusterName),
		attribute.String("resource_group", resourceGroupName),
	)

	clients, err := newClientsFunc(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create Azure clients: %w", err)
	}

	kubeconfigBytes, err := fetchAdminKubeconfig(ctx, clients, resourceGroupName, clusterName)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	return kubeconfigBytes, nil
}

// Summary returns Azure-specific configuration details for display
func (p *Provider) Summary(cfg *docuflowconfig.DocuflowConfig) map[string]string {
	if cfg.Azure == nil {
		return map[string]string{}
	}

	azureCfg := *cfg.Azure
	region := azureCfg.Region
	if region == "" {
		region = DefaultRegion
	}

	resourceGroupName := azureCfg.ResourceGroupName
	if resourceGroupName == "" {
		resourceGroupName = fmt.Sprintf("%s-rg", cfg.ProjectName)
	}

	return map[string]string{
		"Region":         region,
		"Resource Group": resourceGroupName,
		"Cluster":        cfg.ProjectName,
	}
}
