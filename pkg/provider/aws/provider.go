// Package aws is a placeholder provider for the legacy EKS deployment
// workflow. The documented Jenkins/Ansible pipeline provisions EKS outside
// of this tool; only configuration parsing and credential resolution are
// wired here so existing configs validate cleanly.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	docuflowconfig "github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

// Provider implements the AWS provider
type Provider struct{}

// NewProvider creates a new AWS provider
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "aws"
}

// ConfigKey returns the YAML key for the AWS configuration block
func (p *Provider) ConfigKey() string {
	return "amazon_web_services"
}

// extractAWSConfig converts the any provider config to AWS Config type
func extractAWSConfig(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) (*Config, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "aws.extractAWSConfig")
	defer span.End()

	if cfg.AmazonWebServices == nil {
		err := fmt.Errorf("amazon_web_services configuration is required")
		span.RecordError(err)
		return nil, err
	}

	var awsCfg Config
	if err := docuflowconfig.UnmarshalProviderConfig(ctx, cfg.AmazonWebServices, &awsCfg); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to unmarshal AWS config: %w", err)
	}

	return &awsCfg, nil
}

// Validate validates the AWS configuration and resolves credentials through
// the default chain (env vars, shared config files, instance roles)
func (p *Provider) Validate(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "aws.Validate")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", "aws"),
		attribute.String("project_name", cfg.ProjectName),
	)

	awsCfg, err := extractAWSConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if awsCfg.Region == "" {
		err := fmt.Errorf("AWS region is required")
		span.RecordError(err)
		return err
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsCfg.Region))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	if _, err := sdkCfg.Credentials.Retrieve(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to retrieve AWS credentials: %w", err)
	}

	span.SetAttributes(
		attribute.Bool("validation_passed", true),
		attribute.String("aws.region", awsCfg.Region),
	)

	return nil
}

// Deploy is not implemented; EKS provisioning lives in the legacy pipeline
func (p *Provider) Deploy(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	status.Warning(ctx, "AWS deployments are handled by the legacy Jenkins/Ansible pipeline")
	return fmt.Errorf("aws provider does not support deploy: use the legacy EKS pipeline or the azure provider")
}

// Destroy is not implemented; EKS teardown lives in the legacy pipeline
func (p *Provider) Destroy(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	status.Warning(ctx, "AWS teardown is handled by the legacy Jenkins/Ansible pipeline")
	return fmt.Errorf("aws provider does not support destroy: use the legacy EKS pipeline or the azure provider")
}

// GetKubeconfig is not implemented for the legacy EKS workflow
func (p *Provider) GetKubeconfig(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) ([]byte, error) {
	return nil, fmt.Errorf("aws provider does not support kubeconfig retrieval: use 'aws eks update-kubeconfig' against the legacy cluster")
}

// Summary returns AWS-specific configuration details for display
func (p *Provider) Summary(cfg *docuflowconfig.DocuflowConfig) map[string]string {
	if cfg.AmazonWebServices == nil {
		return map[string]string{}
	}
	return map[string]string{
		"Region":  cfg.AmazonWebServices.Region,
		"Cluster": cfg.ProjectName,
	}
}
