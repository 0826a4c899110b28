package azure

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	docuflowconfig "github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

// ValidateCredentials performs a live check against the ARM API to verify
// that the resolved credentials can actually read the subscription. This is
// stronger than Validate, which is purely local.
func (p *Provider) ValidateCredentials(ctx context.Context, cfg *docuflowconfig.DocuflowConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.ValidateCredentials")
	defer span.End()

	azureCfg, err := extractAzureConfig(ctx, cfg)
	if err != nil {
		span.RecordError(err)
		return err
	}
	azureCfg.applyDefaults()

	resourceGroupName := azureCfg.resourceGroupName(cfg.ProjectName)

	span.SetAttributes(
		attribute.String("project_name", cfg.ProjectName),
		attribute.String("resource_group", resourceGroupName),
	)

	clients, err := newClientsFunc(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create Azure clients: %w", err)
	}

	// Existence checks are the cheapest authorized read: a 404 still proves
	// the token was accepted, while 401/403 surfaces as an error
	resp, err := clients.ResourceGroups.CheckExistence(ctx, resourceGroupName, nil)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("azure credentials check failed: %w", err)
	}

	span.SetAttributes(
		attribute.Bool("azure.credentials_valid", true),
		attribute.Bool("resource_group_exists", resp.Success),
	)

	if resp.Success {
		status.Infof(ctx, "Credentials valid; resource group %s exists", resourceGroupName)
	} else {
		status.Infof(ctx, "Credentials valid; resource group %s does not exist yet", resourceGroupName)
	}

	return nil
}
