package config

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// ParseConfig parses a docuflow-config.yaml file and returns the configuration.
// This function uses lenient parsing - it only validates that the project name
// and provider fields exist and that the provider is valid. Provider-specific
// validation happens in the provider's Validate method.
func ParseConfig(ctx context.Context, filePath string) (*DocuflowConfig, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "config.ParseConfig")
	defer span.End()

	span.SetAttributes(attribute.String("config.file", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	var config DocuflowConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
	}

	if config.ProjectName == "" {
		err := fmt.Errorf("project_name field is required in config")
		span.RecordError(err)
		return nil, err
	}

	if config.Provider == "" {
		err := fmt.Errorf("provider field is required in config")
		span.RecordError(err)
		return nil, err
	}

	if !IsValidProvider(config.Provider) {
		err := fmt.Errorf("invalid provider %q, must be one of: %v", config.Provider, ValidProviders)
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("config.provider", config.Provider),
		attribute.String("config.project_name", config.ProjectName),
	)

	return &config, nil
}

// UnmarshalProviderConfig converts the any provider config to a concrete type.
// The target parameter should be a pointer to the provider-specific config struct.
// This function re-marshals and unmarshals to handle the type conversion properly.
func UnmarshalProviderConfig(ctx context.Context, providerConfig any, target any) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "config.UnmarshalProviderConfig")
	defer span.End()

	if providerConfig == nil {
		err := fmt.Errorf("provider config is nil")
		span.RecordError(err)
		return err
	}

	data, err := yaml.Marshal(providerConfig)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal provider config: %w", err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to unmarshal provider config: %w", err)
	}

	return nil
}
