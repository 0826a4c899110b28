package azure

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	// TagManagedBy is the DIC tag key for managed-by (all resources must have this)
	TagManagedBy = "dic.docuflow.dev/managed-by"
	// TagProjectName is the DIC tag key for project-name (all resources must have this)
	TagProjectName = "dic.docuflow.dev/project-name"
	// TagResourceType is the DIC tag key for resource-type (all resources must have this)
	TagResourceType = "dic.docuflow.dev/resource-type"
	// TagVersion is the DIC tag key for version (all resources must have this)
	TagVersion = "dic.docuflow.dev/version"

	// DICVersion is the current DIC version (updated with each release)
	DICVersion = "0.1.0"

	// ManagedByValue is the value used for the managed-by tag
	ManagedByValue = "dic"
)

// Resource type constants for tagging
const (
	ResourceTypeResourceGroup = "resource-group"
	ResourceTypeAKSCluster    = "aks-cluster"
	ResourceTypeNodePool      = "node-pool"
)

// GenerateBaseTags creates the base set of DIC tags required for all resources.
// The resource-type tag is applied per resource by the Terraform templates.
func GenerateBaseTags(ctx context.Context, projectName string) map[string]string {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.GenerateBaseTags")
	defer span.End()

	span.SetAttributes(
		attribute.String("project_name", projectName),
	)

	return map[string]string{
		TagManagedBy:   ManagedByValue,
		TagProjectName: projectName,
		TagVersion:     DICVersion,
	}
}

// MergeTags merges user-provided tags with DIC base tags
// User tags cannot override DIC tags (dic.docuflow.dev/* keys)
func MergeTags(ctx context.Context, dicTags map[string]string, userTags map[string]string) map[string]string {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.MergeTags")
	defer span.End()

	merged := make(map[string]string)

	// Add user tags first
	for k, v := range userTags {
		merged[k] = v
	}

	// DIC tags override user tags (especially for dic.docuflow.dev/* keys)
	for k, v := range dicTags {
		merged[k] = v
	}

	span.SetAttributes(
		attribute.Int("dic_tags_count", len(dicTags)),
		attribute.Int("user_tags_count", len(userTags)),
		attribute.Int("merged_tags_count", len(merged)),
	)

	return merged
}

// FromAzureTags converts the ARM map[string]*string tag representation to
// the internal map[string]string form. Nil values become empty strings.
func FromAzureTags(tags map[string]*string) map[string]string {
	converted := make(map[string]string, len(tags))
	for k, v := range tags {
		if v != nil {
			converted[k] = *v
		} else {
			converted[k] = ""
		}
	}
	return converted
}

// ToAzureTags converts map[string]string tags to the ARM map[string]*string form
func ToAzureTags(tags map[string]string) map[string]*string {
	converted := make(map[string]*string, len(tags))
	for k, v := range tags {
		value := v
		converted[k] = &value
	}
	return converted
}
