package provider

import (
	"context"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
)

// Provider defines the interface that all cloud providers must implement.
//
// This interface establishes the abstraction boundary between CLI commands and
// provider implementations. CLI commands depend only on this interface, never on
// concrete provider types, enabling new providers to be added without modifying
// CLI code (Open/Closed Principle).
type Provider interface {
	// Name returns the short provider identifier used in CLI output, logging,
	// and OpenTelemetry span attributes (e.g., "azure", "aws").
	Name() string

	// ConfigKey returns the YAML key used for this provider's configuration block.
	// This allows providers to extract their own config block without the config
	// package needing to know about provider-specific types.
	// Examples: "azure", "amazon_web_services"
	ConfigKey() string

	// Validate checks that the configuration is valid before any infrastructure
	// operations. This includes verifying required fields, validating formats,
	// and checking cloud-specific constraints (e.g., autoscaler bounds).
	Validate(ctx context.Context, config *config.DocuflowConfig) error

	// Deploy creates or updates infrastructure to match the desired configuration.
	// Backed by OpenTofu, this operation is idempotent - running Deploy multiple
	// times with the same config results in the same infrastructure state.
	// Use --dry-run flag to preview changes without applying them (runs tofu plan).
	Deploy(ctx context.Context, config *config.DocuflowConfig) error

	// Destroy tears down all infrastructure resources in the correct order,
	// respecting dependencies (node pools before cluster, cluster before
	// resource group). Backed by OpenTofu's tofu destroy command.
	Destroy(ctx context.Context, config *config.DocuflowConfig) error

	// GetKubeconfig generates a kubeconfig file for authenticating with the
	// Kubernetes cluster. The returned bytes can be written to a file or used
	// directly with Kubernetes client libraries.
	GetKubeconfig(ctx context.Context, config *config.DocuflowConfig) ([]byte, error)

	// Summary returns key-value pairs describing provider-specific configuration
	// for display purposes. This allows CLI commands to show details like region
	// or resource group in confirmation prompts without importing provider
	// packages. Used in destructive operations to help users confirm they're
	// targeting the correct infrastructure.
	Summary(config *config.DocuflowConfig) map[string]string
}

// CredentialValidator is an optional interface for providers that support
// thorough credential validation beyond the basic checks in Validate, such as
// performing a live read against the cloud management API.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, config *config.DocuflowConfig) error
}

// InfrastructureState represents the discovered state of infrastructure
// This is an in-memory struct populated by querying cloud APIs
// It is NEVER persisted to disk (stateless architecture)
type InfrastructureState struct {
	ProjectName string
	Provider    string
	Region      string

	// Resource container state (Azure resource group, AWS account scoping)
	ResourceGroup *ResourceGroupState

	// Cluster state
	Cluster *ClusterState

	// Node pools state
	NodePools []NodePoolState
}

// ResourceGroupState represents the resource container state
type ResourceGroupState struct {
	// Resource group name
	Name string

	// Provider-specific identifier
	ID string

	// Region/location
	Region string

	// Provisioning status
	Status string

	// Tags on the resource group
	Tags map[string]string
}

// ClusterState represents the Kubernetes cluster state
type ClusterState struct {
	// Cluster name
	Name string

	// Provider-specific cluster identifier (AKS resource ID, EKS ARN, etc.)
	ID string

	// Kubernetes API endpoint
	Endpoint string

	// Kubernetes version
	Version string

	// Cluster status (Succeeded, Creating, Deleting, etc.)
	Status string

	// Additional provider-specific fields
	Metadata map[string]string
}

// NodePoolState represents a node pool state
type NodePoolState struct {
	// Node pool name
	Name string

	// Provider-specific identifier
	ID string

	// Instance/machine type
	InstanceType string

	// Autoscaling configuration
	MinSize     int
	MaxSize     int
	DesiredSize int

	// OS disk size in GB
	OSDiskSizeGB int

	// Autoscaling enabled
	AutoscalingEnabled bool

	// Current status
	Status string

	// Additional provider-specific fields
	Metadata map[string]string
}
