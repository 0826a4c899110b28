package config

import "time"

// DocuflowConfig represents the parsed docuflow-config.yaml structure
type DocuflowConfig struct {
	ProjectName string `yaml:"project_name"`
	Provider    string `yaml:"provider"`

	// Provider-specific configurations
	Azure             *AzureConfig `yaml:"azure,omitempty"`
	AmazonWebServices *AWSConfig   `yaml:"amazon_web_services,omitempty"`

	// Database bootstrap configuration
	Database *DatabaseConfig `yaml:"database,omitempty"`

	// Additional fields can be added as needed
	// Using map to capture additional fields for lenient parsing
	AdditionalFields map[string]interface{} `yaml:",inline"`

	// Runtime options set from CLI flags, never read from YAML
	DryRun  bool          `yaml:"-"`
	Force   bool          `yaml:"-"`
	Timeout time.Duration `yaml:"-"`
}

// AzureConfig represents Azure-specific configuration
type AzureConfig struct {
	Region            string                 `yaml:"region,omitempty"`
	KubernetesVersion string                 `yaml:"kubernetes_version,omitempty"`
	ResourceGroupName string                 `yaml:"resource_group_name,omitempty"`
	DefaultVMSize     string                 `yaml:"default_vm_size,omitempty"`
	MinNodeCount      int                    `yaml:"min_node_count,omitempty"`
	MaxNodeCount      int                    `yaml:"max_node_count,omitempty"`
	OSDiskSizeGB      int                    `yaml:"os_disk_size,omitempty"`
	Tags              map[string]string      `yaml:"tags,omitempty"`
	AdditionalFields  map[string]interface{} `yaml:",inline"`
}

// AWSConfig represents AWS-specific configuration.
// The AWS provider is a stub kept for the legacy EKS workflow; only
// credential resolution is wired up.
type AWSConfig struct {
	Region            string                 `yaml:"region"`
	KubernetesVersion string                 `yaml:"kubernetes_version,omitempty"`
	Tags              map[string]string      `yaml:"tags,omitempty"`
	AdditionalFields  map[string]interface{} `yaml:",inline"`
}

// DatabaseConfig represents the PostgreSQL bootstrap configuration.
// The password is intentionally not a YAML field; it is read from the
// PGPASSWORD environment variable (godotenv loads .env in the CLI).
type DatabaseConfig struct {
	Host       string   `yaml:"host,omitempty"`
	Port       int      `yaml:"port,omitempty"`
	AdminUser  string   `yaml:"admin_user,omitempty"`
	Name       string   `yaml:"name,omitempty"`
	Role       string   `yaml:"role,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`

	// InCluster, when present, installs PostgreSQL onto the provisioned
	// cluster via Helm before running the bootstrap statements.
	InCluster *InClusterDatabaseConfig `yaml:"in_cluster,omitempty"`

	AdditionalFields map[string]interface{} `yaml:",inline"`
}

// InClusterDatabaseConfig configures the Helm-managed PostgreSQL release
type InClusterDatabaseConfig struct {
	Namespace    string                 `yaml:"namespace,omitempty"`
	ReleaseName  string                 `yaml:"release_name,omitempty"`
	ChartVersion string                 `yaml:"chart_version,omitempty"`
	Values       map[string]interface{} `yaml:"values,omitempty"`
}

// ValidProviders lists the supported providers
var ValidProviders = []string{"azure", "aws"}

// IsValidProvider checks if the provider string is valid
func IsValidProvider(provider string) bool {
	for _, p := range ValidProviders {
		if p == provider {
			return true
		}
	}
	return false
}
