package azure

import "fmt"

// Defaults applied when the corresponding field is omitted from the
// azure block of docuflow-config.yaml.
const (
	// DefaultRegion is the Azure location used when none is configured
	DefaultRegion = "eastus"
	// DefaultVMSize is the VM size for the default node pool
	DefaultVMSize = "Standard_D2_v2"
	// DefaultMinNodeCount is the autoscaler lower bound for the default node pool
	DefaultMinNodeCount = 2
	// DefaultMaxNodeCount is the autoscaler upper bound for the default node pool
	DefaultMaxNodeCount = 4
	// DefaultOSDiskSizeGB is the OS disk size for default node pool VMs
	DefaultOSDiskSizeGB = 30
	// DefaultNodePoolName is the name of the AKS default node pool
	DefaultNodePoolName = "default"
)

// Config represents Azure-specific configuration from the azure block
// of docuflow-config.yaml
type Config struct {
	// Region is the Azure location (e.g., eastus, westus2)
	Region string `yaml:"region,omitempty"`

	// KubernetesVersion is the AKS Kubernetes version. When empty, AKS
	// picks its current default version.
	KubernetesVersion string `yaml:"kubernetes_version,omitempty"`

	// ResourceGroupName overrides the derived <project>-rg resource group name
	ResourceGroupName string `yaml:"resource_group_name,omitempty"`

	// DefaultVMSize is the VM size for the default node pool
	DefaultVMSize string `yaml:"default_vm_size,omitempty"`

	// MinNodeCount is the autoscaler lower bound for the default node pool
	MinNodeCount int `yaml:"min_node_count,omitempty"`

	// MaxNodeCount is the autoscaler upper bound for the default node pool
	MaxNodeCount int `yaml:"max_node_count,omitempty"`

	// OSDiskSizeGB is the OS disk size in GB for default node pool VMs
	OSDiskSizeGB int `yaml:"os_disk_size,omitempty"`

	// Tags are user-provided tags applied to all resources
	Tags map[string]string `yaml:"tags,omitempty"`

	// AdditionalFields captures unknown fields for forward compatibility
	AdditionalFields map[string]interface{} `yaml:",inline"`
}

// applyDefaults fills in zero-valued fields with the documented defaults.
// Zero is treated as unset for the numeric fields; a node pool with zero
// minimum or a zero-sized disk is not a configuration this provider supports.
func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.DefaultVMSize == "" {
		c.DefaultVMSize = DefaultVMSize
	}
	if c.MinNodeCount == 0 {
		c.MinNodeCount = DefaultMinNodeCount
	}
	if c.MaxNodeCount == 0 {
		c.MaxNodeCount = DefaultMaxNodeCount
	}
	if c.OSDiskSizeGB == 0 {
		c.OSDiskSizeGB = DefaultOSDiskSizeGB
	}
}

// resourceGroupName returns the resource group for a project.
// Defaults to <project>-rg unless explicitly overridden in config.
func (c *Config) resourceGroupName(projectName string) string {
	if c.ResourceGroupName != "" {
		return c.ResourceGroupName
	}
	return fmt.Sprintf("%s-rg", projectName)
}
