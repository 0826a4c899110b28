package azure

// InfrastructureState is an in-memory representation of discovered Azure
// resources, populated by querying ARM APIs. It is NEVER persisted to disk.
type InfrastructureState struct {
	ProjectName string
	Region      string

	// Resource group containing all project resources
	ResourceGroup *ResourceGroupState

	// AKS cluster
	Cluster *ClusterState

	// AKS agent pools (node pools)
	NodePools []NodePoolState
}

// ResourceGroupState represents resource group state discovered from ARM APIs
type ResourceGroupState struct {
	// Resource group name
	Name string

	// Full ARM resource ID
	ID string

	// Azure location
	Location string

	// Provisioning state (Succeeded, Deleting, etc.)
	ProvisioningState string

	// Resource group tags
	Tags map[string]string
}

// ClusterState represents AKS cluster state discovered from ARM APIs
type ClusterState struct {
	// Cluster name
	Name string

	// Full ARM resource ID
	ID string

	// Azure location
	Location string

	// Kubernetes API server FQDN
	FQDN string

	// Kubernetes version
	Version string

	// DNS prefix
	DNSPrefix string

	// Provisioning state (Succeeded, Creating, Updating, Deleting, Failed)
	ProvisioningState string

	// Managed identity type (SystemAssigned, UserAssigned)
	IdentityType string

	// Cluster tags
	Tags map[string]string
}

// NodePoolState represents AKS agent pool state discovered from ARM APIs
type NodePoolState struct {
	// Agent pool name
	Name string

	// Full ARM resource ID
	ID string

	// VM size backing the pool
	VMSize string

	// Autoscaling configuration
	MinCount     int
	MaxCount     int
	CurrentCount int

	// Autoscaling enabled
	AutoscalingEnabled bool

	// OS disk size in GB
	OSDiskSizeGB int

	// Provisioning state
	ProvisioningState string
}
