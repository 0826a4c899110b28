package aws

// Config represents AWS-specific configuration from the amazon_web_services
// block of docuflow-config.yaml
type Config struct {
	// Region is the AWS region (e.g., us-east-1)
	Region string `yaml:"region"`

	// KubernetesVersion is the EKS Kubernetes version used by the legacy pipeline
	KubernetesVersion string `yaml:"kubernetes_version,omitempty"`

	// Tags are user-provided tags recorded for the legacy pipeline
	Tags map[string]string `yaml:"tags,omitempty"`

	// AdditionalFields captures unknown fields for forward compatibility
	AdditionalFields map[string]interface{} `yaml:",inline"`
}
