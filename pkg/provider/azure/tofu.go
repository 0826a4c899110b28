package azure

import (
	"context"
	"embed"
)

// Embed all files in the templates directory, including dotfiles (i.e. .terraform.lock.hcl)
//
//go:embed all:templates
var tofuTemplates embed.FS

type TFVars struct {
	ProjectName       string            `json:"project_name"`
	Location          string            `json:"location"`
	ResourceGroupName string            `json:"resource_group_name"`
	KubernetesVersion *string           `json:"kubernetes_version,omitempty"`
	DefaultVMSize     string            `json:"default_vm_size"`
	MinNodeCount      int               `json:"min_node_count"`
	MaxNodeCount      int               `json:"max_node_count"`
	OSDiskSize        int               `json:"os_disk_size"`
	Tags              map[string]string `json:"tags,omitempty"`
}

func (c *Config) toTFVars(ctx context.Context, projectName string) TFVars {
	cfg := *c
	cfg.applyDefaults()

	vars := TFVars{
		ProjectName:       projectName,
		Location:          cfg.Region,
		ResourceGroupName: cfg.resourceGroupName(projectName),
		DefaultVMSize:     cfg.DefaultVMSize,
		MinNodeCount:      cfg.MinNodeCount,
		MaxNodeCount:      cfg.MaxNodeCount,
		OSDiskSize:        cfg.OSDiskSizeGB,
		Tags:              MergeTags(ctx, GenerateBaseTags(ctx, projectName), cfg.Tags),
	}

	// Set pointer fields only when values are provided, so omitempty excludes them from JSON.
	// This lets Terraform use its defaults instead of receiving empty strings.
	if cfg.KubernetesVersion != "" {
		vars.KubernetesVersion = &cfg.KubernetesVersion
	}

	return vars
}
