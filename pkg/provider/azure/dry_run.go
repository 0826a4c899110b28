package azure

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/provider"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

// dryRunDeploy shows what would be deployed without making changes
func (p *Provider) dryRunDeploy(ctx context.Context, cfg *config.DocuflowConfig, azureCfg *Config) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.dryRunDeploy")
	defer span.End()

	clusterName := cfg.ProjectName
	resourceGroupName := azureCfg.resourceGroupName(cfg.ProjectName)

	span.SetAttributes(
		attribute.String("cluster_name", clusterName),
		attribute.String("resource_group", resourceGroupName),
	)

	clients, err := newClientsFunc(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create Azure clients: %w", err)
	}

	status.Info(ctx, "Discovering existing infrastructure...")

	state, err := p.Query(ctx, clients, cfg.ProjectName, resourceGroupName)
	if err != nil {
		span.RecordError(err)
		return err
	}

	fmt.Println("\n🔍 DRY RUN: Analyzing deployment changes...")
	fmt.Printf("   Provider:     azure\n")
	fmt.Printf("   Project Name: %s\n", clusterName)
	fmt.Printf("   Region:       %s\n", azureCfg.Region)

	// Analyze resource group
	fmt.Println("\n📦 Resource Group:")
	if state.ResourceGroup == nil {
		fmt.Printf("   • %s: WILL CREATE (location: %s)\n", resourceGroupName, azureCfg.Region)
	} else {
		fmt.Printf("   • %s: EXISTS (location: %s, status: %s)\n",
			state.ResourceGroup.Name, state.ResourceGroup.Region, state.ResourceGroup.Status)
	}

	// Analyze AKS cluster
	fmt.Println("\n☸️  AKS Cluster:")
	if state.Cluster == nil {
		version := azureCfg.KubernetesVersion
		if version == "" {
			version = "AKS default"
		}
		fmt.Printf("   • Cluster: WILL CREATE (version: %s, identity: SystemAssigned)\n", version)
	} else {
		fmt.Printf("   • Cluster: EXISTS (%s, version %s, status: %s)\n",
			state.Cluster.Name, state.Cluster.Version, state.Cluster.Status)
		if azureCfg.KubernetesVersion != "" && state.Cluster.Version != azureCfg.KubernetesVersion {
			fmt.Printf("   • Version: WILL UPDATE (%s → %s)\n", state.Cluster.Version, azureCfg.KubernetesVersion)
		}
	}

	// Analyze default node pool
	fmt.Println("\n🖥️  Node Pools:")
	var defaultPool *provider.NodePoolState
	for i := range state.NodePools {
		if state.NodePools[i].Name == DefaultNodePoolName {
			defaultPool = &state.NodePools[i]
			break
		}
	}

	if defaultPool == nil {
		fmt.Printf("   • %s: WILL CREATE (%s, min:%d/max:%d, disk:%dGB)\n",
			DefaultNodePoolName, azureCfg.DefaultVMSize, azureCfg.MinNodeCount, azureCfg.MaxNodeCount, azureCfg.OSDiskSizeGB)
	} else {
		changes := []string{}
		if azureCfg.MinNodeCount != defaultPool.MinSize {
			changes = append(changes, fmt.Sprintf("min: %d→%d", defaultPool.MinSize, azureCfg.MinNodeCount))
		}
		if azureCfg.MaxNodeCount != defaultPool.MaxSize {
			changes = append(changes, fmt.Sprintf("max: %d→%d", defaultPool.MaxSize, azureCfg.MaxNodeCount))
		}
		if azureCfg.DefaultVMSize != defaultPool.InstanceType {
			changes = append(changes, fmt.Sprintf("vm_size: %s→%s", defaultPool.InstanceType, azureCfg.DefaultVMSize))
		}
		if len(changes) > 0 {
			fmt.Printf("   • %s: WILL UPDATE (%s)\n", defaultPool.Name, strings.Join(changes, ", "))
		} else {
			fmt.Printf("   • %s: NO CHANGES (%s, min:%d/max:%d)\n",
				defaultPool.Name, defaultPool.InstanceType, defaultPool.MinSize, defaultPool.MaxSize)
		}
	}

	fmt.Println("\n✓ Dry-run complete. No changes were made.")
	fmt.Println("  Run without --dry-run flag to apply changes.")

	span.SetAttributes(attribute.Bool("dry_run_complete", true))
	return nil
}

// dryRunDestroy shows what would be destroyed without making changes
func (p *Provider) dryRunDestroy(ctx context.Context, clients *Clients, clusterName string, resourceGroupName string) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.dryRunDestroy")
	defer span.End()

	span.SetAttributes(
		attribute.String("cluster_name", clusterName),
		attribute.String("resource_group", resourceGroupName),
	)

	status.Info(ctx, "Discovering infrastructure to destroy...")

	state, err := p.Query(ctx, clients, clusterName, resourceGroupName)
	if err != nil {
		span.RecordError(err)
		return err
	}

	fmt.Println("\n🔍 DRY RUN: Discovering infrastructure to destroy...")
	fmt.Printf("   Provider:     azure\n")
	fmt.Printf("   Project Name: %s\n", clusterName)

	if state.ResourceGroup == nil && state.Cluster == nil && len(state.NodePools) == 0 {
		fmt.Println("\n   ✓ No infrastructure found for this project.")
		fmt.Println("     Nothing to destroy.")
		span.SetAttributes(attribute.Bool("infrastructure_exists", false))
		return nil
	}

	span.SetAttributes(attribute.Bool("infrastructure_exists", true))
	fmt.Println("\n   Resources that would be deleted:")

	if state.Cluster != nil {
		fmt.Println("\n   • AKS Cluster")
		fmt.Printf("     - Name:     %s\n", state.Cluster.Name)
		fmt.Printf("     - ID:       %s\n", state.Cluster.ID)
		fmt.Printf("     - Version:  %s\n", state.Cluster.Version)
		fmt.Printf("     - Status:   %s\n", state.Cluster.Status)
		fmt.Printf("     - Endpoint: %s\n", state.Cluster.Endpoint)
	}

	if len(state.NodePools) > 0 {
		fmt.Println("\n   • Node Pools")
		for _, pool := range state.NodePools {
			autoscale := ""
			if pool.AutoscalingEnabled {
				autoscale = fmt.Sprintf(", min:%d/max:%d", pool.MinSize, pool.MaxSize)
			}
			fmt.Printf("     - %s (%s, count:%d%s)\n", pool.Name, pool.InstanceType, pool.DesiredSize, autoscale)
		}
	}

	if state.ResourceGroup != nil {
		fmt.Println("\n   • Resource Group")
		fmt.Printf("     - Name:     %s\n", state.ResourceGroup.Name)
		fmt.Printf("     - Location: %s\n", state.ResourceGroup.Region)
	}

	fmt.Println("\n✓ Dry-run complete. No resources were deleted.")
	fmt.Println("  Run without --dry-run flag to perform actual destruction.")

	span.SetAttributes(attribute.Bool("dry_run_complete", true))
	return nil
}
