package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// isNotFound reports whether an ARM API error is a 404 for the requested resource.
// A missing resource is not an error for stateless discovery.
func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}

// DiscoverResourceGroup discovers a resource group by name and validates DIC tags.
// Returns (nil, nil) when the resource group does not exist.
func (p *Provider) DiscoverResourceGroup(ctx context.Context, clients *Clients, projectName string, resourceGroupName string) (*ResourceGroupState, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.DiscoverResourceGroup")
	defer span.End()

	span.SetAttributes(
		attribute.String("project_name", projectName),
		attribute.String("resource_group", resourceGroupName),
	)

	resp, err := clients.ResourceGroups.Get(ctx, resourceGroupName, nil)
	if err != nil {
		if isNotFound(err) {
			span.SetAttributes(attribute.Bool("resource_group_exists", false))
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get resource group %s: %w", resourceGroupName, err)
	}

	tags := FromAzureTags(resp.Tags)
	if err := validateManagedTags(tags, projectName, resourceGroupName); err != nil {
		span.SetAttributes(attribute.Bool("managed_by_dic", false))
		return nil, err
	}

	span.SetAttributes(attribute.Bool("managed_by_dic", true))

	return convertResourceGroupToState(resp.ResourceGroup), nil
}

// DiscoverCluster discovers an AKS cluster by name and validates DIC tags.
// Returns (nil, nil) when the cluster (or its resource group) does not exist.
func (p *Provider) DiscoverCluster(ctx context.Context, clients *Clients, projectName string, resourceGroupName string, clusterName string) (*ClusterState, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.DiscoverCluster")
	defer span.End()

	span.SetAttributes(
		attribute.String("project_name", projectName),
		attribute.String("cluster_name", clusterName),
		attribute.String("resource_group", resourceGroupName),
	)

	resp, err := clients.ManagedClusters.Get(ctx, resourceGroupName, clusterName, nil)
	if err != nil {
		if isNotFound(err) {
			span.SetAttributes(attribute.Bool("cluster_exists", false))
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get AKS cluster %s: %w", clusterName, err)
	}

	tags := FromAzureTags(resp.Tags)
	if err := validateManagedTags(tags, projectName, clusterName); err != nil {
		span.SetAttributes(attribute.Bool("managed_by_dic", false))
		return nil, err
	}

	state := convertManagedClusterToState(resp.ManagedCluster)

	span.SetAttributes(
		attribute.Bool("managed_by_dic", true),
		attribute.String("cluster_status", state.ProvisioningState),
	)

	return state, nil
}

// DiscoverNodePools lists the agent pools of an AKS cluster.
// Returns (nil, nil) when the cluster does not exist.
func (p *Provider) DiscoverNodePools(ctx context.Context, clients *Clients, resourceGroupName string, clusterName string) ([]NodePoolState, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.DiscoverNodePools")
	defer span.End()

	span.SetAttributes(
		attribute.String("cluster_name", clusterName),
		attribute.String("resource_group", resourceGroupName),
	)

	var pools []NodePoolState
	pager := clients.AgentPools.NewListPager(resourceGroupName, clusterName, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				span.SetAttributes(attribute.Bool("cluster_exists", false))
				return nil, nil
			}
			span.RecordError(err)
			return nil, fmt.Errorf("failed to list agent pools for cluster %s: %w", clusterName, err)
		}
		for _, pool := range page.Value {
			if pool == nil {
				continue
			}
			pools = append(pools, convertAgentPoolToState(*pool))
		}
	}

	span.SetAttributes(attribute.Int("node_pool_count", len(pools)))

	return pools, nil
}

// DiscoverAll queries resource group, cluster, and node pool state in parallel.
// Missing resources surface as nil fields, not errors.
func (p *Provider) DiscoverAll(ctx context.Context, clients *Clients, projectName string, resourceGroupName string) (*InfrastructureState, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.DiscoverAll")
	defer span.End()

	span.SetAttributes(
		attribute.String("project_name", projectName),
		attribute.String("resource_group", resourceGroupName),
	)

	state := &InfrastructureState{
		ProjectName: projectName,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rg, err := p.DiscoverResourceGroup(gctx, clients, projectName, resourceGroupName)
		if err != nil {
			return err
		}
		state.ResourceGroup = rg
		return nil
	})

	g.Go(func() error {
		cluster, err := p.DiscoverCluster(gctx, clients, projectName, resourceGroupName, projectName)
		if err != nil {
			return err
		}
		state.Cluster = cluster
		return nil
	})

	g.Go(func() error {
		pools, err := p.DiscoverNodePools(gctx, clients, resourceGroupName, projectName)
		if err != nil {
			return err
		}
		state.NodePools = pools
		return nil
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if state.ResourceGroup != nil {
		state.Region = state.ResourceGroup.Location
	}

	span.SetAttributes(
		attribute.Bool("resource_group_exists", state.ResourceGroup != nil),
		attribute.Bool("cluster_exists", state.Cluster != nil),
		attribute.Int("node_pool_count", len(state.NodePools)),
	)

	return state, nil
}

// validateManagedTags rejects resources that exist but were not created by
// this tool, so deploy and destroy never touch foreign infrastructure.
func validateManagedTags(tags map[string]string, projectName string, resourceName string) error {
	managedBy, ok := tags[TagManagedBy]
	if !ok || managedBy != ManagedByValue {
		return fmt.Errorf("resource %s exists but is not managed by DIC (missing or incorrect %s tag)", resourceName, TagManagedBy)
	}

	projectTag, ok := tags[TagProjectName]
	if !ok || projectTag != projectName {
		return fmt.Errorf("resource %s has mismatched project name tag (got %q, want %q)", resourceName, projectTag, projectName)
	}

	return nil
}

func convertResourceGroupToState(rg armresources.ResourceGroup) *ResourceGroupState {
	state := &ResourceGroupState{
		Name:     deref(rg.Name),
		ID:       deref(rg.ID),
		Location: deref(rg.Location),
		Tags:     FromAzureTags(rg.Tags),
	}
	if rg.Properties != nil {
		state.ProvisioningState = deref(rg.Properties.ProvisioningState)
	}
	return state
}

func convertManagedClusterToState(cluster armcontainerservice.ManagedCluster) *ClusterState {
	state := &ClusterState{
		Name:     deref(cluster.Name),
		ID:       deref(cluster.ID),
		Location: deref(cluster.Location),
		Tags:     FromAzureTags(cluster.Tags),
	}
	if cluster.Properties != nil {
		state.FQDN = deref(cluster.Properties.Fqdn)
		state.Version = deref(cluster.Properties.KubernetesVersion)
		state.DNSPrefix = deref(cluster.Properties.DNSPrefix)
		state.ProvisioningState = deref(cluster.Properties.ProvisioningState)
	}
	if cluster.Identity != nil && cluster.Identity.Type != nil {
		state.IdentityType = string(*cluster.Identity.Type)
	}
	return state
}

func convertAgentPoolToState(pool armcontainerservice.AgentPool) NodePoolState {
	state := NodePoolState{
		Name: deref(pool.Name),
		ID:   deref(pool.ID),
	}
	if pool.Properties != nil {
		props := pool.Properties
		state.VMSize = deref(props.VMSize)
		state.ProvisioningState = deref(props.ProvisioningState)
		if props.MinCount != nil {
			state.MinCount = int(*props.MinCount)
		}
		if props.MaxCount != nil {
			state.MaxCount = int(*props.MaxCount)
		}
		if props.Count != nil {
			state.CurrentCount = int(*props.Count)
		}
		if props.EnableAutoScaling != nil {
			state.AutoscalingEnabled = *props.EnableAutoScaling
		}
		if props.OSDiskSizeGB != nil {
			state.OSDiskSizeGB = int(*props.OSDiskSizeGB)
		}
	}
	return state
}

// deref returns the value of a string pointer, or "" for nil
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
