package azure

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/provider"
)

// Query discovers the current infrastructure and returns it in
// provider-neutral form, so display layers never depend on Azure types.
func (p *Provider) Query(ctx context.Context, clients *Clients, projectName string, resourceGroupName string) (*provider.InfrastructureState, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "azure.Query")
	defer span.End()

	span.SetAttributes(
		attribute.String("provider", "azure"),
		attribute.String("project_name", projectName),
		attribute.String("resource_group", resourceGroupName),
	)

	discovered, err := p.DiscoverAll(ctx, clients, projectName, resourceGroupName)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	state := convertToProviderState(discovered)

	span.SetAttributes(
		attribute.Bool("resource_group_exists", state.ResourceGroup != nil),
		attribute.Bool("cluster_exists", state.Cluster != nil),
		attribute.Int("node_pool_count", len(state.NodePools)),
	)

	return state, nil
}

// convertToProviderState converts Azure-specific discovery state to the
// generic provider.InfrastructureState
func convertToProviderState(state *InfrastructureState) *provider.InfrastructureState {
	out := &provider.InfrastructureState{
		ProjectName: state.ProjectName,
		Provider:    "azure",
		Region:      state.Region,
	}

	if state.ResourceGroup != nil {
		out.ResourceGroup = &provider.ResourceGroupState{
			Name:   state.ResourceGroup.Name,
			ID:     state.ResourceGroup.ID,
			Region: state.ResourceGroup.Location,
			Status: state.ResourceGroup.ProvisioningState,
			Tags:   state.ResourceGroup.Tags,
		}
	}

	if state.Cluster != nil {
		out.Cluster = &provider.ClusterState{
			Name:     state.Cluster.Name,
			ID:       state.Cluster.ID,
			Endpoint: state.Cluster.FQDN,
			Version:  state.Cluster.Version,
			Status:   state.Cluster.ProvisioningState,
			Metadata: map[string]string{
				"dns_prefix":    state.Cluster.DNSPrefix,
				"identity_type": state.Cluster.IdentityType,
			},
		}
	}

	for _, pool := range state.NodePools {
		out.NodePools = append(out.NodePools, provider.NodePoolState{
			Name:               pool.Name,
			ID:                 pool.ID,
			InstanceType:       pool.VMSize,
			MinSize:            pool.MinCount,
			MaxSize:            pool.MaxCount,
			DesiredSize:        pool.CurrentCount,
			OSDiskSizeGB:       pool.OSDiskSizeGB,
			AutoscalingEnabled: pool.AutoscalingEnabled,
			Status:             pool.ProvisioningState,
		})
	}

	return out
}
