package azure

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

func TestConvertToProviderState(t *testing.T) {
	t.Run("full state maps onto neutral types", func(t *testing.T) {
		state := convertToProviderState(&InfrastructureState{
			ProjectName: "docuflow",
			Region:      "eastus",
			ResourceGroup: &ResourceGroupState{
				Name:              "docuflow-rg",
				ID:                "/subscriptions/sub/resourceGroups/docuflow-rg",
				Location:          "eastus",
				ProvisioningState: "Succeeded",
				Tags:              map[string]string{TagManagedBy: ManagedByValue},
			},
			Cluster: &ClusterState{
				Name:              "docuflow",
				ID:                "/clusters/docuflow",
				FQDN:              "docuflow-abc123.hcp.eastus.azmk8s.io",
				Version:           "1.31.2",
				DNSPrefix:         "docuflow",
				ProvisioningState: "Succeeded",
				IdentityType:      "SystemAssigned",
			},
			NodePools: []NodePoolState{
				{
					Name:               "default",
					ID:                 "/pool/default",
					VMSize:             "Standard_D2_v2",
					MinCount:           2,
					MaxCount:           4,
					CurrentCount:       3,
					AutoscalingEnabled: true,
					OSDiskSizeGB:       30,
					ProvisioningState:  "Succeeded",
				},
			},
		})

		if state.Provider != "azure" {
			t.Errorf("Provider = %q, want %q", state.Provider, "azure")
		}
		if state.ProjectName != "docuflow" || state.Region != "eastus" {
			t.Errorf("ProjectName/Region = %q/%q, want docuflow/eastus", state.ProjectName, state.Region)
		}

		if state.ResourceGroup == nil {
			t.Fatal("ResourceGroup = nil, want state")
		}
		if state.ResourceGroup.Region != "eastus" || state.ResourceGroup.Status != "Succeeded" {
			t.Errorf("ResourceGroup Region/Status = %q/%q, want eastus/Succeeded",
				state.ResourceGroup.Region, state.ResourceGroup.Status)
		}

		if state.Cluster == nil {
			t.Fatal("Cluster = nil, want state")
		}
		if state.Cluster.Endpoint != "docuflow-abc123.hcp.eastus.azmk8s.io" {
			t.Errorf("Endpoint = %q, want the cluster FQDN", state.Cluster.Endpoint)
		}
		if state.Cluster.Metadata["identity_type"] != "SystemAssigned" {
			t.Errorf("Metadata[identity_type] = %q, want %q", state.Cluster.Metadata["identity_type"], "SystemAssigned")
		}
		if state.Cluster.Metadata["dns_prefix"] != "docuflow" {
			t.Errorf("Metadata[dns_prefix] = %q, want %q", state.Cluster.Metadata["dns_prefix"], "docuflow")
		}

		if len(state.NodePools) != 1 {
			t.Fatalf("NodePools = %d entries, want 1", len(state.NodePools))
		}
		pool := state.NodePools[0]
		if pool.InstanceType != "Standard_D2_v2" {
			t.Errorf("InstanceType = %q, want %q", pool.InstanceType, "Standard_D2_v2")
		}
		if pool.MinSize != 2 || pool.MaxSize != 4 || pool.DesiredSize != 3 {
			t.Errorf("sizes = min:%d/max:%d/desired:%d, want 2/4/3", pool.MinSize, pool.MaxSize, pool.DesiredSize)
		}
		if !pool.AutoscalingEnabled || pool.OSDiskSizeGB != 30 {
			t.Errorf("autoscaling/disk = %v/%d, want true/30", pool.AutoscalingEnabled, pool.OSDiskSizeGB)
		}
	})

	t.Run("missing resources stay nil", func(t *testing.T) {
		state := convertToProviderState(&InfrastructureState{ProjectName: "docuflow"})

		if state.ResourceGroup != nil {
			t.Errorf("ResourceGroup = %+v, want nil", state.ResourceGroup)
		}
		if state.Cluster != nil {
			t.Errorf("Cluster = %+v, want nil", state.Cluster)
		}
		if len(state.NodePools) != 0 {
			t.Errorf("NodePools = %v, want empty", state.NodePools)
		}
	})
}

func TestQuery(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	rgClient := &MockResourceGroupsClient{
		GetFunc: func(ctx context.Context, name string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
			return armresources.ResourceGroupsClientGetResponse{
				ResourceGroup: armresources.ResourceGroup{
					Name:     strPtr(name),
					Location: strPtr("eastus"),
					Tags:     managedTags("docuflow"),
				},
			}, nil
		},
	}
	mcClient := &MockManagedClustersClient{
		GetFunc: func(ctx context.Context, rg string, name string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error) {
			return armcontainerservice.ManagedClustersClientGetResponse{}, notFoundError("ResourceNotFound")
		},
	}
	apClient := &MockAgentPoolsClient{Err: notFoundError("ResourceNotFound")}

	state, err := p.Query(ctx, newMockClients(rgClient, mcClient, apClient), "docuflow", "docuflow-rg")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	if state.Provider != "azure" {
		t.Errorf("Provider = %q, want %q", state.Provider, "azure")
	}
	if state.ResourceGroup == nil {
		t.Fatal("ResourceGroup = nil, want state")
	}
	if state.ResourceGroup.Region != "eastus" {
		t.Errorf("ResourceGroup.Region = %q, want %q", state.ResourceGroup.Region, "eastus")
	}
	if state.Cluster != nil {
		t.Errorf("Cluster = %+v, want nil", state.Cluster)
	}
	if state.Region != "eastus" {
		t.Errorf("Region = %q, want %q (from resource group)", state.Region, "eastus")
	}
}
