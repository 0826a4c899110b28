package azure

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

func managedTags(projectName string) map[string]*string {
	return map[string]*string{
		TagManagedBy:   strPtr(ManagedByValue),
		TagProjectName: strPtr(projectName),
		TagVersion:     strPtr(DICVersion),
	}
}

func TestDiscoverResourceGroup(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	t.Run("managed resource group is discovered", func(t *testing.T) {
		clients := newMockClients(&MockResourceGroupsClient{
			GetFunc: func(ctx context.Context, name string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
				return armresources.ResourceGroupsClientGetResponse{
					ResourceGroup: armresources.ResourceGroup{
						Name:     strPtr(name),
						ID:       strPtr("/subscriptions/sub/resourceGroups/" + name),
						Location: strPtr("eastus"),
						Tags:     managedTags("docuflow"),
						Properties: &armresources.ResourceGroupProperties{
							ProvisioningState: strPtr("Succeeded"),
						},
					},
				}, nil
			},
		}, nil, nil)

		state, err := p.DiscoverResourceGroup(ctx, clients, "docuflow", "docuflow-rg")
		if err != nil {
			t.Fatalf("DiscoverResourceGroup() error = %v", err)
		}
		if state == nil {
			t.Fatal("DiscoverResourceGroup() = nil, want state")
		}
		if state.Name != "docuflow-rg" {
			t.Errorf("Name = %q, want %q", state.Name, "docuflow-rg")
		}
		if state.Location != "eastus" {
			t.Errorf("Location = %q, want %q", state.Location, "eastus")
		}
		if state.ProvisioningState != "Succeeded" {
			t.Errorf("ProvisioningState = %q, want %q", state.ProvisioningState, "Succeeded")
		}
	})

	t.Run("missing resource group is not an error", func(t *testing.T) {
		clients := newMockClients(&MockResourceGroupsClient{
			GetFunc: func(ctx context.Context, name string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
				return armresources.ResourceGroupsClientGetResponse{}, notFoundError("ResourceGroupNotFound")
			},
		}, nil, nil)

		state, err := p.DiscoverResourceGroup(ctx, clients, "docuflow", "docuflow-rg")
		if err != nil {
			t.Fatalf("DiscoverResourceGroup() error = %v", err)
		}
		if state != nil {
			t.Errorf("DiscoverResourceGroup() = %+v, want nil", state)
		}
	})

	t.Run("unmanaged resource group is rejected", func(t *testing.T) {
		clients := newMockClients(&MockResourceGroupsClient{
			GetFunc: func(ctx context.Context, name string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
				return armresources.ResourceGroupsClientGetResponse{
					ResourceGroup: armresources.ResourceGroup{
						Name:     strPtr(name),
						Location: strPtr("eastus"),
					},
				}, nil
			},
		}, nil, nil)

		_, err := p.DiscoverResourceGroup(ctx, clients, "docuflow", "docuflow-rg")
		if err == nil {
			t.Fatal("DiscoverResourceGroup() expected error for unmanaged resource group, got nil")
		}
		if !strings.Contains(err.Error(), "not managed by DIC") {
			t.Errorf("error = %v, want not-managed error", err)
		}
	})

	t.Run("api errors propagate", func(t *testing.T) {
		clients := newMockClients(&MockResourceGroupsClient{
			GetFunc: func(ctx context.Context, name string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
				return armresources.ResourceGroupsClientGetResponse{}, fmt.Errorf("throttled")
			},
		}, nil, nil)

		if _, err := p.DiscoverResourceGroup(ctx, clients, "docuflow", "docuflow-rg"); err == nil {
			t.Fatal("DiscoverResourceGroup() expected error, got nil")
		}
	})
}

func TestDiscoverCluster(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	t.Run("managed cluster is discovered", func(t *testing.T) {
		identityType := armcontainerservice.ResourceIdentityTypeSystemAssigned
		clients := newMockClients(nil, &MockManagedClustersClient{
			GetFunc: func(ctx context.Context, rg string, name string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error) {
				return armcontainerservice.ManagedClustersClientGetResponse{
					ManagedCluster: armcontainerservice.ManagedCluster{
						Name:     strPtr(name),
						ID:       strPtr("/subscriptions/sub/resourceGroups/" + rg + "/providers/Microsoft.ContainerService/managedClusters/" + name),
						Location: strPtr("eastus"),
						Tags:     managedTags("docuflow"),
						Identity: &armcontainerservice.ManagedClusterIdentity{
							Type: &identityType,
						},
						Properties: &armcontainerservice.ManagedClusterProperties{
							KubernetesVersion: strPtr("1.31.2"),
							DNSPrefix:         strPtr("docuflow"),
							Fqdn:              strPtr("docuflow-abc123.hcp.eastus.azmk8s.io"),
							ProvisioningState: strPtr("Succeeded"),
						},
					},
				}, nil
			},
		}, nil)

		state, err := p.DiscoverCluster(ctx, clients, "docuflow", "docuflow-rg", "docuflow")
		if err != nil {
			t.Fatalf("DiscoverCluster() error = %v", err)
		}
		if state == nil {
			t.Fatal("DiscoverCluster() = nil, want state")
		}
		if state.Version != "1.31.2" {
			t.Errorf("Version = %q, want %q", state.Version, "1.31.2")
		}
		if state.DNSPrefix != "docuflow" {
			t.Errorf("DNSPrefix = %q, want %q", state.DNSPrefix, "docuflow")
		}
		if state.IdentityType != "SystemAssigned" {
			t.Errorf("IdentityType = %q, want %q", state.IdentityType, "SystemAssigned")
		}
	})

	t.Run("missing cluster is not an error", func(t *testing.T) {
		clients := newMockClients(nil, &MockManagedClustersClient{
			GetFunc: func(ctx context.Context, rg string, name string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error) {
				return armcontainerservice.ManagedClustersClientGetResponse{}, notFoundError("ResourceNotFound")
			},
		}, nil)

		state, err := p.DiscoverCluster(ctx, clients, "docuflow", "docuflow-rg", "docuflow")
		if err != nil {
			t.Fatalf("DiscoverCluster() error = %v", err)
		}
		if state != nil {
			t.Errorf("DiscoverCluster() = %+v, want nil", state)
		}
	})

	t.Run("unmanaged cluster is rejected", func(t *testing.T) {
		clients := newMockClients(nil, &MockManagedClustersClient{
			GetFunc: func(ctx context.Context, rg string, name string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error) {
				return armcontainerservice.ManagedClustersClientGetResponse{
					ManagedCluster: armcontainerservice.ManagedCluster{
						Name: strPtr(name),
						Tags: map[string]*string{"owner": strPtr("someone-else")},
					},
				}, nil
			},
		}, nil)

		if _, err := p.DiscoverCluster(ctx, clients, "docuflow", "docuflow-rg", "docuflow"); err == nil {
			t.Fatal("DiscoverCluster() expected error for unmanaged cluster, got nil")
		}
	})

	t.Run("cluster from another project is rejected", func(t *testing.T) {
		clients := newMockClients(nil, &MockManagedClustersClient{
			GetFunc: func(ctx context.Context, rg string, name string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error) {
				return armcontainerservice.ManagedClustersClientGetResponse{
					ManagedCluster: armcontainerservice.ManagedCluster{
						Name: strPtr(name),
						Tags: managedTags("otherproject"),
					},
				}, nil
			},
		}, nil)

		// The project tag is compared against the configured project name,
		// not against the cluster name
		_, err := p.DiscoverCluster(ctx, clients, "docuflow", "docuflow-rg", "shared-cluster")
		if err == nil {
			t.Fatal("DiscoverCluster() expected error for mismatched project tag, got nil")
		}
		if !strings.Contains(err.Error(), `want "docuflow"`) {
			t.Errorf("error = %v, want project name mismatch against %q", err, "docuflow")
		}
	})
}

func TestDiscoverNodePools(t *testing.T) {
	p := NewProvider()
	ctx := context.Background()

	t.Run("pools are listed and converted", func(t *testing.T) {
		clients := newMockClients(nil, nil, &MockAgentPoolsClient{
			Pools: []*armcontainerservice.AgentPool{
				{
					Name: strPtr("default"),
					ID:   strPtr("/pool/default"),
					Properties: &armcontainerservice.ManagedClusterAgentPoolProfileProperties{
						VMSize:            strPtr("Standard_D2_v2"),
						Count:             int32Ptr(3),
						MinCount:          int32Ptr(2),
						MaxCount:          int32Ptr(4),
						EnableAutoScaling: boolPtr(true),
						OSDiskSizeGB:      int32Ptr(30),
						ProvisioningState: strPtr("Succeeded"),
					},
				},
			},
		})

		pools, err := p.DiscoverNodePools(ctx, clients, "docuflow-rg", "docuflow")
		if err != nil {
			t.Fatalf("DiscoverNodePools() error = %v", err)
		}
		if len(pools) != 1 {
			t.Fatalf("DiscoverNodePools() returned %d pools, want 1", len(pools))
		}

		pool := pools[0]
		if pool.Name != "default" {
			t.Errorf("Name = %q, want %q", pool.Name, "default")
		}
		if pool.VMSize != "Standard_D2_v2" {
			t.Errorf("VMSize = %q, want %q", pool.VMSize, "Standard_D2_v2")
		}
		if pool.MinCount != 2 || pool.MaxCount != 4 || pool.CurrentCount != 3 {
			t.Errorf("counts = min:%d/max:%d/current:%d, want 2/4/3", pool.MinCount, pool.MaxCount, pool.CurrentCount)
		}
		if !pool.AutoscalingEnabled {
			t.Error("AutoscalingEnabled = false, want true")
		}
		if pool.OSDiskSizeGB != 30 {
			t.Errorf("OSDiskSizeGB = %d, want 30", pool.OSDiskSizeGB)
		}
	})

	t.Run("missing cluster is not an error", func(t *testing.T) {
		clients := newMockClients(nil, nil, &MockAgentPoolsClient{
			Err: notFoundError("ResourceNotFound"),
		})

		pools, err := p.DiscoverNodePools(ctx, clients, "docuflow-rg", "docuflow")
		if err != nil {
			t.Fatalf("DiscoverNodePools() error = %v", err)
		}
		if pools != nil {
			t.Errorf("DiscoverNodePools() = %v, want nil", pools)
		}
	})
}

func TestDiscoverAll(t *testing.T) {
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

	state, err := p.DiscoverAll(ctx, newMockClients(rgClient, mcClient, apClient), "docuflow", "docuflow-rg")
	if err != nil {
		t.Fatalf("DiscoverAll() error = %v", err)
	}

	if state.ResourceGroup == nil {
		t.Error("ResourceGroup = nil, want state")
	}
	if state.Cluster != nil {
		t.Errorf("Cluster = %+v, want nil", state.Cluster)
	}
	if len(state.NodePools) != 0 {
		t.Errorf("NodePools = %v, want empty", state.NodePools)
	}
	if state.Region != "eastus" {
		t.Errorf("Region = %q, want %q (from resource group)", state.Region, "eastus")
	}
}
