package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// ResourceGroupsClientAPI defines the interface for resource group operations used by this provider
// This minimal interface includes only the methods actually called by the provider
type ResourceGroupsClientAPI interface {
	Get(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error)
	CheckExistence(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientCheckExistenceOptions) (armresources.ResourceGroupsClientCheckExistenceResponse, error)
}

// ManagedClustersClientAPI defines the interface for AKS managed cluster operations used by this provider
// This minimal interface includes only the methods actually called by the provider
type ManagedClustersClientAPI interface {
	Get(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error)
	ListClusterAdminCredentials(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientListClusterAdminCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterAdminCredentialsResponse, error)
}

// AgentPoolsClientAPI defines the interface for AKS agent pool operations used by this provider
// This minimal interface includes only the methods actually called by the provider
type AgentPoolsClientAPI interface {
	NewListPager(resourceGroupName string, resourceName string, options *armcontainerservice.AgentPoolsClientListOptions) *runtime.Pager[armcontainerservice.AgentPoolsClientListResponse]
}

// Compile-time verification that the Azure SDK clients implement our interfaces
var (
	_ ResourceGroupsClientAPI  = (*armresources.ResourceGroupsClient)(nil)
	_ ManagedClustersClientAPI = (*armcontainerservice.ManagedClustersClient)(nil)
	_ AgentPoolsClientAPI      = (*armcontainerservice.AgentPoolsClient)(nil)
)
