package azure

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
)

// MockResourceGroupsClient is a mock implementation of ResourceGroupsClientAPI for testing
type MockResourceGroupsClient struct {
	GetFunc            func(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error)
	CheckExistenceFunc func(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientCheckExistenceOptions) (armresources.ResourceGroupsClientCheckExistenceResponse, error)
}

func (m *MockResourceGroupsClient) Get(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientGetOptions) (armresources.ResourceGroupsClientGetResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroupName, options)
	}
	return armresources.ResourceGroupsClientGetResponse{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockResourceGroupsClient) CheckExistence(ctx context.Context, resourceGroupName string, options *armresources.ResourceGroupsClientCheckExistenceOptions) (armresources.ResourceGroupsClientCheckExistenceResponse, error) {
	if m.CheckExistenceFunc != nil {
		return m.CheckExistenceFunc(ctx, resourceGroupName, options)
	}
	return armresources.ResourceGroupsClientCheckExistenceResponse{}, fmt.Errorf("CheckExistenceFunc not implemented")
}

// MockManagedClustersClient is a mock implementation of ManagedClustersClientAPI for testing
type MockManagedClustersClient struct {
	GetFunc                         func(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error)
	ListClusterAdminCredentialsFunc func(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientListClusterAdminCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterAdminCredentialsResponse, error)
}

func (m *MockManagedClustersClient) Get(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientGetOptions) (armcontainerservice.ManagedClustersClientGetResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, resourceGroupName, resourceName, options)
	}
	return armcontainerservice.ManagedClustersClientGetResponse{}, fmt.Errorf("GetFunc not implemented")
}

func (m *MockManagedClustersClient) ListClusterAdminCredentials(ctx context.Context, resourceGroupName string, resourceName string, options *armcontainerservice.ManagedClustersClientListClusterAdminCredentialsOptions) (armcontainerservice.ManagedClustersClientListClusterAdminCredentialsResponse, error) {
	if m.ListClusterAdminCredentialsFunc != nil {
		return m.ListClusterAdminCredentialsFunc(ctx, resourceGroupName, resourceName, options)
	}
	return armcontainerservice.ManagedClustersClientListClusterAdminCredentialsResponse{}, fmt.Errorf("ListClusterAdminCredentialsFunc not implemented")
}

// MockAgentPoolsClient is a mock implementation of AgentPoolsClientAPI for testing.
// Pools are returned as a single page; Err short-circuits the first fetch.
type MockAgentPoolsClient struct {
	Pools []*armcontainerservice.AgentPool
	Err   error
}

func (m *MockAgentPoolsClient) NewListPager(resourceGroupName string, resourceName string, options *armcontainerservice.AgentPoolsClientListOptions) *runtime.Pager[armcontainerservice.AgentPoolsClientListResponse] {
	fetched := false
	return runtime.NewPager(runtime.PagingHandler[armcontainerservice.AgentPoolsClientListResponse]{
		More: func(resp armcontainerservice.AgentPoolsClientListResponse) bool {
			return !fetched
		},
		Fetcher: func(ctx context.Context, resp *armcontainerservice.AgentPoolsClientListResponse) (armcontainerservice.AgentPoolsClientListResponse, error) {
			if m.Err != nil {
				return armcontainerservice.AgentPoolsClientListResponse{}, m.Err
			}
			fetched = true
			return armcontainerservice.AgentPoolsClientListResponse{
				AgentPoolListResult: armcontainerservice.AgentPoolListResult{
					Value: m.Pools,
				},
			}, nil
		},
	})
}

// newMockClients assembles a Clients value from mocks, defaulting any nil mock
func newMockClients(rg *MockResourceGroupsClient, mc *MockManagedClustersClient, ap *MockAgentPoolsClient) *Clients {
	if rg == nil {
		rg = &MockResourceGroupsClient{}
	}
	if mc == nil {
		mc = &MockManagedClustersClient{}
	}
	if ap == nil {
		ap = &MockAgentPoolsClient{}
	}
	return &Clients{
		ResourceGroups:  rg,
		ManagedClusters: mc,
		AgentPools:      ap,
		SubscriptionID:  "00000000-0000-0000-0000-000000000000",
	}
}

// notFoundError fabricates the ARM 404 shape returned for missing resources
func notFoundError(code string) error {
	return &azcore.ResponseError{
		StatusCode: http.StatusNotFound,
		ErrorCode:  code,
	}
}

// strPtr returns a pointer to the provided string
func strPtr(s string) *string {
	return &s
}

// int32Ptr returns a pointer to the provided int32
func int32Ptr(i int32) *int32 {
	return &i
}

// boolPtr returns a pointer to the provided bool
func boolPtr(b bool) *bool {
	return &b
}
