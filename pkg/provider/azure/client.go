package azure

import (
	"context"
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Clients holds all Azure service clients needed for infrastructure discovery
type Clients struct {
	ResourceGroups  ResourceGroupsClientAPI
	ManagedClusters ManagedClustersClientAPI
	AgentPools      AgentPoolsClientAPI
	Credential      azcore.TokenCredential
	SubscriptionID  string
}

// newClientsFunc allows tests to inject mock clients
var newClientsFunc = NewClients

// NewClients creates and initializes all Azure service clients
// Credentials are resolved through the default Azure credential chain
func NewClients(ctx context.Context) (*Clients, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.NewClients")
	defer span.End()

	subscriptionID := os.Getenv("AZURE_SUBSCRIPTION_ID")
	if subscriptionID == "" {
		err := fmt.Errorf("AZURE_SUBSCRIPTION_ID environment variable is required")
		span.RecordError(err)
		return nil, err
	}

	// The default chain checks in order:
	// 1. Environment variables (AZURE_CLIENT_ID, AZURE_CLIENT_SECRET, AZURE_TENANT_ID)
	// 2. Workload identity (if running in AKS)
	// 3. Managed identity (if running on Azure infrastructure)
	// 4. Azure CLI login (az login)
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	resourceGroups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}

	managedClusters, err := armcontainerservice.NewManagedClustersClient(subscriptionID, cred, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create managed clusters client: %w", err)
	}

	agentPools, err := armcontainerservice.NewAgentPoolsClient(subscriptionID, cred, nil)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to create agent pools client: %w", err)
	}

	span.SetAttributes(
		attribute.Bool("azure.credentials_loaded", true),
	)

	return &Clients{
		ResourceGroups:  resourceGroups,
		ManagedClusters: managedClusters,
		AgentPools:      agentPools,
		Credential:      cred,
		SubscriptionID:  subscriptionID,
	}, nil
}
