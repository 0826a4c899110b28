package azure

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gopkg.in/yaml.v3"
)

// fetchAdminKubeconfig retrieves the cluster admin kubeconfig from the AKS
// credentials API. Unlike EKS, AKS returns a complete kubeconfig document,
// so no client-side assembly is needed - only validation.
func fetchAdminKubeconfig(ctx context.Context, clients *Clients, resourceGroupName string, clusterName string) ([]byte, error) {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "azure.fetchAdminKubeconfig")
	defer span.End()

	span.SetAttributes(
		attribute.String("cluster_name", clusterName),
		attribute.String("resource_group", resourceGroupName),
	)

	resp, err := clients.ManagedClusters.ListClusterAdminCredentials(ctx, resourceGroupName, clusterName, nil)
	if err != nil {
		if isNotFound(err) {
			err := fmt.Errorf("cluster %s not found: run 'deploy' first to create the cluster", clusterName)
			span.RecordError(err)
			return nil, err
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list admin credentials for cluster %s: %w", clusterName, err)
	}

	if len(resp.Kubeconfigs) == 0 || resp.Kubeconfigs[0] == nil || len(resp.Kubeconfigs[0].Value) == 0 {
		err := fmt.Errorf("cluster %s returned no admin kubeconfig", clusterName)
		span.RecordError(err)
		return nil, err
	}

	kubeconfigBytes := resp.Kubeconfigs[0].Value

	// Sanity-check that the API returned a parseable kubeconfig before
	// handing it to callers that will write it to disk
	var doc map[string]interface{}
	if err := yaml.Unmarshal(kubeconfigBytes, &doc); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("cluster %s returned malformed kubeconfig: %w", clusterName, err)
	}

	span.SetAttributes(attribute.Int("kubeconfig_bytes", len(kubeconfigBytes)))

	return kubeconfigBytes, nil
}
