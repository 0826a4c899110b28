package kubernetes

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

// WaitForClusterReady waits for the cluster API to be responsive and at least
// one node to reach the Ready condition
func WaitForClusterReady(ctx context.Context, client *kubernetes.Clientset, timeout time.Duration) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "kubernetes.WaitForClusterReady")
	defer span.End()

	span.SetAttributes(
		attribute.String("timeout", timeout.String()),
	)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	status.Send(ctx, status.NewUpdate(status.LevelProgress, "Waiting for cluster to be ready").
		WithResource("aks-cluster").
		WithAction("waiting"))

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			err := fmt.Errorf("timeout waiting for cluster to be ready: %w", ctx.Err())
			span.RecordError(err)
			return err
		case <-ticker.C:
			nodes, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
			if err != nil {
				// API server not ready yet, continue waiting
				continue
			}

			if isAnyNodeReady(nodes.Items) {
				status.Send(ctx, status.NewUpdate(status.LevelSuccess, "Cluster is ready").
					WithResource("aks-cluster").
					WithAction("ready"))
				return nil
			}
		}
	}
}

// isAnyNodeReady reports whether at least one node is in Ready state
func isAnyNodeReady(nodes []corev1.Node) bool {
	for _, node := range nodes {
		for _, condition := range node.Status.Conditions {
			if condition.Type == corev1.NodeReady && condition.Status == corev1.ConditionTrue {
				return true
			}
		}
	}
	return false
}
