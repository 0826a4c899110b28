package kubernetes

import (
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func node(name string, ready corev1.ConditionStatus) corev1.Node {
	return corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: ready},
			},
		},
	}
}

func TestIsAnyNodeReady(t *testing.T) {
	tests := []struct {
		name  string
		nodes []corev1.Node
		want  bool
	}{
		{
			name:  "no nodes",
			nodes: nil,
			want:  false,
		},
		{
			name:  "single ready node",
			nodes: []corev1.Node{node("node-0", corev1.ConditionTrue)},
			want:  true,
		},
		{
			name:  "single not-ready node",
			nodes: []corev1.Node{node("node-0", corev1.ConditionFalse)},
			want:  false,
		},
		{
			name: "one ready among not-ready",
			nodes: []corev1.Node{
				node("node-0", corev1.ConditionFalse),
				node("node-1", corev1.ConditionUnknown),
				node("node-2", corev1.ConditionTrue),
			},
			want: true,
		},
		{
			name: "node without ready condition",
			nodes: []corev1.Node{
				{ObjectMeta: metav1.ObjectMeta{Name: "node-0"}},
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isAnyNodeReady(tt.nodes); got != tt.want {
				t.Errorf("isAnyNodeReady() = %v, want %v", got, tt.want)
			}
		})
	}
}
