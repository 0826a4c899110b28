package provider

import (
	"context"
	"testing"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
)

// fakeProvider is a minimal Provider implementation for registry tests
type fakeProvider struct {
	name string
}

func (f *fakeProvider) Name() string      { return f.name }
func (f *fakeProvider) ConfigKey() string { return f.name }
func (f *fakeProvider) Validate(ctx context.Context, cfg *config.DocuflowConfig) error {
	return nil
}
func (f *fakeProvider) Deploy(ctx context.Context, cfg *config.DocuflowConfig) error {
	return nil
}
func (f *fakeProvider) Destroy(ctx context.Context, cfg *config.DocuflowConfig) error {
	return nil
}
func (f *fakeProvider) GetKubeconfig(ctx context.Context, cfg *config.DocuflowConfig) ([]byte, error) {
	return nil, nil
}
func (f *fakeProvider) Summary(cfg *config.DocuflowConfig) map[string]string {
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()

	p := &fakeProvider{name: "azure"}
	if err := registry.Register(ctx, "azure", p); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	got, err := registry.Get(ctx, "azure")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name() != "azure" {
		t.Errorf("Get().Name() = %q, want %q", got.Name(), "azure")
	}
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()

	if err := registry.Register(ctx, "azure", &fakeProvider{name: "azure"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(ctx, "azure", &fakeProvider{name: "azure"}); err == nil {
		t.Error("Register() expected error for duplicate registration, got nil")
	}
}

func TestRegistryGetUnknownProvider(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()

	if _, err := registry.Get(ctx, "gcp"); err == nil {
		t.Error("Get() expected error for unknown provider, got nil")
	}
}

func TestRegistryList(t *testing.T) {
	ctx := context.Background()
	registry := NewRegistry()

	if err := registry.Register(ctx, "azure", &fakeProvider{name: "azure"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := registry.Register(ctx, "aws", &fakeProvider{name: "aws"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	names := registry.List(ctx)
	if len(names) != 2 {
		t.Fatalf("List() returned %d providers, want 2", len(names))
	}

	seen := make(map[string]bool)
	for _, n := range names {
		seen[n] = true
	}
	if !seen["azure"] || !seen["aws"] {
		t.Errorf("List() = %v, want azure and aws", names)
	}
}
