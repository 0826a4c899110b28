//go:build integration

package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestBootstrapIntegration runs the bootstrap statements against a real
// PostgreSQL instance. Requires Docker:
//
//	go test -tags integration ./pkg/database/
func TestBootstrapIntegration(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("docprocessing"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("secret"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	defer func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get mapped port: %v", err)
	}

	settings := Settings{
		Host:          host,
		Port:          port.Int(),
		AdminUser:     "postgres",
		AdminPassword: "secret",
		Name:          "docprocessing",
		Role:          "docprocessing",
		Extensions:    DefaultExtensions,
	}

	bootstrapCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	if err := Bootstrap(bootstrapCtx, settings); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}

	// Re-running must be a no-op
	if err := Bootstrap(bootstrapCtx, settings); err != nil {
		t.Fatalf("Bootstrap() second run error = %v", err)
	}

	conn, err := pgx.Connect(ctx, settings.dsn())
	if err != nil {
		t.Fatalf("failed to connect for verification: %v", err)
	}
	defer conn.Close(ctx)

	for _, extension := range settings.Extensions {
		var installed bool
		err := conn.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = $1)", extension).Scan(&installed)
		if err != nil {
			t.Fatalf("failed to query pg_extension: %v", err)
		}
		if !installed {
			t.Errorf("extension %s not installed", extension)
		}
	}

	var roleExists bool
	if err := conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = 'docprocessing')").Scan(&roleExists); err != nil {
		t.Fatalf("failed to query pg_roles: %v", err)
	}
	if !roleExists {
		t.Error("role docprocessing not created")
	}

	var hasPrivilege bool
	if err := conn.QueryRow(ctx,
		"SELECT has_database_privilege('docprocessing', 'docprocessing', 'CREATE')").Scan(&hasPrivilege); err != nil {
		t.Fatalf("failed to query database privilege: %v", err)
	}
	if !hasPrivilege {
		t.Error("role docprocessing has no CREATE privilege on database")
	}
}
