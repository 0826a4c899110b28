package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

// extensionStatement builds an idempotent CREATE EXTENSION statement.
// Extension names like uuid-ossp contain a hyphen and must be quoted.
func extensionStatement(extension string) string {
	return fmt.Sprintf("CREATE EXTENSION IF NOT EXISTS %s", pgx.Identifier{extension}.Sanitize())
}

// grantStatement builds the GRANT giving the application role full
// privileges on the application database
func grantStatement(database string, role string) string {
	return fmt.Sprintf("GRANT ALL PRIVILEGES ON DATABASE %s TO %s",
		pgx.Identifier{database}.Sanitize(), pgx.Identifier{role}.Sanitize())
}

// createRoleStatement builds the CREATE ROLE for the application role.
// PostgreSQL has no CREATE ROLE IF NOT EXISTS, so callers must check
// pg_roles first.
func createRoleStatement(role string) string {
	return fmt.Sprintf("CREATE ROLE %s LOGIN", pgx.Identifier{role}.Sanitize())
}

// Bootstrap connects to the target database and runs the initialization
// statements. Every statement is idempotent, so re-running Bootstrap against
// an already-initialized database is a no-op.
func Bootstrap(ctx context.Context, settings Settings) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "database.Bootstrap")
	defer span.End()

	span.SetAttributes(
		attribute.String("database.host", settings.Host),
		attribute.Int("database.port", settings.Port),
		attribute.String("database.name", settings.Name),
		attribute.String("database.role", settings.Role),
		attribute.Int("database.extension_count", len(settings.Extensions)),
	)

	status.Progressf(ctx, "Connecting to database %s at %s:%d...", settings.Name, settings.Host, settings.Port)

	conn, err := pgx.Connect(ctx, settings.dsn())
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to connect to database %s: %w", settings.Name, err)
	}
	defer func() { _ = conn.Close(ctx) }()

	for _, extension := range settings.Extensions {
		if _, err := conn.Exec(ctx, extensionStatement(extension)); err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to create extension %s: %w", extension, err)
		}
		status.Infof(ctx, "Extension %s is available", extension)
	}

	if err := ensureRole(ctx, conn, settings.Role); err != nil {
		span.RecordError(err)
		return err
	}

	if _, err := conn.Exec(ctx, grantStatement(settings.Name, settings.Role)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to grant privileges on %s to %s: %w", settings.Name, settings.Role, err)
	}

	status.Successf(ctx, "Database %s bootstrapped for role %s", settings.Name, settings.Role)

	return nil
}

// ensureRole creates the application role when it does not exist yet
func ensureRole(ctx context.Context, conn *pgx.Conn, role string) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	ctx, span := tracer.Start(ctx, "database.ensureRole")
	defer span.End()

	span.SetAttributes(attribute.String("database.role", role))

	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM pg_roles WHERE rolname = $1)", role).Scan(&exists); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to check role %s: %w", role, err)
	}

	if exists {
		span.SetAttributes(attribute.Bool("role_created", false))
		return nil
	}

	if _, err := conn.Exec(ctx, createRoleStatement(role)); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create role %s: %w", role, err)
	}

	span.SetAttributes(attribute.Bool("role_created", true))
	status.Infof(ctx, "Created role %s", role)

	return nil
}
