// Package database bootstraps the document-processing PostgreSQL instance:
// it ensures the required extensions exist, the application role exists, and
// the role holds full privileges on the application database. Optionally it
// first installs PostgreSQL onto the provisioned cluster via Helm.
package database

import (
	"fmt"
	"os"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
)

// Defaults applied when the corresponding field is omitted from the
// database block of docuflow-config.yaml.
const (
	DefaultHost      = "localhost"
	DefaultPort      = 5432
	DefaultAdminUser = "postgres"
	DefaultName      = "docprocessing"
	DefaultRole      = "docprocessing"
)

// DefaultExtensions are created when none are configured. uuid-ossp backs
// document UUID generation; pg_trgm backs trigram text search.
var DefaultExtensions = []string{"uuid-ossp", "pg_trgm"}

// Settings holds the fully resolved bootstrap parameters
type Settings struct {
	Host          string
	Port          int
	AdminUser     string
	AdminPassword string
	Name          string
	Role          string
	Extensions    []string
}

// ResolveSettings applies defaults to a parsed database config block.
// The admin password is read from PGPASSWORD, never from YAML.
func ResolveSettings(cfg *config.DatabaseConfig) Settings {
	settings := Settings{
		Host:          DefaultHost,
		Port:          DefaultPort,
		AdminUser:     DefaultAdminUser,
		AdminPassword: os.Getenv("PGPASSWORD"),
		Name:          DefaultName,
		Role:          DefaultRole,
		Extensions:    DefaultExtensions,
	}

	if cfg == nil {
		return settings
	}

	if cfg.Host != "" {
		settings.Host = cfg.Host
	}
	if cfg.Port != 0 {
		settings.Port = cfg.Port
	}
	if cfg.AdminUser != "" {
		settings.AdminUser = cfg.AdminUser
	}
	if cfg.Name != "" {
		settings.Name = cfg.Name
	}
	if cfg.Role != "" {
		settings.Role = cfg.Role
	}
	if len(cfg.Extensions) > 0 {
		settings.Extensions = cfg.Extensions
	}

	return settings
}

// dsn builds the connection string for the target database
func (s Settings) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s", s.AdminUser, s.AdminPassword, s.Host, s.Port, s.Name)
}
