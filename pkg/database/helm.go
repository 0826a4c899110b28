package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/cli"
	"helm.sh/helm/v3/pkg/getter"
	"helm.sh/helm/v3/pkg/repo"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/config"
	"github.com/docuflow-dev/docuflow-infrastructure-core/pkg/status"
)

const (
	repoName  = "bitnami"
	repoURL   = "https://charts.bitnami.com/bitnami"
	chartName = "bitnami/postgresql"

	// DefaultNamespace is the namespace for the in-cluster PostgreSQL release
	DefaultNamespace = "database"
	// DefaultReleaseName is the Helm release name for in-cluster PostgreSQL
	DefaultReleaseName = "docuflow-postgresql"
	// DefaultInstallTimeout bounds the Helm install/upgrade wait
	DefaultInstallTimeout = 10 * time.Minute
)

// InClusterConfig holds the resolved Helm release parameters for the
// in-cluster PostgreSQL installation
type InClusterConfig struct {
	Namespace    string
	ReleaseName  string
	ChartVersion string
	Timeout      time.Duration
	Values       map[string]interface{}
}

// ResolveInClusterConfig applies defaults to a parsed in_cluster config block
func ResolveInClusterConfig(cfg *config.InClusterDatabaseConfig) InClusterConfig {
	resolved := InClusterConfig{
		Namespace:   DefaultNamespace,
		ReleaseName: DefaultReleaseName,
		Timeout:     DefaultInstallTimeout,
	}

	if cfg == nil {
		return resolved
	}

	if cfg.Namespace != "" {
		resolved.Namespace = cfg.Namespace
	}
	if cfg.ReleaseName != "" {
		resolved.ReleaseName = cfg.ReleaseName
	}
	resolved.ChartVersion = cfg.ChartVersion
	resolved.Values = cfg.Values

	return resolved
}

// loadPostgresChart locates and loads the PostgreSQL Helm chart.
// This is extracted to avoid duplication between install and upgrade operations.
func loadPostgresChart(chartPathOptions action.ChartPathOptions) (*chart.Chart, error) {
	chartPath, err := chartPathOptions.LocateChart(chartName, cli.New())
	if err != nil {
		return nil, fmt.Errorf("failed to locate PostgreSQL chart: %w", err)
	}

	loadedChart, err := loader.Load(chartPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load PostgreSQL chart: %w", err)
	}

	return loadedChart, nil
}

// InstallPostgres installs PostgreSQL onto the cluster using the Helm Go SDK
func InstallPostgres(ctx context.Context, kubeconfigBytes []byte, cfg InClusterConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "database.InstallPostgres")
	defer span.End()

	span.SetAttributes(
		attribute.String("chart_version", cfg.ChartVersion),
		attribute.String("namespace", cfg.Namespace),
		attribute.String("release_name", cfg.ReleaseName),
	)

	// Write kubeconfig to a temporary file for Helm to use
	kubeconfigPath, cleanup, err := writeTempKubeconfig(kubeconfigBytes)
	if err != nil {
		span.RecordError(err)
		return err
	}
	defer cleanup()

	actionConfig, err := newHelmActionConfig(kubeconfigPath, cfg.Namespace)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create Helm action config: %w", err)
	}

	// Check if release already exists (idempotency)
	histClient := action.NewHistory(actionConfig)
	histClient.Max = 1
	if releases, err := histClient.Run(cfg.ReleaseName); err == nil {
		current := releases[0]
		if cfg.ChartVersion != "" && current.Chart != nil && current.Chart.Metadata != nil &&
			current.Chart.Metadata.Version == cfg.ChartVersion {
			status.Send(ctx, status.NewUpdate(status.LevelInfo, "PostgreSQL already up to date, skipping").
				WithResource("database").
				WithAction("up-to-date").
				WithMetadata("chart_version", cfg.ChartVersion))
			return nil
		}
		status.Send(ctx, status.NewUpdate(status.LevelInfo, "PostgreSQL already installed, upgrading").
			WithResource("database").
			WithAction("upgrading"))
		return upgradePostgres(ctx, actionConfig, cfg)
	}

	if err := addHelmRepo(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to add PostgreSQL Helm repository: %w", err)
	}

	client := action.NewInstall(actionConfig)
	client.Namespace = cfg.Namespace
	client.ReleaseName = cfg.ReleaseName
	client.CreateNamespace = true
	client.Wait = true
	client.Timeout = cfg.Timeout
	client.ChartPathOptions.Version = cfg.ChartVersion

	status.Send(ctx, status.NewUpdate(status.LevelProgress, "Installing PostgreSQL Helm chart").
		WithResource("database").
		WithAction("installing").
		WithMetadata("chart_version", cfg.ChartVersion))

	chart, err := loadPostgresChart(client.ChartPathOptions)
	if err != nil {
		span.RecordError(err)
		return err
	}

	release, err := client.Run(chart, cfg.Values)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to install PostgreSQL: %w", err)
	}

	span.SetAttributes(
		attribute.String("release_status", string(release.Info.Status)),
		attribute.Int("release_version", release.Version),
	)

	status.Send(ctx, status.NewUpdate(status.LevelSuccess, "PostgreSQL Helm chart installed").
		WithResource("database").
		WithAction("installed").
		WithMetadata("chart_version", cfg.ChartVersion).
		WithMetadata("release_version", release.Version))

	return nil
}

// upgradePostgres upgrades an existing PostgreSQL installation
func upgradePostgres(ctx context.Context, actionConfig *action.Configuration, cfg InClusterConfig) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "database.upgradePostgres")
	defer span.End()

	client := action.NewUpgrade(actionConfig)
	client.Namespace = cfg.Namespace
	client.Wait = true
	client.Timeout = cfg.Timeout
	client.ChartPathOptions.Version = cfg.ChartVersion

	chart, err := loadPostgresChart(client.ChartPathOptions)
	if err != nil {
		span.RecordError(err)
		return err
	}

	release, err := client.Run(cfg.ReleaseName, chart, cfg.Values)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upgrade PostgreSQL: %w", err)
	}

	span.SetAttributes(
		attribute.String("release_status", string(release.Info.Status)),
		attribute.Int("release_version", release.Version),
	)

	status.Send(ctx, status.NewUpdate(status.LevelSuccess, "PostgreSQL Helm chart upgraded").
		WithResource("database").
		WithAction("upgraded").
		WithMetadata("chart_version", cfg.ChartVersion).
		WithMetadata("release_version", release.Version))

	return nil
}

// newHelmActionConfig creates a new Helm action configuration
func newHelmActionConfig(kubeconfigPath string, namespace string) (*action.Configuration, error) {
	actionConfig := new(action.Configuration)

	if err := actionConfig.Init(
		&kubeconfigGetter{path: kubeconfigPath},
		namespace,
		os.Getenv("HELM_DRIVER"), // defaults to "secret" if empty
		func(format string, v ...any) {
			// Helm debug logging (can be customized)
		},
	); err != nil {
		return nil, fmt.Errorf("failed to initialize Helm action config: %w", err)
	}

	return actionConfig, nil
}

// kubeconfigGetter implements the Helm RESTClientGetter interface
type kubeconfigGetter struct {
	path string
}

func (k *kubeconfigGetter) ToRESTConfig() (*rest.Config, error) {
	return clientcmd.BuildConfigFromFlags("", k.path)
}

func (k *kubeconfigGetter) ToDiscoveryClient() (discovery.CachedDiscoveryInterface, error) {
	config, err := k.ToRESTConfig()
	if err != nil {
		return nil, err
	}
	discoveryClient, err := discovery.NewDiscoveryClientForConfig(config)
	if err != nil {
		return nil, err
	}
	return memory.NewMemCacheClient(discoveryClient), nil
}

func (k *kubeconfigGetter) ToRESTMapper() (meta.RESTMapper, error) {
	discoveryClient, err := k.ToDiscoveryClient()
	if err != nil {
		return nil, err
	}
	mapper := restmapper.NewDeferredDiscoveryRESTMapper(discoveryClient)
	return mapper, nil
}

func (k *kubeconfigGetter) ToRawKubeConfigLoader() clientcmd.ClientConfig {
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		&clientcmd.ClientConfigLoadingRules{ExplicitPath: k.path},
		&clientcmd.ConfigOverrides{},
	)
}

// addHelmRepo adds or updates the Bitnami chart repository
func addHelmRepo(ctx context.Context) error {
	tracer := otel.Tracer("docuflow-infrastructure-core")
	_, span := tracer.Start(ctx, "database.addHelmRepo")
	defer span.End()

	settings := cli.New()

	entry := &repo.Entry{
		Name: repoName,
		URL:  repoURL,
	}

	repoFile := settings.RepositoryConfig

	chartRepo, err := repo.NewChartRepository(entry, getter.All(settings))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chart repository: %w", err)
	}

	if _, err := chartRepo.DownloadIndexFile(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to download repository index: %w", err)
	}

	repoFileObj := repo.NewFile()
	if _, err := os.Stat(repoFile); err == nil {
		repoFileObj, err = repo.LoadFile(repoFile)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("failed to load repository file: %w", err)
		}
	}

	repoFileObj.Update(entry)

	if err := repoFileObj.WriteFile(repoFile, 0644); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write repository file: %w", err)
	}

	status.Send(ctx, status.NewUpdate(status.LevelInfo, "Added Bitnami Helm repository").
		WithResource("helm-repo").
		WithAction("added").
		WithMetadata("repo_name", repoName).
		WithMetadata("repo_url", repoURL))

	return nil
}

// writeTempKubeconfig writes kubeconfig bytes to a temporary file and returns
// the file path, a cleanup function to remove the file, and any error.
func writeTempKubeconfig(kubeconfigBytes []byte) (string, func(), error) {
	tmpFile, err := os.CreateTemp("", "kubeconfig-*.yaml")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp kubeconfig: %w", err)
	}

	tmpPath := filepath.Clean(tmpFile.Name())

	if _, err := tmpFile.Write(kubeconfigBytes); err != nil {
		_ = os.Remove(tmpPath)
		return "", nil, fmt.Errorf("failed to write temp kubeconfig: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", nil, fmt.Errorf("failed to close temp kubeconfig: %w", err)
	}

	cleanup := func() {
		_ = os.Remove(tmpPath)
	}

	return tmpPath, cleanup, nil
}
