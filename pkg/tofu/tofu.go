package tofu

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hashicorp/terraform-exec/tfexec"
	"github.com/opentofu/tofudl"
	"github.com/spf13/afero"
)

// binaryDownloader abstracts fetching the OpenTofu binary so tests can
// substitute a fake instead of hitting the release mirror.
type binaryDownloader interface {
	download(ctx context.Context) ([]byte, error)
}

// mirrorDownloader downloads OpenTofu via tofudl with a filesystem-backed
// mirror so repeated runs reuse the cached artifact.
type mirrorDownloader struct {
	cacheDir string
}

func (m *mirrorDownloader) download(ctx context.Context) ([]byte, error) {
	dl, err := tofudl.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tofu downloader: %w", err)
	}

	storage, err := tofudl.NewFilesystemStorage(m.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tofu filesystem storage: %w", err)
	}
	mirror, err := tofudl.NewMirror(
		tofudl.MirrorConfig{
			AllowStale:           true, // Use cached binary if download fails
			APICacheTimeout:      -1,   // Cache API responses indefinitely
			ArtifactCacheTimeout: -1,   // Cache binaries indefinitely
		},
		storage,
		dl,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tofu mirror: %w", err)
	}

	ver := tofudl.Version(DefaultVersion)
	binary, err := mirror.Download(ctx, tofudl.DownloadOptVersion(ver))
	if err != nil {
		return nil, fmt.Errorf("failed to download tofu binary: %w", err)
	}

	return binary, nil
}

func getCacheDir(appFs afero.Fs) (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}

	tofuCacheDir := filepath.Join(userCacheDir, "dic", "tofu")
	if err := appFs.MkdirAll(tofuCacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create dic/tofu cache directory: %w", err)
	}

	return tofuCacheDir, nil
}

func getPluginCacheDir(appFs afero.Fs, cacheDir string) (string, error) {
	pluginCacheDir := filepath.Join(cacheDir, "plugins")
	if err := appFs.MkdirAll(pluginCacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create plugin cache directory: %w", err)
	}

	return pluginCacheDir, nil
}

// getWorkspaceDir returns the per-project working directory for tofu runs.
// The directory is stable across invocations: local state written by apply
// must survive so a later destroy can find it.
func getWorkspaceDir(appFs afero.Fs, projectName string) (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user cache directory: %w", err)
	}

	workspaceDir := filepath.Join(userCacheDir, "dic", "workspaces", projectName)
	if err := appFs.MkdirAll(workspaceDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create workspace directory: %w", err)
	}

	return workspaceDir, nil
}

func downloadExecutable(ctx context.Context, appFs afero.Fs, cacheDir string, downloader binaryDownloader) (string, error) {
	binary, err := downloader.download(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get tofu binary: %w", err)
	}

	execPath := filepath.Join(cacheDir, "tofu")
	if runtime.GOOS == "windows" {
		execPath += ".exe"
	}
	if err := afero.WriteFile(appFs, execPath, binary, 0755); err != nil {
		return "", fmt.Errorf("failed to write tofu binary to cache: %w", err)
	}

	return execPath, nil
}

// extractTemplates copies the embedded templates into the workspace directory.
// Existing template files are overwritten so upgrades take effect, but state
// files already present in the workspace are left untouched.
func extractTemplates(appFs afero.Fs, templates fs.FS, workspaceDir string) error {
	const templatesDir = "templates"

	err := fs.WalkDir(templates, templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip the root directory itself
		if path == templatesDir {
			return nil
		}

		// Calculate relative path (remove "templates/" prefix)
		relPath, err := filepath.Rel(templatesDir, path)
		if err != nil {
			return err
		}

		targetPath := filepath.Join(workspaceDir, relPath)

		if d.IsDir() {
			return appFs.MkdirAll(targetPath, 0755)
		}

		data, err := fs.ReadFile(templates, path)
		if err != nil {
			return err
		}

		return afero.WriteFile(appFs, targetPath, data, 0644)
	})
	if err != nil {
		return fmt.Errorf("failed to extract templates: %w", err)
	}

	return nil
}

// Setup prepares the OpenTofu environment by downloading the binary (if not
// cached), configuring provider plugin caching, extracting the provider
// templates into the project workspace, and writing tfvars. Returns a
// Terraform executor configured with stdout/stderr; the caller is responsible
// for calling Init() with appropriate options.
// The binary and providers are cached in ~/.cache/dic/tofu/ and the working
// directory persists under ~/.cache/dic/workspaces/<project> so local state
// survives between runs.
func Setup(ctx context.Context, projectName string, templates fs.FS, tfvars any) (*tfexec.Terraform, error) {
	appFs := afero.NewOsFs()

	cacheDir, err := getCacheDir(appFs)
	if err != nil {
		return nil, fmt.Errorf("failed to get cache directory: %w", err)
	}

	pluginCacheDir, err := getPluginCacheDir(appFs, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin cache directory: %w", err)
	}

	execPath, err := downloadExecutable(ctx, appFs, cacheDir, &mirrorDownloader{cacheDir: cacheDir})
	if err != nil {
		return nil, fmt.Errorf("failed to get executable: %w", err)
	}

	workingDir, err := getWorkspaceDir(appFs, projectName)
	if err != nil {
		return nil, err
	}

	if err := extractTemplates(appFs, templates, workingDir); err != nil {
		return nil, err
	}

	// Set plugin cache environment variable for Terraform
	if err := os.Setenv("TF_PLUGIN_CACHE_DIR", pluginCacheDir); err != nil {
		return nil, fmt.Errorf("failed to set TF_PLUGIN_CACHE_DIR: %w", err)
	}

	tfvarsJSON, err := json.Marshal(tfvars)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tfvars: %w", err)
	}
	if err := afero.WriteFile(appFs, filepath.Join(workingDir, "terraform.tfvars.json"), tfvarsJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write tfvars: %w", err)
	}

	tf, err := tfexec.NewTerraform(workingDir, execPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create terraform executor: %w", err)
	}

	tf.SetStdout(os.Stdout)
	tf.SetStderr(os.Stderr)

	return tf, nil
}

// RemoveWorkspace deletes the persistent workspace for a project, including
// any local state. Called after a successful destroy.
func RemoveWorkspace(projectName string) error {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return fmt.Errorf("failed to get user cache directory: %w", err)
	}

	workspaceDir := filepath.Join(userCacheDir, "dic", "workspaces", projectName)
	if err := os.RemoveAll(workspaceDir); err != nil {
		return fmt.Errorf("failed to remove workspace directory: %w", err)
	}

	return nil
}

// SignalSafeContext exposes the platform-specific SIGINT handling wrapper for
// long-running tofu operations.
func SignalSafeContext(ctx context.Context) context.Context {
	return signalSafeContext(ctx)
}
