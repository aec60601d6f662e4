package adapters

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"patch-package/internal/ports"
	"patch-package/internal/shared"
	"patch-package/internal/types"
)

// registryConfigFiles are copied into the temporary repository so the clean
// install talks to the same registry, with the same credentials, as the
// project itself.
var registryConfigFiles = []string{".npmrc", ".yarnrc", ".yarnrc.yml"}

type commandRunner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

type PackageDownloadAdapter struct {
	Manifest ports.ManifestPort
	Run      commandRunner
}

func NewPackageDownloadAdapter(manifest ports.ManifestPort) PackageDownloadAdapter {
	return PackageDownloadAdapter{Manifest: manifest, Run: runCommand}
}

func (a PackageDownloadAdapter) Download(ctx context.Context, installRoot string, pkg types.PackageDetails, manager types.PackageManager) (types.DownloadedPackage, error) {
	version, err := a.installedVersion(installRoot, pkg)
	if err != nil {
		return types.DownloadedPackage{}, err
	}
	tmpRepo, err := os.MkdirTemp("", "patch-package-")
	if err != nil {
		return types.DownloadedPackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temporary repository").
			WithCause(err)
	}
	downloaded, err := a.install(ctx, installRoot, tmpRepo, pkg, version, manager)
	if err != nil {
		_ = os.RemoveAll(tmpRepo)
		return types.DownloadedPackage{}, err
	}
	return downloaded, nil
}

func (a PackageDownloadAdapter) install(ctx context.Context, installRoot string, tmpRepo string, pkg types.PackageDetails, version string, manager types.PackageManager) (types.DownloadedPackage, error) {
	if err := writeTmpManifest(tmpRepo, pkg.Name, version); err != nil {
		return types.DownloadedPackage{}, err
	}
	for _, name := range registryConfigFiles {
		src := filepath.Join(installRoot, name)
		if !fileExists(src) {
			continue
		}
		if err := copyFile(src, filepath.Join(tmpRepo, name)); err != nil {
			return types.DownloadedPackage{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to copy " + name + " into temporary repository").
				WithCause(err)
		}
	}

	command, args := installCommand(manager)
	log.Debug().
		Str("package", pkg.PathSpecifier).
		Str("version", version).
		Str("cmd", command+" "+strings.Join(args, " ")).
		Msg("fetching clean package")
	run := a.Run
	if run == nil {
		run = runCommand
	}
	if output, err := run(ctx, tmpRepo, command, args...); err != nil {
		return types.DownloadedPackage{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(command + " failed to fetch " + pkg.Name + "@" + version).
			WithCause(shared.CommandError(output, err))
	}

	packagePath := filepath.Join(tmpRepo, "node_modules", filepath.FromSlash(pkg.Name))
	if info, err := os.Stat(packagePath); err != nil {
		return types.DownloadedPackage{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("clean copy of " + pkg.Name + " missing after install").
			WithCause(err)
	} else if !info.IsDir() {
		return types.DownloadedPackage{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("clean copy of " + pkg.Name + " is not a directory")
	}
	return types.DownloadedPackage{TmpRepo: tmpRepo, PackagePath: packagePath}, nil
}

func (a PackageDownloadAdapter) installedVersion(installRoot string, pkg types.PackageDetails) (string, error) {
	if version := strings.TrimSpace(pkg.Version); version != "" {
		return version, nil
	}
	if a.Manifest == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("installed version of " + pkg.PathSpecifier + " is unknown")
	}
	manifest, err := a.Manifest.ReadManifest(installRoot, pkg)
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(manifest.Version)
	if version == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package manifest for " + pkg.PathSpecifier + " has no version")
	}
	return version, nil
}

func installCommand(manager types.PackageManager) (string, []string) {
	if manager == types.PackageManagerYarn {
		return "yarn", []string{"install", "--ignore-engines", "--ignore-scripts", "--non-interactive"}
	}
	return "npm", []string{"install", "--ignore-scripts", "--no-audit", "--no-fund", "--force"}
}

func writeTmpManifest(dir string, name string, version string) error {
	manifest := map[string]any{
		"name":         "patch-package-clean-install",
		"version":      "0.0.0",
		"private":      true,
		"dependencies": map[string]string{name: version},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode temporary package manifest").
			WithCause(err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFileName), data, 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write temporary package manifest").
			WithCause(err)
	}
	return nil
}

func runCommand(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

var _ ports.PackageDownloaderPort = PackageDownloadAdapter{}
