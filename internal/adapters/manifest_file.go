package adapters

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"patch-package/internal/ports"
	"patch-package/internal/types"
)

const manifestFileName = "package.json"

type ManifestFileAdapter struct{}

func NewManifestFileAdapter() ManifestFileAdapter {
	return ManifestFileAdapter{}
}

func (a ManifestFileAdapter) ReadManifest(installRoot string, pkg types.PackageDetails) (types.Manifest, error) {
	path := filepath.Join(installRoot, filepath.FromSlash(pkg.Path), manifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		code := errbuilder.CodeInternal
		if errors.Is(err, fs.ErrNotExist) {
			code = errbuilder.CodeNotFound
		}
		return types.Manifest{}, errbuilder.New().
			WithCode(code).
			WithMsg("failed to read package manifest for " + pkg.PathSpecifier).
			WithCause(err)
	}
	var manifest types.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return types.Manifest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package manifest for " + pkg.PathSpecifier).
			WithCause(err)
	}
	return manifest, nil
}

var _ ports.ManifestPort = ManifestFileAdapter{}
