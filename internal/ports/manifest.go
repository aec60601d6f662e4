package ports

import "patch-package/internal/types"

// ManifestPort reads the package.json of an installed dependency.
type ManifestPort interface {
	ReadManifest(installRoot string, pkg types.PackageDetails) (types.Manifest, error)
}
