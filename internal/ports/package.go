package ports

import (
	"context"

	"patch-package/internal/types"
)

// PackageDownloaderPort fetches a clean copy of a package into a temporary
// repository. Callers own TmpRepo and remove it when done.
type PackageDownloaderPort interface {
	Download(ctx context.Context, installRoot string, pkg types.PackageDetails, manager types.PackageManager) (types.DownloadedPackage, error)
}

// DirectoryMoverPort replaces dst with src. Whatever dst held before is gone
// afterwards; nothing is merged.
type DirectoryMoverPort interface {
	Replace(src string, dst string) error
}
