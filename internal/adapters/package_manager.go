package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"patch-package/internal/types"
)

// ParsePackageManager accepts "npm", "yarn", or "auto"/"" which picks one
// from the lockfiles under root.
func ParsePackageManager(value string, root string) (types.PackageManager, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(types.PackageManagerNpm):
		return types.PackageManagerNpm, nil
	case string(types.PackageManagerYarn):
		return types.PackageManagerYarn, nil
	case "", "auto":
		return DetectPackageManager(root), nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported package manager: " + value)
	}
}

// DetectPackageManager prefers yarn only when yarn.lock is the sole lockfile.
func DetectPackageManager(root string) types.PackageManager {
	hasYarnLock := fileExists(filepath.Join(root, "yarn.lock"))
	hasNpmLock := fileExists(filepath.Join(root, "package-lock.json")) ||
		fileExists(filepath.Join(root, "npm-shrinkwrap.json"))
	if hasYarnLock && !hasNpmLock {
		return types.PackageManagerYarn
	}
	return types.PackageManagerNpm
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
