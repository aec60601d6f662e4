package core

import (
	"fmt"
	"path"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"patch-package/internal/types"
)

const nodeModulesDir = "node_modules"

// ParsePathSpecifier turns a user supplied specifier such as "a/@scope/b"
// into PackageDetails. Each name is nested inside the previous package's
// node_modules directory; scoped names take two segments.
func ParsePathSpecifier(specifier string) (types.PackageDetails, error) {
	specifier = strings.Trim(strings.TrimSpace(specifier), "/")
	if specifier == "" {
		return types.PackageDetails{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package path specifier is required")
	}
	segments := strings.Split(specifier, "/")
	var names []string
	for i := 0; i < len(segments); i++ {
		segment := segments[i]
		if !validNameSegment(segment) {
			return types.PackageDetails{}, invalidSpecifier(specifier)
		}
		if strings.HasPrefix(segment, "@") {
			if i+1 >= len(segments) || strings.HasPrefix(segments[i+1], "@") || !validNameSegment(segments[i+1]) {
				return types.PackageDetails{}, invalidSpecifier(specifier)
			}
			segment = segment + "/" + segments[i+1]
			i++
		}
		names = append(names, segment)
	}

	parts := make([]string, 0, len(names)*2)
	for _, name := range names {
		parts = append(parts, nodeModulesDir, name)
	}
	return types.PackageDetails{
		Name:          names[len(names)-1],
		Path:          path.Join(parts...),
		PathSpecifier: strings.Join(names, "/"),
	}, nil
}

func validNameSegment(segment string) bool {
	switch segment {
	case "", ".", "..", "@", nodeModulesDir:
		return false
	}
	return !strings.ContainsAny(segment, `\:`)
}

func invalidSpecifier(specifier string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid package path specifier: %s", specifier))
}
