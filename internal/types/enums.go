package types

type PackageManager string

const (
	PackageManagerNpm  PackageManager = "npm"
	PackageManagerYarn PackageManager = "yarn"
)

// CommandPrefix is the runner shown to users in copy-pastable commands.
func (m PackageManager) CommandPrefix() string {
	if m == PackageManagerYarn {
		return "yarn"
	}
	return "npx"
}

type VCSProvider string

const (
	VCSProviderGitHub VCSProvider = "GitHub"
)

type RepositoryKind string

const (
	RepositoryKindAbsent RepositoryKind = ""
	RepositoryKindString RepositoryKind = "string"
	RepositoryKindObject RepositoryKind = "object"
)
