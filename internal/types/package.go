package types

// PackageDetails identifies one installed dependency. Path is relative to
// the install root, PathSpecifier is the form users type on the command line.
type PackageDetails struct {
	Name          string
	Path          string
	PathSpecifier string
	Version       string
}

type VCSIdentity struct {
	Provider VCSProvider
	Org      string
	Repo     string
}

// DownloadedPackage is a clean copy of a package inside a throwaway
// repository. PackagePath lives under TmpRepo.
type DownloadedPackage struct {
	TmpRepo     string
	PackagePath string
}
