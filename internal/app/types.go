package app

import "patch-package/internal/types"

type PromptIssueRequest struct {
	InstallRoot    string
	Package        types.PackageDetails
	PackageManager types.PackageManager
}

type PromptIssueResult struct {
	Identity types.VCSIdentity
	Printed  bool
}

type OpenIssueRequest struct {
	InstallRoot       string
	Package           types.PackageDetails
	PatchFileContents string
	PrintOnly         bool
}

type OpenIssueResult struct {
	Identity types.VCSIdentity
	URL      string
	Opened   bool
}

type InstallCleanRequest struct {
	InstallRoot    string
	Package        types.PackageDetails
	PackageManager types.PackageManager
}

type InstallCleanResult struct {
	Destination string
}
