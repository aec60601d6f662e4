package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"patch-package/internal/core"
	"patch-package/internal/types"
)

// PromptIssueCreation prints a hint about --create-issue when the package
// lives on GitHub. It is best-effort: unreadable manifests and unresolved
// repositories print nothing and return no error.
func (s Service) PromptIssueCreation(ctx context.Context, req PromptIssueRequest) PromptIssueResult {
	identity, ok, err := s.resolveIdentity(req.InstallRoot, req.Package)
	if err != nil {
		log.Debug().Err(err).Str("package", req.Package.PathSpecifier).Msg("skipping issue hint")
		return PromptIssueResult{}
	}
	if !ok {
		return PromptIssueResult{}
	}
	name := s.Emphasis.Render(req.Package.Name)
	fmt.Fprintln(s.out(), core.FormatIssueHint(name, identity, req.Package, req.PackageManager))
	return PromptIssueResult{Identity: identity, Printed: true}
}

// OpenIssueCreationLink builds a pre-filled GitHub issue for the patch and
// hands it to the browser. A package without a GitHub repository is an
// error here because the user asked for the issue explicitly.
func (s Service) OpenIssueCreationLink(ctx context.Context, req OpenIssueRequest) (OpenIssueResult, error) {
	identity, ok, err := s.resolveIdentity(req.InstallRoot, req.Package)
	if err != nil {
		return OpenIssueResult{}, err
	}
	if !ok {
		return OpenIssueResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("couldn't find VCS details for %s", req.Package.PathSpecifier))
	}
	link := core.BuildIssueURL(ctx, identity, req.Package.Name, req.PatchFileContents)
	result := OpenIssueResult{Identity: identity, URL: link}
	if req.PrintOnly || s.Opener == nil {
		return result, nil
	}
	if err := s.Opener.Open(link); err != nil {
		log.Warn().Err(err).Msg("could not open browser, use the printed link instead")
		return result, nil
	}
	result.Opened = true
	return result, nil
}

func (s Service) resolveIdentity(installRoot string, pkg types.PackageDetails) (types.VCSIdentity, bool, error) {
	if s.Manifest == nil {
		return types.VCSIdentity{}, false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("manifest reader is not configured")
	}
	manifest, err := s.Manifest.ReadManifest(installRoot, pkg)
	if err != nil {
		return types.VCSIdentity{}, false, err
	}
	identity, ok := core.ResolveRepository(manifest.Repository)
	return identity, ok, nil
}
