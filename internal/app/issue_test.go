package app

import (
	"bytes"
	"context"
	"net/url"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patch-package/internal/core"
	"patch-package/internal/types"
)

type stubManifest struct {
	manifest types.Manifest
	err      error
}

func (s stubManifest) ReadManifest(_ string, _ types.PackageDetails) (types.Manifest, error) {
	return s.manifest, s.err
}

type recordingOpener struct {
	urls []string
	err  error
}

func (r *recordingOpener) Open(url string) error {
	r.urls = append(r.urls, url)
	return r.err
}

func stringRepository(value string) types.Manifest {
	return types.Manifest{
		Name:       "react",
		Repository: types.RepositoryField{Kind: types.RepositoryKindString, Value: value},
	}
}

var reactPackage = types.PackageDetails{Name: "react", Path: "node_modules/react", PathSpecifier: "react"}

func TestPromptIssueCreation_YarnHint(t *testing.T) {
	var out bytes.Buffer
	svc := Service{
		Manifest: stubManifest{manifest: stringRepository("github:facebook/react")},
		Out:      &out,
		Emphasis: lipgloss.NewStyle(),
	}
	result := svc.PromptIssueCreation(context.Background(), PromptIssueRequest{
		Package:        reactPackage,
		PackageManager: types.PackageManagerYarn,
	})
	assert.True(t, result.Printed)
	want := types.VCSIdentity{Provider: types.VCSProviderGitHub, Org: "facebook", Repo: "react"}
	if diff := cmp.Diff(want, result.Identity); diff != "" {
		t.Fatalf("unexpected identity (-want +got):\n%s", diff)
	}
	assert.Contains(t, out.String(), "react is on GitHub!")
	assert.Contains(t, out.String(), "    yarn patch-package react --create-issue")
}

func TestPromptIssueCreation_NpmHint(t *testing.T) {
	var out bytes.Buffer
	svc := Service{
		Manifest: stubManifest{manifest: stringRepository("https://github.com/facebook/react")},
		Out:      &out,
		Emphasis: lipgloss.NewStyle(),
	}
	svc.PromptIssueCreation(context.Background(), PromptIssueRequest{
		Package:        reactPackage,
		PackageManager: types.PackageManagerNpm,
	})
	assert.Contains(t, out.String(), "    npx patch-package react --create-issue")
}

func TestPromptIssueCreation_SilentWhenUnresolved(t *testing.T) {
	var out bytes.Buffer
	svc := Service{
		Manifest: stubManifest{manifest: stringRepository("https://gitlab.com/foo/bar")},
		Out:      &out,
		Emphasis: lipgloss.NewStyle(),
	}
	result := svc.PromptIssueCreation(context.Background(), PromptIssueRequest{Package: reactPackage})
	assert.False(t, result.Printed)
	assert.Empty(t, out.String())
}

func TestPromptIssueCreation_SilentOnManifestError(t *testing.T) {
	var out bytes.Buffer
	svc := Service{
		Manifest: stubManifest{err: errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("missing")},
		Out:      &out,
		Emphasis: lipgloss.NewStyle(),
	}
	result := svc.PromptIssueCreation(context.Background(), PromptIssueRequest{Package: reactPackage})
	assert.False(t, result.Printed)
	assert.Empty(t, out.String())
}

func TestOpenIssueCreationLink_OpensComposedURL(t *testing.T) {
	opener := &recordingOpener{}
	svc := Service{
		Manifest: stubManifest{manifest: types.Manifest{
			Name: "bar",
			Repository: types.RepositoryField{
				Kind:   types.RepositoryKindObject,
				URL:    "git+https://github.com/foo/bar.git",
				HasURL: true,
			},
		}},
		Opener: opener,
	}
	patch := "--- a/index.js\n+++ b/index.js\n"
	result, err := svc.OpenIssueCreationLink(context.Background(), OpenIssueRequest{
		Package:           types.PackageDetails{Name: "bar", Path: "node_modules/bar", PathSpecifier: "bar"},
		PatchFileContents: patch,
	})
	require.NoError(t, err)
	assert.True(t, result.Opened)
	require.Len(t, opener.urls, 1)
	assert.Equal(t, result.URL, opener.urls[0])

	parsed, err := url.Parse(result.URL)
	require.NoError(t, err)
	assert.Equal(t, "github.com", parsed.Host)
	assert.Equal(t, "/foo/bar/issues/new", parsed.Path)
	assert.Equal(t, core.IssueTitlePlaceholder, parsed.Query().Get("title"))
	assert.Contains(t, parsed.Query().Get("body"), "```diff\n--- a/index.js\n+++ b/index.js\n```")
}

func TestOpenIssueCreationLink_PrintOnlySkipsOpener(t *testing.T) {
	opener := &recordingOpener{}
	svc := Service{
		Manifest: stubManifest{manifest: stringRepository("facebook/react")},
		Opener:   opener,
	}
	result, err := svc.OpenIssueCreationLink(context.Background(), OpenIssueRequest{
		Package:   reactPackage,
		PrintOnly: true,
	})
	require.NoError(t, err)
	assert.False(t, result.Opened)
	assert.Empty(t, opener.urls)
	assert.NotEmpty(t, result.URL)
}

func TestOpenIssueCreationLink_OpenerFailureKeepsURL(t *testing.T) {
	opener := &recordingOpener{err: assert.AnError}
	svc := Service{
		Manifest: stubManifest{manifest: stringRepository("facebook/react")},
		Opener:   opener,
	}
	result, err := svc.OpenIssueCreationLink(context.Background(), OpenIssueRequest{Package: reactPackage})
	require.NoError(t, err)
	assert.False(t, result.Opened)
	assert.NotEmpty(t, result.URL)
}

func TestOpenIssueCreationLink_UnresolvedIsError(t *testing.T) {
	opener := &recordingOpener{}
	svc := Service{
		Manifest: stubManifest{manifest: stringRepository("https://gitlab.com/foo/bar")},
		Opener:   opener,
	}
	_, err := svc.OpenIssueCreationLink(context.Background(), OpenIssueRequest{
		Package: types.PackageDetails{Name: "bar", Path: "node_modules/bar", PathSpecifier: "bar"},
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "couldn't find VCS details for bar")
	assert.Empty(t, opener.urls)
}

func TestOpenIssueCreationLink_ManifestErrorPropagates(t *testing.T) {
	svc := Service{
		Manifest: stubManifest{err: errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("failed to parse package manifest")},
	}
	_, err := svc.OpenIssueCreationLink(context.Background(), OpenIssueRequest{Package: reactPackage})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
