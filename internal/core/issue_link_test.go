package core

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patch-package/internal/types"
)

const samplePatch = "diff --git a/node_modules/left-pad/index.js b/node_modules/left-pad/index.js\n" +
	"--- a/node_modules/left-pad/index.js\n" +
	"+++ b/node_modules/left-pad/index.js\n" +
	"@@ -1 +1 @@\n" +
	"-module.exports = pad;\n" +
	"+module.exports = pad + 1;\n"

func TestTrimTrailingNewline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc\n", "abc"},
		{"abc", "abc"},
		{"abc\n\n", "abc\n"},
		{"abc\r\n", "abc"},
		{"", ""},
		{"\n", ""},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, TrimTrailingNewline(tt.in)); diff != "" {
			t.Fatalf("unexpected trim of %q (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestTrimTrailingNewlineUnchangedWithoutTerminator(t *testing.T) {
	trimmed := TrimTrailingNewline(samplePatch)
	assert.Equal(t, trimmed, TrimTrailingNewline(trimmed))
}

func TestBuildIssueURL(t *testing.T) {
	identity := types.VCSIdentity{Provider: types.VCSProviderGitHub, Org: "stevemao", Repo: "left-pad"}
	link := BuildIssueURL(context.Background(), identity, "left-pad", samplePatch)

	require.True(t, strings.HasPrefix(link, "https://github.com/stevemao/left-pad/issues/new?title="))
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "/stevemao/left-pad/issues/new", parsed.Path)
	assert.NotContains(t, parsed.RawQuery, "+")

	query := parsed.Query()
	assert.Equal(t, IssueTitlePlaceholder, query.Get("title"))
	body := query.Get("body")
	assert.Contains(t, body, "to patch `left-pad` for the project")
	assert.Contains(t, body, "```diff\n"+TrimTrailingNewline(samplePatch)+"\n```\n")
	if diff := cmp.Diff(IssueBody("left-pad", samplePatch), body); diff != "" {
		t.Fatalf("unexpected body (-want +got):\n%s", diff)
	}
}

func TestBuildIssueURLEscapesPlusSigns(t *testing.T) {
	identity := types.VCSIdentity{Provider: types.VCSProviderGitHub, Org: "o", Repo: "r"}
	link := BuildIssueURL(context.Background(), identity, "pkg", "+added line & more\n")
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, parsed.Query().Get("body"), "```diff\n+added line & more\n```")
}

func TestBuildIssueURLRawQuery(t *testing.T) {
	identity := types.VCSIdentity{Provider: types.VCSProviderGitHub, Org: "foo", Repo: "bar"}
	link := BuildIssueURL(context.Background(), identity, "bar", "+x (y)*'!\n")

	want := "https://github.com/foo/bar/issues/new?" +
		"title=%5BReplace%20me%5D" +
		"&body=Hi!%20%F0%9F%91%8B%20%0A%20%20%20%20%20%20%0A" +
		"Firstly%2C%20thanks%20for%20your%20work%20on%20this%20project!%20%F0%9F%99%82%0A%0A" +
		"Today%20I%20used%20%5Bpatch-package%5D(https%3A%2F%2Fgithub.com%2Fds300%2Fpatch-package)" +
		"%20to%20patch%20%60bar%60%20for%20the%20project%20I'm%20working%20on%20because%20%5BInsert%20reason%20here%5D.%0A%0A" +
		"Here%20is%20the%20diff%20that%20solved%20my%20problem%3A%0A%0A" +
		"%60%60%60diff%0A%2Bx%20(y)*'!%0A%60%60%60%0A"
	if diff := cmp.Diff(want, link); diff != "" {
		t.Fatalf("unexpected issue url (-want +got):\n%s", diff)
	}
}

func TestEscapeQueryValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a b", "a%20b"},
		{"1+1", "1%2B1"},
		{"!'()*-_.~", "!'()*-_.~"},
		{"a&b=c/d?e#f", "a%26b%3Dc%2Fd%3Fe%23f"},
		{"%21", "%2521"},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, escapeQueryValue(tt.in)); diff != "" {
			t.Fatalf("unexpected escape of %q (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestFormatIssueHint(t *testing.T) {
	identity := types.VCSIdentity{Provider: types.VCSProviderGitHub, Org: "facebook", Repo: "react"}
	pkg := types.PackageDetails{Name: "react", Path: "node_modules/react", PathSpecifier: "react"}

	yarn := FormatIssueHint("react", identity, pkg, types.PackageManagerYarn)
	assert.Contains(t, yarn, "react is on GitHub!")
	assert.Contains(t, yarn, "\n    yarn patch-package react --create-issue\n")

	npm := FormatIssueHint("react", identity, pkg, types.PackageManagerNpm)
	assert.Contains(t, npm, "\n    npx patch-package react --create-issue\n")
}
