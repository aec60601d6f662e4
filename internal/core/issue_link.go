package core

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"patch-package/internal/types"
)

// IssueTitlePlaceholder is left in the issue title for the user to replace.
const IssueTitlePlaceholder = "[Replace me]"

const issueBodyTemplate = "Hi! 👋 \n" +
	"      \n" +
	"Firstly, thanks for your work on this project! 🙂\n" +
	"\n" +
	"Today I used [patch-package](https://github.com/ds300/patch-package) to patch `%s` for the project I'm working on because [Insert reason here].\n" +
	"\n" +
	"Here is the diff that solved my problem:\n" +
	"\n" +
	"```diff\n" +
	"%s\n" +
	"```\n"

// TrimTrailingNewline drops a single trailing line terminator. The body
// template adds its own newline before the closing fence.
func TrimTrailingNewline(patch string) string {
	if trimmed, ok := strings.CutSuffix(patch, "\r\n"); ok {
		return trimmed
	}
	trimmed, _ := strings.CutSuffix(patch, "\n")
	return trimmed
}

func IssueBody(packageName string, patch string) string {
	return fmt.Sprintf(issueBodyTemplate, packageName, TrimTrailingNewline(patch))
}

// BuildIssueURL returns the GitHub "new issue" link with the title
// placeholder and the patch embedded in the body.
func BuildIssueURL(ctx context.Context, identity types.VCSIdentity, packageName string, patch string) string {
	assert.NotEmpty(ctx, identity.Org, "vcs org must be set")
	assert.NotEmpty(ctx, identity.Repo, "vcs repo must be set")
	query := "title=" + escapeQueryValue(IssueTitlePlaceholder) +
		"&body=" + escapeQueryValue(IssueBody(packageName, patch))
	return fmt.Sprintf("https://github.com/%s/%s/issues/new?%s", identity.Org, identity.Repo, query)
}

// FormatIssueHint renders the console hint. displayName is the package name
// as it should appear on screen, already styled by the caller.
func FormatIssueHint(displayName string, identity types.VCSIdentity, pkg types.PackageDetails, manager types.PackageManager) string {
	return fmt.Sprintf(
		"💡 %s is on %s! To draft an issue based on your patch run\n\n    %s patch-package %s --create-issue\n",
		displayName,
		identity.Provider,
		manager.CommandPrefix(),
		pkg.PathSpecifier,
	)
}

// queryUnescaper restores the characters encodeURIComponent leaves alone
// but url.QueryEscape encodes. Spaces become %20; a literal "+" is already %2B.
var queryUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func escapeQueryValue(value string) string {
	return queryUnescaper.Replace(url.QueryEscape(value))
}
