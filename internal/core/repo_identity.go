package core

import (
	"regexp"
	"strings"

	"patch-package/internal/types"
)

const githubShorthandPrefix = "github:"

var (
	githubURLPattern = regexp.MustCompile(`github\.com(:|/)([\w.-]+/[\w.-]+?)(\.git|/.*)?$`)
	repoSpecPattern  = regexp.MustCompile(`^([\w.-]+)/([\w.-]+)$`)
)

// repoMatch is the outcome of one matcher: either a settled org/repo pair
// or a candidate string handed to the next matcher.
type repoMatch struct {
	Candidate string
	Org       string
	Repo      string
	Matched   bool
}

type repoMatcher func(candidate string) repoMatch

// repoMatchers run in precedence order: shorthand prefix, full URL, bare
// "org/repo" spec. Only the last one settles a match.
var repoMatchers = []repoMatcher{
	matchShorthandPrefix,
	matchGitHubURL,
	matchRepoSpec,
}

// ParseRepositoryString extracts a GitHub identity from a repository
// string. Anything that is not a GitHub URL or an "org/repo" spec is
// unresolved.
func ParseRepositoryString(repository string) (types.VCSIdentity, bool) {
	match := repoMatch{Candidate: repository}
	for _, matcher := range repoMatchers {
		match = matcher(match.Candidate)
		if match.Matched {
			return types.VCSIdentity{
				Provider: types.VCSProviderGitHub,
				Org:      match.Org,
				Repo:     match.Repo,
			}, true
		}
	}
	return types.VCSIdentity{}, false
}

// ResolveRepository dispatches on the shape of a manifest repository field.
func ResolveRepository(field types.RepositoryField) (types.VCSIdentity, bool) {
	switch field.Kind {
	case types.RepositoryKindString:
		return ParseRepositoryString(field.Value)
	case types.RepositoryKindObject:
		if !field.HasURL {
			return types.VCSIdentity{}, false
		}
		return ParseRepositoryString(field.URL)
	default:
		return types.VCSIdentity{}, false
	}
}

func matchShorthandPrefix(candidate string) repoMatch {
	return repoMatch{Candidate: strings.TrimPrefix(candidate, githubShorthandPrefix)}
}

func matchGitHubURL(candidate string) repoMatch {
	groups := githubURLPattern.FindStringSubmatch(candidate)
	if groups == nil {
		return repoMatch{Candidate: candidate}
	}
	return repoMatch{Candidate: groups[2]}
}

func matchRepoSpec(candidate string) repoMatch {
	groups := repoSpecPattern.FindStringSubmatch(candidate)
	if groups == nil {
		return repoMatch{Candidate: candidate}
	}
	return repoMatch{Candidate: candidate, Org: groups[1], Repo: groups[2], Matched: true}
}
