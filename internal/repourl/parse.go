// internal/repourl/parse.go
package repourl

import (
	"net/url"
	"strings"

	custom_errors "github.com/erclm/githubmetrics-supa/internal/errors"
	"github.com/erclm/githubmetrics-supa/internal/model"
)

// Host is the only hosting domain accepted by Parse.
const Host = "github.com"

// Parse validates a repository URL and extracts its owner/name identity.
// The first two non-empty path segments become owner and name; anything
// after them (sub-paths, query strings) is ignored. Parse performs no I/O.
func Parse(rawURL string) (model.RepositoryIdentity, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return model.RepositoryIdentity{}, &custom_errors.ErrInvalidURLFormat{URL: rawURL, Cause: err}
	}
	// url.Parse accepts scheme-less strings like "github.com/a/b" by
	// treating everything as a path; those are not valid repository URLs.
	if u.Scheme == "" || u.Host == "" {
		return model.RepositoryIdentity{}, &custom_errors.ErrInvalidURLFormat{URL: rawURL}
	}

	if !strings.EqualFold(u.Hostname(), Host) {
		return model.RepositoryIdentity{}, &custom_errors.ErrUnsupportedHost{Host: u.Hostname()}
	}

	segments := splitPath(u.Path)
	if len(segments) < 2 {
		return model.RepositoryIdentity{}, &custom_errors.ErrIncompleteRepositoryPath{Path: u.Path}
	}

	owner, name := segments[0], segments[1]
	return model.RepositoryIdentity{
		Owner:    owner,
		Name:     name,
		FullName: owner + "/" + name,
	}, nil
}

// splitPath splits a URL path on "/" and drops empty segments, so leading,
// trailing and doubled slashes do not produce phantom entries.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}
