// internal/github/client.go
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	custom_errors "github.com/erclm/githubmetrics-supa/internal/errors"
	"github.com/erclm/githubmetrics-supa/internal/model"
)

// unknownLanguage is stored when the provider reports no primary language.
const unknownLanguage = "Unknown"

// Client is a wrapper around the go-github client. It issues exactly one
// repository-detail request per FetchSnapshot call: no retries, no caching,
// no pagination.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance. The token is
// optional; without one the client reads public data anonymously. A
// non-empty baseURL points the client at a different API root (tests,
// GitHub Enterprise). The timeout bounds each request end to end.
func NewClient(token, baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	gh := github.NewClient(httpClient)
	if baseURL != "" {
		// go-github requires a trailing slash on the base URL. The URL is
		// used exactly as given; no /api/v3 suffix magic.
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("invalid provider base URL %q: %w", baseURL, err)
		}
		gh.BaseURL = u
	}

	return &Client{
		gh:     gh,
		logger: logger,
	}, nil
}

// FetchSnapshot fetches the repository-detail object for the given identity
// and translates it into the internal snapshot shape. Provider failures are
// classified: a non-success HTTP status becomes ErrProviderHTTP, anything
// that never produced a response becomes ErrProviderUnreachable.
func (c *Client) FetchSnapshot(ctx context.Context, identity model.RepositoryIdentity) (*model.RawMetricsSnapshot, error) {
	c.logger.Debug("Fetching repository metrics", "repo", identity.FullName)

	repo, resp, err := c.gh.Repositories.Get(ctx, identity.Owner, identity.Name)
	if err != nil {
		return nil, classifyProviderError(resp, err)
	}

	return toSnapshot(repo), nil
}

// classifyProviderError maps a failed go-github call onto the pipeline's
// error taxonomy. go-github surfaces non-2xx statuses as typed errors with
// the response attached; only transport-level failures arrive without one.
func classifyProviderError(resp *github.Response, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &custom_errors.ErrProviderHTTP{StatusCode: errResp.Response.StatusCode}
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &custom_errors.ErrProviderHTTP{StatusCode: rateErr.Response.StatusCode}
	}

	if resp != nil {
		return &custom_errors.ErrProviderHTTP{StatusCode: resp.StatusCode}
	}

	return &custom_errors.ErrProviderUnreachable{Cause: err}
}

// toSnapshot translates a github.Repository object to the internal snapshot.
// An absent language maps to "Unknown"; an absent push timestamp stays
// absent rather than defaulting to the current time.
func toSnapshot(r *github.Repository) *model.RawMetricsSnapshot {
	snap := &model.RawMetricsSnapshot{
		Name:     r.GetName(),
		Owner:    r.GetOwner().GetLogin(),
		FullName: r.GetFullName(),
		Stars:    r.GetStargazersCount(),
		Forks:    r.GetForksCount(),
		Issues:   r.GetOpenIssuesCount(),
		Language: unknownLanguage,
	}
	if r.Language != nil && *r.Language != "" {
		snap.Language = *r.Language
	}
	if r.PushedAt != nil {
		pushed := r.PushedAt.Time
		snap.PushedAt = &pushed
	}
	return snap
}
