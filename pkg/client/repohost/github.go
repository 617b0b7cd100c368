package repohost

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/google/go-github/v72/github"
)

// githubHostName is the hostname used to resolve gh CLI credentials.
const githubHostName = "github.com"

// GitHubHost implements Host against the GitHub API. Credentials are resolved
// the same way the gh CLI resolves them (GH_TOKEN/GITHUB_TOKEN environment
// variables or the gh keyring), so `gh auth login` is all the setup needed.
type GitHubHost struct {
	tokenSource func() string
	baseURL     string

	clientOnce sync.Once
	client     *github.Client
	clientErr  error
}

// NewGitHubHost constructs a host that resolves credentials via the gh CLI's
// configuration.
func NewGitHubHost() *GitHubHost {
	return &GitHubHost{
		tokenSource: func() string {
			token, _ := auth.TokenForHost(githubHostName)

			return token
		},
	}
}

// NewGitHubHostWithOptions constructs a host with an injected token source
// and API base URL. Used by tests to point the client at a fake server.
func NewGitHubHostWithOptions(tokenSource func() string, baseURL string) *GitHubHost {
	return &GitHubHost{tokenSource: tokenSource, baseURL: baseURL}
}

// IsAuthenticated verifies a GitHub token is available.
func (h *GitHubHost) IsAuthenticated() error {
	if h.tokenSource() == "" {
		return fmt.Errorf(
			"%w: no GitHub credentials found, run `gh auth login` or set GH_TOKEN",
			ErrNotAuthenticated,
		)
	}

	return nil
}

// AddDeployKey registers the deploy key on owner/repo with the configured access level.
func (h *GitHubHost) AddDeployKey(ctx context.Context, owner, repo string, key DeployKey) error {
	client, err := h.apiClient()
	if err != nil {
		return err
	}

	_, _, err = client.Repositories.CreateKey(ctx, owner, repo, &github.Key{
		Title:    github.Ptr(key.Title),
		Key:      github.Ptr(key.Key),
		ReadOnly: github.Ptr(key.ReadOnly),
	})
	if err != nil {
		return fmt.Errorf("create deploy key on %s/%s: %w", owner, repo, err)
	}

	return nil
}

// ListDeployKeyTitles returns the titles of all deploy keys on owner/repo.
func (h *GitHubHost) ListDeployKeyTitles(ctx context.Context, owner, repo string) ([]string, error) {
	client, err := h.apiClient()
	if err != nil {
		return nil, err
	}

	opts := &github.ListOptions{PerPage: 100}

	var titles []string

	for {
		keys, resp, err := client.Repositories.ListKeys(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list deploy keys on %s/%s: %w", owner, repo, err)
		}

		for _, key := range keys {
			if key.GetTitle() != "" {
				titles = append(titles, key.GetTitle())
			}
		}

		if resp.NextPage == 0 {
			break
		}

		opts.Page = resp.NextPage
	}

	return titles, nil
}

// apiClient lazily builds the authenticated GitHub API client.
func (h *GitHubHost) apiClient() (*github.Client, error) {
	h.clientOnce.Do(func() {
		token := h.tokenSource()
		if token == "" {
			h.clientErr = fmt.Errorf("%w: no GitHub credentials found", ErrNotAuthenticated)

			return
		}

		client := github.NewClient(nil).WithAuthToken(token)

		if h.baseURL != "" {
			parsed, err := url.Parse(h.baseURL)
			if err != nil {
				h.clientErr = fmt.Errorf("parse API base URL: %w", err)

				return
			}

			client.BaseURL = parsed
		}

		h.client = client
	})

	return h.client, h.clientErr
}
