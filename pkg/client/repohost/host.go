// Package repohost abstracts the source-hosting service used for deploy key registration.
package repohost

import (
	"context"
	"errors"
)

// ErrNotAuthenticated is returned when no authenticated session is available
// for the hosting service.
var ErrNotAuthenticated = errors.New("not authenticated")

// DeployKey describes a deploy key to register on a repository.
type DeployKey struct {
	// Title is the human-readable name shown in the repository settings.
	Title string
	// Key is the public key in authorized_keys format.
	Key string
	// ReadOnly restricts the key to pull access when true.
	ReadOnly bool
}

// Host is the narrow capability interface over a source-hosting service.
type Host interface {
	// IsAuthenticated verifies an authenticated session exists.
	// Returns ErrNotAuthenticated when none is available.
	IsAuthenticated() error

	// AddDeployKey registers the deploy key on owner/repo.
	// Registration is not idempotent: repeated calls may create duplicate
	// key records if the service does not deduplicate.
	AddDeployKey(ctx context.Context, owner, repo string, key DeployKey) error

	// ListDeployKeyTitles returns the titles of deploy keys already
	// registered on owner/repo.
	ListDeployKeyTitles(ctx context.Context, owner, repo string) ([]string, error)
}
