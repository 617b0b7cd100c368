// Package clusterprovisioner defines the capability interface for managing
// the local development Kubernetes cluster.
package clusterprovisioner

import (
	"context"
)

// ClusterProvisioner defines methods for managing local Kubernetes clusters.
// The external cluster manager owns all cluster state; implementations query
// it fresh on every call instead of caching.
type ClusterProvisioner interface {
	// Create creates a cluster from the provisioner's configuration file.
	// If name is non-empty it targets that name, otherwise the config default.
	Create(ctx context.Context, name string) error

	// Delete deletes a cluster by name.
	Delete(ctx context.Context, name string) error

	// List lists all clusters known to the cluster manager.
	List(ctx context.Context) ([]string, error)

	// Exists checks whether a cluster with the given name is present.
	Exists(ctx context.Context, name string) (bool, error)

	// ImportImages loads locally built container images into the named cluster.
	ImportImages(ctx context.Context, name string, images []string) error
}

// Factory builds a ClusterProvisioner for a cluster configuration file.
// Commands resolve a Factory from the runtime container so tests can
// substitute fakes.
type Factory interface {
	Create(configPath string) ClusterProvisioner
}
