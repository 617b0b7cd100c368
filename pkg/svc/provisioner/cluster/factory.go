package clusterprovisioner

import (
	k3dprovisioner "github.com/studytracker/studyctl/pkg/svc/provisioner/cluster/k3d"
)

// DefaultFactory builds the k3d-backed provisioner used in production.
type DefaultFactory struct{}

// Create returns a k3d provisioner bound to the given cluster config file.
func (DefaultFactory) Create(configPath string) ClusterProvisioner {
	return k3dprovisioner.NewProvisioner(configPath)
}
