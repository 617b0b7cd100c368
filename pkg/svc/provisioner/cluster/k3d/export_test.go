package k3dprovisioner

// ParseClusterNames exposes parseClusterNames for testing.
var ParseClusterNames = parseClusterNames

// AppendConfigFlag exposes appendConfigFlag for testing.
func (p *Provisioner) AppendConfigFlag(args []string) []string {
	return p.appendConfigFlag(args)
}
