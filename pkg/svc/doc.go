// Package svc provides the service layer for studyctl.
//
// This package contains the business logic that coordinates between the CLI
// commands and the underlying clients/infrastructure.
//
// Subpackages:
//   - depcheck: Host dependency verification (Docker binary and daemon)
//   - deploykey: SSH deploy key generation and registration
//   - keygen: ed25519 SSH key pair generation
//   - provisioner: k3d cluster lifecycle and image import
package svc
