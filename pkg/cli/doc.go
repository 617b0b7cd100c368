// Package cli provides the command wiring for studyctl.
//
// This package is organized into subpackages:
//
//   - cli/cmd: the Cobra command tree (root, cluster, deploy-key)
//   - cli/ui/confirm: interactive confirmation prompts with test overrides
//   - cli/ui/errorhandler: Cobra execution with normalized error reporting
//
// Command handlers resolve their dependencies from the runtime container in
// pkg/di so tests can substitute fakes.
package cli
