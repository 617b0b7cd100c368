// Package deploykey provisions a repository deploy key from a locally
// generated SSH key pair.
package deploykey

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/studytracker/studyctl/pkg/client/repohost"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/svc/keygen"
	"github.com/studytracker/studyctl/pkg/utils/notify"
)

const (
	keyDirMode      = 0o700
	privateKeyMode  = 0o600
	publicKeyMode   = 0o644
	titleSuffix     = " (studyctl)"
	commentTemplate = "%s@study-app"
)

// Provisioner provisions one deploy key according to the loaded configuration.
type Provisioner struct {
	cfg    *configmanager.Config
	host   repohost.Host
	writer io.Writer

	// generate is injectable for tests; defaults to keygen.GenerateEd25519KeyPair.
	generate func(comment string) (*keygen.KeyPair, error)
}

// NewProvisioner constructs a Provisioner writing progress output to writer.
func NewProvisioner(
	cfg *configmanager.Config,
	host repohost.Host,
	writer io.Writer,
) *Provisioner {
	return &Provisioner{
		cfg:      cfg,
		host:     host,
		writer:   writer,
		generate: keygen.GenerateEd25519KeyPair,
	}
}

// PrivateKeyPath returns the derived private key file path.
func (p *Provisioner) PrivateKeyPath() string {
	return filepath.Join(p.cfg.DeployKey.Dir, p.cfg.DeployKey.Name)
}

// PublicKeyPath returns the derived public key file path.
func (p *Provisioner) PublicKeyPath() string {
	return p.PrivateKeyPath() + ".pub"
}

// Title returns the human-readable deploy key title.
func (p *Provisioner) Title() string {
	return p.cfg.DeployKey.Name + titleSuffix
}

// Run executes the full provisioning procedure:
//
//  1. Validate configuration (all missing names reported at once, before any
//     side effect).
//  2. Verify an authenticated hosting-service session exists.
//  3. Ensure the key storage directory exists.
//  4. Generate the key pair unless either half already exists on disk —
//     existing key material is never overwritten.
//  5. Register the public key as a write-enabled deploy key. A key with the
//     same title triggers a warning but registration still proceeds; the
//     hosting service may end up with duplicate records.
func (p *Provisioner) Run(ctx context.Context) error {
	err := p.cfg.ValidateDeployKey()
	if err != nil {
		return err
	}

	err = p.host.IsAuthenticated()
	if err != nil {
		return err
	}

	err = os.MkdirAll(p.cfg.DeployKey.Dir, keyDirMode)
	if err != nil {
		return fmt.Errorf("create key directory %s: %w", p.cfg.DeployKey.Dir, err)
	}

	err = p.ensureKeyPair()
	if err != nil {
		return err
	}

	err = p.registerKey(ctx)
	if err != nil {
		return err
	}

	p.printSummary()

	return nil
}

// ensureKeyPair generates and writes the key pair unless either half already
// exists at the derived path.
func (p *Provisioner) ensureKeyPair() error {
	if p.keyMaterialExists() {
		notify.Infof(p.writer, "key pair already exists at %s, skipping generation", p.PrivateKeyPath())

		return nil
	}

	notify.Activityf(p.writer, "generating ed25519 key pair")

	comment := fmt.Sprintf(commentTemplate, p.cfg.DeployKey.Name)

	pair, err := p.generate(comment)
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}

	err = os.WriteFile(p.PrivateKeyPath(), pair.PrivateKey, privateKeyMode)
	if err != nil {
		return fmt.Errorf("write private key: %w", err)
	}

	err = os.WriteFile(p.PublicKeyPath(), pair.PublicKey, publicKeyMode)
	if err != nil {
		return fmt.Errorf("write public key: %w", err)
	}

	notify.Generatef(p.writer, "wrote %s", p.PrivateKeyPath())
	notify.Generatef(p.writer, "wrote %s", p.PublicKeyPath())

	return nil
}

// keyMaterialExists reports whether either key file is already present.
// A partial pair also counts: re-running never overwrites existing material.
func (p *Provisioner) keyMaterialExists() bool {
	_, privErr := os.Stat(p.PrivateKeyPath())
	_, pubErr := os.Stat(p.PublicKeyPath())

	return privErr == nil || pubErr == nil
}

// registerKey uploads the on-disk public key as a write-enabled deploy key.
func (p *Provisioner) registerKey(ctx context.Context) error {
	publicKey, err := os.ReadFile(p.PublicKeyPath())
	if err != nil {
		return fmt.Errorf("read public key: %w", err)
	}

	p.warnOnDuplicateTitle(ctx)

	notify.Activityf(p.writer, "registering deploy key on %s", p.cfg.Repository())

	err = p.host.AddDeployKey(ctx, p.cfg.DeployKey.Owner, p.cfg.DeployKey.Repo, repohost.DeployKey{
		Title:    p.Title(),
		Key:      string(publicKey),
		ReadOnly: false,
	})
	if err != nil {
		return fmt.Errorf("register deploy key: %w", err)
	}

	return nil
}

// warnOnDuplicateTitle surfaces repeated registrations instead of silently
// deduplicating them. The lookup is best-effort; a failed listing never
// blocks registration.
func (p *Provisioner) warnOnDuplicateTitle(ctx context.Context) {
	titles, err := p.host.ListDeployKeyTitles(ctx, p.cfg.DeployKey.Owner, p.cfg.DeployKey.Repo)
	if err != nil {
		notify.Warningf(p.writer, "could not check for existing deploy keys: %v", err)

		return
	}

	if slices.Contains(titles, p.Title()) {
		notify.Warningf(
			p.writer,
			"a deploy key titled %q already exists on %s; registering another",
			p.Title(),
			p.cfg.Repository(),
		)
	}
}

// printSummary prints paths and follow-up steps for the operator.
func (p *Provisioner) printSummary() {
	notify.Successf(p.writer, "deploy key registered on %s", p.cfg.Repository())
	notify.Infof(
		p.writer,
		"private key: %s\npublic key:  %s\nnext: reference the key in your deployment pipeline, e.g.\n  git clone git@github.com:%s.git",
		p.PrivateKeyPath(),
		p.PublicKeyPath(),
		p.cfg.Repository(),
	)
}
