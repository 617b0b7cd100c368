// Package keygen generates SSH key pairs for deploy key provisioning.
//
// Keys use the Ed25519 signature scheme. The private key is emitted in
// OpenSSH PEM format without a passphrase, the public key in authorized_keys
// format with a trailing comment.
package keygen

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"strings"

	"golang.org/x/crypto/ssh"
)

// KeyPair holds an Ed25519 key pair in ready-to-use formats.
type KeyPair struct {
	// PrivateKey is the private key in OpenSSH PEM format.
	PrivateKey []byte
	// PublicKey is the public key in OpenSSH authorized_keys format,
	// including the comment.
	PublicKey []byte
}

// GenerateEd25519KeyPair generates a new Ed25519 key pair with the given
// comment embedded in both halves.
func GenerateEd25519KeyPair(comment string) (*KeyPair, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ed25519 key: %w", err)
	}

	privBlock, err := ssh.MarshalPrivateKey(privateKey, comment)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}

	privateKeyPEM := pem.EncodeToMemory(privBlock)

	sshPublicKey, err := ssh.NewPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH public key: %w", err)
	}

	pubKeyBytes := ssh.MarshalAuthorizedKey(sshPublicKey)
	pubKeyBytes = appendComment(pubKeyBytes, comment)

	return &KeyPair{
		PrivateKey: privateKeyPEM,
		PublicKey:  pubKeyBytes,
	}, nil
}

// appendComment adds the comment to an authorized_keys line, preserving the
// trailing newline MarshalAuthorizedKey emits.
func appendComment(pubKey []byte, comment string) []byte {
	if comment == "" {
		return pubKey
	}

	line := strings.TrimRight(string(pubKey), "\n")

	return []byte(line + " " + comment + "\n")
}
