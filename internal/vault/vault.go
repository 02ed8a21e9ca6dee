// Package vault stores secret access keys in the OS-native credential store,
// keyed by (endpoint URL, access key id). It is the only place secrets are
// persisted.
package vault

import (
	"errors"

	"github.com/zalando/go-keyring"

	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/logging"
)

// Vault is the secret-store capability: store, retrieve, and delete a secret
// under a composite (endpoint, access key id) key.
type Vault interface {
	Store(endpoint, accessKeyID, secret string) error
	Retrieve(endpoint, accessKeyID string) (string, error)
	Delete(endpoint, accessKeyID string) error
}

// Keyring backs Vault with the OS keychain (Secret Service on Linux, Keychain
// on macOS, Credential Manager on Windows) via go-keyring.
type Keyring struct {
	log *logging.Logger
}

// NewKeyring probes platform availability once and returns the OS-backed
// vault. On Linux this may shell out to the package manager to install the
// secret-service library on first use.
func NewKeyring(log *logging.Logger) (*Keyring, error) {
	if err := EnsureAvailable(log); err != nil {
		return nil, err
	}
	return &Keyring{log: log}, nil
}

// Store writes the secret under the composite key. Callers must have
// validated the credential first; the vault is never written with an
// unverified secret.
func (k *Keyring) Store(endpoint, accessKeyID, secret string) error {
	if err := keyring.Set(endpoint, accessKeyID, secret); err != nil {
		return rerrors.VaultUnavailableError{Reason: "storing secret failed", Err: err}
	}
	k.log.Debug("stored secret for %s in OS vault", accessKeyID)
	return nil
}

// Retrieve returns the secret for the composite key. A missing entry is
// reported as ErrVaultItemNotFound, distinct from a platform failure.
func (k *Keyring) Retrieve(endpoint, accessKeyID string) (string, error) {
	secret, err := keyring.Get(endpoint, accessKeyID)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", rerrors.ErrVaultItemNotFound
		}
		return "", rerrors.VaultUnavailableError{Reason: "reading secret failed", Err: err}
	}
	return secret, nil
}

// Delete removes the entry for the composite key. Deleting an absent entry is
// reported as ErrVaultItemNotFound.
func (k *Keyring) Delete(endpoint, accessKeyID string) error {
	if err := keyring.Delete(endpoint, accessKeyID); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return rerrors.ErrVaultItemNotFound
		}
		return rerrors.VaultUnavailableError{Reason: "deleting secret failed", Err: err}
	}
	return nil
}

var _ Vault = (*Keyring)(nil)
