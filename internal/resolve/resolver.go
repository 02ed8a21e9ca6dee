// Package resolve turns a profile name or account id (or nothing at all) into
// a fully-materialized credential, pulling the public half from the registry
// and the secret half from the OS vault.
package resolve

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/r2ctl/r2ctl/internal/config"
	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/logging"
	"github.com/r2ctl/r2ctl/internal/vault"
)

// Credential is the in-memory triple materialized for one command. It is
// never persisted.
type Credential struct {
	Profile         string
	AccountID       string
	AccessKeyID     string
	SecretAccessKey logging.Secret
}

// Endpoint derives the storage endpoint for an account. Always recomputed,
// never stored.
func Endpoint(accountID string) string {
	return fmt.Sprintf("https://%s.%s", accountID, config.StorageDomain)
}

// Chooser presents a single-choice prompt and returns the selected index.
// The default implementation blocks on the terminal with no timeout.
type Chooser func(label string, items []string) (int, error)

func promptChooser(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label: label,
		Items: items,
	}
	index, _, err := prompt.Run()
	return index, err
}

// Resolver resolves identifiers against a registry and a vault.
type Resolver struct {
	registry *config.Registry
	vault    vault.Vault
	log      *logging.Logger
	choose   Chooser
}

// New creates a resolver with the interactive chooser.
func New(registry *config.Registry, v vault.Vault, log *logging.Logger) *Resolver {
	return &Resolver{registry: registry, vault: v, log: log, choose: promptChooser}
}

// WithChooser overrides the disambiguation prompt. Used by tests.
func (r *Resolver) WithChooser(choose Chooser) *Resolver {
	r.choose = choose
	return r
}

// Resolve dispatches on whether the user supplied an identifier.
func (r *Resolver) Resolve(identifier string) (Credential, error) {
	if identifier == "" {
		return r.ResolveImplicit()
	}
	return r.ResolveExplicit(identifier)
}

// ResolveExplicit resolves a profile name or a raw account id. When several
// profiles share the account id, the first one (registry order) with a
// retrievable secret wins; entries with a missing secret are warned about and
// skipped.
func (r *Resolver) ResolveExplicit(identifier string) (Credential, error) {
	if profile, ok := r.registry.Lookup(identifier); ok {
		return r.materialize(profile)
	}

	matched := false
	for _, profile := range r.registry.Profiles() {
		if profile.AccountID != identifier {
			continue
		}
		matched = true
		cred, err := r.materialize(profile)
		if err == nil {
			return cred, nil
		}
		var missing rerrors.CredentialsMissingError
		if errors.As(err, &missing) {
			r.log.Warn("profile '%s' matches account %s but has no stored secret, skipping", profile.Name, identifier)
			continue
		}
		return Credential{}, err
	}

	if !matched {
		return Credential{}, rerrors.ProfileNotFoundError{Identifier: identifier}
	}
	return Credential{}, rerrors.CredentialsMissingError{Account: identifier}
}

// ResolveImplicit resolves when no identifier was given: the only profile is
// used directly, and multiple profiles trigger an interactive choice.
func (r *Resolver) ResolveImplicit() (Credential, error) {
	profiles := r.registry.Profiles()
	switch len(profiles) {
	case 0:
		return Credential{}, rerrors.ErrNoProfiles
	case 1:
		return r.materialize(profiles[0])
	}

	items := make([]string, len(profiles))
	for i, profile := range profiles {
		items[i] = fmt.Sprintf("%s: %s", profile.AccountID, profile.Name)
	}
	index, err := r.choose("Select a profile", items)
	if err != nil {
		return Credential{}, fmt.Errorf("profile selection aborted: %w", err)
	}
	return r.materialize(profiles[index])
}

// materialize fetches the secret for a registry entry from the vault.
func (r *Resolver) materialize(profile config.Profile) (Credential, error) {
	secret, err := r.vault.Retrieve(Endpoint(profile.AccountID), profile.AccessKeyID)
	if err != nil {
		if errors.Is(err, rerrors.ErrVaultItemNotFound) {
			return Credential{}, rerrors.CredentialsMissingError{Profile: profile.Name}
		}
		return Credential{}, err
	}
	return Credential{
		Profile:         profile.Name,
		AccountID:       profile.AccountID,
		AccessKeyID:     profile.AccessKeyID,
		SecretAccessKey: logging.Secret(secret),
	}, nil
}
