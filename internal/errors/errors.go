package errors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// accountIDPattern matches a Cloudflare account id: exactly 32 hex characters.
var accountIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{32}$`)

// IsAccountID reports whether the identifier looks like an account id rather
// than a profile name.
func IsAccountID(identifier string) bool {
	return accountIDPattern.MatchString(identifier)
}

// UserError represents an error that should be shown to the user with helpful context.
type UserError struct {
	Message    string
	Suggestion string
	Details    string
	Err        error
}

func (e UserError) Error() string {
	var parts []string

	if e.Message != "" {
		parts = append(parts, e.Message)
	} else if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	if e.Details != "" {
		parts = append(parts, "\n  Details: "+e.Details)
	}

	if e.Suggestion != "" {
		parts = append(parts, "\n  💡 Try: "+e.Suggestion)
	}

	return strings.Join(parts, "")
}

func (e UserError) Unwrap() error {
	return e.Err
}

// ProfileNotFoundError means the supplied identifier matched neither a profile
// name nor any configured account id.
type ProfileNotFoundError struct {
	Identifier string
}

func (e ProfileNotFoundError) Error() string {
	kind := "Profile"
	if IsAccountID(e.Identifier) {
		kind = "Account"
	}
	return fmt.Sprintf("%s '%s' not found", kind, e.Identifier)
}

// CredentialsMissingError means a matching profile exists but its secret
// could not be retrieved from the OS vault. Account is set instead of Profile
// when resolution matched by account id and every candidate lacked a secret.
type CredentialsMissingError struct {
	Profile string
	Account string
}

func (e CredentialsMissingError) Error() string {
	if e.Account != "" {
		return fmt.Sprintf("no secret access key stored for any profile matching account '%s'", e.Account)
	}
	return fmt.Sprintf("no secret access key stored for profile '%s'", e.Profile)
}

// CredentialInvalidError means a candidate credential failed the validation
// call during profile add or import.
type CredentialInvalidError struct {
	Profile string
	Err     error
}

func (e CredentialInvalidError) Error() string {
	return fmt.Sprintf("credential for '%s' failed validation: %v", e.Profile, e.Err)
}

func (e CredentialInvalidError) Unwrap() error {
	return e.Err
}

// VaultUnavailableError means the OS secret service cannot be used on this host.
type VaultUnavailableError struct {
	Reason string
	Err    error
}

func (e VaultUnavailableError) Error() string {
	msg := "OS secret store unavailable"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e VaultUnavailableError) Unwrap() error {
	return e.Err
}

// ConfigUnwritableError means no candidate location for the profile registry
// could be created.
type ConfigUnwritableError struct {
	Attempted []string
}

func (e ConfigUnwritableError) Error() string {
	return fmt.Sprintf("no writable location for the profile registry (tried %s)",
		strings.Join(e.Attempted, ", "))
}

// TransportError carries the upstream HTTP status and message of a failed
// storage call. This layer never retries.
type TransportError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e TransportError) Error() string {
	msg := "request failed"
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Code == "" && e.Message == "" && e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// ImportSourceMissingError means the foreign config file to import could not
// be located at any candidate path.
type ImportSourceMissingError struct {
	Name string
}

func (e ImportSourceMissingError) Error() string {
	return fmt.Sprintf("no %s configuration found to import", e.Name)
}

// ErrNoProfiles means resolution was attempted with an empty registry.
var ErrNoProfiles = errors.New("no profiles configured; run 'r2ctl profile add' or 'r2ctl import rclone' first")

// ErrVaultItemNotFound means the vault is reachable but holds no entry for the
// requested (endpoint, access key id) pair.
var ErrVaultItemNotFound = errors.New("secret not found in OS vault")

// ErrConfigNotLocated means no candidate path for a config file exists. Used
// for read-only discovery; never raised by registry creation.
var ErrConfigNotLocated = errors.New("config file not found")
