package commands

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r2ctl/r2ctl/internal/config"
	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/resolve"
)

const testAccountID = "deadbeefdeadbeefdeadbeefdeadbeef"

func runProfile(t *testing.T, app *App, args ...string) error {
	t.Helper()
	cmd := NewProfileCommand(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// TestProfileAddValidatesBeforePersisting verifies the add flow: prompted
// secret, validation call, then registry entry and vault entry.
func TestProfileAddValidatesBeforePersisting(t *testing.T) {
	setupHome(t)

	vault := newFakeVault()
	var validated []resolve.Credential
	app := testApp(vault, func(_ context.Context, cred resolve.Credential) error {
		validated = append(validated, cred)
		return nil
	})
	app.ReadSecret = func() (string, error) { return "prompted-secret", nil }

	err := runProfile(t, app, "add", "work", "--account", testAccountID, "--access-key-id", "AKIAWORK")
	require.NoError(t, err)

	require.Len(t, validated, 1)
	assert.Equal(t, "prompted-secret", validated[0].SecretAccessKey.Reveal())

	registryPath, err := config.EnsureExists(config.Project, config.RegistryFile)
	require.NoError(t, err)
	registry, err := config.LoadRegistry(registryPath)
	require.NoError(t, err)

	profile, ok := registry.Lookup("work")
	require.True(t, ok)
	assert.Equal(t, testAccountID, profile.AccountID)

	secret, err := vault.Retrieve(resolve.Endpoint(testAccountID), "AKIAWORK")
	require.NoError(t, err)
	assert.Equal(t, "prompted-secret", secret)
}

// TestProfileAddValidationFailurePersistsNothing verifies a failed validation
// aborts the add with neither a registry entry nor a vault entry written.
func TestProfileAddValidationFailurePersistsNothing(t *testing.T) {
	setupHome(t)

	vault := newFakeVault()
	app := testApp(vault, func(context.Context, resolve.Credential) error {
		return rerrors.TransportError{StatusCode: 403, Message: "forbidden"}
	})
	app.ReadSecret = func() (string, error) { return "bad-secret", nil }

	err := runProfile(t, app, "add", "work", "--account", testAccountID, "--access-key-id", "AKIAWORK")
	var invalid rerrors.CredentialInvalidError
	require.ErrorAs(t, err, &invalid)

	registryPath, err := config.EnsureExists(config.Project, config.RegistryFile)
	require.NoError(t, err)
	registry, err := config.LoadRegistry(registryPath)
	require.NoError(t, err)

	_, ok := registry.Lookup("work")
	assert.False(t, ok)
	assert.Empty(t, vault.entries)
}

// TestProfileRemoveDeletesVaultEntry verifies remove drops both halves of the
// credential.
func TestProfileRemoveDeletesVaultEntry(t *testing.T) {
	setupHome(t)

	vault := newFakeVault()
	app := testApp(vault, func(context.Context, resolve.Credential) error { return nil })
	app.ReadSecret = func() (string, error) { return "sekrit", nil }

	require.NoError(t, runProfile(t, app, "add", "work", "--account", testAccountID, "--access-key-id", "AKIAWORK"))
	require.NoError(t, runProfile(t, app, "remove", "work"))

	assert.Empty(t, vault.entries)

	registryPath, err := config.EnsureExists(config.Project, config.RegistryFile)
	require.NoError(t, err)
	registry, err := config.LoadRegistry(registryPath)
	require.NoError(t, err)
	_, ok := registry.Lookup("work")
	assert.False(t, ok)
}

func TestProfileRemoveUnknownProfile(t *testing.T) {
	setupHome(t)

	app := testApp(newFakeVault(), func(context.Context, resolve.Credential) error { return nil })

	err := runProfile(t, app, "remove", "ghost")
	var notFound rerrors.ProfileNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, err.Error(), "Profile 'ghost' not found")
}
