package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r2ctl/r2ctl/internal/config"
	rerrors "github.com/r2ctl/r2ctl/internal/errors"
	"github.com/r2ctl/r2ctl/internal/logging"
	"github.com/r2ctl/r2ctl/internal/resolve"
)

// fakeVault is an in-memory stand-in for the OS keyring.
type fakeVault struct {
	entries map[string]string
}

func newFakeVault() *fakeVault {
	return &fakeVault{entries: map[string]string{}}
}

func (f *fakeVault) key(endpoint, accessKeyID string) string {
	return endpoint + "|" + accessKeyID
}

func (f *fakeVault) Store(endpoint, accessKeyID, secret string) error {
	f.entries[f.key(endpoint, accessKeyID)] = secret
	return nil
}

func (f *fakeVault) Retrieve(endpoint, accessKeyID string) (string, error) {
	secret, ok := f.entries[f.key(endpoint, accessKeyID)]
	if !ok {
		return "", rerrors.ErrVaultItemNotFound
	}
	return secret, nil
}

func (f *fakeVault) Delete(endpoint, accessKeyID string) error {
	key := f.key(endpoint, accessKeyID)
	if _, ok := f.entries[key]; !ok {
		return rerrors.ErrVaultItemNotFound
	}
	delete(f.entries, key)
	return nil
}

// setupHome isolates the registry under a fresh HOME/XDG so command runs do
// not touch the real one.
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func testApp(vault *fakeVault, validate func(context.Context, resolve.Credential) error) *App {
	return &App{
		Log:      logging.NewWithWriter(io.Discard, false, true),
		Vault:    vault,
		Validate: validate,
	}
}

func writeRcloneConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rclone.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const mixedRcloneConfig = `[r2-remote]
type = s3
provider = Cloudflare
access_key_id = AKIAR2
secret_access_key = sekrit
endpoint = https://deadbeefdeadbeefdeadbeefdeadbeef.r2.cloudflarestorage.com

[aws-remote]
type = s3
provider = AWS
access_key_id = AKIAAWS
secret_access_key = other
endpoint = https://s3.us-east-1.amazonaws.com
`

// TestImportRcloneMixedEndpoints verifies that of two sections only the one
// with an R2 endpoint is imported, and the summary names the registry path.
func TestImportRcloneMixedEndpoints(t *testing.T) {
	setupHome(t)
	path := writeRcloneConfig(t, mixedRcloneConfig)

	vault := newFakeVault()
	var validated []resolve.Credential
	app := testApp(vault, func(_ context.Context, cred resolve.Credential) error {
		validated = append(validated, cred)
		return nil
	})

	out := &bytes.Buffer{}
	cmd := NewImportCommand(app)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"rclone", "--config", path})
	require.NoError(t, cmd.Execute())

	registryPath, err := config.EnsureExists(config.Project, config.RegistryFile)
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 rclone configurations into "+registryPath+"\n", out.String())

	require.Len(t, validated, 1)
	assert.Equal(t, "r2-remote", validated[0].Profile)
	assert.Equal(t, "AKIAR2", validated[0].AccessKeyID)
	assert.Equal(t, "sekrit", validated[0].SecretAccessKey.Reveal())

	registry, err := config.LoadRegistry(registryPath)
	require.NoError(t, err)
	profiles := registry.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "r2-remote", profiles[0].Name)
	assert.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeef", profiles[0].AccountID)

	secret, err := vault.Retrieve(resolve.Endpoint("deadbeefdeadbeefdeadbeefdeadbeef"), "AKIAR2")
	require.NoError(t, err)
	assert.Equal(t, "sekrit", secret)
}

// TestImportRcloneValidationFailureKeepsEarlierProfiles verifies a failed
// validation aborts the batch but profiles committed before it stay committed.
func TestImportRcloneValidationFailureKeepsEarlierProfiles(t *testing.T) {
	setupHome(t)
	path := writeRcloneConfig(t, `[first]
access_key_id = AKIAFIRST
secret_access_key = s1
endpoint = https://deadbeefdeadbeefdeadbeefdeadbeef.r2.cloudflarestorage.com

[second]
access_key_id = AKIASECOND
secret_access_key = s2
endpoint = https://cafebabecafebabecafebabecafebabe.r2.cloudflarestorage.com
`)

	app := testApp(newFakeVault(), func(_ context.Context, cred resolve.Credential) error {
		if cred.Profile == "second" {
			return rerrors.TransportError{StatusCode: 401, Message: "bad key"}
		}
		return nil
	})

	cmd := NewImportCommand(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"rclone", "--config", path})

	err := cmd.Execute()
	var invalid rerrors.CredentialInvalidError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "second", invalid.Profile)

	registryPath, err := config.EnsureExists(config.Project, config.RegistryFile)
	require.NoError(t, err)
	registry, err := config.LoadRegistry(registryPath)
	require.NoError(t, err)

	profiles := registry.Profiles()
	require.Len(t, profiles, 1)
	assert.Equal(t, "first", profiles[0].Name)
}

func TestImportRcloneMissingSource(t *testing.T) {
	setupHome(t)

	app := testApp(newFakeVault(), func(context.Context, resolve.Credential) error {
		t.Fatal("validator must not run without a source")
		return nil
	})

	cmd := NewImportCommand(app)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"rclone"})

	err := cmd.Execute()
	var missing rerrors.ImportSourceMissingError
	require.ErrorAs(t, err, &missing)
	assert.False(t, errors.Is(err, rerrors.ErrConfigNotLocated))
}
