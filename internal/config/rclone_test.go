package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r2ctl/r2ctl/internal/config"
)

// TestParseRcloneConfigFiltersByEndpoint verifies only sections pointing at
// the provider storage domain are importable.
func TestParseRcloneConfigFiltersByEndpoint(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rclone.conf")
	content := `[r2-remote]
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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profiles, err := config.ParseRcloneConfig(path)
	require.NoError(t, err)

	require.Len(t, profiles, 1)
	assert.Equal(t, "r2-remote", profiles[0].Name)
	assert.Equal(t, "deadbeefdeadbeefdeadbeefdeadbeef", profiles[0].AccountID)
	assert.Equal(t, "AKIAR2", profiles[0].AccessKeyID)
	assert.Equal(t, "sekrit", profiles[0].SecretAccessKey)
}

// TestParseRcloneConfigSkipsIncompleteSections verifies sections without both
// key halves are ignored even with a matching endpoint.
func TestParseRcloneConfigSkipsIncompleteSections(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rclone.conf")
	content := `[half-configured]
type = s3
access_key_id = AKIAR2
endpoint = https://deadbeefdeadbeefdeadbeefdeadbeef.r2.cloudflarestorage.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profiles, err := config.ParseRcloneConfig(path)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestParseRcloneConfigBareHostEndpoint(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rclone.conf")
	content := `[bare]
access_key_id = AKIAR2
secret_access_key = sekrit
endpoint = cafebabecafebabecafebabecafebabe.r2.cloudflarestorage.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	profiles, err := config.ParseRcloneConfig(path)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "cafebabecafebabecafebabecafebabe", profiles[0].AccountID)
}
