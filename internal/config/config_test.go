package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("CVSTACK_HOME", home)
	t.Setenv("ANTHROPIC_API_KEY", "")
	return home
}

func TestPathsDeriveFromHome(t *testing.T) {
	home := testHome(t)

	root, err := Root()
	require.NoError(t, err)
	assert.Equal(t, home, root)

	env, err := EnvFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "resources", ".env"), env)

	db, err := DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cvstack.db"), db)

	logs, err := LogDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".logs"), logs)

	dirs, err := RequiredDirs()
	require.NoError(t, err)
	assert.Equal(t, []string{home, filepath.Join(home, "resources"), logs}, dirs)
}

func TestLoadLenientBeforeSetup(t *testing.T) {
	testHome(t)

	// No env file, no sentinel: empty key is fine
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.AnthropicAPIKey)
}

func TestLoadStrictAfterSetup(t *testing.T) {
	home := testHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "resources"), 0o755))

	sentinel, err := SetupSentinelPath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(sentinel, []byte("done\n"), 0o644))

	_, err = Load()
	assert.ErrorIs(t, err, ErrMissingCredential)

	require.NoError(t, WriteAPIKey("sk-test-123"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", cfg.AnthropicAPIKey)
}

func TestLoadMalformedEnvFileIsEnvValidation(t *testing.T) {
	home := testHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "resources"), 0o755))

	envPath, err := EnvFilePath()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(envPath, []byte("this line is not a key/value pair\n"), 0o600))

	_, err = Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEnvValidation)
}

func TestProcessEnvOverridesFile(t *testing.T) {
	home := testHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "resources"), 0o755))
	require.NoError(t, WriteAPIKey("sk-from-file"))

	t.Setenv("ANTHROPIC_API_KEY", "sk-from-env")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.AnthropicAPIKey)
}

func TestWriteAPIKeyRoundtrip(t *testing.T) {
	home := testHome(t)
	require.NoError(t, os.MkdirAll(filepath.Join(home, "resources"), 0o755))

	require.NoError(t, WriteAPIKey("sk-test-456"))
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-456", cfg.AnthropicAPIKey)
}
