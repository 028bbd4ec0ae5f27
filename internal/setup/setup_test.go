package setup

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udbhavbalaji/cvstack/internal/config"
)

func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("CVSTACK_HOME", home)
	return home
}

func TestCheckOnEmptyHomeIsPure(t *testing.T) {
	home := testHome(t)
	ctx := context.Background()

	st, err := Check(ctx)
	require.NoError(t, err)
	assert.False(t, st.DirsExist)
	assert.False(t, st.EnvFileExists)
	assert.False(t, st.DatabaseExists)
	assert.False(t, st.MigrationsCurrent)
	assert.False(t, st.IsFullySetup())

	// Probing must not create anything
	entries, err := os.ReadDir(home)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPerformProvisionsEverything(t *testing.T) {
	testHome(t)
	ctx := context.Background()

	require.NoError(t, Perform(ctx))

	st, err := Check(ctx)
	require.NoError(t, err)
	assert.True(t, st.IsFullySetup())

	envPath, err := config.EnvFilePath()
	require.NoError(t, err)
	content, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEnvContent, string(content))

	sentinel, err := config.SetupSentinelPath()
	require.NoError(t, err)
	_, err = os.Stat(sentinel)
	assert.NoError(t, err)
}

func TestPerformIsIdempotentAndKeepsEnvFile(t *testing.T) {
	testHome(t)
	t.Setenv("ANTHROPIC_API_KEY", "")
	ctx := context.Background()

	require.NoError(t, Perform(ctx))

	// A key written after setup survives a re-run
	require.NoError(t, config.WriteAPIKey("sk-test-123"))
	require.NoError(t, Perform(ctx))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", cfg.AnthropicAPIKey)
}

func TestWriteEnvFileOnceNeverClobbers(t *testing.T) {
	testHome(t)

	resources, err := config.ResourcesDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(resources, 0o755))
	envPath, err := config.EnvFilePath()
	require.NoError(t, err)

	// First writer creates the file with default content
	require.NoError(t, writeEnvFileOnce(envPath))
	content, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEnvContent, string(content))

	// A file that already exists is left exactly as found
	custom := "ANTHROPIC_API_KEY=\"sk-keep-me\"\n"
	require.NoError(t, os.WriteFile(envPath, []byte(custom), 0o600))
	require.NoError(t, writeEnvFileOnce(envPath))
	content, err = os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Equal(t, custom, string(content))
}

func TestEnsureConvergesFromPartialState(t *testing.T) {
	testHome(t)
	ctx := context.Background()

	require.NoError(t, Perform(ctx))

	// Remove just the env file to simulate partial damage
	envPath, err := config.EnvFilePath()
	require.NoError(t, err)
	require.NoError(t, os.Remove(envPath))

	st, err := Check(ctx)
	require.NoError(t, err)
	assert.False(t, st.IsFullySetup())

	require.NoError(t, Ensure(ctx))

	st, err = Check(ctx)
	require.NoError(t, err)
	assert.True(t, st.IsFullySetup())
}

func TestEnsureOnHealthyStateDoesNothing(t *testing.T) {
	testHome(t)
	ctx := context.Background()

	require.NoError(t, Perform(ctx))

	sentinel, err := config.SetupSentinelPath()
	require.NoError(t, err)
	before, err := os.Stat(sentinel)
	require.NoError(t, err)

	require.NoError(t, Ensure(ctx))

	after, err := os.Stat(sentinel)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())
}
