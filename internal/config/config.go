// Package config resolves cvstack's on-disk layout and loads the
// environment file. All paths derive from a single root directory,
// overridable with CVSTACK_HOME.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultEnvContent is written when the environment file is first created.
const DefaultEnvContent = "# CVStack Environment Configuration\nANTHROPIC_API_KEY=\"\"\n"

// ErrMissingCredential is returned by Load in strict mode when the API key
// is empty. Callers map it to their own handling.
var ErrMissingCredential = errors.New("ANTHROPIC_API_KEY is not set")

// ErrEnvValidation marks an env file that exists but cannot be read or
// parsed. The error classifier matches it to report a setup failure.
var ErrEnvValidation = errors.New("invalid environment variables")

// Config holds the loaded environment values.
type Config struct {
	AnthropicAPIKey string
}

// Root returns the cvstack home directory: $CVSTACK_HOME if set, else
// ~/.cvstack.
func Root() (string, error) {
	if home := os.Getenv("CVSTACK_HOME"); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".cvstack"), nil
}

// ResourcesDir is where the env file and setup sentinel live.
func ResourcesDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "resources"), nil
}

// LogDir is where unsafe-error log files are appended.
func LogDir() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ".logs"), nil
}

// EnvFilePath is the dotenv-format credential file.
func EnvFilePath() (string, error) {
	res, err := ResourcesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(res, ".env"), nil
}

// DatabasePath is the sqlite database file.
func DatabasePath() (string, error) {
	root, err := Root()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "cvstack.db"), nil
}

// SetupSentinelPath marks that first-run setup completed. Its presence
// switches Load into strict mode.
func SetupSentinelPath() (string, error) {
	res, err := ResourcesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(res, ".setup-complete"), nil
}

// RequiredDirs lists every directory setup must create, in creation order.
func RequiredDirs() ([]string, error) {
	root, err := Root()
	if err != nil {
		return nil, err
	}
	return []string{
		root,
		filepath.Join(root, "resources"),
		filepath.Join(root, ".logs"),
	}, nil
}

// Load reads the env file and overlays process environment variables.
// Before setup completes the key may legitimately be empty; once the
// setup sentinel exists an empty key returns ErrMissingCredential.
func Load() (*Config, error) {
	path, err := EnvFilePath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: read env file: %v", ErrEnvValidation, err)
		}
	}

	cfg := &Config{AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY")}
	if envKey := os.Getenv("ANTHROPIC_API_KEY"); envKey != "" {
		cfg.AnthropicAPIKey = envKey
	}

	if cfg.AnthropicAPIKey == "" {
		sentinel, err := SetupSentinelPath()
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(sentinel); err == nil {
			return nil, ErrMissingCredential
		}
	}
	return cfg, nil
}

// WriteAPIKey rewrites the env file with the given key, preserving the
// file's documented format.
func WriteAPIKey(key string) error {
	path, err := EnvFilePath()
	if err != nil {
		return err
	}
	content := fmt.Sprintf("# CVStack Environment Configuration\nANTHROPIC_API_KEY=%q\n", key)
	return os.WriteFile(path, []byte(content), 0o600)
}
