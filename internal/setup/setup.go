// Package setup handles first-run environment provisioning: directories,
// env file, database, and migrations, gated by a completion sentinel.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/udbhavbalaji/cvstack/internal/config"
	"github.com/udbhavbalaji/cvstack/internal/storage/sqlite"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

// Status is the result of probing the environment. Each field answers one
// probe; IsFullySetup derives from all four.
type Status struct {
	DirsExist         bool
	EnvFileExists     bool
	DatabaseExists    bool
	MigrationsCurrent bool
}

// IsFullySetup reports whether every probe passed.
func (s Status) IsFullySetup() bool {
	return s.DirsExist && s.EnvFileExists && s.DatabaseExists && s.MigrationsCurrent
}

// Check probes the environment without modifying it.
func Check(ctx context.Context) (Status, error) {
	var st Status

	dirs, err := config.RequiredDirs()
	if err != nil {
		return st, err
	}
	st.DirsExist = true
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			st.DirsExist = false
			break
		}
	}

	envPath, err := config.EnvFilePath()
	if err != nil {
		return st, err
	}
	if _, err := os.Stat(envPath); err == nil {
		st.EnvFileExists = true
	}

	dbPath, err := config.DatabasePath()
	if err != nil {
		return st, err
	}
	if _, err := os.Stat(dbPath); err == nil {
		st.DatabaseExists = true
	}

	if st.DatabaseExists {
		current, err := sqlite.MigrationsCurrent(ctx, dbPath)
		if err != nil {
			return st, err
		}
		st.MigrationsCurrent = current
	}

	return st, nil
}

// Perform runs the full setup sequence. Every step is idempotent, so a
// partially set up environment converges on a complete one. The sentinel
// is written last; its presence means everything before it succeeded.
func Perform(ctx context.Context) error {
	sp := ui.NewSpinner("Setting up cvstack...").Start()

	dirs, err := config.RequiredDirs()
	if err != nil {
		sp.Fail("Setup failed")
		return err
	}
	sp.SetText("Creating directories...")
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			sp.Fail("Setup failed")
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	sp.SetText("Writing environment file...")
	envPath, err := config.EnvFilePath()
	if err != nil {
		sp.Fail("Setup failed")
		return err
	}
	if err := writeEnvFileOnce(envPath); err != nil {
		sp.Fail("Setup failed")
		return fmt.Errorf("write env file: %w", err)
	}

	sp.SetText("Initializing database...")
	dbPath, err := config.DatabasePath()
	if err != nil {
		sp.Fail("Setup failed")
		return err
	}
	store, err := sqlite.New(ctx, dbPath)
	if err != nil {
		sp.Fail("Setup failed")
		return fmt.Errorf("initialize database: %w", err)
	}
	if err := store.Close(); err != nil {
		sp.Fail("Setup failed")
		return err
	}

	sp.SetText("Finalizing...")
	sentinel, err := config.SetupSentinelPath()
	if err != nil {
		sp.Fail("Setup failed")
		return err
	}
	stamp := time.Now().UTC().Format(time.RFC3339) + "\n"
	if err := os.WriteFile(sentinel, []byte(stamp), 0o644); err != nil {
		sp.Fail("Setup failed")
		return fmt.Errorf("write setup sentinel: %w", err)
	}

	sp.Succeed("cvstack is ready")
	return nil
}

// writeEnvFileOnce creates the env file with its default content. Creation
// is exclusive so concurrent invocations cannot clobber a file another one
// (or the user) already wrote; an existing file is left untouched.
func writeEnvFileOnce(envPath string) error {
	f, err := os.OpenFile(envPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := f.WriteString(config.DefaultEnvContent); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Ensure checks the environment and runs setup if anything is missing,
// verifying the result with a second check.
func Ensure(ctx context.Context) error {
	st, err := Check(ctx)
	if err != nil {
		return err
	}
	if st.IsFullySetup() {
		return nil
	}

	if err := Perform(ctx); err != nil {
		return err
	}

	st, err = Check(ctx)
	if err != nil {
		return err
	}
	if !st.IsFullySetup() {
		return fmt.Errorf("setup did not converge: %+v", st)
	}
	return nil
}
