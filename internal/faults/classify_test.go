package faults

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udbhavbalaji/cvstack/internal/config"
)

type needsFields struct {
	Name string `validate:"required"`
	Age  int    `validate:"gt=0"`
}

func validationErr(t *testing.T) error {
	t.Helper()
	err := validator.New().Struct(&needsFields{})
	require.Error(t, err)
	return err
}

func TestClassifyValidation(t *testing.T) {
	tests := []struct {
		name     string
		source   Source
		wantSafe bool
	}{
		{"cli source is safe", SourceCLI, true},
		{"scraper source is unsafe", SourceScraper, false},
		{"ai source is unsafe", SourceAI, false},
		{"empty source defaults to cli", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(validationErr(t), Context{Location: "test", Source: tt.source})
			assert.Equal(t, KindValidation, e.Kind)
			assert.Equal(t, tt.wantSafe, e.Safe)
			assert.Len(t, e.Issues, 2)
			assert.Equal(t, "Name", e.Issues[0].Field)
			assert.Equal(t, "required", e.Issues[0].Rule)
		})
	}
}

func TestClassifyFilesystem(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"not exist", fs.ErrNotExist, "File/directory doesn't exist."},
		{"permission", fs.ErrPermission, "Permission denied! Use 'sudo' with your command."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Classify(tt.err, Context{Location: "fsTest"})
			assert.Equal(t, KindFile, e.Kind)
			assert.False(t, e.Safe)
			assert.Equal(t, tt.wantMsg, e.Message)
		})
	}
}

func TestClassifyShellFailure(t *testing.T) {
	err := &ShellFailure{Output: "scraper blew up\n", ExitCode: 2}
	e := Classify(err, Context{Location: "scrapeJob"})
	assert.Equal(t, KindShell, e.Kind)
	assert.False(t, e.Safe)
	assert.Equal(t, "scraper blew up", e.Message)
	assert.Equal(t, 2, e.Context["exit_code"])
}

func TestClassifyPromptCancelled(t *testing.T) {
	e := Classify(ErrPromptCancelled, Context{Location: "confirm"})
	assert.Equal(t, KindPrompt, e.Kind)
	assert.True(t, e.Safe)
	assert.Equal(t, "Cancelled.", e.Message)
}

func TestClassifyJSONSyntax(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{not json"), &v)
	e := Classify(err, Context{Location: "parseOutput"})
	assert.Equal(t, KindFile, e.Kind)
	assert.Equal(t, "SyntaxError", e.Name)
	assert.False(t, e.Safe)
}

func TestClassifyMissingAPIKey(t *testing.T) {
	e := Classify(ErrMissingAPIKey, Context{Location: "extract"})
	assert.Equal(t, KindAI, e.Kind)
	assert.False(t, e.Safe)
	assert.Contains(t, e.Message, "ai-auth")
}

func TestClassifyTaggedErrorAppendsLocation(t *testing.T) {
	inner := NewCLI("Missing required argument: id", "starJob")
	e := Classify(inner, Context{Location: "root"})
	assert.Equal(t, KindCLI, e.Kind)
	assert.True(t, e.Safe)
	assert.Equal(t, "starJob:root", e.Location)
}

func TestClassifyUnknownFallback(t *testing.T) {
	e := Classify(errors.New("something odd"), Context{Location: "somewhere"})
	assert.Equal(t, KindUnknown, e.Kind)
	assert.False(t, e.Safe)
	assert.Equal(t, "something odd", e.Message)
}

func TestClassifyEnvValidationSentinel(t *testing.T) {
	err := fmt.Errorf("%w: read env file: unexpected token", config.ErrEnvValidation)
	e := Classify(err, Context{Location: "fetchJob:loadConfig"})
	assert.Equal(t, KindSetup, e.Kind)
	assert.False(t, e.Safe)
	assert.Equal(t, "Invalid environment variables", e.Message)
	assert.Equal(t, "fetchJob:loadConfig", e.Location)
}

func TestPushLocation(t *testing.T) {
	e := NewDB("Job not found", true, "store:get", nil)
	e.PushLocation("editJob").PushLocation("root")
	assert.Equal(t, "store:get:editJob:root", e.Location)

	empty := &Error{}
	empty.PushLocation("first")
	assert.Equal(t, "first", empty.Location)
}
