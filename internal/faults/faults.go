// Package faults implements the error pipeline: a tagged error type,
// an ordered classifier for raw errors, and terminal handlers that decide
// between a warning with exit 0 and a logged failure with exit 1.
package faults

import (
	"errors"
	"fmt"
)

// Kind tags an Error with its subsystem of origin.
type Kind string

const (
	KindValidation Kind = "zod"
	KindAI         Kind = "ai"
	KindPrompt     Kind = "prompt"
	KindCLI        Kind = "cli"
	KindDB         Kind = "db"
	KindUnknown    Kind = "unknown"
	KindFile       Kind = "file"
	KindShell      Kind = "shell"
	KindSetup      Kind = "setup"
)

// Source identifies which stage produced the data that failed validation.
// CLI input failures are user mistakes (safe); scraper and AI failures
// mean a pipeline stage emitted bad data (unsafe).
type Source string

const (
	SourceCLI     Source = "cli"
	SourceScraper Source = "scraper"
	SourceAI      Source = "ai"
)

// Issue is one field-level validation failure.
type Issue struct {
	Field   string
	Rule    string
	Message string
}

// Error is the classified error carried through the pipeline. Safe controls
// the exit path: safe errors warn and exit 0, unsafe errors log and exit 1.
type Error struct {
	Kind     Kind
	Name     string
	Message  string
	Safe     bool
	Location string
	Issues   []Issue
	Source   Source
	Context  map[string]any
}

func (e *Error) Error() string {
	if e.Name == "" {
		return e.Message
	}
	return e.Name + ": " + e.Message
}

// PushLocation appends a breadcrumb segment to the error's location trail.
// Segments accumulate outermost-last, joined by colons.
func (e *Error) PushLocation(segment string) *Error {
	if segment == "" {
		return e
	}
	if e.Location == "" {
		e.Location = segment
	} else {
		e.Location = e.Location + ":" + segment
	}
	return e
}

// NewCLI builds a safe user-input error.
func NewCLI(message, location string) *Error {
	return &Error{
		Kind:     KindCLI,
		Name:     "CLIError",
		Message:  message,
		Safe:     true,
		Location: location,
	}
}

// NewDB builds a database error with explicit safety.
func NewDB(message string, safe bool, location string, context map[string]any) *Error {
	return &Error{
		Kind:     KindDB,
		Name:     "DatabaseError",
		Message:  message,
		Safe:     safe,
		Location: location,
		Context:  context,
	}
}

// NewValidation builds a validation error. Only CLI-sourced validation
// failures are safe; scraper and AI sources mean a bug upstream.
func NewValidation(issues []Issue, source Source, location string) *Error {
	msg := "Validation failed"
	if len(issues) > 0 {
		msg = issues[0].Message
	}
	return &Error{
		Kind:     KindValidation,
		Name:     "ValidationError",
		Message:  msg,
		Safe:     source == SourceCLI,
		Location: location,
		Issues:   issues,
		Source:   source,
	}
}

// NewAI builds an unsafe AI-stage error.
func NewAI(message, location string) *Error {
	return &Error{
		Kind:     KindAI,
		Name:     "AIError",
		Message:  message,
		Safe:     false,
		Location: location,
	}
}

// NewShell builds an unsafe subprocess error.
func NewShell(message, location string, context map[string]any) *Error {
	return &Error{
		Kind:     KindShell,
		Name:     "ShellError",
		Message:  message,
		Safe:     false,
		Location: location,
		Context:  context,
	}
}

// NewSetup builds an unsafe setup/configuration error.
func NewSetup(message, location string) *Error {
	return &Error{
		Kind:     KindSetup,
		Name:     "SetupError",
		Message:  message,
		Safe:     false,
		Location: location,
	}
}

// NewUnknown wraps an unclassified error, preserving its text.
func NewUnknown(err error, location string) *Error {
	return &Error{
		Kind:     KindUnknown,
		Name:     "UnknownError",
		Message:  err.Error(),
		Safe:     false,
		Location: location,
	}
}

// ShellFailure is the raw error a subprocess runner returns on non-zero
// exit. The classifier converts it into a shell-kind Error.
type ShellFailure struct {
	Output   string
	ExitCode int
}

func (s *ShellFailure) Error() string {
	return fmt.Sprintf("subprocess exited %d: %s", s.ExitCode, s.Output)
}

// Sentinels recognized by the classifier.
var (
	// ErrPromptCancelled marks a user-aborted interactive prompt.
	ErrPromptCancelled = errors.New("prompt cancelled")
	// ErrMissingAPIKey marks a missing Anthropic credential.
	ErrMissingAPIKey = errors.New("missing api key")
)
