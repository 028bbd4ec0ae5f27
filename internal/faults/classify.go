package faults

import (
	"encoding/json"
	"errors"
	"io/fs"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/go-playground/validator/v10"
	"github.com/ncruces/go-sqlite3"

	"github.com/udbhavbalaji/cvstack/internal/config"
)

// Context carries call-site information into classification and handling.
type Context struct {
	// Location is the breadcrumb for the failure site, e.g. "addJob:scrapeJob".
	Location string
	// Context holds extra key/value detail attached to the classified error.
	Context map[string]any
	// Spinner, if set, is stopped exactly once before any message is printed.
	Spinner Indicator
	// Source marks which stage produced data that failed validation.
	Source Source
}

// Indicator is the spinner surface the error pipeline needs.
type Indicator interface {
	Fail(msg string)
	Stop()
}

// rule pairs a predicate with its conversion. Rules run in order and the
// first match wins, so specific checks must precede general ones.
type rule struct {
	match   func(err error, ctx Context) bool
	convert func(err error, ctx Context) *Error
}

var rules = []rule{
	{matchValidation, convertValidation},
	{matchFilesystem, convertFilesystem},
	{matchShell, convertShell},
	{matchPromptCancel, convertPromptCancel},
	{matchJSONSyntax, convertJSONSyntax},
	{matchAI, convertAI},
	{matchMissingKey, convertMissingKey},
	{matchSQLite, convertSQLite},
	{matchEnvValidation, convertEnvValidation},
	{matchTagged, convertTagged},
}

// Classify converts any error into a tagged *Error using the ordered rule
// table. Unmatched errors fall through to the unknown kind, unsafe.
func Classify(err error, ctx Context) *Error {
	for _, r := range rules {
		if r.match(err, ctx) {
			return r.convert(err, ctx)
		}
	}
	e := NewUnknown(err, ctx.Location)
	e.Context = ctx.Context
	return e
}

func matchValidation(err error, _ Context) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}

func convertValidation(err error, ctx Context) *Error {
	var verrs validator.ValidationErrors
	errors.As(err, &verrs)
	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		issues = append(issues, Issue{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fe.Error(),
		})
	}
	source := ctx.Source
	if source == "" {
		source = SourceCLI
	}
	e := NewValidation(issues, source, ctx.Location)
	e.Context = ctx.Context
	return e
}

func matchFilesystem(err error, _ Context) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.EISDIR) ||
		errors.Is(err, syscall.ENOTDIR)
}

func convertFilesystem(err error, ctx Context) *Error {
	var msg string
	switch {
	case errors.Is(err, fs.ErrNotExist):
		msg = "File/directory doesn't exist."
	case errors.Is(err, fs.ErrPermission):
		msg = "Permission denied! Use 'sudo' with your command."
	case errors.Is(err, syscall.EISDIR):
		msg = "Expected file but found directory"
	default:
		msg = "Not a directory"
	}
	e := &Error{
		Kind:     KindFile,
		Name:     "FileSystemError",
		Message:  msg,
		Safe:     false,
		Location: ctx.Location,
		Context:  ctx.Context,
	}
	return e
}

func matchShell(err error, _ Context) bool {
	var sf *ShellFailure
	return errors.As(err, &sf)
}

func convertShell(err error, ctx Context) *Error {
	var sf *ShellFailure
	errors.As(err, &sf)
	detail := ctx.Context
	if detail == nil {
		detail = map[string]any{}
	}
	detail["exit_code"] = sf.ExitCode
	return NewShell(strings.TrimSpace(sf.Output), ctx.Location, detail)
}

func matchPromptCancel(err error, _ Context) bool {
	return errors.Is(err, ErrPromptCancelled)
}

func convertPromptCancel(_ error, ctx Context) *Error {
	return &Error{
		Kind:     KindPrompt,
		Name:     "PromptCancelled",
		Message:  "Cancelled.",
		Safe:     true,
		Location: ctx.Location,
	}
}

func matchJSONSyntax(err error, _ Context) bool {
	var serr *json.SyntaxError
	return errors.As(err, &serr)
}

func convertJSONSyntax(err error, ctx Context) *Error {
	var serr *json.SyntaxError
	errors.As(err, &serr)
	return &Error{
		Kind:     KindFile,
		Name:     "SyntaxError",
		Message:  serr.Error(),
		Safe:     false,
		Location: ctx.Location,
		Context:  ctx.Context,
	}
}

func matchAI(err error, _ Context) bool {
	var aerr *anthropic.Error
	return errors.As(err, &aerr)
}

func convertAI(err error, ctx Context) *Error {
	var aerr *anthropic.Error
	errors.As(err, &aerr)
	msg := aerr.Error()
	if aerr.StatusCode == 401 {
		msg = "Invalid API key. Run 'cvstack ai-auth' to update your API key."
	}
	e := NewAI(msg, ctx.Location)
	e.Context = ctx.Context
	return e
}

func matchMissingKey(err error, _ Context) bool {
	return errors.Is(err, ErrMissingAPIKey)
}

func convertMissingKey(_ error, ctx Context) *Error {
	return NewAI("Anthropic API key is missing. Run 'cvstack ai-auth' to set your API key.", ctx.Location)
}

func matchSQLite(err error, _ Context) bool {
	var serr *sqlite3.Error
	return errors.As(err, &serr)
}

func convertSQLite(err error, ctx Context) *Error {
	var serr *sqlite3.Error
	errors.As(err, &serr)
	var msg string
	safe := false
	switch {
	case serr.Code() == sqlite3.CONSTRAINT:
		msg = "Database constraint error: " + serr.Error()
		safe = true
	case serr.Code() == sqlite3.BUSY:
		msg = "Database is locked"
	case serr.Code() == sqlite3.READONLY:
		msg = "Database is readonly"
	case strings.Contains(serr.Error(), "no such table"):
		msg = "Table not found"
	case serr.Code() == sqlite3.ERROR:
		msg = "Syntax error in sql statement"
	default:
		msg = serr.Error()
	}
	return NewDB(msg, safe, ctx.Location, ctx.Context)
}

func matchEnvValidation(err error, _ Context) bool {
	return errors.Is(err, config.ErrEnvValidation)
}

func convertEnvValidation(_ error, ctx Context) *Error {
	e := NewSetup("Invalid environment variables", ctx.Location)
	e.Context = ctx.Context
	return e
}

func matchTagged(err error, _ Context) bool {
	var e *Error
	return errors.As(err, &e)
}

func convertTagged(err error, ctx Context) *Error {
	var e *Error
	errors.As(err, &e)
	return e.PushLocation(ctx.Location)
}
