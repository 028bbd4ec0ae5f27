package faults

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/udbhavbalaji/cvstack/internal/ui"
)

// exit is swapped out in tests.
var exit = os.Exit

var (
	logDirMu sync.Mutex
	logDir   string
)

// SetLogDir sets the directory where unsafe errors are appended as log
// files. Empty means no file logging.
func SetLogDir(dir string) {
	logDirMu.Lock()
	defer logDirMu.Unlock()
	logDir = dir
}

// Terminate ends the process according to the error's safety: safe errors
// warn and exit 0, unsafe errors are logged to file and exit 1.
func Terminate(e *Error) {
	if e.Safe {
		TerminateSafe(e)
		return
	}
	TerminateUnsafe(e)
}

// TerminateSafe prints the error as a warning and exits 0. An unsafe error
// routed here is a pipeline bug; it is escalated to exit 1 rather than
// masked as success.
func TerminateSafe(e *Error) {
	if !e.Safe {
		ui.Errorf("%s", e.Message)
		ui.Debugf("location: %s", e.Location)
		exit(1)
		return
	}
	ui.Warnf("%s", e.Message)
	if e.Location != "" {
		ui.Debugf("location: %s", e.Location)
	}
	exit(0)
}

// TerminateUnsafe appends the error to the day's log file, prints it, and
// exits 1. File logging is best effort; a failed write never masks the
// original error.
func TerminateUnsafe(e *Error) {
	writeLogFile(e)
	ui.Errorf("%s: %s", e.Name, e.Message)
	if e.Location != "" {
		ui.Debugf("location: %s", e.Location)
	}
	for _, issue := range e.Issues {
		ui.Debugf("issue: %s (%s) %s", issue.Field, issue.Rule, issue.Message)
	}
	exit(1)
}

func writeLogFile(e *Error) {
	logDirMu.Lock()
	dir := logDir
	logDirMu.Unlock()
	if dir == "" {
		return
	}
	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("cvstack_error_%s.log", now.Format("2006-01-02")))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		ui.Debugf("could not open error log: %v", err)
		return
	}
	defer f.Close()

	fmt.Fprintf(f, "[%s] kind=%s name=%s safe=%t\n", now.Format(time.RFC3339), e.Kind, e.Name, e.Safe)
	fmt.Fprintf(f, "  message: %s\n", e.Message)
	if e.Location != "" {
		fmt.Fprintf(f, "  location: %s\n", e.Location)
	}
	for _, issue := range e.Issues {
		fmt.Fprintf(f, "  issue: field=%s rule=%s %s\n", issue.Field, issue.Rule, issue.Message)
	}
	for k, v := range e.Context {
		fmt.Fprintf(f, "  context: %s=%v\n", k, v)
	}
}
