package ui

import (
	"fmt"
	"os"
	"sync"
)

var (
	verboseMode = os.Getenv("CVSTACK_DEBUG") != ""
	quietMode   = false
	logMutex    sync.Mutex
)

// SetVerbose enables verbose/debug output
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// SetQuiet enables quiet mode (suppress non-essential output)
func SetQuiet(quiet bool) {
	quietMode = quiet
}

// Verbose returns true if debug output is enabled
func Verbose() bool {
	return verboseMode
}

// Debugf prints a debug-level line to stderr when verbose mode is on.
func Debugf(format string, args ...interface{}) {
	if !verboseMode {
		return
	}
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintf(os.Stderr, "%s %s\n",
		MutedStyle.Inherit(BadgeStyle).Render(" debug "),
		MutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Infof prints an info-level line to stdout unless quiet mode is on.
func Infof(format string, args ...interface{}) {
	if quietMode {
		return
	}
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintf(os.Stdout, "%s %s\n",
		AccentStyle.Inherit(BadgeStyle).Render(" info "),
		AccentStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a warning-level line to stdout. Warnings are shown even in
// quiet mode: safe-error messages are the command's user-facing result.
func Warnf(format string, args ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintf(os.Stdout, "%s %s\n",
		WarnStyle.Inherit(BadgeStyle).Render(" warn "),
		WarnStyle.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints an error-level line to stderr.
func Errorf(format string, args ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	fmt.Fprintf(os.Stderr, "%s %s\n",
		FailStyle.Inherit(BadgeStyle).Render(" error "),
		FailStyle.Render(fmt.Sprintf(format, args...)))
}
