package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSpinner(buf *bytes.Buffer) *Spinner {
	return &Spinner{out: buf, text: "working", interval: time.Millisecond}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(&buf)
	s.Start()

	s.Fail("first")
	s.Succeed("second")
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "first")
	assert.NotContains(t, out, "second")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestSpinnerSucceedWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(&buf)

	s.Succeed("done")
	assert.Contains(t, buf.String(), "done")
}

func TestSpinnerStopClearsLineSilently(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(&buf)
	s.Start()
	s.Stop()

	assert.NotContains(t, buf.String(), "\n")
}
