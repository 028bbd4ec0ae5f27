package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Elapsed-time thresholds for spinner color/text shifts. Cosmetic only.
const (
	spinnerSlowAfter  = 5 * time.Second
	spinnerStuckAfter = 10 * time.Second
)

// Spinner is a single-line terminal progress indicator. Stop methods are
// idempotent: the first of Succeed/Fail/Stop wins, later calls are no-ops.
// That ordering matters to the error pipeline, which must stop a spinner
// exactly once before any message is printed.
type Spinner struct {
	mu       sync.Mutex
	out      io.Writer
	text     string
	stopped  bool
	done     chan struct{}
	started  time.Time
	interval time.Duration
}

// NewSpinner creates a spinner writing to stderr.
func NewSpinner(text string) *Spinner {
	return &Spinner{
		out:      os.Stderr,
		text:     text,
		interval: 80 * time.Millisecond,
	}
}

// Start begins rendering frames until the spinner is stopped.
func (s *Spinner) Start() *Spinner {
	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return s
	}
	s.done = make(chan struct{})
	s.started = time.Now()
	s.mu.Unlock()

	go s.loop()
	return s
}

func (s *Spinner) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	frame := 0
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.stopped {
				s.mu.Unlock()
				return
			}
			elapsed := time.Since(s.started)
			style := AccentStyle
			text := s.text
			switch {
			case elapsed >= spinnerStuckAfter:
				style = WarnStyle
				text = "Damn this one's tough. Gimme a min..."
			case elapsed >= spinnerSlowAfter:
				style = PassStyle
			}
			fmt.Fprintf(s.out, "\r\033[K%s %s", style.Render(spinnerFrames[frame%len(spinnerFrames)]), text)
			s.mu.Unlock()
			frame++
		}
	}
}

// SetText replaces the spinner line text.
func (s *Spinner) SetText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
}

// Succeed stops the spinner with a success glyph and message.
func (s *Spinner) Succeed(msg string) {
	s.stop(RenderPass(IconPass), msg)
}

// Fail stops the spinner with a failure glyph and message.
func (s *Spinner) Fail(msg string) {
	s.stop(RenderFail(IconFail), msg)
}

// Stop clears the spinner line without printing a result.
func (s *Spinner) Stop() {
	s.stop("", "")
}

func (s *Spinner) stop(glyph, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if s.done != nil {
		close(s.done)
	}
	fmt.Fprintf(s.out, "\r\033[K")
	if glyph != "" || msg != "" {
		fmt.Fprintf(s.out, "%s %s\n", glyph, msg)
	}
}
