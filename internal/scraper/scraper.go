// Package scraper shells out to the scraper subprocess and validates its
// JSON output before it enters the pipeline.
package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/validate"
)

// ScrapedJob is the subprocess output: the raw posting plus counts the
// scraper computes over the description text.
type ScrapedJob struct {
	JobID           int64  `json:"job_id" validate:"required,gt=0"`
	URL             string `json:"url" validate:"required,url"`
	Title           string `json:"title" validate:"required"`
	CompanyName     string `json:"company_name" validate:"required"`
	Location        string `json:"location"`
	DescriptionText string `json:"description_text" validate:"required"`
	WordCount       int    `json:"word_count" validate:"required,gt=0"`
	CharCount       int    `json:"char_count" validate:"required,gt=0"`
	PostedDate      string `json:"posted_date"`
}

// Runner executes the scraper binary. Tests substitute a fake.
type Runner func(ctx context.Context, url string) (stdout, stderr []byte, exitCode int, err error)

// Scraper drives the subprocess and validates what comes back.
type Scraper struct {
	run Runner
}

// New creates a scraper using the real subprocess runner. The binary is
// $CVSTACK_SCRAPER when set, "cvstack-scraper" on PATH otherwise.
func New() *Scraper {
	return &Scraper{run: execRunner}
}

// NewWithRunner creates a scraper with a custom runner.
func NewWithRunner(run Runner) *Scraper {
	return &Scraper{run: run}
}

func scraperBinary() string {
	if bin := os.Getenv("CVSTACK_SCRAPER"); bin != "" {
		return bin
	}
	return "cvstack-scraper"
}

func execRunner(ctx context.Context, url string) ([]byte, []byte, int, error) {
	cmd := exec.CommandContext(ctx, scraperBinary(), url)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
			err = nil
		}
	}
	return stdout.Bytes(), stderr.Bytes(), exitCode, err
}

// Scrape runs the subprocess for the given URL and returns its validated
// output. A non-zero exit becomes a shell failure carrying the stderr
// text; malformed or invalid JSON propagates raw for classification.
func (s *Scraper) Scrape(ctx context.Context, url string) (*ScrapedJob, error) {
	stdout, stderr, exitCode, err := s.run(ctx, url)
	if err != nil {
		return nil, err
	}
	if exitCode != 0 {
		return nil, &faults.ShellFailure{Output: string(stderr), ExitCode: exitCode}
	}

	var job ScrapedJob
	if err := json.Unmarshal(stdout, &job); err != nil {
		return nil, err
	}
	if err := validate.Struct(&job); err != nil {
		return nil, err
	}
	return &job, nil
}
