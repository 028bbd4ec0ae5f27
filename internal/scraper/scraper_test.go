package scraper

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udbhavbalaji/cvstack/internal/faults"
)

func fakeRunner(stdout, stderr string, exitCode int) Runner {
	return func(_ context.Context, _ string) ([]byte, []byte, int, error) {
		return []byte(stdout), []byte(stderr), exitCode, nil
	}
}

const validOutput = `{
	"job_id": 4012345678,
	"url": "https://www.linkedin.com/jobs/view/4012345678",
	"title": "Backend Engineer",
	"company_name": "Initech",
	"location": "Toronto, Canada",
	"description_text": "Build and run backend services.",
	"word_count": 5,
	"char_count": 31,
	"posted_date": "2026-08-01"
}`

func TestScrapeSuccess(t *testing.T) {
	s := NewWithRunner(fakeRunner(validOutput, "", 0))

	job, err := s.Scrape(context.Background(), "https://www.linkedin.com/jobs/view/4012345678")
	require.NoError(t, err)
	assert.Equal(t, int64(4012345678), job.JobID)
	assert.Equal(t, "Backend Engineer", job.Title)
	assert.Equal(t, 5, job.WordCount)
}

func TestScrapeNonZeroExitIsShellFailure(t *testing.T) {
	s := NewWithRunner(fakeRunner("", "scraper: page not found\n", 3))

	_, err := s.Scrape(context.Background(), "https://www.linkedin.com/jobs/view/1")
	require.Error(t, err)

	var sf *faults.ShellFailure
	require.ErrorAs(t, err, &sf)
	assert.Equal(t, 3, sf.ExitCode)
	assert.Contains(t, sf.Output, "page not found")
}

func TestScrapeMalformedJSON(t *testing.T) {
	s := NewWithRunner(fakeRunner("{not json", "", 0))

	_, err := s.Scrape(context.Background(), "https://www.linkedin.com/jobs/view/1")
	require.Error(t, err)

	var serr *json.SyntaxError
	assert.ErrorAs(t, err, &serr)
}

func TestScrapeInvalidOutputFailsValidation(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"missing description", `{"job_id": 1, "url": "https://x.com", "title": "t", "company_name": "c", "word_count": 1, "char_count": 1}`},
		{"zero job id", `{"job_id": 0, "url": "https://x.com", "title": "t", "company_name": "c", "description_text": "d", "word_count": 1, "char_count": 1}`},
		{"bad url", `{"job_id": 1, "url": "not a url", "title": "t", "company_name": "c", "description_text": "d", "word_count": 1, "char_count": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewWithRunner(fakeRunner(tt.output, "", 0))
			_, err := s.Scrape(context.Background(), "https://www.linkedin.com/jobs/view/1")
			require.Error(t, err)

			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
}
