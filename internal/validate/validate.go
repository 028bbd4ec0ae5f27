// Package validate wraps struct validation and job-URL parsing.
package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/udbhavbalaji/cvstack/internal/faults"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct validates a tagged struct. Failures come back as raw
// validator.ValidationErrors for the classifier to convert.
func Struct(s any) error {
	return v.Struct(s)
}

var jobIDPattern = regexp.MustCompile(`/jobs/view/(\d+)`)

// ParseJobURL extracts the numeric job id from a LinkedIn posting URL.
// Accepts linkedin.com and www.linkedin.com hosts, with or without query
// parameters. Anything else is a safe CLI error.
func ParseJobURL(rawURL string) (int64, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return 0, faults.NewCLI("Missing required argument: url", "parseJobURL")
	}
	lower := strings.ToLower(trimmed)
	if !strings.Contains(lower, "linkedin.com") {
		return 0, urlIssue("Unsupported job board. Only LinkedIn URLs are supported.")
	}
	m := jobIDPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return 0, urlIssue("Could not extract a job id from the URL.")
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, urlIssue("Could not extract a job id from the URL.")
	}
	return id, nil
}

func urlIssue(message string) *faults.Error {
	return faults.NewValidation([]faults.Issue{
		{Field: "url", Rule: "job_url", Message: message},
	}, faults.SourceCLI, "parseJobURL")
}
