package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udbhavbalaji/cvstack/internal/prompt"
	"github.com/udbhavbalaji/cvstack/internal/types"
)

func TestClipboardPayload(t *testing.T) {
	job := &types.JobApplication{
		JobID:           4236382406,
		Title:           "Backend Engineer",
		ApplicationLink: "https://www.linkedin.com/jobs/view/4236382406",
	}

	tests := []struct {
		name   string
		action prompt.SearchAction
		want   string
		copied bool
	}{
		{"copy id", prompt.ActionCopyID, "4236382406", true},
		{"copy link", prompt.ActionCopyLink, "https://www.linkedin.com/jobs/view/4236382406", true},
		{"edit is not a copy", prompt.ActionEdit, "", false},
		{"done is not a copy", prompt.ActionDone, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := clipboardPayload(job, tt.action)
			assert.Equal(t, tt.copied, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
