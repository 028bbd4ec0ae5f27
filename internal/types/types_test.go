package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ApplicationStatus
		ok    bool
	}{
		{"exact match", "APPLIED", StatusApplied, true},
		{"lowercase", "applied", StatusApplied, true},
		{"mixed case multiword", "online Assessment", StatusOnlineAssessment, true},
		{"hyphenated", "pre-screening", StatusPreScreening, true},
		{"unknown", "REJECTED", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatusesCoversAllValid(t *testing.T) {
	for _, s := range Statuses() {
		assert.True(t, s.IsValid(), "status %q should be valid", s)
	}
	assert.Len(t, Statuses(), 8)
	assert.False(t, ApplicationStatus("GHOSTED").IsValid())
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, WorkRemote.IsValid())
	assert.False(t, WorkArrangement("office").IsValid())

	assert.True(t, JobInternship.IsValid())
	assert.False(t, JobType("freelance").IsValid())

	assert.True(t, CurrencyEUR.IsValid())
	assert.False(t, SalaryCurrency("GBP").IsValid())

	assert.True(t, MethodPortal.IsValid())
	assert.False(t, AppMethod("Email").IsValid())
}

func TestLocation(t *testing.T) {
	j := &JobApplication{LocationCity: "Toronto", LocationCountry: "Canada"}
	assert.Equal(t, "Toronto, Canada", j.Location())

	j.LocationCity = ""
	assert.Equal(t, "Canada", j.Location())
}

func TestUpdateDetailsIsEmpty(t *testing.T) {
	var u UpdateDetails
	assert.True(t, u.IsEmpty())

	title := "Engineer"
	u.Title = &title
	assert.False(t, u.IsEmpty())
}
