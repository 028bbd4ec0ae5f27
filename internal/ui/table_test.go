package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udbhavbalaji/cvstack/internal/types"
)

func TestFormatSalary(t *testing.T) {
	tests := []struct {
		name     string
		min, max int64
		want     string
	}{
		{"both posted", 90000, 120000, "Min: 90000; Max: 120000 CAD"},
		{"only max", 0, 120000, "Min: -; Max: 120000 CAD"},
		{"only min", 90000, 0, "Min: 90000; Max: - CAD"},
		{"neither", 0, 0, "Min: -; Max: - CAD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSalary(tt.min, tt.max, types.CurrencyCAD))
		})
	}
}

func TestRenderJobList(t *testing.T) {
	jobs := []types.JobApplication{{
		JobID:             4012345678,
		Title:             "Backend Engineer",
		CompanyName:       "Initech",
		WorkArrangement:   types.WorkHybrid,
		JobType:           types.JobFullTime,
		LocationCity:      "Toronto",
		LocationCountry:   "Canada",
		SalaryCurrency:    types.CurrencyCAD,
		ApplicationStatus: types.StatusApplied,
		DateApplied:       "2026-08-25T10:00:00Z",
		Starred:           true,
	}}

	out := RenderJobList(jobs)
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "Initech")
	assert.Contains(t, out, "Toronto, Canada")
	assert.Contains(t, out, "full-time - hybrid")
	assert.Contains(t, out, "2026-08-25")
	assert.Contains(t, out, IconStar)
}

func TestRenderJobDetailSkipsEmptyFields(t *testing.T) {
	j := &types.JobApplication{
		JobID:             1,
		Title:             "Engineer",
		CompanyName:       "Initech",
		LocationCountry:   "Canada",
		SalaryCurrency:    types.CurrencyUSD,
		ApplicationStatus: types.StatusNotApplied,
	}

	out := RenderJobDetail(j)
	assert.Contains(t, out, "Engineer")
	assert.NotContains(t, out, "Referral")
	assert.NotContains(t, out, "Immigration")
}
