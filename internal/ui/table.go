package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/udbhavbalaji/cvstack/internal/types"
)

// FormatSalary renders a posted salary range, with "-" for unposted bounds.
func FormatSalary(min, max int64, currency types.SalaryCurrency) string {
	lo, hi := "-", "-"
	if min > 0 {
		lo = fmt.Sprintf("%d", min)
	}
	if max > 0 {
		hi = fmt.Sprintf("%d", max)
	}
	return fmt.Sprintf("Min: %s; Max: %s %s", lo, hi, currency)
}

func newJobTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// RenderJobList renders the multi-job listing table.
func RenderJobList(jobs []types.JobApplication) string {
	t := newJobTable().
		Headers("", "ID", "Title", "Company", "Details", "Location", "Salary", "Status", "Applied")
	for _, j := range jobs {
		star := ""
		if j.Starred {
			star = IconStar
		}
		applied := j.DateApplied
		if len(applied) >= 10 {
			applied = applied[:10]
		}
		t.Row(
			star,
			fmt.Sprintf("%d", j.JobID),
			j.Title,
			j.CompanyName,
			fmt.Sprintf("%s - %s", j.JobType, j.WorkArrangement),
			j.Location(),
			FormatSalary(j.SalaryMin, j.SalaryMax, j.SalaryCurrency),
			string(j.ApplicationStatus),
			applied,
		)
	}
	return t.Render()
}

// RenderJobDetail renders the full single-job detail table.
func RenderJobDetail(j *types.JobApplication) string {
	rows := [][2]string{
		{"Job ID", fmt.Sprintf("%d", j.JobID)},
		{"Title", j.Title},
		{"Company", j.CompanyName},
		{"Arrangement", string(j.WorkArrangement)},
		{"Job Type", string(j.JobType)},
		{"Location", j.Location()},
		{"Salary", FormatSalary(j.SalaryMin, j.SalaryMax, j.SalaryCurrency)},
		{"Status", string(j.ApplicationStatus)},
		{"Applied On", j.DateApplied},
		{"Method", string(j.AppMethod)},
		{"Link", j.ApplicationLink},
		{"Referral", j.Referral},
		{"Required", joinList(j.RequiredQualifications)},
		{"Preferred", joinList(j.PreferredQualifications)},
		{"Tech Skills", joinList(j.TechnicalSkills)},
		{"Soft Skills", joinList(j.NonTechnicalSkills)},
		{"Benefits", joinList(j.Benefits)},
		{"Immigration", j.ImmigrationRequirements},
		{"Languages", j.LinguisticRequirements},
		{"Posted", j.PostedDate},
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Width(64)
		})
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		if j.Starred && r[0] == "Title" {
			r[1] = IconStar + " " + r[1]
		}
		t.Row(r[0], r[1])
	}
	return t.Render()
}

func joinList(items []string) string {
	return strings.Join(items, "; ")
}
