// Package stats computes aggregate views over tracked job applications.
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/udbhavbalaji/cvstack/internal/types"
	"github.com/udbhavbalaji/cvstack/internal/ui"
)

// SkillCount pairs a skill with how many postings mention it.
type SkillCount struct {
	Skill string
	Count int
}

// SalaryRange aggregates posted salaries for one currency. Postings with
// no salary are excluded.
type SalaryRange struct {
	Currency types.SalaryCurrency
	Count    int
	Min      int64
	Max      int64
	Avg      int64
}

// Summary is the full aggregate over all tracked jobs.
type Summary struct {
	Total         int
	Starred       int
	WithReferral  int
	AppliedWeek   int
	AppliedMonth  int
	ByStatus      map[types.ApplicationStatus]int
	ByArrangement map[types.WorkArrangement]int
	ByType        map[types.JobType]int
	ByMethod      map[types.AppMethod]int
	ByCompany     map[string]int
	ByCountry     map[string]int
	Salaries      []SalaryRange
	TopTechnical  []SkillCount
	TopSoft       []SkillCount
}

// DefaultTopSkills is how many skills each top-skill list keeps.
const DefaultTopSkills = 5

// Compute builds the summary. now anchors the week/month windows and topN
// bounds the skill lists (0 means DefaultTopSkills).
func Compute(jobs []types.JobApplication, now time.Time, topN int) *Summary {
	if topN <= 0 {
		topN = DefaultTopSkills
	}
	s := &Summary{
		ByStatus:      map[types.ApplicationStatus]int{},
		ByArrangement: map[types.WorkArrangement]int{},
		ByType:        map[types.JobType]int{},
		ByMethod:      map[types.AppMethod]int{},
		ByCompany:     map[string]int{},
		ByCountry:     map[string]int{},
	}

	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)
	salaryAgg := map[types.SalaryCurrency]*SalaryRange{}
	techCounts := map[string]int{}
	softCounts := map[string]int{}

	for i := range jobs {
		j := &jobs[i]
		s.Total++
		s.ByStatus[j.ApplicationStatus]++
		s.ByArrangement[j.WorkArrangement]++
		s.ByType[j.JobType]++
		s.ByCompany[j.CompanyName]++
		s.ByCountry[j.LocationCountry]++
		if j.Starred {
			s.Starred++
		}
		if j.Referral != "" {
			s.WithReferral++
		}
		if j.ApplicationStatus != types.StatusNotApplied {
			s.ByMethod[j.AppMethod]++
			if applied, err := time.Parse(time.RFC3339, j.DateApplied); err == nil {
				if applied.After(weekAgo) {
					s.AppliedWeek++
				}
				if applied.After(monthAgo) {
					s.AppliedMonth++
				}
			}
		}

		if j.SalaryMin > 0 || j.SalaryMax > 0 {
			agg := salaryAgg[j.SalaryCurrency]
			if agg == nil {
				agg = &SalaryRange{Currency: j.SalaryCurrency, Min: j.SalaryMin, Max: j.SalaryMax}
				salaryAgg[j.SalaryCurrency] = agg
			}
			if j.SalaryMin > 0 && (agg.Min == 0 || j.SalaryMin < agg.Min) {
				agg.Min = j.SalaryMin
			}
			if j.SalaryMax > agg.Max {
				agg.Max = j.SalaryMax
			}
			mid := midpoint(j.SalaryMin, j.SalaryMax)
			agg.Avg += mid
			agg.Count++
		}

		for _, skill := range j.TechnicalSkills {
			techCounts[normalizeSkill(skill)]++
		}
		for _, skill := range j.NonTechnicalSkills {
			softCounts[normalizeSkill(skill)]++
		}
	}

	for _, agg := range salaryAgg {
		if agg.Count > 0 {
			agg.Avg /= int64(agg.Count)
		}
		s.Salaries = append(s.Salaries, *agg)
	}
	sort.Slice(s.Salaries, func(a, b int) bool {
		return s.Salaries[a].Currency < s.Salaries[b].Currency
	})

	s.TopTechnical = topSkills(techCounts, topN)
	s.TopSoft = topSkills(softCounts, topN)
	return s
}

func midpoint(min, max int64) int64 {
	switch {
	case min > 0 && max > 0:
		return (min + max) / 2
	case min > 0:
		return min
	default:
		return max
	}
}

func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func topSkills(counts map[string]int, n int) []SkillCount {
	all := make([]SkillCount, 0, len(counts))
	for skill, count := range counts {
		if skill == "" {
			continue
		}
		all = append(all, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(all, func(a, b int) bool {
		if all[a].Count != all[b].Count {
			return all[a].Count > all[b].Count
		}
		return all[a].Skill < all[b].Skill
	})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// Render formats the summary for terminal output. Detailed mode adds the
// per-company, per-country and per-method breakdowns.
func Render(s *Summary, detailed bool) string {
	var b strings.Builder

	b.WriteString(ui.HeaderStyle.Render("Application Stats"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Tracked jobs: %d   Starred: %d   With referral: %d\n", s.Total, s.Starred, s.WithReferral)
	fmt.Fprintf(&b, "Applied this week: %d   this month: %d\n\n", s.AppliedWeek, s.AppliedMonth)

	b.WriteString(renderCountTable("Status", statusRows(s)))
	b.WriteString("\n")
	b.WriteString(renderCountTable("Arrangement", arrangementRows(s)))
	b.WriteString("\n")

	if len(s.Salaries) > 0 {
		t := newCountTable("Currency", "Postings", "Min", "Max", "Avg")
		for _, r := range s.Salaries {
			t.Row(string(r.Currency), fmt.Sprintf("%d", r.Count),
				fmt.Sprintf("%d", r.Min), fmt.Sprintf("%d", r.Max), fmt.Sprintf("%d", r.Avg))
		}
		b.WriteString(t.Render())
		b.WriteString("\n")
	}

	if len(s.TopTechnical) > 0 {
		b.WriteString(renderSkillTable("Top technical skills", s.TopTechnical))
		b.WriteString("\n")
	}
	if len(s.TopSoft) > 0 {
		b.WriteString(renderSkillTable("Top soft skills", s.TopSoft))
		b.WriteString("\n")
	}

	if detailed {
		b.WriteString(renderCountTable("Job Type", typeRows(s)))
		b.WriteString("\n")
		b.WriteString(renderStringCountTable("Company", s.ByCompany))
		b.WriteString("\n")
		b.WriteString(renderStringCountTable("Country", s.ByCountry))
		b.WriteString("\n")
		if len(s.ByMethod) > 0 {
			b.WriteString(renderMethodTable(s))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func typeRows(s *Summary) [][2]string {
	order := []types.JobType{types.JobFullTime, types.JobPartTime, types.JobContract, types.JobInternship}
	rows := make([][2]string, 0, len(order))
	for _, jt := range order {
		if n := s.ByType[jt]; n > 0 {
			rows = append(rows, [2]string{string(jt), fmt.Sprintf("%d", n)})
		}
	}
	return rows
}

func renderStringCountTable(label string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if counts[keys[a]] != counts[keys[b]] {
			return counts[keys[a]] > counts[keys[b]]
		}
		return keys[a] < keys[b]
	})

	t := newCountTable(label, "Count")
	for _, k := range keys {
		t.Row(k, fmt.Sprintf("%d", counts[k]))
	}
	return t.Render()
}

func renderMethodTable(s *Summary) string {
	order := []types.AppMethod{types.MethodLinkedin, types.MethodPortal, types.MethodOther}
	t := newCountTable("Applied Via", "Count")
	for _, m := range order {
		if n := s.ByMethod[m]; n > 0 {
			t.Row(string(m), fmt.Sprintf("%d", n))
		}
	}
	return t.Render()
}

func newCountTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(ui.MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return ui.HeaderStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

func statusRows(s *Summary) [][2]string {
	rows := make([][2]string, 0, len(s.ByStatus))
	for _, status := range types.Statuses() {
		if n := s.ByStatus[status]; n > 0 {
			rows = append(rows, [2]string{string(status), fmt.Sprintf("%d", n)})
		}
	}
	return rows
}

func arrangementRows(s *Summary) [][2]string {
	order := []types.WorkArrangement{types.WorkOnSite, types.WorkHybrid, types.WorkRemote}
	rows := make([][2]string, 0, len(order))
	for _, w := range order {
		if n := s.ByArrangement[w]; n > 0 {
			rows = append(rows, [2]string{string(w), fmt.Sprintf("%d", n)})
		}
	}
	return rows
}

func renderCountTable(label string, rows [][2]string) string {
	t := newCountTable(label, "Count")
	for _, r := range rows {
		t.Row(r[0], r[1])
	}
	return t.Render()
}

func renderSkillTable(label string, skills []SkillCount) string {
	t := newCountTable(label, "Mentions")
	for _, sc := range skills {
		t.Row(sc.Skill, fmt.Sprintf("%d", sc.Count))
	}
	return t.Render()
}
