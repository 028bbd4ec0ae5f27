package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/types"
)

const jobColumns = `job_id, title, company_name, work_arrangement, job_type,
	location_city, location_country, description_text,
	required_qualifications, preferred_qualifications, technical_skills,
	non_technical_skills, salary_min, salary_max, salary_currency,
	immigration_requirements, linguistic_requirements, benefits,
	posted_date, referral, app_method, application_link,
	application_status, date_applied, starred, created_at, updated_at`

// Filter narrows List results. Nil fields match everything; set fields
// combine as an AND conjunction with exact matching.
type Filter struct {
	Status      *types.ApplicationStatus
	Company     *string
	Starred     *bool
	Arrangement *types.WorkArrangement
	JobType     *types.JobType
	Country     *string
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalList(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	return items, nil
}

func scanJob(scan func(dest ...any) error) (*types.JobApplication, error) {
	var (
		j                                        types.JobApplication
		reqQuals, prefQuals, tech, soft, benefit string
		starred                                  int
	)
	err := scan(
		&j.JobID, &j.Title, &j.CompanyName, &j.WorkArrangement, &j.JobType,
		&j.LocationCity, &j.LocationCountry, &j.DescriptionText,
		&reqQuals, &prefQuals, &tech, &soft,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency,
		&j.ImmigrationRequirements, &j.LinguisticRequirements, &benefit,
		&j.PostedDate, &j.Referral, &j.AppMethod, &j.ApplicationLink,
		&j.ApplicationStatus, &j.DateApplied, &starred,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Starred = starred != 0
	if j.RequiredQualifications, err = unmarshalList(reqQuals); err != nil {
		return nil, err
	}
	if j.PreferredQualifications, err = unmarshalList(prefQuals); err != nil {
		return nil, err
	}
	if j.TechnicalSkills, err = unmarshalList(tech); err != nil {
		return nil, err
	}
	if j.NonTechnicalSkills, err = unmarshalList(soft); err != nil {
		return nil, err
	}
	if j.Benefits, err = unmarshalList(benefit); err != nil {
		return nil, err
	}
	return &j, nil
}

// Exists reports whether a job is tracked, returning its status when found.
func (s *Store) Exists(ctx context.Context, id int64) (types.ApplicationStatus, bool, error) {
	var status types.ApplicationStatus
	err := s.db.QueryRowContext(ctx,
		"SELECT application_status FROM jobs WHERE job_id = ?", id).Scan(&status)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

// Get returns a tracked job. A missing id is a safe error.
func (s *Store) Get(ctx context.Context, id int64) (*types.JobApplication, error) {
	row := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM jobs WHERE job_id = ?", jobColumns), id)
	j, err := scanJob(row.Scan)
	if err == sql.ErrNoRows {
		return nil, faults.NewDB("Job not found", true, "store:get", map[string]any{"job_id": id})
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// List returns jobs matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]types.JobApplication, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != nil {
		conds = append(conds, "application_status = ?")
		args = append(args, *f.Status)
	}
	if f.Company != nil {
		conds = append(conds, "company_name = ? COLLATE NOCASE")
		args = append(args, *f.Company)
	}
	if f.Starred != nil {
		starred := 0
		if *f.Starred {
			starred = 1
		}
		conds = append(conds, "starred = ?")
		args = append(args, starred)
	}
	if f.Arrangement != nil {
		conds = append(conds, "work_arrangement = ?")
		args = append(args, *f.Arrangement)
	}
	if f.JobType != nil {
		conds = append(conds, "job_type = ?")
		args = append(args, *f.JobType)
	}
	if f.Country != nil {
		conds = append(conds, "location_country = ? COLLATE NOCASE")
		args = append(args, *f.Country)
	}

	query := fmt.Sprintf("SELECT %s FROM jobs", jobColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, job_id DESC"

	return s.queryJobs(ctx, query, args...)
}

// Search returns jobs whose title or company contains the query,
// case-insensitively, newest first.
func (s *Store) Search(ctx context.Context, query string) ([]types.JobApplication, error) {
	pattern := "%" + escapeLike(query) + "%"
	sqlQuery := fmt.Sprintf(
		`SELECT %s FROM jobs
		 WHERE title LIKE ? ESCAPE '\' COLLATE NOCASE
		    OR company_name LIKE ? ESCAPE '\' COLLATE NOCASE
		 ORDER BY created_at DESC, job_id DESC`, jobColumns)
	return s.queryJobs(ctx, sqlQuery, pattern, pattern)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *Store) queryJobs(ctx context.Context, query string, args ...any) ([]types.JobApplication, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []types.JobApplication
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *j)
	}
	return jobs, rows.Err()
}

// Insert stores a new job. A duplicate id surfaces as a constraint error.
func (s *Store) Insert(ctx context.Context, j *types.JobApplication) error {
	reqQuals, err := marshalList(j.RequiredQualifications)
	if err != nil {
		return err
	}
	prefQuals, err := marshalList(j.PreferredQualifications)
	if err != nil {
		return err
	}
	tech, err := marshalList(j.TechnicalSkills)
	if err != nil {
		return err
	}
	soft, err := marshalList(j.NonTechnicalSkills)
	if err != nil {
		return err
	}
	benefits, err := marshalList(j.Benefits)
	if err != nil {
		return err
	}

	starred := 0
	if j.Starred {
		starred = 1
	}
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO jobs (
			job_id, title, company_name, work_arrangement, job_type,
			location_city, location_country, description_text,
			required_qualifications, preferred_qualifications, technical_skills,
			non_technical_skills, salary_min, salary_max, salary_currency,
			immigration_requirements, linguistic_requirements, benefits,
			posted_date, referral, app_method, application_link,
			application_status, date_applied, starred, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.JobID, j.Title, j.CompanyName, j.WorkArrangement, j.JobType,
		j.LocationCity, j.LocationCountry, j.DescriptionText,
		reqQuals, prefQuals, tech, soft,
		j.SalaryMin, j.SalaryMax, j.SalaryCurrency,
		j.ImmigrationRequirements, j.LinguisticRequirements, benefits,
		j.PostedDate, j.Referral, j.AppMethod, j.ApplicationLink,
		j.ApplicationStatus, j.DateApplied, starred, j.CreatedAt, j.UpdatedAt,
	)
	return err
}

// UpdateStatus sets a job's status. Moving off NOT APPLIED stamps the
// applied date when one isn't already set; moving back clears it.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status types.ApplicationStatus) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	dateApplied := job.DateApplied
	if status == types.StatusNotApplied {
		dateApplied = ""
	} else if dateApplied == "" {
		dateApplied = time.Now().UTC().Format(time.RFC3339)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE jobs SET application_status = ?, date_applied = ?, updated_at = ?
		WHERE job_id = ?`,
		status, dateApplied, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, id, "store:updateStatus")
}

// ToggleStarred flips a job's starred flag and returns the new value.
func (s *Store) ToggleStarred(ctx context.Context, id int64) (bool, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	next := !job.Starred
	starred := 0
	if next {
		starred = 1
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE jobs SET starred = ?, updated_at = ? WHERE job_id = ?",
		starred, time.Now().UTC(), id)
	if err != nil {
		return false, err
	}
	if err := requireRow(res, id, "store:toggleStarred"); err != nil {
		return false, err
	}
	return next, nil
}

// UpdateDetails applies a partial update. An empty update is a no-op.
func (s *Store) UpdateDetails(ctx context.Context, id int64, u types.UpdateDetails) error {
	if u.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	add := func(col string, val any) {
		sets = append(sets, col+" = ?")
		args = append(args, val)
	}
	if u.Title != nil {
		add("title", *u.Title)
	}
	if u.CompanyName != nil {
		add("company_name", *u.CompanyName)
	}
	if u.LocationCity != nil {
		add("location_city", *u.LocationCity)
	}
	if u.LocationCountry != nil {
		add("location_country", *u.LocationCountry)
	}
	if u.ApplicationStatus != nil {
		add("application_status", *u.ApplicationStatus)
	}
	if u.Referral != nil {
		add("referral", *u.Referral)
	}
	if u.AppMethod != nil {
		add("app_method", *u.AppMethod)
	}
	if u.ApplicationLink != nil {
		add("application_link", *u.ApplicationLink)
	}
	if u.DateApplied != nil {
		add("date_applied", *u.DateApplied)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE jobs SET %s WHERE job_id = ?", strings.Join(sets, ", ")), args...)
	if err != nil {
		return err
	}
	return requireRow(res, id, "store:updateDetails")
}

// Delete removes a single job. A missing id is a safe error.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE job_id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, id, "store:delete")
}

// DeleteAll removes every tracked job and returns how many were deleted.
func (s *Store) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM jobs")
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of tracked jobs.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM jobs").Scan(&n)
	return n, err
}

func requireRow(res sql.Result, id int64, location string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return faults.NewDB("Job not found", true, location, map[string]any{"job_id": id})
	}
	return nil
}
