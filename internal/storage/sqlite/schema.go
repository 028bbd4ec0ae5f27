package sqlite

// schema is the baseline database layout. Statements are idempotent; the
// migration runner handles additive changes on top of this.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    job_id                   INTEGER PRIMARY KEY,
    title                    TEXT NOT NULL,
    company_name             TEXT NOT NULL,
    work_arrangement         TEXT NOT NULL CHECK (work_arrangement IN ('on-site', 'hybrid', 'remote')),
    job_type                 TEXT NOT NULL CHECK (job_type IN ('full-time', 'part-time', 'contract', 'internship')),
    location_city            TEXT NOT NULL DEFAULT '',
    location_country         TEXT NOT NULL,
    description_text         TEXT NOT NULL,
    required_qualifications  TEXT NOT NULL DEFAULT '[]',
    preferred_qualifications TEXT NOT NULL DEFAULT '[]',
    technical_skills         TEXT NOT NULL DEFAULT '[]',
    non_technical_skills     TEXT NOT NULL DEFAULT '[]',
    salary_min               INTEGER NOT NULL DEFAULT 0,
    salary_max               INTEGER NOT NULL DEFAULT 0,
    salary_currency          TEXT NOT NULL DEFAULT 'USD' CHECK (salary_currency IN ('USD', 'CAD', 'INR', 'EUR')),
    immigration_requirements TEXT NOT NULL DEFAULT '',
    linguistic_requirements  TEXT NOT NULL DEFAULT '',
    benefits                 TEXT NOT NULL DEFAULT '[]',
    posted_date              TEXT NOT NULL DEFAULT '',
    referral                 TEXT NOT NULL DEFAULT '',
    app_method               TEXT NOT NULL DEFAULT 'Linkedin' CHECK (app_method IN ('Linkedin', 'Company''s Job Portal', 'Other')),
    application_link         TEXT NOT NULL DEFAULT '',
    application_status       TEXT NOT NULL DEFAULT 'NOT APPLIED',
    date_applied             TEXT NOT NULL DEFAULT '',
    starred                  INTEGER NOT NULL DEFAULT 0,
    created_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at               DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_jobs_status ON jobs(application_status);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs(company_name);

CREATE TABLE IF NOT EXISTS schema_migrations (
    version    INTEGER PRIMARY KEY,
    applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
