// Package types defines the core data structures for the cvstack job tracker.
package types

import (
	"strings"
	"time"
)

// ApplicationStatus is one step of the fixed application lifecycle.
// Transitions are user-driven; any status may be set to any other.
type ApplicationStatus string

// Application lifecycle, in order.
const (
	StatusNotApplied       ApplicationStatus = "NOT APPLIED"
	StatusApplied          ApplicationStatus = "APPLIED"
	StatusPreScreening     ApplicationStatus = "PRE-SCREENING"
	StatusOnlineAssessment ApplicationStatus = "ONLINE ASSESSMENT"
	StatusHMInterview      ApplicationStatus = "HIRING MANAGER INTERVIEW"
	StatusBackgroundCheck  ApplicationStatus = "BACKGROUND CHECK"
	StatusOffered          ApplicationStatus = "OFFERED"
	StatusAccepted         ApplicationStatus = "ACCEPTED"
)

// Statuses returns the full lifecycle in order.
func Statuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusNotApplied,
		StatusApplied,
		StatusPreScreening,
		StatusOnlineAssessment,
		StatusHMInterview,
		StatusBackgroundCheck,
		StatusOffered,
		StatusAccepted,
	}
}

// IsValid checks if the status is one of the lifecycle values.
func (s ApplicationStatus) IsValid() bool {
	for _, v := range Statuses() {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus matches a user-supplied string against the lifecycle,
// case-insensitively. Returns false if the input is not a valid status.
func ParseStatus(input string) (ApplicationStatus, bool) {
	for _, v := range Statuses() {
		if strings.EqualFold(input, string(v)) {
			return v, true
		}
	}
	return "", false
}

// WorkArrangement describes where the work happens.
type WorkArrangement string

const (
	WorkOnSite WorkArrangement = "on-site"
	WorkHybrid WorkArrangement = "hybrid"
	WorkRemote WorkArrangement = "remote"
)

// IsValid checks if the work arrangement is a known value.
func (w WorkArrangement) IsValid() bool {
	switch w {
	case WorkOnSite, WorkHybrid, WorkRemote:
		return true
	}
	return false
}

// JobType is the employment category of a posting.
type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
)

// IsValid checks if the job type is a known value.
func (j JobType) IsValid() bool {
	switch j {
	case JobFullTime, JobPartTime, JobContract, JobInternship:
		return true
	}
	return false
}

// SalaryCurrency is the currency of the posted salary range.
type SalaryCurrency string

const (
	CurrencyUSD SalaryCurrency = "USD"
	CurrencyCAD SalaryCurrency = "CAD"
	CurrencyINR SalaryCurrency = "INR"
	CurrencyEUR SalaryCurrency = "EUR"
)

// IsValid checks if the currency is a supported value.
func (c SalaryCurrency) IsValid() bool {
	switch c {
	case CurrencyUSD, CurrencyCAD, CurrencyINR, CurrencyEUR:
		return true
	}
	return false
}

// AppMethod records how the application was submitted.
type AppMethod string

const (
	MethodLinkedin AppMethod = "Linkedin"
	MethodPortal   AppMethod = "Company's Job Portal"
	MethodOther    AppMethod = "Other"
)

// IsValid checks if the application method is a known value.
func (m AppMethod) IsValid() bool {
	switch m {
	case MethodLinkedin, MethodPortal, MethodOther:
		return true
	}
	return false
}

// JobApplication is the single persisted entity: one tracked job posting.
// JobID is externally sourced from the posting URL, never generated here,
// and is globally unique.
type JobApplication struct {
	JobID                   int64             `json:"job_id"`
	Title                   string            `json:"title"`
	CompanyName             string            `json:"company_name"`
	WorkArrangement         WorkArrangement   `json:"work_arrangement"`
	JobType                 JobType           `json:"job_type"`
	LocationCity            string            `json:"location_city,omitempty"`
	LocationCountry         string            `json:"location_country"`
	DescriptionText         string            `json:"description_text"`
	RequiredQualifications  []string          `json:"required_qualifications"`
	PreferredQualifications []string          `json:"preferred_qualifications"`
	TechnicalSkills         []string          `json:"technical_skills"`
	NonTechnicalSkills      []string          `json:"non_technical_skills"`
	SalaryMin               int64             `json:"salary_min"` // 0 means not posted
	SalaryMax               int64             `json:"salary_max"` // 0 means not posted
	SalaryCurrency          SalaryCurrency    `json:"salary_currency"`
	ImmigrationRequirements string            `json:"immigration_requirements,omitempty"`
	LinguisticRequirements  string            `json:"linguistic_requirements,omitempty"`
	Benefits                []string          `json:"benefits"`
	PostedDate              string            `json:"posted_date,omitempty"`
	Referral                string            `json:"referral,omitempty"`
	AppMethod               AppMethod         `json:"app_method"`
	ApplicationLink         string            `json:"application_link"`
	ApplicationStatus       ApplicationStatus `json:"application_status"`
	DateApplied             string            `json:"date_applied,omitempty"` // RFC3339, set when status leaves NOT APPLIED
	Starred                 bool              `json:"starred,omitempty"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
}

// Location formats the city/country pair for display.
func (j *JobApplication) Location() string {
	if j.LocationCity == "" {
		return j.LocationCountry
	}
	return j.LocationCity + ", " + j.LocationCountry
}

// UpdateDetails is the partial-update payload for a tracked job.
// Nil fields are left unchanged.
type UpdateDetails struct {
	Title             *string
	CompanyName       *string
	LocationCity      *string
	LocationCountry   *string
	ApplicationStatus *ApplicationStatus
	Referral          *string
	AppMethod         *AppMethod
	ApplicationLink   *string
	DateApplied       *string
}

// IsEmpty reports whether the update would change nothing.
func (u *UpdateDetails) IsEmpty() bool {
	return u.Title == nil && u.CompanyName == nil && u.LocationCity == nil &&
		u.LocationCountry == nil && u.ApplicationStatus == nil && u.Referral == nil &&
		u.AppMethod == nil && u.ApplicationLink == nil && u.DateApplied == nil
}
