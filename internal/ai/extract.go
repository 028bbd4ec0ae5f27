// Package ai extracts structured job details from scraped posting text
// using the Anthropic API.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/validate"
)

// DefaultModel is used unless CVSTACK_AI_MODEL overrides it.
const DefaultModel = "claude-sonnet-4-20250514"

// Extraction is the model's structured read of a posting. Field constraints
// mirror what the tracker stores; a response violating them is an unsafe
// validation failure, not user error.
type Extraction struct {
	Title                   string   `json:"title" validate:"required"`
	CompanyName             string   `json:"company_name" validate:"required"`
	WorkArrangement         string   `json:"work_arrangement" validate:"required,oneof=on-site hybrid remote"`
	JobType                 string   `json:"job_type" validate:"required,oneof=full-time part-time contract internship"`
	LocationCity            string   `json:"location_city"`
	LocationCountry         string   `json:"location_country" validate:"required"`
	RequiredQualifications  []string `json:"required_qualifications"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	TechnicalSkills         []string `json:"technical_skills"`
	NonTechnicalSkills      []string `json:"non_technical_skills"`
	SalaryMin               int64    `json:"salary_min" validate:"gte=0"`
	SalaryMax               int64    `json:"salary_max" validate:"gte=0"`
	SalaryCurrency          string   `json:"salary_currency" validate:"required,oneof=USD CAD INR EUR"`
	ImmigrationRequirements string   `json:"immigration_requirements"`
	LinguisticRequirements  string   `json:"linguistic_requirements"`
	Benefits                []string `json:"benefits"`
}

const extractionPrompt = `You are a job posting analyzer. Extract structured details from the posting below.

Respond with ONLY a JSON object, no prose, matching exactly this shape:
{
  "title": string,
  "company_name": string,
  "work_arrangement": "on-site" | "hybrid" | "remote",
  "job_type": "full-time" | "part-time" | "contract" | "internship",
  "location_city": string,
  "location_country": string,
  "required_qualifications": string[],
  "preferred_qualifications": string[],
  "technical_skills": string[],
  "non_technical_skills": string[],
  "salary_min": number,
  "salary_max": number,
  "salary_currency": "USD" | "CAD" | "INR" | "EUR",
  "immigration_requirements": string,
  "linguistic_requirements": string,
  "benefits": string[]
}

Use 0 for salary_min/salary_max when the posting does not state a salary.
Use "" for unknown string fields and [] for unknown lists.
Use the posting's own wording for qualifications and skills, shortened to concise phrases.

Posting title: %s
Posting company: %s
Posting location: %s

Posting text:
%s`

// Extractor calls the model. One request per extraction, no retries.
type Extractor struct {
	client anthropic.Client
	model  anthropic.Model
}

// New builds an Extractor. The ANTHROPIC_API_KEY environment variable
// takes precedence over the stored key; with neither present the
// extractor cannot be built.
func New(storedKey string) (*Extractor, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		key = storedKey
	}
	if key == "" {
		return nil, faults.ErrMissingAPIKey
	}

	model := DefaultModel
	if m := os.Getenv("CVSTACK_AI_MODEL"); m != "" {
		model = m
	}

	return &Extractor{
		client: anthropic.NewClient(option.WithAPIKey(key)),
		model:  anthropic.Model(model),
	}, nil
}

// Extract sends the posting to the model and validates the structured
// response. API errors and malformed responses propagate raw for the
// classifier.
func (e *Extractor) Extract(ctx context.Context, title, company, location, description string) (*Extraction, error) {
	prompt := fmt.Sprintf(extractionPrompt, title, company, location, description)

	message, err := e.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     e.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, err
	}

	if len(message.Content) == 0 || message.Content[0].Type != "text" {
		return nil, faults.NewAI("Model returned no text content", "ai:extract")
	}

	raw := stripFences(message.Content[0].Text)
	var ex Extraction
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return nil, err
	}
	if err := validate.Struct(&ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

// stripFences removes a markdown code fence around a JSON payload, which
// models sometimes add despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
