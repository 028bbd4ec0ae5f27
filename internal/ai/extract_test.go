package ai

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udbhavbalaji/cvstack/internal/faults"
	"github.com/udbhavbalaji/cvstack/internal/validate"
)

func TestNewRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := New("")
	assert.ErrorIs(t, err, faults.ErrMissingAPIKey)

	ex, err := New("sk-stored")
	require.NoError(t, err)
	assert.NotNil(t, ex)
}

func TestNewPrefersEnvKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	ex, err := New("sk-stored")
	require.NoError(t, err)
	assert.NotNil(t, ex)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.input))
		})
	}
}

func TestExtractionValidation(t *testing.T) {
	valid := Extraction{
		Title:           "Backend Engineer",
		CompanyName:     "Initech",
		WorkArrangement: "hybrid",
		JobType:         "full-time",
		LocationCountry: "Canada",
		SalaryCurrency:  "CAD",
	}
	assert.NoError(t, validate.Struct(&valid))

	bad := valid
	bad.WorkArrangement = "office"
	err := validate.Struct(&bad)
	require.Error(t, err)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	bad = valid
	bad.SalaryMin = -1
	assert.Error(t, validate.Struct(&bad))
}
