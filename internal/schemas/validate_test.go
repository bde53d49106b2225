package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
  "contact": {
    "name": "Jane Doe",
    "location": "Bangalore, KA",
    "email": "jane@example.com",
    "phone": "",
    "website": "",
    "linkedin": "",
    "github": "github.com/jane"
  },
  "sections": {
    "summary": "Engineer",
    "education": [
      {"date": "2018", "institution": "MIT", "degree": "BS", "highlights": "Dean's list"}
    ],
    "experience": [],
    "skills": [{"name": "Languages", "items": "Go, SQL"}],
    "projects": [],
    "awards": [],
    "references": [],
    "languages": [{"name": "English", "proficiency": "Native"}],
    "interests": ""
  }
}`

func TestValidateDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidateDocument(validDocument))
}

func TestValidateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		document string
		field    string
	}{
		{
			name:     "missing contact",
			document: `{"sections": {"summary": "", "education": [], "experience": [], "skills": [], "projects": [], "awards": [], "references": [], "languages": [], "interests": ""}}`,
			field:    "(root)",
		},
		{
			name: "entry missing field",
			document: `{"contact": {"name": "", "location": "", "email": "", "phone": "", "website": "", "linkedin": "", "github": ""},
				"sections": {"summary": "", "education": [{"date": "", "institution": "", "degree": ""}], "experience": [], "skills": [], "projects": [], "awards": [], "references": [], "languages": [], "interests": ""}}`,
			field: "sections.education.0",
		},
		{
			name: "null list",
			document: `{"contact": {"name": "", "location": "", "email": "", "phone": "", "website": "", "linkedin": "", "github": ""},
				"sections": {"summary": "", "education": null, "experience": [], "skills": [], "projects": [], "awards": [], "references": [], "languages": [], "interests": ""}}`,
			field: "sections.education",
		},
		{
			name: "unknown contact field",
			document: `{"contact": {"name": "", "location": "", "email": "", "phone": "", "website": "", "linkedin": "", "github": "", "fax": ""},
				"sections": {"summary": "", "education": [], "experience": [], "skills": [], "projects": [], "awards": [], "references": [], "languages": [], "interests": ""}}`,
			field: "contact",
		},
		{
			name: "number instead of string",
			document: `{"contact": {"name": "", "location": "", "email": "", "phone": 5551234, "website": "", "linkedin": "", "github": ""},
				"sections": {"summary": "", "education": [], "experience": [], "skills": [], "projects": [], "awards": [], "references": [], "languages": [], "interests": ""}}`,
			field: "contact.phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDocument(tt.document)
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type, got %T", err)
			require.NotEmpty(t, validationErr.Errors)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateDocument_MalformedJSON(t *testing.T) {
	err := ValidateDocument("{ invalid json }")
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "malformed input should surface as SchemaLoadError, got %T", err)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"name": "test"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"other": 1}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, validationErr.Error(), "validation failed")
}
