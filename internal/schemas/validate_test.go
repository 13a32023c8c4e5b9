package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const houseRules = "testdata/house_rules.schema.json"

func fieldNames(err *ValidationError) []string {
	names := make([]string, 0, len(err.Errors))
	for _, fe := range err.Errors {
		names = append(names, fe.Field)
	}
	return names
}

func TestCompileFile(t *testing.T) {
	schema, err := CompileFile(houseRules)
	require.NoError(t, err)
	assert.Equal(t, houseRules, schema.Name())
}

func TestCompileFile_Missing(t *testing.T) {
	_, err := CompileFile(filepath.Join("testdata", "nope.schema.json"))

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "schema file not found", loadErr.Message)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", `{"type": 12}`)

	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "broken")
}

func TestSchema_ValidateFile(t *testing.T) {
	schema, err := CompileFile(houseRules)
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		wantFields []string
	}{
		{
			name: "complete resume",
			path: "../../testdata/resumes/valid/full.json",
		},
		{
			name:       "empty resume",
			path:       "../../testdata/resumes/valid/minimal.json",
			wantFields: []string{"personalDetails", "workExperience"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schema.ValidateFile(tt.path)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			fields := fieldNames(validationErr)
			for _, want := range tt.wantFields {
				assert.Contains(t, fields, want)
			}
		})
	}
}

func TestSchema_ValidateFile_Unreadable(t *testing.T) {
	schema, err := CompileFile(houseRules)
	require.NoError(t, err)

	err = schema.ValidateFile("testdata/missing.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema_Validate_MalformedJSON(t *testing.T) {
	schema, err := CompileFile(houseRules)
	require.NoError(t, err)

	err = schema.Validate([]byte(`{"personalDetails": `))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestSchema_Validate_NestedField(t *testing.T) {
	schema, err := CompileFile(houseRules)
	require.NoError(t, err)

	err = schema.Validate([]byte(`{"personalDetails": {"fullName": "", "email": "a@b.c"}, "workExperience": [{}]}`))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"personalDetails.fullName"}, fieldNames(validationErr))
}

func TestSchema_Validate_RootType(t *testing.T) {
	schema, err := CompileFile(houseRules)
	require.NoError(t, err)

	err = schema.Validate([]byte(`[]`))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidateResumeJSON_Fixtures(t *testing.T) {
	tests := []struct {
		name      string
		jsonFile  string
		wantError bool
	}{
		{"full resume", "../../testdata/resumes/valid/full.json", false},
		{"minimal resume", "../../testdata/resumes/valid/minimal.json", false},
		{"wrong type", "../../testdata/resumes/invalid/wrong_type.json", true},
		{"unknown skill level", "../../testdata/resumes/invalid/bad_level.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := os.ReadFile(tt.jsonFile)
			require.NoError(t, err)

			err = ValidateResumeJSON(data)
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "personalDetails.email", Message: "is required"},
			{Field: "skills.0.level", Message: "must be one of the allowed values"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. personalDetails.email: is required")
	assert.Contains(t, msg, "2. skills.0.level")
}
