package schemas

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-composer/internal/types"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/resumes/" + name)
	require.NoError(t, err)
	return data
}

func TestParseResume_Full(t *testing.T) {
	resume, err := ParseResume(readFixture(t, "valid/full.json"))
	require.NoError(t, err)

	assert.Equal(t, "Jane Q. Doe", resume.PersonalDetails.FullName)
	require.Len(t, resume.WorkExperience, 2)
	assert.True(t, resume.WorkExperience[0].Current)
	assert.Equal(t, types.DegreeBachelor, resume.Education[0].Degree)
	assert.Equal(t, types.LevelExpert, resume.Skills[0].Level)
	assert.Equal(t, "modern-professional", resume.TemplateID)
}

func TestParseResume_MinimalIsEmpty(t *testing.T) {
	resume, err := ParseResume(readFixture(t, "valid/minimal.json"))
	require.NoError(t, err)
	assert.True(t, resume.IsEmpty())
}

func TestParseResume_Normalizes(t *testing.T) {
	resume, err := ParseResume([]byte(`{
		"personalDetails": {"fullName": "  Sam  "},
		"workExperience": [{"jobTitle": "Dev", "startDate": "2020-01", "endDate": "2021-01", "current": true}],
		"skills": [{"name": "Go"}]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Sam", resume.PersonalDetails.FullName)
	assert.NotEmpty(t, resume.WorkExperience[0].ID)
	assert.Empty(t, resume.WorkExperience[0].EndDate)
	assert.Equal(t, types.DefaultSkillCategory, resume.Skills[0].Category)
}

func TestParseResume_SchemaErrors(t *testing.T) {
	for _, name := range []string{"invalid/wrong_type.json", "invalid/bad_level.json"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResume(readFixture(t, name))
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.NotEmpty(t, validationErr.Errors)
		})
	}
}

func TestParseResume_RuleErrors(t *testing.T) {
	for _, name := range []string{"invalid/duplicate_ids.json", "invalid/bad_email.json"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseResume(readFixture(t, name))
			var validationErr *types.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestParseResume_MalformedJSON(t *testing.T) {
	_, err := ParseResume([]byte("{ nope"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestLoadResume(t *testing.T) {
	resume, err := LoadResume("../../testdata/resumes/valid/full.json")
	require.NoError(t, err)
	assert.Len(t, resume.Skills, 4)

	_, err = LoadResume("../../testdata/resumes/missing.json")
	assert.ErrorContains(t, err, "failed to read resume file")
}
