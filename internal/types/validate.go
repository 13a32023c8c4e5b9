package types

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ValidationError reports a resume that fails ingest checks
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("validation error: %s - %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("degree", func(fl validator.FieldLevel) bool {
		return Degree(fl.Field().String()).Valid()
	})
	return validate
}

// Validate checks the resume with struct tags and identity rules.
// Composition never calls this; it is for callers that ingest untrusted JSON.
func (r *Resume) Validate() error {
	if err := newValidator().Struct(r); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{
				Field:   fe.Namespace(),
				Message: fmt.Sprintf("failed %q check", fe.Tag()),
				Cause:   err,
			}
		}
		return &ValidationError{Field: "resume", Message: "invalid", Cause: err}
	}

	for i, skill := range r.Skills {
		if strings.TrimSpace(skill.Name) == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("Resume.Skills[%d].Name", i),
				Message: "must not be blank",
			}
		}
	}

	return r.ValidateIdentities()
}

// ValidateIdentities checks that IDs are unique within each sequence.
// Empty IDs are ignored; Normalize assigns them.
func (r *Resume) ValidateIdentities() error {
	check := func(section string, ids []string) error {
		seen := make(map[string]bool, len(ids))
		for i, id := range ids {
			if id == "" {
				continue
			}
			if seen[id] {
				return &ValidationError{
					Field:   fmt.Sprintf("Resume.%s[%d].ID", section, i),
					Message: fmt.Sprintf("duplicate id %q", id),
				}
			}
			seen[id] = true
		}
		return nil
	}

	work := make([]string, len(r.WorkExperience))
	for i, w := range r.WorkExperience {
		work[i] = w.ID
	}
	edu := make([]string, len(r.Education))
	for i, e := range r.Education {
		edu[i] = e.ID
	}
	skills := make([]string, len(r.Skills))
	for i, s := range r.Skills {
		skills[i] = s.ID
	}

	if err := check("WorkExperience", work); err != nil {
		return err
	}
	if err := check("Education", edu); err != nil {
		return err
	}
	return check("Skills", skills)
}

// Normalize trims text fields, clears end dates of current entries, and
// assigns fresh identities to entries whose ID is missing or duplicated.
// Sequence order is never changed.
func (r *Resume) Normalize() {
	p := &r.PersonalDetails
	p.FullName = strings.TrimSpace(p.FullName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Location = strings.TrimSpace(p.Location)
	p.Summary = normalizeNewlines(strings.TrimSpace(p.Summary))

	seen := make(map[string]bool)
	for i := range r.WorkExperience {
		w := &r.WorkExperience[i]
		w.ID = uniqueID(w.ID, seen)
		w.JobTitle = strings.TrimSpace(w.JobTitle)
		w.Company = strings.TrimSpace(w.Company)
		w.Location = strings.TrimSpace(w.Location)
		w.StartDate = strings.TrimSpace(w.StartDate)
		w.EndDate = strings.TrimSpace(w.EndDate)
		if w.Current {
			w.EndDate = ""
		}
		w.Description = normalizeNewlines(w.Description)
	}

	seen = make(map[string]bool)
	for i := range r.Education {
		e := &r.Education[i]
		e.ID = uniqueID(e.ID, seen)
		e.Institution = strings.TrimSpace(e.Institution)
		e.Field = strings.TrimSpace(e.Field)
		e.Location = strings.TrimSpace(e.Location)
		e.StartDate = strings.TrimSpace(e.StartDate)
		e.EndDate = strings.TrimSpace(e.EndDate)
		e.GPA = strings.TrimSpace(e.GPA)
		if e.Current {
			e.EndDate = ""
		}
		e.Description = normalizeNewlines(e.Description)
	}

	seen = make(map[string]bool)
	for i := range r.Skills {
		s := &r.Skills[i]
		s.ID = uniqueID(s.ID, seen)
		s.Name = strings.TrimSpace(s.Name)
		s.Category = strings.TrimSpace(s.Category)
		if s.Category == "" {
			s.Category = DefaultSkillCategory
		}
	}
}

func uniqueID(id string, seen map[string]bool) string {
	id = strings.TrimSpace(id)
	if id == "" || seen[id] {
		id = uuid.NewString()
	}
	seen[id] = true
	return id
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
