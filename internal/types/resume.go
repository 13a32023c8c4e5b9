// Package types provides type definitions for structured data used throughout the resume-composer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// PlaceholderName is rendered in place of a blank full name.
const PlaceholderName = "Your Name"

// DefaultSkillCategory is used for skills without a category.
const DefaultSkillCategory = "Other"

// PersonalDetails holds the contact block at the top of the resume
type PersonalDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Summary  string `json:"summary"`
}

// WorkExperience represents a single job entry
type WorkExperience struct {
	ID          string `json:"id"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education represents a single education entry
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      Degree `json:"degree" validate:"omitempty,degree"`
	Field       string `json:"field"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate,omitempty"`
	Current     bool   `json:"current"`
	GPA         string `json:"gpa,omitempty"`
	Description string `json:"description"`
}

// Skill represents a single named skill with a proficiency level
type Skill struct {
	ID       string     `json:"id"`
	Name     string     `json:"name" validate:"required"`
	Level    SkillLevel `json:"level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Category string     `json:"category,omitempty"`
}

// Resume is the snapshot the composer consumes. Callers hand over a value and
// must not mutate it while a composition or export is running.
type Resume struct {
	PersonalDetails PersonalDetails  `json:"personalDetails"`
	WorkExperience  []WorkExperience `json:"workExperience" validate:"dive"`
	Education       []Education      `json:"education" validate:"dive"`
	Skills          []Skill          `json:"skills" validate:"dive"`
	TemplateID      string           `json:"templateId,omitempty"`
}

// DisplayName returns the full name or the placeholder when it is blank.
func (p PersonalDetails) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return PlaceholderName
}

// ContactItems returns the non-blank contact fields in display order.
func (p PersonalDetails) ContactItems() []string {
	items := make([]string, 0, 3)
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return items
}

// IsEmpty reports whether every field is blank and every sequence is empty.
func (r *Resume) IsEmpty() bool {
	p := r.PersonalDetails
	for _, v := range []string{p.FullName, p.Email, p.Phone, p.Location, p.Summary} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return len(r.WorkExperience) == 0 && len(r.Education) == 0 && len(r.Skills) == 0
}

// EffectiveEndDate returns the end date, or "" when the entry is current.
func (w WorkExperience) EffectiveEndDate() string {
	if w.Current {
		return ""
	}
	return w.EndDate
}

// EffectiveEndDate returns the end date, or "" when the entry is current.
func (e Education) EffectiveEndDate() string {
	if e.Current {
		return ""
	}
	return e.EndDate
}

// Title returns "{Degree} in {Field}", degrading to whichever side is present.
func (e Education) Title() string {
	degree := strings.TrimSpace(string(e.Degree))
	field := strings.TrimSpace(e.Field)
	switch {
	case degree != "" && field != "":
		return degree + " in " + field
	case degree != "":
		return degree
	default:
		return field
	}
}
