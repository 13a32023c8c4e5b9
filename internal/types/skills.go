package types

import "strings"

// SkillGroup is the set of skills sharing one display category
type SkillGroup struct {
	Category string  `json:"category"`
	Skills   []Skill `json:"skills"`
}

// GroupSkills groups skills by category. Groups appear in the order their
// category is first seen; skills keep insertion order within a group. Blank
// categories fall into DefaultSkillCategory and blank names are dropped.
//
// This is the only grouping implementation; preview and export both reach it
// through the flow engine, so it is recomputed on every composition.
func GroupSkills(skills []Skill) []SkillGroup {
	var groups []SkillGroup
	index := make(map[string]int)

	for _, skill := range skills {
		name := strings.TrimSpace(skill.Name)
		if name == "" {
			continue
		}
		category := strings.TrimSpace(skill.Category)
		if category == "" {
			category = DefaultSkillCategory
		}

		skill.Name = name
		skill.Category = category

		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, SkillGroup{Category: category})
		}
		groups[i].Skills = append(groups[i].Skills, skill)
	}

	return groups
}
