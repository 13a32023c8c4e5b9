package types

// SkillLevel is the self-assessed proficiency for a skill
type SkillLevel string

// Skill levels accepted by the form
const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

// Label returns the display label for the level, or "" for unknown levels.
func (l SkillLevel) Label() string {
	switch l {
	case LevelBeginner:
		return "Beginner"
	case LevelIntermediate:
		return "Intermediate"
	case LevelAdvanced:
		return "Advanced"
	case LevelExpert:
		return "Expert"
	default:
		return ""
	}
}

// Degree is one of the degree types offered by the education form
type Degree string

// Degree types
const (
	DegreeHighSchool  Degree = "High School Diploma"
	DegreeAssociate   Degree = "Associate Degree"
	DegreeBachelor    Degree = "Bachelor's Degree"
	DegreeMaster      Degree = "Master's Degree"
	DegreeDoctoral    Degree = "Doctoral Degree"
	DegreeCertificate Degree = "Certificate"
	DegreeDiploma     Degree = "Diploma"
	DegreeOther       Degree = "Other"
)

// Degrees lists every accepted degree in form order.
var Degrees = []Degree{
	DegreeHighSchool,
	DegreeAssociate,
	DegreeBachelor,
	DegreeMaster,
	DegreeDoctoral,
	DegreeCertificate,
	DegreeDiploma,
	DegreeOther,
}

// Valid reports whether d is one of the enumerated degrees.
func (d Degree) Valid() bool {
	for _, known := range Degrees {
		if d == known {
			return true
		}
	}
	return false
}
