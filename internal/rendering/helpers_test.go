package rendering

import (
	"fmt"
	"testing"

	"github.com/jonathan/resume-composer/internal/flow"
	"github.com/jonathan/resume-composer/internal/pagination"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
	"github.com/stretchr/testify/require"
)

func compose(t *testing.T, resume types.Resume, templateID string, opts ...templates.Option) (templates.Layout, []pagination.Page) {
	t.Helper()
	layout, err := templates.Resolve(templateID, opts...)
	require.NoError(t, err)
	blocks := flow.Build(resume, layout, flow.NewPDFMeasurer()).Blocks
	return layout, pagination.Paginate(blocks, layout.ContentHeight())
}

func sampleResume() types.Resume {
	return types.Resume{
		PersonalDetails: types.PersonalDetails{
			FullName: "Jane Q. Doe",
			Email:    "jane@example.com",
			Phone:    "555-0100",
			Location: "Portland, OR",
			Summary:  "Backend engineer focused on reliable data systems.",
		},
		WorkExperience: []types.WorkExperience{
			{
				ID:          "w1",
				JobTitle:    "Senior Engineer",
				Company:     "Initech",
				Location:    "Remote",
				StartDate:   "2021-02",
				Current:     true,
				Description: "Owned the billing pipeline\nCut p99 latency by 40%\nMentored four engineers",
			},
			{
				ID:          "w2",
				JobTitle:    "Engineer",
				Company:     "Globex",
				StartDate:   "2017-06",
				EndDate:     "2021-01",
				Description: "Built internal tooling",
			},
		},
		Education: []types.Education{
			{ID: "e1", Institution: "State University", Degree: types.DegreeBachelor, Field: "Computer Science", StartDate: "2013-09", EndDate: "2017-05", GPA: "3.8"},
		},
		Skills: []types.Skill{
			{ID: "s1", Name: "Go", Level: types.LevelExpert, Category: "Languages"},
			{ID: "s2", Name: "PostgreSQL", Level: types.LevelAdvanced, Category: "Data"},
			{ID: "s3", Name: "Python", Level: types.LevelAdvanced, Category: "Languages"},
			{ID: "s4", Name: "Kafka", Category: "Data"},
		},
	}
}

func longResume(entries, lines int) types.Resume {
	resume := types.Resume{PersonalDetails: types.PersonalDetails{FullName: "Long Career"}}
	for i := 0; i < entries; i++ {
		desc := ""
		for l := 0; l < lines; l++ {
			if l > 0 {
				desc += "\n"
			}
			desc += fmt.Sprintf("Delivered project %d.%d on time and under budget", i, l)
		}
		resume.WorkExperience = append(resume.WorkExperience, types.WorkExperience{
			ID:          fmt.Sprintf("w%d", i),
			JobTitle:    fmt.Sprintf("Role %d", i),
			Company:     "Company",
			StartDate:   "2010-01",
			EndDate:     "2011-01",
			Description: desc,
		})
	}
	return resume
}
