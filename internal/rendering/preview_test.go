package rendering

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-composer/internal/templates"
	"github.com/jonathan/resume-composer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPreview(t *testing.T, resume types.Resume, templateID string, opts ...templates.Option) *goquery.Document {
	t.Helper()
	layout, pages := compose(t, resume, templateID, opts...)
	html, err := NewPreviewRenderer().RenderString(layout, pages)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestPreviewRenderer_OneSectionPerPage(t *testing.T) {
	layout, pages := compose(t, longResume(40, 5), "classic-executive")
	html, err := NewPreviewRenderer().RenderString(layout, pages)
	require.NoError(t, err)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, len(pages), doc.Find("section.page").Length())
	assert.Equal(t, 1, doc.Find("#page-1").Length())
	placements := 0
	for _, p := range pages {
		placements += len(p.Placements)
	}
	assert.Equal(t, placements, doc.Find("div.block").Length())
}

func TestPreviewRenderer_Content(t *testing.T) {
	doc := renderPreview(t, sampleResume(), "modern-professional")

	assert.Equal(t, "Jane Q. Doe", doc.Find("h1").Text())
	assert.Equal(t, "Jane Q. Doe - Resume", doc.Find("title").Text())
	assert.Equal(t, 3, doc.Find(".contact").Length())

	var headings []string
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	assert.Equal(t, []string{"Skills", "Professional Summary", "Work Experience", "Education"}, headings, "sidebar sections read first")

	assert.Equal(t, "Feb 2021 - Present", strings.TrimSpace(doc.Find(".row-title .right").First().Text()))
	assert.Equal(t, 4, doc.Find("li.chip").Length())
	assert.Equal(t, 2, doc.Find(".skill_group_heading").Length())
	assert.Equal(t, 1, doc.Find(".sidebar").Length())

	doc.Find(".skill_chip_row").Each(func(_ int, s *goquery.Selection) {
		assert.Equal(t, "sidebar", s.AttrOr("data-region", ""))
	})
}

func TestPreviewRenderer_EscapesUserText(t *testing.T) {
	resume := types.Resume{PersonalDetails: types.PersonalDetails{FullName: `<script>alert("x")</script>`}}
	doc := renderPreview(t, resume, "classic-executive")

	assert.Equal(t, 0, doc.Find("script").Length())
	assert.Equal(t, `<script>alert("x")</script>`, doc.Find("h1").Text())
}

func TestPreviewRenderer_EmptyResume(t *testing.T) {
	doc := renderPreview(t, types.Resume{}, "classic-executive")
	assert.Equal(t, 1, doc.Find("section.page").Length())
	assert.Equal(t, types.PlaceholderName, doc.Find("h1").Text())
	assert.Equal(t, 1, doc.Find("div.block").Length())
}

func TestPreviewRenderer_ATSSafe(t *testing.T) {
	doc := renderPreview(t, sampleResume(), "modern-professional", templates.WithATSSafe(true))
	assert.Equal(t, 0, doc.Find(".sidebar").Length())
	assert.Equal(t, 0, doc.Find("li.chip").Length())
	assert.Contains(t, doc.Find(".skill_chip_row .line").First().Text(), "Go, Python")
}

func TestPreviewRenderer_PageGeometry(t *testing.T) {
	doc := renderPreview(t, sampleResume(), "classic-executive", templates.WithPageSize(templates.A4))
	style := doc.Find("#page-1").AttrOr("style", "")
	assert.Contains(t, style, "width:595.28pt")
	assert.Contains(t, style, "height:841.89pt")
}

func TestLoadPreviewRenderer_ValidTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{range .Pages}}<p>page {{.Number}}</p>{{end}}`), 0644))

	r, err := LoadPreviewRenderer(path)
	require.NoError(t, err)
	layout, pages := compose(t, types.Resume{}, "classic-executive")
	out, err := r.RenderString(layout, pages)
	require.NoError(t, err)
	assert.Equal(t, "<p>page 1</p>", out)
}

func TestLoadPreviewRenderer_InvalidPath(t *testing.T) {
	_, err := LoadPreviewRenderer("/nonexistent/preview.html")
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "template file not found")
}

func TestLoadPreviewRenderer_InvalidTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Pages{{}}`), 0644))

	_, err := LoadPreviewRenderer(path)
	var templateErr *TemplateError
	assert.ErrorAs(t, err, &templateErr)
}

func TestPreviewRenderer_ExecutionError(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad-field.html")
	require.NoError(t, os.WriteFile(path, []byte(`{{.Missing}}`), 0644))

	r, err := LoadPreviewRenderer(path)
	require.NoError(t, err)
	layout, pages := compose(t, types.Resume{}, "classic-executive")
	_, err = r.RenderString(layout, pages)
	var templateErr *TemplateError
	require.ErrorAs(t, err, &templateErr)
	assert.Contains(t, err.Error(), "failed to execute template")
}
