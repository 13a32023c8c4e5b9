package rendering

import (
	"regexp"
	"strings"
)

// ContentTypePDF is the media type of exported documents.
const ContentTypePDF = "application/pdf"

// Document is a finished export
type Document struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	PageCount   int    `json:"pageCount"`
	Data        []byte `json:"-"`
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pathChars     = regexp.MustCompile(`[/\\:*?"<>|]`)
)

// FileName derives the download name from the resume's full name, falling
// back to "Resume" when the name is blank. Whitespace runs become a single
// underscore and characters that are unsafe in file names are dropped.
func FileName(fullName string) string {
	name := strings.TrimSpace(pathChars.ReplaceAllString(fullName, ""))
	if name == "" {
		name = "Resume"
	}
	return whitespaceRun.ReplaceAllString(name, "_") + "_Resume.pdf"
}
