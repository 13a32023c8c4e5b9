package schemas

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/jonathan/resume-composer/internal/types"
	schemafiles "github.com/jonathan/resume-composer/schemas"
)

var resumeSchema = sync.OnceValues(func() (*Schema, error) {
	return Compile("resume.schema.json", schemafiles.Resume)
})

// ValidateResumeJSON checks raw resume JSON against the embedded resume schema.
func ValidateResumeJSON(data []byte) error {
	schema, err := resumeSchema()
	if err != nil {
		return err
	}
	return schema.Validate(data)
}

// ParseResume validates and decodes resume JSON, then normalizes it. Schema
// failures return a *ValidationError; rule failures such as duplicate entry
// IDs return a *types.ValidationError.
func ParseResume(data []byte) (*types.Resume, error) {
	if err := ValidateResumeJSON(data); err != nil {
		return nil, err
	}

	var resume types.Resume
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&resume); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	if err := resume.Validate(); err != nil {
		return nil, err
	}
	resume.Normalize()
	return &resume, nil
}

// LoadResume reads a resume JSON file and parses it with ParseResume.
func LoadResume(path string) (*types.Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	resume, err := ParseResume(data)
	if err != nil {
		return nil, fmt.Errorf("invalid resume %s: %w", path, err)
	}
	return resume, nil
}
