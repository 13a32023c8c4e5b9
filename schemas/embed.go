// Package schemas holds the JSON Schemas for documents the composer accepts.
package schemas

import _ "embed"

// Resume is the JSON Schema for resume input.
//
//go:embed resume.schema.json
var Resume string
