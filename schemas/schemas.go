// Package schemas embeds the JSON Schemas describing the persisted artifacts.
package schemas

import _ "embed"

// ResumeDocument is the JSON Schema for a serialized resume document
//
//go:embed resume_document.schema.json
var ResumeDocument string
