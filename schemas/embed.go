// Package schemas embeds the JSON Schema files for the documents the wizard stores.
package schemas

import "embed"

// Schema file names.
const (
	ResumeDocument     = "resume_document.schema.json"
	StyleConfiguration = "style_configuration.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
