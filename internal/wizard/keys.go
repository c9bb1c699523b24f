package wizard

import "github.com/jonathan/resume-wizard/internal/schemas"

// Key is a logical carrier key, stable across the session.
type Key string

// Carrier keys and the step that owns each.
const (
	// KeyCurrentResume is written by the create step.
	KeyCurrentResume Key = "currentResume"
	// KeyResumeData is the working copy written by the template and edit steps.
	KeyResumeData Key = "resumeData"
	// KeyTemplateCustomizations is written by the customize step.
	KeyTemplateCustomizations Key = "templateCustomizations"
)

// Keys lists every carrier key.
var Keys = []Key{KeyCurrentResume, KeyResumeData, KeyTemplateCustomizations}

// Schema returns the JSON Schema snapshots under k must satisfy.
func (k Key) Schema() (string, bool) {
	switch k {
	case KeyCurrentResume, KeyResumeData:
		return schemas.ResumeDocument, true
	case KeyTemplateCustomizations:
		return schemas.StyleConfiguration, true
	default:
		return "", false
	}
}
