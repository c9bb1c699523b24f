package resume

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jonathan/resume-wizard/internal/types"
)

// NewID returns a fresh identifier for a document or a sequence entry.
func NewID() string {
	return uuid.NewString()
}

// Load reads a resume document from a JSON file
func Load(path string) (*types.ResumeDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}
	return Parse(content)
}

// Parse decodes a resume document from JSON bytes
func Parse(content []byte) (*types.ResumeDocument, error) {
	var doc types.ResumeDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, &LoadError{
			Message: "failed to unmarshal JSON",
			Cause:   err,
		}
	}
	return &doc, nil
}
