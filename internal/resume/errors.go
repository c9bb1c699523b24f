// Package resume implements the resume document model: validation, path-addressed
// merging, normalization and loading.
package resume

import "fmt"

// LoadError represents an error during file I/O or JSON parsing
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// PathError represents a patch path that cannot be applied to a document
type PathError struct {
	Path    string
	Message string
	Cause   error
}

func (e *PathError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("patch %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("patch %s: %s", e.Path, e.Message)
}

func (e *PathError) Unwrap() error {
	return e.Cause
}
