package types

import (
	"fmt"
	"sort"
)

// FieldErrors maps a field path (e.g. "personalInfo.email", "experience[1].dates")
// to a user-facing message. It is data the UI renders next to inputs, never a Go error.
type FieldErrors map[string]string

// Add records msg for path unless the path already has a message.
func (fe FieldErrors) Add(path, msg string) {
	if _, exists := fe[path]; exists {
		return
	}
	fe[path] = msg
}

// Merge copies entries from other that are not already present.
func (fe FieldErrors) Merge(other FieldErrors) {
	for path, msg := range other {
		fe.Add(path, msg)
	}
}

// HasErrors reports whether any field failed.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// Paths returns the failing paths in sorted order.
func (fe FieldErrors) Paths() []string {
	paths := make([]string, 0, len(fe))
	for path := range fe {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// IndexPath builds "section[i].field" paths. An empty field yields "section[i]".
func IndexPath(section string, i int, field string) string {
	if field == "" {
		return fmt.Sprintf("%s[%d]", section, i)
	}
	return fmt.Sprintf("%s[%d].%s", section, i, field)
}
