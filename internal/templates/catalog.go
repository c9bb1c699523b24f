// Package templates provides the static, read-only template catalog.
package templates

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/jonathan/resume-wizard/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// CatalogError represents a catalog that cannot be parsed or is inconsistent
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog error: %s", e.Message)
}

func (e *CatalogError) Unwrap() error {
	return e.Cause
}

// Catalog is an ordered set of template descriptors. The first entry is the default.
type Catalog struct {
	entries []types.TemplateDescriptor
	byID    map[string]int
}

// Parse builds a catalog from a YAML list of descriptors.
func Parse(data []byte) (*Catalog, error) {
	var entries []types.TemplateDescriptor
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, &CatalogError{Message: "failed to unmarshal YAML", Cause: err}
	}
	return New(entries)
}

// New builds a catalog from descriptors, rejecting empty or duplicate ids and
// templates without a supported column count.
func New(entries []types.TemplateDescriptor) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, &CatalogError{Message: "catalog is empty"}
	}
	c := &Catalog{
		entries: make([]types.TemplateDescriptor, 0, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for i, t := range entries {
		if t.ID == "" {
			return nil, &CatalogError{Message: fmt.Sprintf("template %d has no id", i)}
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, &CatalogError{Message: fmt.Sprintf("duplicate template id %q", t.ID)}
		}
		if len(t.Columns) == 0 {
			return nil, &CatalogError{Message: fmt.Sprintf("template %q declares no columns", t.ID)}
		}
		for _, n := range t.Columns {
			if n < 1 || n > 2 {
				return nil, &CatalogError{Message: fmt.Sprintf("template %q declares unsupported column count %d", t.ID, n)}
			}
		}
		t.Columns = append([]int(nil), t.Columns...)
		c.byID[t.ID] = len(c.entries)
		c.entries = append(c.entries, t)
	}
	return c, nil
}

var (
	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// Builtin returns the embedded catalog.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		builtin, builtinErr = Parse(catalogYAML)
	})
	return builtin, builtinErr
}

// MustBuiltin is like Builtin but panics if the embedded catalog is invalid.
func MustBuiltin() *Catalog {
	c, err := Builtin()
	if err != nil {
		panic(err)
	}
	return c
}

// List returns a copy of the descriptors in catalog order.
func (c *Catalog) List() []types.TemplateDescriptor {
	out := make([]types.TemplateDescriptor, len(c.entries))
	for i, t := range c.entries {
		t.Columns = append([]int(nil), t.Columns...)
		out[i] = t
	}
	return out
}

// Get looks up a template by id.
func (c *Catalog) Get(id string) (types.TemplateDescriptor, bool) {
	i, ok := c.byID[id]
	if !ok {
		return types.TemplateDescriptor{}, false
	}
	t := c.entries[i]
	t.Columns = append([]int(nil), t.Columns...)
	return t, true
}

// Default returns the template used when none has been chosen.
func (c *Catalog) Default() types.TemplateDescriptor {
	t := c.entries[0]
	t.Columns = append([]int(nil), t.Columns...)
	return t
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.entries)
}
