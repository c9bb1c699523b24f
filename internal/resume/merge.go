package resume

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Patch maps dotted JSON paths ("personalInfo.email", "experience") to replacement
// values. A nil value resets the addressed field to its zero value.
type Patch map[string]any

// Merge applies patch to a deep copy of doc. Each path updates only the addressed
// leaf; object-valued leaves are merged key by key, sequences are replaced wholesale
// and cannot be indexed into. Paths are applied in sorted order. On error the
// returned document is doc unchanged.
func Merge(doc types.ResumeDocument, patch Patch) (types.ResumeDocument, error) {
	out := Clone(doc)
	root := reflect.ValueOf(&out).Elem()

	paths := make([]string, 0, len(patch))
	for p := range patch {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		target, err := resolvePath(root, path)
		if err != nil {
			return doc, err
		}
		if err := assign(target, path, patch[path]); err != nil {
			return doc, err
		}
	}
	return out, nil
}

func resolvePath(root reflect.Value, path string) (reflect.Value, error) {
	if strings.TrimSpace(path) == "" {
		return reflect.Value{}, &PathError{Path: path, Message: "empty path"}
	}
	if strings.ContainsAny(path, "[]") {
		return reflect.Value{}, &PathError{Path: path, Message: "sequences are replaced wholesale and cannot be indexed"}
	}

	cur := root
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if cur.Kind() == reflect.Slice {
			return reflect.Value{}, &PathError{
				Path:    path,
				Message: "sequences are replaced wholesale and cannot be indexed",
			}
		}
		if cur.Kind() != reflect.Struct || cur.Type() == timeType {
			return reflect.Value{}, &PathError{
				Path:    path,
				Message: "cannot descend into " + strings.Join(segments[:i], "."),
			}
		}
		field, ok := fieldByJSONName(cur, seg)
		if !ok {
			return reflect.Value{}, &PathError{Path: path, Message: "unknown field " + seg}
		}
		cur = field
	}
	return cur, nil
}

var timeType = reflect.TypeOf(types.ResumeDocument{}.CreatedAt)

func fieldByJSONName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == "-" {
			continue
		}
		if tag == "" {
			tag = f.Name
		}
		if tag == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

// assign decodes value into target through its JSON form so that maps, typed values
// and decoded request bodies are all accepted. Struct targets start from their current
// value, which merges the supplied keys over the existing ones.
func assign(target reflect.Value, path string, value any) error {
	if value == nil {
		target.Set(reflect.Zero(target.Type()))
		return nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return &PathError{Path: path, Message: "value is not serializable", Cause: err}
	}

	next := reflect.New(target.Type())
	if target.Kind() == reflect.Struct {
		next.Elem().Set(target)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(next.Interface()); err != nil {
		return &PathError{Path: path, Message: "value does not match field type", Cause: err}
	}
	target.Set(next.Elem())
	return nil
}
