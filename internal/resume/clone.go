package resume

import "github.com/jonathan/resume-wizard/internal/types"

// Clone returns a deep copy of doc. Nil and empty slices are preserved as they are.
func Clone(doc types.ResumeDocument) types.ResumeDocument {
	out := doc
	out.Experience = cloneSlice(doc.Experience, func(e types.Experience) types.Experience {
		e.Achievements = cloneStrings(e.Achievements)
		e.Keywords = cloneStrings(e.Keywords)
		return e
	})
	out.Education = cloneSlice(doc.Education, func(e types.Education) types.Education {
		e.Achievements = cloneStrings(e.Achievements)
		return e
	})
	out.Skills = cloneSlice(doc.Skills, func(s types.Skill) types.Skill {
		s.Skills = cloneStrings(s.Skills)
		return s
	})
	out.Projects = cloneSlice(doc.Projects, func(p types.Project) types.Project {
		p.Technologies = cloneStrings(p.Technologies)
		p.Achievements = cloneStrings(p.Achievements)
		return p
	})
	out.Certifications = cloneSlice(doc.Certifications, identity[types.Certification])
	out.Languages = cloneSlice(doc.Languages, identity[types.Language])
	out.References = cloneSlice(doc.References, identity[types.Reference])
	out.AdditionalSections = cloneSlice(doc.AdditionalSections, identity[types.AdditionalSection])
	return out
}

func identity[T any](v T) T { return v }

func cloneSlice[T any](in []T, fn func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}
