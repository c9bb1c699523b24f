package resume

import "github.com/jonathan/resume-wizard/internal/types"

// EnsureIDs returns a copy of doc where the document and every sequence entry with a
// blank id receive one from newID. Existing ids are kept, duplicates included.
func EnsureIDs(doc types.ResumeDocument, newID func() string) types.ResumeDocument {
	out := Clone(doc)
	fill := func(id *string) {
		if *id == "" {
			*id = newID()
		}
	}

	fill(&out.ID)
	for i := range out.Experience {
		fill(&out.Experience[i].ID)
	}
	for i := range out.Education {
		fill(&out.Education[i].ID)
	}
	for i := range out.Projects {
		fill(&out.Projects[i].ID)
	}
	for i := range out.Certifications {
		fill(&out.Certifications[i].ID)
	}
	for i := range out.Languages {
		fill(&out.Languages[i].ID)
	}
	for i := range out.References {
		fill(&out.References[i].ID)
	}
	for i := range out.AdditionalSections {
		fill(&out.AdditionalSections[i].ID)
	}
	return out
}
