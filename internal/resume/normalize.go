package resume

import (
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Normalize returns a cleaned copy of doc: strings are trimmed, blank list entries are
// dropped, end dates are cleared on current entries and skills are deduplicated within
// their category keeping the first occurrence. Normalize is idempotent and never
// reorders sequences.
func Normalize(doc types.ResumeDocument) types.ResumeDocument {
	out := Clone(doc)

	out.ID = strings.TrimSpace(out.ID)
	out.Title = strings.TrimSpace(out.Title)
	out.TemplateID = strings.TrimSpace(out.TemplateID)
	normalizePersonalInfo(&out.PersonalInfo)

	for i := range out.Experience {
		normalizeExperience(&out.Experience[i])
	}
	for i := range out.Education {
		normalizeEducation(&out.Education[i])
	}
	for i := range out.Skills {
		out.Skills[i].Category = strings.TrimSpace(out.Skills[i].Category)
		out.Skills[i].Skills = dedupeSkills(out.Skills[i].Skills)
	}
	for i := range out.Projects {
		normalizeProject(&out.Projects[i])
	}
	for i := range out.Certifications {
		c := &out.Certifications[i]
		trimAll(&c.ID, &c.Name, &c.Issuer, &c.Date, &c.Expiry, &c.URL, &c.Description)
	}
	for i := range out.Languages {
		l := &out.Languages[i]
		trimAll(&l.ID, &l.Language, &l.Proficiency)
	}
	for i := range out.References {
		r := &out.References[i]
		trimAll(&r.ID, &r.Name, &r.Company, &r.Position, &r.Email, &r.Phone, &r.Relationship)
	}
	for i := range out.AdditionalSections {
		s := &out.AdditionalSections[i]
		trimAll(&s.ID, &s.Title, &s.Content)
	}

	return out
}

func normalizePersonalInfo(p *types.PersonalInfo) {
	trimAll(&p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.Address, &p.City, &p.State, &p.ZipCode, &p.Country,
		&p.Website, &p.LinkedIn, &p.GitHub, &p.JobTitle, &p.Summary, &p.ProfilePicture)
}

func normalizeExperience(e *types.Experience) {
	trimAll(&e.ID, &e.Company, &e.JobTitle, &e.Location, &e.StartDate, &e.EndDate, &e.Description)
	if e.Current {
		e.EndDate = ""
	}
	e.Achievements = dropBlank(e.Achievements)
	e.Keywords = dropBlank(e.Keywords)
}

func normalizeEducation(e *types.Education) {
	trimAll(&e.ID, &e.Institution, &e.Degree, &e.Field, &e.Location,
		&e.StartDate, &e.EndDate, &e.Description, &e.GPA)
	if e.Current {
		e.EndDate = ""
	}
	e.Achievements = dropBlank(e.Achievements)
}

func normalizeProject(p *types.Project) {
	trimAll(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.URL)
	if p.Current {
		p.EndDate = ""
	}
	p.Technologies = dropBlank(p.Technologies)
	p.Achievements = dropBlank(p.Achievements)
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

// dropBlank trims entries and removes empty ones. A nil input stays nil.
func dropBlank(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func dedupeSkills(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, exists := seen[s]; exists {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
