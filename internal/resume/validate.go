package resume

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

var proficiencyTag = "oneof=" + strings.Join(types.Proficiencies, " ")

// ValidateCreation checks the fields the creation step requires: the title and the
// mandatory personal details.
func ValidateCreation(doc *types.ResumeDocument) types.FieldErrors {
	errs := types.FieldErrors{}
	addCheck(errs, "title", "Resume title", doc.Title, validation.Rules{Required: true})
	addCheck(errs, "personalInfo.firstName", "First name", doc.PersonalInfo.FirstName, validation.Rules{Required: true})
	addCheck(errs, "personalInfo.lastName", "Last name", doc.PersonalInfo.LastName, validation.Rules{Required: true})
	addCheck(errs, "personalInfo.email", "Email", doc.PersonalInfo.Email, validation.Rules{
		Required: true,
		Format:   validation.FormatEmail,
	})
	return errs
}

// Validate aggregates the field rules over the whole document. It never mutates doc
// and reports failures keyed by field path.
func Validate(doc *types.ResumeDocument) types.FieldErrors {
	errs := ValidateCreation(doc)

	for i, e := range doc.Experience {
		addRange(errs, types.IndexPath("experience", i, "dates"),
			validation.DateRange{StartDate: e.StartDate, EndDate: e.EndDate, Current: e.Current}, true)
	}
	checkIDs(errs, "experience", doc.Experience, func(e types.Experience) string { return e.ID })

	for i, e := range doc.Education {
		addRange(errs, types.IndexPath("education", i, "dates"),
			validation.DateRange{StartDate: e.StartDate, EndDate: e.EndDate, Current: e.Current}, true)
	}
	checkIDs(errs, "education", doc.Education, func(e types.Education) string { return e.ID })

	for i, s := range doc.Skills {
		res := validation.NewSkillList(s.Skills, 0).Validate("Skills", false)
		if !res.Valid {
			errs.Add(types.IndexPath("skills", i, "skills"), res.Message)
		}
	}

	for i, p := range doc.Projects {
		addRange(errs, types.IndexPath("projects", i, "dates"),
			validation.DateRange{StartDate: p.StartDate, EndDate: p.EndDate, Current: p.Current}, false)
	}
	checkIDs(errs, "projects", doc.Projects, func(p types.Project) string { return p.ID })

	checkIDs(errs, "certifications", doc.Certifications, func(c types.Certification) string { return c.ID })

	for i, l := range doc.Languages {
		if err := validation.Validator().Var(l.Proficiency, proficiencyTag); err != nil {
			errs.Add(types.IndexPath("languages", i, "proficiency"), "Proficiency is invalid")
		}
	}
	checkIDs(errs, "languages", doc.Languages, func(l types.Language) string { return l.ID })

	for i, r := range doc.References {
		addCheck(errs, types.IndexPath("references", i, "email"), "Email", r.Email,
			validation.Rules{Format: validation.FormatEmail})
	}
	checkIDs(errs, "references", doc.References, func(r types.Reference) string { return r.ID })

	checkIDs(errs, "additionalSections", doc.AdditionalSections, func(s types.AdditionalSection) string { return s.ID })

	return errs
}

// ValidateRenderable reports what is still missing before doc can be rendered:
// the mandatory personal details, a phone number and a chosen template.
func ValidateRenderable(doc *types.ResumeDocument) types.FieldErrors {
	errs := types.FieldErrors{}
	addCheck(errs, "personalInfo.firstName", "First name", doc.PersonalInfo.FirstName, validation.Rules{Required: true})
	addCheck(errs, "personalInfo.lastName", "Last name", doc.PersonalInfo.LastName, validation.Rules{Required: true})
	addCheck(errs, "personalInfo.email", "Email", doc.PersonalInfo.Email, validation.Rules{
		Required: true,
		Format:   validation.FormatEmail,
	})
	addCheck(errs, "personalInfo.phone", "Phone", doc.PersonalInfo.Phone, validation.Rules{Required: true})
	addCheck(errs, "templateId", "Template", doc.TemplateID, validation.Rules{Required: true})
	return errs
}

// IsRenderable reports whether doc is complete enough to render.
func IsRenderable(doc *types.ResumeDocument) bool {
	return !ValidateRenderable(doc).HasErrors()
}

func addCheck(errs types.FieldErrors, path, label, value string, rules validation.Rules) {
	if res := validation.Check(label, value, rules); !res.Valid {
		errs.Add(path, res.Message)
	}
}

func addRange(errs types.FieldErrors, path string, r validation.DateRange, required bool) {
	if res := validation.CheckDateRange(r, required); !res.Valid {
		errs.Add(path, res.Message)
	}
}

// checkIDs requires a non-blank id on every entry and uniqueness within the sequence.
func checkIDs[T any](errs types.FieldErrors, section string, items []T, id func(T) string) {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		path := types.IndexPath(section, i, "id")
		v := strings.TrimSpace(id(item))
		if v == "" {
			errs.Add(path, "ID is required")
			continue
		}
		if first, dup := seen[v]; dup {
			errs.Add(path, fmt.Sprintf("ID %q is already used by %s", v, types.IndexPath(section, first, "")))
			continue
		}
		seen[v] = i
	}
}
