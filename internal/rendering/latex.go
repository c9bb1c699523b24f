package rendering

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/jonathan/resume-wizard/internal/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const defaultLaTeXTemplate = "templates/resume.tex.tmpl"

// TemplateData represents the data structure passed to the LaTeX template. Every
// string field is already escaped.
type TemplateData struct {
	Name      string
	JobTitle  string
	Email     string
	Phone     string
	Location  string
	Links     []string
	Summary   string
	Companies []CompanySection
	Education []EducationEntry
	Skills    []SkillGroup
	Projects  []ProjectEntry
	Extras    []ExtraSection
	Style     LaTeXStyle
}

// LaTeXStyle carries the resolved style in units the template can use directly.
type LaTeXStyle struct {
	PrimaryColor string // RRGGBB
	AccentColor  string
	TextColor    string
	BodySize     int // pt
	HeadingSize  int
	LineHeight   float64
	Columns      int
	Centered     bool
	Boxed        bool
}

// CompanySection represents a company with one or more roles
type CompanySection struct {
	Company string
	Roles   []RoleSection
}

// RoleSection represents a role within a company with merged date ranges
type RoleSection struct {
	Role       string
	DateRanges string // e.g., "08/2020 -- 10/2021, 07/2023 -- Present"
	Bullets    []string
}

// EducationEntry is one education row.
type EducationEntry struct {
	Institution string
	Degree      string
	Dates       string
	Details     string
}

// SkillGroup is a category with its comma-joined skills.
type SkillGroup struct {
	Category string
	Skills   string
}

// ProjectEntry is one project row.
type ProjectEntry struct {
	Name         string
	Dates        string
	Description  string
	Technologies string
}

// ExtraSection is a titled list used for certifications, languages, references and
// free-form sections.
type ExtraSection struct {
	Title string
	Items []string
}

// RenderLaTeX renders doc with style through templateText. An empty templateText uses
// the embedded default template.
func RenderLaTeX(doc *types.ResumeDocument, style types.ResolvedStyle, templateText string) (string, error) {
	if doc == nil {
		return "", &RenderError{Message: "document is required"}
	}
	if templateText == "" {
		content, err := templateFS.ReadFile(defaultLaTeXTemplate)
		if err != nil {
			return "", &TemplateError{Message: "failed to read default template", Cause: err}
		}
		templateText = string(content)
	}

	tmpl, err := parseTemplate(templateText)
	if err != nil {
		return "", err
	}

	data := buildTemplateData(doc, style)

	var result strings.Builder
	if err := tmpl.Execute(&result, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

// ReadTemplate reads a LaTeX template file.
func ReadTemplate(templatePath string) (string, error) {
	content, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{
				Message: fmt.Sprintf("template file not found: %s", templatePath),
				Cause:   err,
			}
		}
		return "", &TemplateError{
			Message: fmt.Sprintf("failed to read template file: %s", templatePath),
			Cause:   err,
		}
	}
	return string(content), nil
}

// parseTemplate parses a LaTeX template with the escape helpers available
func parseTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("resume").Funcs(template.FuncMap{
		"escape":     EscapeLaTeX,
		"paragraphs": EscapeLaTeXParagraphs,
	}).Parse(text)
	if err != nil {
		return nil, &TemplateError{
			Message: "failed to parse template",
			Cause:   err,
		}
	}
	return tmpl, nil
}

func buildTemplateData(doc *types.ResumeDocument, style types.ResolvedStyle) *TemplateData {
	p := doc.PersonalInfo

	data := &TemplateData{
		Name:      EscapeLaTeX(p.FullName()),
		JobTitle:  EscapeLaTeX(p.JobTitle),
		Email:     EscapeLaTeX(p.Email),
		Phone:     EscapeLaTeX(p.Phone),
		Location:  EscapeLaTeX(joinNonEmpty(", ", p.City, p.State, p.Country)),
		Summary:   EscapeLaTeXParagraphs(p.Summary),
		Companies: groupByCompanyAndRole(doc.Experience),
		Style: LaTeXStyle{
			PrimaryColor: LaTeXColor(style.Heading.Color, "000000"),
			AccentColor:  LaTeXColor(style.Accent.Color, "000000"),
			TextColor:    LaTeXColor(style.Body.Color, "000000"),
			BodySize:     style.Body.FontSize,
			HeadingSize:  style.Heading.FontSize,
			LineHeight:   style.Body.LineHeight,
			Columns:      style.Columns,
			Centered:     style.HeaderStyle == types.HeaderCentered,
			Boxed:        style.Item.Bordered,
		},
	}
	for _, link := range []string{p.Website, p.LinkedIn, p.GitHub} {
		if link != "" {
			data.Links = append(data.Links, EscapeLaTeX(link))
		}
	}

	for _, e := range doc.Education {
		data.Education = append(data.Education, EducationEntry{
			Institution: EscapeLaTeX(e.Institution),
			Degree:      EscapeLaTeX(joinNonEmpty(", ", e.Degree, e.Field)),
			Dates:       formatRange(e.StartDate, e.EndDate, e.Current),
			Details:     EscapeLaTeX(joinNonEmpty(" | ", e.Location, gpa(e.GPA))),
		})
	}

	for _, s := range doc.Skills {
		if len(s.Skills) == 0 {
			continue
		}
		data.Skills = append(data.Skills, SkillGroup{
			Category: EscapeLaTeX(s.Category),
			Skills:   EscapeLaTeX(strings.Join(s.Skills, ", ")),
		})
	}

	for _, pr := range doc.Projects {
		data.Projects = append(data.Projects, ProjectEntry{
			Name:         EscapeLaTeX(pr.Name),
			Dates:        formatRange(pr.StartDate, pr.EndDate, pr.Current),
			Description:  EscapeLaTeXParagraphs(pr.Description),
			Technologies: EscapeLaTeX(strings.Join(pr.Technologies, ", ")),
		})
	}

	data.Extras = extraSections(doc)
	return data
}

func extraSections(doc *types.ResumeDocument) []ExtraSection {
	var extras []ExtraSection
	add := func(title string, items []string) {
		if len(items) > 0 {
			extras = append(extras, ExtraSection{Title: title, Items: items})
		}
	}

	var certs []string
	for _, c := range doc.Certifications {
		certs = append(certs, EscapeLaTeX(joinNonEmpty(", ", c.Name, c.Issuer, formatDate(c.Date))))
	}
	add("Certifications", certs)

	var langs []string
	for _, l := range doc.Languages {
		langs = append(langs, EscapeLaTeX(l.Language+" ("+l.Proficiency+")"))
	}
	add("Languages", langs)

	var refs []string
	for _, r := range doc.References {
		refs = append(refs, EscapeLaTeX(joinNonEmpty(", ", r.Name, r.Position, r.Company, r.Email, r.Phone)))
	}
	add("References", refs)

	for _, s := range doc.AdditionalSections {
		add(EscapeLaTeX(s.Title), []string{EscapeLaTeXParagraphs(s.Content)})
	}
	return extras
}

// roleKey is used for grouping entries by company and role
type roleKey struct {
	Company string
	Role    string
}

// entryWithMeta holds bullet text along with its date range info
type entryWithMeta struct {
	Bullets   []string
	StartDate string
	EndDate   string
	Current   bool
}

// groupByCompanyAndRole groups experience by Company, then by Role, merging date
// ranges. Companies are ordered by their latest end date, current roles first.
func groupByCompanyAndRole(experience []types.Experience) []CompanySection {
	if len(experience) == 0 {
		return []CompanySection{}
	}

	roleData := make(map[roleKey][]entryWithMeta)
	companyOrder := []string{}                    // Track order companies appear
	companyRoleOrder := make(map[string][]string) // Track order roles appear within each company
	seenRoles := make(map[roleKey]bool)

	for _, exp := range experience {
		key := roleKey{Company: exp.Company, Role: exp.JobTitle}

		if _, ok := companyRoleOrder[exp.Company]; !ok {
			companyOrder = append(companyOrder, exp.Company)
		}
		if !seenRoles[key] {
			seenRoles[key] = true
			companyRoleOrder[exp.Company] = append(companyRoleOrder[exp.Company], exp.JobTitle)
		}

		var bullets []string
		if d := strings.TrimSpace(exp.Description); d != "" {
			bullets = append(bullets, EscapeLaTeX(d))
		}
		for _, a := range exp.Achievements {
			if a = strings.TrimSpace(a); a != "" {
				bullets = append(bullets, EscapeLaTeX(a))
			}
		}
		roleData[key] = append(roleData[key], entryWithMeta{
			Bullets:   bullets,
			StartDate: exp.StartDate,
			EndDate:   exp.EndDate,
			Current:   exp.Current,
		})
	}

	type ranked struct {
		section CompanySection
		latest  string
	}
	ordered := make([]ranked, 0, len(companyOrder))

	for _, companyName := range companyOrder {
		latest := ""
		roles := make([]RoleSection, 0)
		for _, roleName := range companyRoleOrder[companyName] {
			entries := roleData[roleKey{Company: companyName, Role: roleName}]

			var bullets []string
			for _, e := range entries {
				bullets = append(bullets, e.Bullets...)
				if end := sortableEnd(e); end > latest {
					latest = end
				}
			}
			roles = append(roles, RoleSection{
				Role:       EscapeLaTeX(roleName),
				DateRanges: mergeDateRanges(entries),
				Bullets:    bullets,
			})
		}
		ordered = append(ordered, ranked{
			section: CompanySection{Company: EscapeLaTeX(companyName), Roles: roles},
			latest:  latest,
		})
	}

	// Most recent first; ties keep first-appearance order.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].latest > ordered[j].latest
	})

	companies := make([]CompanySection, len(ordered))
	for i, r := range ordered {
		companies[i] = r.section
	}
	return companies
}

// sortableEnd maps an entry's end to a lexicographically comparable string. Current
// entries sort after every real date.
func sortableEnd(e entryWithMeta) string {
	if e.Current {
		return "9999-99"
	}
	return e.EndDate
}

// mergeDateRanges collects unique date ranges, sorts them, and formats them as a
// comma-separated string
func mergeDateRanges(entries []entryWithMeta) string {
	seen := make(map[string]bool)
	ranges := []entryWithMeta{}
	for _, e := range entries {
		if e.StartDate == "" && e.EndDate == "" && !e.Current {
			continue
		}
		key := fmt.Sprintf("%s-%s-%t", e.StartDate, e.EndDate, e.Current)
		if !seen[key] {
			seen[key] = true
			ranges = append(ranges, e)
		}
	}
	if len(ranges) == 0 {
		return ""
	}

	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].StartDate < ranges[j].StartDate
	})

	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = formatRange(r.StartDate, r.EndDate, r.Current)
	}
	return strings.Join(parts, ", ")
}

// formatRange renders "MM/YYYY -- MM/YYYY" or "MM/YYYY -- Present".
func formatRange(start, end string, current bool) string {
	return EscapeLaTeX(displayRange(start, end, current, " -- "))
}

func formatDate(s string) string {
	return EscapeLaTeX(displayDate(s))
}

func gpa(v string) string {
	if v == "" {
		return ""
	}
	return "GPA " + v
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
