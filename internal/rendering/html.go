package rendering

import (
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Placeholders shown while the document has no name or title yet.
const (
	PlaceholderName  = "Your Name"
	PlaceholderTitle = "Professional Title"
)

const previewTemplate = "templates/preview.html.tmpl"

var (
	previewOnce sync.Once
	previewTmpl *template.Template
	previewErr  error

	ugc = bluemonday.UGCPolicy()

	unsafeFontChars = regexp.MustCompile(`[^A-Za-z0-9 ,'\-]`)
)

// PreviewData represents the data structure passed to the preview template.
type PreviewData struct {
	TemplateID string
	Columns    int
	Name       string
	JobTitle   string
	Contact    []string
	Links      []string
	Regions    []Region
	CSS        PreviewCSS
}

// PreviewCSS holds the inline style attribute of each slot.
type PreviewCSS struct {
	Page    template.CSS
	Banner  template.CSS
	Name    template.CSS
	Content template.CSS
	Grid    template.CSS
	Section template.CSS
	Heading template.CSS
	Item    template.CSS
	Accent  template.CSS
}

// Region is a layout column holding sections in display order.
type Region struct {
	Name     string
	Sections []Section
}

// Section is one titled block of the preview.
type Section struct {
	Kind  string
	Title string
	Items []Item
}

// Item is one entry inside a section. Body is sanitized markup.
type Item struct {
	Heading string
	Meta    string
	Body    template.HTML
	Bullets []string
	Tags    []string
}

// RenderHTML renders the live preview of doc with style. A nil doc renders the
// placeholder banner only.
func RenderHTML(doc *types.ResumeDocument, style types.ResolvedStyle) (string, error) {
	tmpl, err := loadPreview()
	if err != nil {
		return "", err
	}

	var result strings.Builder
	if err := tmpl.Execute(&result, buildPreviewData(doc, style)); err != nil {
		return "", &TemplateError{
			Message: "failed to execute preview template",
			Cause:   err,
		}
	}
	return result.String(), nil
}

func loadPreview() (*template.Template, error) {
	previewOnce.Do(func() {
		previewTmpl, previewErr = template.ParseFS(templateFS, previewTemplate)
		if previewErr != nil {
			previewErr = &TemplateError{Message: "failed to parse preview template", Cause: previewErr}
		}
	})
	return previewTmpl, previewErr
}

func buildPreviewData(doc *types.ResumeDocument, style types.ResolvedStyle) *PreviewData {
	data := &PreviewData{
		TemplateID: style.TemplateID,
		Columns:    style.Columns,
		Name:       PlaceholderName,
		JobTitle:   PlaceholderTitle,
		CSS:        previewCSS(style),
	}
	if doc == nil {
		return data
	}

	p := doc.PersonalInfo
	if name := strings.TrimSpace(p.FullName()); name != "" {
		data.Name = name
	}
	if title := strings.TrimSpace(p.JobTitle); title != "" {
		data.JobTitle = title
	}
	for _, c := range []string{p.Email, p.Phone, joinNonEmpty(", ", p.City, p.State, p.Country)} {
		if c != "" {
			data.Contact = append(data.Contact, c)
		}
	}
	for _, link := range []string{p.Website, p.LinkedIn, p.GitHub} {
		if link != "" {
			data.Links = append(data.Links, link)
		}
	}

	body, aside := mainSections(doc), sideSections(doc)
	if style.Columns == 2 {
		data.Regions = []Region{{Name: "main", Sections: body}, {Name: "side", Sections: aside}}
	} else {
		data.Regions = []Region{{Name: "main", Sections: append(body, aside...)}}
	}
	return data
}

func mainSections(doc *types.ResumeDocument) []Section {
	var sections []Section
	add := func(s Section) {
		if len(s.Items) > 0 {
			sections = append(sections, s)
		}
	}

	if summary := sanitize(doc.PersonalInfo.Summary); summary != "" {
		add(Section{Kind: "summary", Title: "Summary", Items: []Item{{Body: summary}}})
	}

	exp := Section{Kind: "experience", Title: "Experience"}
	for _, e := range doc.Experience {
		exp.Items = append(exp.Items, Item{
			Heading: e.JobTitle,
			Meta:    joinNonEmpty(" | ", e.Company, displayRange(e.StartDate, e.EndDate, e.Current, " - ")),
			Body:    sanitize(e.Description),
			Bullets: nonEmpty(e.Achievements),
		})
	}
	add(exp)

	edu := Section{Kind: "education", Title: "Education"}
	for _, e := range doc.Education {
		edu.Items = append(edu.Items, Item{
			Heading: joinNonEmpty(" in ", e.Degree, e.Field),
			Meta:    joinNonEmpty(" | ", e.Institution, displayRange(e.StartDate, e.EndDate, e.Current, " - ")),
			Body:    sanitize(e.Description),
			Bullets: nonEmpty(e.Achievements),
		})
	}
	add(edu)

	proj := Section{Kind: "projects", Title: "Projects"}
	for _, pr := range doc.Projects {
		proj.Items = append(proj.Items, Item{
			Heading: pr.Name,
			Meta:    displayRange(pr.StartDate, pr.EndDate, pr.Current, " - "),
			Body:    sanitize(pr.Description),
			Bullets: nonEmpty(pr.Achievements),
			Tags:    nonEmpty(pr.Technologies),
		})
	}
	add(proj)

	for _, s := range doc.AdditionalSections {
		add(Section{Kind: "additional", Title: s.Title, Items: []Item{{Body: sanitize(s.Content)}}})
	}
	return sections
}

func sideSections(doc *types.ResumeDocument) []Section {
	var sections []Section
	add := func(s Section) {
		if len(s.Items) > 0 {
			sections = append(sections, s)
		}
	}

	skills := Section{Kind: "skills", Title: "Skills"}
	for _, s := range doc.Skills {
		if tags := nonEmpty(s.Skills); len(tags) > 0 {
			skills.Items = append(skills.Items, Item{Heading: s.Category, Tags: tags})
		}
	}
	add(skills)

	certs := Section{Kind: "certifications", Title: "Certifications"}
	for _, c := range doc.Certifications {
		certs.Items = append(certs.Items, Item{
			Heading: c.Name,
			Meta:    joinNonEmpty(" | ", c.Issuer, displayDate(c.Date)),
			Body:    sanitize(c.Description),
		})
	}
	add(certs)

	langs := Section{Kind: "languages", Title: "Languages"}
	for _, l := range doc.Languages {
		langs.Items = append(langs.Items, Item{Heading: l.Language, Meta: l.Proficiency})
	}
	add(langs)

	refs := Section{Kind: "references", Title: "References"}
	for _, r := range doc.References {
		refs.Items = append(refs.Items, Item{
			Heading: r.Name,
			Meta:    joinNonEmpty(" | ", r.Position, r.Company),
			Bullets: nonEmpty([]string{r.Email, r.Phone, r.Relationship}),
		})
	}
	add(refs)
	return sections
}

// sanitize converts line breaks to <br> and strips markup outside the UGC policy.
func sanitize(text string) template.HTML {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	return template.HTML(ugc.Sanitize(strings.ReplaceAll(text, "\n", "<br>")))
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func previewCSS(s types.ResolvedStyle) PreviewCSS {
	css := PreviewCSS{
		Page: declarations(
			"background-color", cssColor(s.Page.Background),
			"color", cssColor(s.Page.Color),
			"font-family", cssFont(s.Page.FontFamily),
			"font-size", px(s.Page.FontSize),
			"line-height", strconv.FormatFloat(s.Page.LineHeight, 'f', -1, 64),
		),
		Banner: declarations(
			"background-color", cssColor(s.Banner.Background),
			"color", cssColor(s.Banner.Color),
			"padding", px(s.Banner.Padding),
			"margin-bottom", px(s.Banner.MarginBottom),
		),
		Name: declarations(
			"font-family", cssFont(s.Banner.FontFamily),
			"font-size", px(s.Banner.FontSize),
			"margin", "0 0 8px 0",
		),
		Content: declarations("padding", "0 "+px(s.Page.Padding)),
		Section: declarations("margin-bottom", px(s.Section.MarginBottom)),
		Heading: declarations(
			"color", cssColor(s.Heading.Color),
			"font-family", cssFont(s.Heading.FontFamily),
			"font-size", px(s.Heading.FontSize),
			"margin", "0 0 "+px(s.Heading.MarginBottom)+" 0",
		),
		Accent: declarations("color", cssColor(s.Accent.Color)),
	}

	switch s.HeaderStyle {
	case types.HeaderCentered:
		css.Banner += "; text-align: center"
	case types.HeaderSplit:
		css.Banner += "; display: flex; justify-content: space-between; align-items: flex-end"
	}
	if s.SectionStyle == types.SectionUnderlined {
		css.Heading += template.CSS("; padding-bottom: 4px; border-bottom: 2px solid " + cssColor(s.Heading.Color))
	}

	item := []string{"margin-bottom", px(s.Item.MarginBottom)}
	if s.Item.Bordered {
		item = append(item,
			"padding", px(s.Item.Padding),
			"border", fmt.Sprintf("%s solid %s", px(s.Item.BorderWidth), cssColor(s.Item.BorderColor)),
			"border-radius", px(s.Item.BorderRadius),
		)
	}
	css.Item = declarations(item...)

	if s.Columns == 2 {
		css.Grid = declarations(
			"display", "grid",
			"grid-template-columns", "2fr 1fr",
			"column-gap", px(s.Section.MarginBottom),
		)
	}
	return css
}

// declarations joins property/value pairs into an inline style.
func declarations(pairs ...string) template.CSS {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+": "+pairs[i+1])
	}
	return template.CSS(strings.Join(parts, "; "))
}

func px(n int) string {
	return strconv.Itoa(n) + "px"
}

func cssColor(c string) string {
	if hexColor.MatchString(c) {
		return c
	}
	return "inherit"
}

func cssFont(family string) string {
	family = strings.TrimSpace(unsafeFontChars.ReplaceAllString(family, ""))
	if family == "" {
		return "sans-serif"
	}
	return family + ", sans-serif"
}
