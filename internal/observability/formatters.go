// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to a terminal; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintResume outputs a short summary of the document's sections.
func (p *Printer) PrintResume(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	name := strings.TrimSpace(doc.PersonalInfo.FullName())
	if name == "" {
		name = "(no name)"
	}
	sb.WriteString(fmt.Sprintf("Title:     %s\n", doc.Title))
	sb.WriteString(fmt.Sprintf("Name:      %s\n", name))
	template := doc.TemplateID
	if template == "" {
		template = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Template:  %s\n\n", template))

	counts := []struct {
		label string
		n     int
	}{
		{"Experience", len(doc.Experience)},
		{"Education", len(doc.Education)},
		{"Skill groups", len(doc.Skills)},
		{"Projects", len(doc.Projects)},
		{"Certifications", len(doc.Certifications)},
		{"Languages", len(doc.Languages)},
		{"References", len(doc.References)},
		{"Additional", len(doc.AdditionalSections)},
	}
	for _, c := range counts {
		if c.n > 0 {
			sb.WriteString(fmt.Sprintf("  • %-15s %d\n", c.label, c.n))
		}
	}

	if len(doc.Experience) > 0 {
		sb.WriteString("\nRecent roles:\n")
		count := min(len(doc.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			e := doc.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", e.JobTitle, e.Company))
		}
		if len(doc.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(doc.Experience)-maxItemsToShow))
		}
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFieldErrors outputs every failing field path with its message. Nothing is
// printed when errs is empty.
func (p *Printer) PrintFieldErrors(title string, errs types.FieldErrors) {
	if !errs.HasErrors() {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d field(s) failed:\n\n", len(errs)))
	for _, path := range errs.Paths() {
		sb.WriteString(fmt.Sprintf("✗ %s\n", path))
		sb.WriteString(fmt.Sprintf("  %s\n", errs[path]))
	}

	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResolvedStyle outputs the concrete values a style resolved to.
func (p *Printer) PrintResolvedStyle(style *types.ResolvedStyle) {
	if style == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Template:  %s\n", style.TemplateID))
	sb.WriteString(fmt.Sprintf("Layout:    %d column(s), %s header, %s sections\n\n",
		style.Columns, style.HeaderStyle, style.SectionStyle))

	slots := []struct {
		name string
		text types.TextStyle
	}{
		{"Page", style.Page},
		{"Banner", style.Banner},
		{"Heading", style.Heading},
		{"Body", style.Body},
		{"Accent", style.Accent},
	}
	for _, s := range slots {
		sb.WriteString(fmt.Sprintf("%-8s %-8s %2dpx  %s\n", s.name, s.text.Color, s.text.FontSize, s.text.FontFamily))
	}

	sb.WriteString(fmt.Sprintf("\nSection margin: %dpx\n", style.Section.MarginBottom))
	item := fmt.Sprintf("Item margin:    %dpx", style.Item.MarginBottom)
	if style.Item.Bordered {
		item += fmt.Sprintf(" (boxed, %dpx padding)", style.Item.Padding)
	}
	sb.WriteString(item)

	p.printBox("RESOLVED STYLE", sb.String())
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-3]) + "..."
}
