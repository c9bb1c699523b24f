package rendering

import (
	"regexp"
	"strings"
)

// latexReplacer maps the LaTeX special characters \ { } $ & % # ^ _ ~ to their
// escaped forms.
var latexReplacer = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes special LaTeX characters in text
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}
	return latexReplacer.Replace(text)
}

var blankLines = regexp.MustCompile(`\n\s*\n`)

// EscapeLaTeXParagraphs escapes text and turns blank-line separated paragraphs into
// \par breaks. Single newlines become forced line breaks.
func EscapeLaTeXParagraphs(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	paragraphs := blankLines.Split(text, -1)
	for i, p := range paragraphs {
		lines := strings.Split(strings.TrimSpace(p), "\n")
		for j, line := range lines {
			lines[j] = EscapeLaTeX(strings.TrimSpace(line))
		}
		paragraphs[i] = strings.Join(lines, `\\`+"\n")
	}
	return strings.Join(paragraphs, "\n\\par\n")
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// LaTeXColor converts "#0369a1" or "#09a" into the "0369A1" form xcolor's HTML model
// expects. Anything else yields fallback.
func LaTeXColor(hex, fallback string) string {
	if !hexColor.MatchString(hex) {
		return fallback
	}
	h := strings.ToUpper(hex[1:])
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	return h
}
