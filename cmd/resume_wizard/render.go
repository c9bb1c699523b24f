package main

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/rendering"
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/spf13/cobra"
)

const (
	formatHTML  = "html"
	formatLaTeX = "latex"
)

var (
	renderFormat       string
	renderStyleFile    string
	renderTemplateID   string
	renderTemplateFile string
	renderOutput       string
)

var renderCmd = &cobra.Command{
	Use:   "render <resume.json>",
	Short: "Render a resume as an HTML preview or LaTeX source",
	Long:  "Validates a resume document, resolves its style and renders it. Rendering requires a document that passes full validation and the renderability check.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", formatHTML, "Output format: html or latex")
	renderCmd.Flags().StringVarP(&renderStyleFile, "style", "s", "", "Path to a style configuration JSON file (defaults when empty)")
	renderCmd.Flags().StringVarP(&renderTemplateID, "template", "t", "", "Template id (overrides the resume's template)")
	renderCmd.Flags().StringVar(&renderTemplateFile, "template-file", "", "Path to a LaTeX template file (embedded template when empty)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Write the result to a file instead of stdout")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderFormat != formatHTML && renderFormat != formatLaTeX {
		return fmt.Errorf("unknown format %q (must be html or latex)", renderFormat)
	}

	loaded, err := resume.Load(args[0])
	if err != nil {
		return err
	}
	doc := resume.Normalize(*loaded)
	if renderTemplateID != "" {
		doc.TemplateID = renderTemplateID
	}

	errs := resume.Validate(&doc)
	errs.Merge(resume.ValidateRenderable(&doc))
	if errs.HasErrors() {
		cmd.Printf("Resume cannot be rendered: %d field(s)\n", len(errs))
		printFieldErrors(cmd, errs)
		return fmt.Errorf("validation found %d invalid field(s)", len(errs))
	}

	cfg, err := readStyle(renderStyleFile)
	if err != nil {
		return err
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	style, err := engine.Resolve(&doc, cfg, "")
	if err != nil {
		return err
	}

	if p := printer(cmd); p != nil {
		p.PrintResume(&doc)
		p.PrintResolvedStyle(&style)
	}

	var out string
	switch renderFormat {
	case formatLaTeX:
		var tmpl string
		if renderTemplateFile != "" {
			if tmpl, err = rendering.ReadTemplate(renderTemplateFile); err != nil {
				return err
			}
		}
		out, err = rendering.RenderLaTeX(&doc, style, tmpl)
	default:
		out, err = rendering.RenderHTML(&doc, style)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd, renderOutput, []byte(out))
}
