package main

import (
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
)

var (
	resolveStyleFile  string
	resolveTemplateID string
	resolveResumeFile string
	resolveOutput     string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a style configuration against a template",
	Long:  "Clamps a style configuration to its bounds and derives the concrete presentation values for a template. A column count the template does not support is rejected.",
	Args:  cobra.NoArgs,
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveStyleFile, "style", "s", "", "Path to a style configuration JSON file (defaults when empty)")
	resolveCmd.Flags().StringVarP(&resolveTemplateID, "template", "t", "", "Template id (overrides the resume's template)")
	resolveCmd.Flags().StringVarP(&resolveResumeFile, "resume", "r", "", "Path to a resume JSON file whose template is used")
	resolveCmd.Flags().StringVarP(&resolveOutput, "out", "o", "", "Write the resolved style to a file instead of stdout")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, _ []string) error {
	cfg, err := readStyle(resolveStyleFile)
	if err != nil {
		return err
	}

	var doc *types.ResumeDocument
	if resolveResumeFile != "" {
		if doc, err = resume.Load(resolveResumeFile); err != nil {
			return err
		}
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	style, err := engine.Resolve(doc, cfg, resolveTemplateID)
	if err != nil {
		return err
	}
	if p := printer(cmd); p != nil {
		p.PrintResolvedStyle(&style)
	}
	return writeJSON(cmd, resolveOutput, style)
}
