package main

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/spf13/cobra"
)

var (
	validateRenderable bool
	validateJSON       bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <resume.json>",
	Short: "Validate a resume document",
	Long:  "Normalizes and validates a resume document, reporting every failing field. With --renderable the document must also carry what a template needs to render it.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

type validateReport struct {
	Valid      bool              `json:"valid"`
	Renderable bool              `json:"renderable"`
	Errors     types.FieldErrors `json:"errors,omitempty"`
}

func init() {
	validateCmd.Flags().BoolVar(&validateRenderable, "renderable", false, "Also require the fields needed to render")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	doc, err := resume.Load(args[0])
	if err != nil {
		return err
	}
	normalized := resume.Normalize(*doc)

	errs := resume.Validate(&normalized)
	report := validateReport{
		Valid:      !errs.HasErrors(),
		Renderable: resume.IsRenderable(&normalized),
	}
	if validateRenderable {
		errs.Merge(resume.ValidateRenderable(&normalized))
	}
	if errs.HasErrors() {
		report.Errors = errs
	}

	if p := printer(cmd); p != nil {
		p.PrintResume(&normalized)
		p.PrintFieldErrors("VALIDATION", errs)
	}

	if validateJSON {
		if err := writeJSON(cmd, "", report); err != nil {
			return err
		}
	} else if errs.HasErrors() {
		cmd.Printf("Validation failed: %d field(s)\n", len(errs))
		printFieldErrors(cmd, errs)
	} else {
		cmd.Println("Validation passed")
	}

	if errs.HasErrors() {
		return fmt.Errorf("validation found %d invalid field(s)", len(errs))
	}
	return nil
}
