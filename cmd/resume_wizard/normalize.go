package main

import (
	"github.com/jonathan/resume-wizard/internal/resume"
	"github.com/spf13/cobra"
)

var (
	normalizeOutput string
	normalizeIDs    bool
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <resume.json>",
	Short: "Print the normalized form of a resume document",
	Long:  "Trims text fields, drops blank list entries and de-duplicates skills, then prints the document as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "out", "o", "", "Write the result to a file instead of stdout")
	normalizeCmd.Flags().BoolVar(&normalizeIDs, "ids", false, "Assign ids to the document and entries that lack one")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	doc, err := resume.Load(args[0])
	if err != nil {
		return err
	}
	out := resume.Normalize(*doc)
	if normalizeIDs {
		out = resume.EnsureIDs(out, resume.NewID)
	}
	return writeJSON(cmd, normalizeOutput, out)
}
