package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in resume templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplates,
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	catalog := engine.Catalog()

	if templatesJSON {
		return writeJSON(cmd, "", catalog.List())
	}

	defaultID := catalog.Default().ID
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCOLUMNS")
	for _, t := range catalog.List() {
		id := t.ID
		if id == defaultID {
			id += " (default)"
		}
		cols := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			cols[i] = fmt.Sprint(c)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, t.Name, t.Category, strings.Join(cols, ","))
	}
	return w.Flush()
}
