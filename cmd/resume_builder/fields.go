package main

import (
	"encoding/json"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var fieldsJSON bool

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List sections and the fields each accepts",
	RunE:  runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSON, "json", false, "Print the catalog as JSON")
	rootCmd.AddCommand(fieldsCmd)
}

func runFields(cmd *cobra.Command, _ []string) error {
	catalog := server.BuildFieldCatalog()

	if fieldsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(catalog)
	}

	list := make([]observability.SectionFields, 0, len(catalog.Sections))
	for _, s := range catalog.Sections {
		list = append(list, observability.SectionFields{Name: s.Name, Fields: s.Fields})
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintFieldCatalog(list, catalog.FixedFields)
	return nil
}
