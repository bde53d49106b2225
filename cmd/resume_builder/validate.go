package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jonathan/resume-builder/internal/assembler"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved resume document",
	Long:  "Checks that a saved document matches the resume document schema and decodes cleanly.",
	RunE:  runValidate,
}

var (
	validateInput  string
	validateSchema string
)

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to resume document JSON file (required)")
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to an additional JSON Schema the document must also satisfy")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(validateInput)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	out := cmd.OutOrStdout()
	doc, err := assembler.Deserialize(string(content))
	if err != nil {
		return reportValidation(out, err)
	}

	if validateSchema != "" {
		schemaContent, err := os.ReadFile(validateSchema)
		if err != nil {
			return fmt.Errorf("failed to read schema: %w", err)
		}
		if err := schemas.ValidateJSONString(string(schemaContent), string(content)); err != nil {
			return reportValidation(out, err)
		}
	}

	_, err = fmt.Fprintf(out, "Validation passed: %s (%d experience, %d education entries)\n",
		validateInput, len(doc.Sections.Experience), len(doc.Sections.Education))
	return err
}

// reportValidation prints schema violations field by field
func reportValidation(out io.Writer, err error) error {
	_, _ = fmt.Fprintln(out, "Validation failed:")
	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		for _, fe := range validationErr.Errors {
			_, _ = fmt.Fprintf(out, "  - %s: %s\n", fe.Field, fe.Message)
		}
		return fmt.Errorf("document has %d schema violation(s)", len(validationErr.Errors))
	}
	return err
}
