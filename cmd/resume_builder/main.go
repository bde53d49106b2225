// Package main provides the resume_builder CLI: scripted edits, document validation, and the HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "resume_builder",
	Short:        "Resume document builder",
	Long:         "Resume Builder edits resume sections, assembles them into a canonical JSON document, and saves it to a configurable store.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
