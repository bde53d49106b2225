package main

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/assembler"
	"github.com/jonathan/resume-builder/internal/editscript"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/sections"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply an edit script and save the resulting document",
	Long: `Builds a resume from an empty store by applying the operations of an edit script
(YAML or JSON), then assembles the document and saves it to the configured sink.`,
	RunE: runApply,
}

var (
	applyScript string
	applyConfig string
	applySink   string
	applyDir    string
	applyKey    string
	applyPrint  bool
)

func init() {
	applyCmd.Flags().StringVarP(&applyScript, "script", "s", "", "Path to edit script YAML/JSON file (required)")
	applyCmd.Flags().StringVarP(&applyConfig, "config", "c", "", "Path to config JSON file")
	applyCmd.Flags().StringVar(&applySink, "sink", "", "Sink kind: memory, file, redis, postgres, mongo, minio")
	applyCmd.Flags().StringVar(&applyDir, "dir", "", "Output directory for the file sink")
	applyCmd.Flags().StringVar(&applyKey, "key", "", "Key the document is saved under")
	applyCmd.Flags().BoolVar(&applyPrint, "print", false, "Write the serialized document to stdout")

	if err := applyCmd.MarkFlagRequired("script"); err != nil {
		panic(fmt.Sprintf("failed to mark script flag as required: %v", err))
	}

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(applyConfig, cmd.Flags(), map[string]*string{
		"sink": &applySink,
		"dir":  &applyDir,
		"key":  &applyKey,
	})
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	script, err := editscript.Load(applyScript)
	if err != nil {
		return err
	}

	store := sections.New()
	if err := editscript.Apply(store, script); err != nil {
		return fmt.Errorf("edit script %s: %w", applyScript, err)
	}
	logger.Debug("edit script applied", "operations", len(script.Operations))

	sink, err := persistence.Open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s sink: %w", cfg.Sink, err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("failed to close sink", "error", cerr)
		}
	}()

	result, err := assembler.NewSubmitter(sink, cfg.Key, logger).Submit(cmd.Context(), store)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if applyPrint {
		_, err := fmt.Fprintln(out, result.Text)
		return err
	}
	observability.NewPrinter(out).PrintDocumentSummary(result.Key, &result.Document)
	return nil
}
