package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/observability"
	"github.com/jonathan/resume-optimizer/internal/pipeline"
	"github.com/jonathan/resume-optimizer/internal/types"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Score a resume against a job posting and fit it to one page",
	Long: `Runs the full optimization pipeline: validate the document, score every
content unit against the job posting, classify and balance by category, then
compress and trim until the result fits a single page.

The fitted document and run metadata are written as JSON.`,
	RunE: runFit,
}

var (
	fitConfigPath string
	fitDocument   string
	fitJob        string
	fitOutput     string
	fitMaxUnits   int
	fitVerbose    bool
)

func init() {
	fitCmd.Flags().StringVar(&fitConfigPath, "config", "", "Path to config.json file")
	fitCmd.Flags().StringVarP(&fitDocument, "document", "d", "", "Path to resume document JSON file (required)")
	fitCmd.Flags().StringVarP(&fitJob, "job", "j", "", "Path to job posting text file (required)")
	fitCmd.Flags().StringVarP(&fitOutput, "output", "o", "", "Path to write the result JSON (defaults to stdout)")
	fitCmd.Flags().IntVar(&fitMaxUnits, "max-units", 0, "Maximum content units kept per entry (0 keeps the original count)")
	fitCmd.Flags().BoolVarP(&fitVerbose, "verbose", "v", false, "Print detailed progress and summaries")

	_ = fitCmd.MarkFlagRequired("document")
	_ = fitCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(fitCmd)
}

func runFit(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(fitConfigPath)
	if err != nil {
		return err
	}
	if fitVerbose {
		cfg.Verbose = true
	}

	doc, jobContext, err := readRunInputs(fitDocument, fitJob)
	if err != nil {
		return err
	}

	p, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := pipeline.Options{
		Document:         doc,
		JobContext:       jobContext,
		MaxUnitsPerEntry: fitMaxUnits,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := p.Run(ctx, opts)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintCategoryStats(result.CategoryStats)
		printer.PrintFitResult(result.Fit)
		printer.PrintComparison(result.Comparison)
	}

	return writeResultJSON(fitOutput, result)
}

// readRunInputs loads and parses the document and job posting files.
func readRunInputs(docPath, jobPath string) (doc *types.Document, jobContext string, err error) {
	data, err := os.ReadFile(docPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read document file %s: %w", docPath, err)
	}
	doc, err = pipeline.ParseDocument(data)
	if err != nil {
		return nil, "", err
	}

	jobData, err := os.ReadFile(jobPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read job file %s: %w", jobPath, err)
	}
	jobContext = strings.TrimSpace(string(jobData))
	if jobContext == "" {
		fmt.Fprintln(os.Stderr, "Warning: job posting is empty; all content scores the neutral default")
	}

	return doc, jobContext, nil
}

func writeResultJSON(path string, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	out = append(out, '\n')

	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
