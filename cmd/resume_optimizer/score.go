package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-optimizer/internal/observability"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score resume content against a job posting without fitting",
	Long: `Scores every content unit against the job posting and reports ranked
scores, the whole-document score, and keep/improve/remove suggestions. The
document is not modified.`,
	RunE: runScore,
}

var (
	scoreConfigPath string
	scoreDocument   string
	scoreJob        string
	scoreOutput     string
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file")
	scoreCmd.Flags().StringVarP(&scoreDocument, "document", "d", "", "Path to resume document JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to job posting text file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "output", "o", "", "Path to write the report JSON (defaults to stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print ranked scores in a readable table")

	_ = scoreCmd.MarkFlagRequired("document")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(scoreConfigPath)
	if err != nil {
		return err
	}

	doc, jobContext, err := readRunInputs(scoreDocument, scoreJob)
	if err != nil {
		return err
	}

	p, cleanup, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	report, err := p.Score(ctx, doc, jobContext)
	if err != nil {
		return err
	}

	if scoreVerbose || cfg.Verbose {
		printer := observability.NewPrinter(os.Stderr)
		printer.PrintScoreSet(report.Scores)
	}

	return writeResultJSON(scoreOutput, report)
}
