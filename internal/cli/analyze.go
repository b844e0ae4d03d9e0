package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/truthscope/internal/pipeline"
)

var (
	outPath    string
	maxResults int
	noSave     bool
	anTimeout  time.Duration
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <headline-or-url>",
	Short: "Analyze the credibility of a news claim",
	Long: `Analyze searches for coverage related to a claim, scores each source by
keyphrase similarity and domain trust, and aggregates the results into a
credibility verdict.

The argument is either a headline or an article URL; URLs are resolved to
their headline through the extraction service first.

Example:
  truthscope analyze "Delhi weather sees sudden turn: rain, dust storms bring temperatures down"
  truthscope analyze https://www.bbc.com/news/some-article --out report.json
  truthscope analyze "some headline" --max-results 5 --no-save`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&outPath, "out", "", "report output path (default: output.report_path config)")
	analyzeCmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum sources to discover (capped at 10)")
	analyzeCmd.Flags().BoolVar(&noSave, "no-save", false, "print the verdict without writing the report file")
	analyzeCmd.Flags().DurationVar(&anTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), anTimeout)
	defer cancel()

	logger, err := buildLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := loadConfig()
	if maxResults > 0 {
		cfg.Search.MaxResults = maxResults
	}
	if outPath != "" {
		cfg.Output.ReportPath = outPath
	}

	p, err := buildPipeline(ctx, cfg, logger)
	if err != nil {
		return err
	}

	report := p.Analyze(ctx, input)

	if report.Error != "" {
		fmt.Fprintf(os.Stderr, "Analysis failed: %s\n", report.Error)
	} else {
		fmt.Printf("Headline:        %s\n", report.Credibility.Headline)
		fmt.Printf("Total score:     %.3f\n", report.Credibility.TotalScore)
		fmt.Printf("Level:           %s\n", report.Credibility.Level)
		fmt.Printf("Interpretation:  %s\n", report.Credibility.Interpretation)
		fmt.Printf("Sources:         %d analyzed\n", report.Credibility.SourcesAnalyzed)

		if verbose {
			fmt.Println()
			for _, s := range report.Sources {
				if s.Error != "" {
					fmt.Printf("  %-8s %s (%s)\n", "error", s.URL, s.Error)
					continue
				}
				fmt.Printf("  %-8.3f %s (weight %.1f)\n", s.WeightedScore, s.URL, s.SourceWeight)
			}
		}
	}

	if !noSave {
		if err := pipeline.SaveJSON(cfg.Output.ReportPath, report); err != nil {
			return err
		}
		fmt.Printf("\nReport written to %s\n", cfg.Output.ReportPath)
	}

	if report.Error != "" {
		return fmt.Errorf("analysis did not complete: %s", report.Error)
	}
	return nil
}
