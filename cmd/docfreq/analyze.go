package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docfreq/internal/config"
	"github.com/dgallion1/docfreq/internal/parser"
	"github.com/dgallion1/docfreq/internal/pipeline"
	"github.com/dgallion1/docfreq/internal/render"
	"github.com/dgallion1/docfreq/internal/report"
)

// NewAnalyzeCmd creates the analyze subcommand.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Count the most frequent words in a document",
		Long: `Analyze extracts the text of FILE, tokenizes it, removes English stopwords
and prints the top-N words with their counts. N is bounded to 5..50.

Optionally writes a word cloud and a bar chart as PNG files; the Markdown
report links to them.`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}

	cmd.Flags().IntP("top", "n", 0, "number of top words (5-50, default from DEFAULT_TOP_N)")
	cmd.Flags().StringP("format", "f", "markdown", "output format: markdown or json")
	cmd.Flags().String("cloud", "", "write the word cloud PNG to this path")
	cmd.Flags().String("chart", "", "write the bar chart PNG to this path")
	cmd.Flags().Bool("full", true, "include the full frequency table")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	path := args[0]

	topN, err := cmd.Flags().GetInt("top")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "markdown" && format != "md" && format != "json" {
		return fmt.Errorf("unknown format %q: want markdown or json", format)
	}
	cloudPath, _ := cmd.Flags().GetString("cloud")
	chartPath, _ := cmd.Flags().GetString("chart")
	full, _ := cmd.Flags().GetBool("full")

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	log := cliLogger(cmd)
	analyzer := pipeline.NewAnalyzer(pipeline.Options{
		Parser:      parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext},
		DefaultTopN: cfg.DefaultTopN,
	}, pipeline.NewStageStats(cfg.StatsWindow), log)

	res, err := analyzer.Analyze(cmd.Context(), data, filepath.Base(path), topN)
	if err != nil {
		return err
	}

	opts := report.Options{FullTable: full}
	if cloudPath != "" {
		png, err := report.CloudPNG(res, render.CloudOptions{
			Width:         cfg.CloudWidth,
			Height:        cfg.CloudHeight,
			MaxWords:      cfg.CloudMaxWords,
			VerticalRatio: render.DefaultVerticalRatio,
		})
		if err != nil {
			return fmt.Errorf("word cloud: %w", err)
		}
		if err := os.WriteFile(cloudPath, png, 0o644); err != nil {
			return fmt.Errorf("write word cloud: %w", err)
		}
		opts.CloudURL = cloudPath
	}
	if chartPath != "" {
		png, err := report.ChartPNG(res, render.ChartOptions{Width: cfg.ChartWidth})
		if err != nil {
			return fmt.Errorf("bar chart: %w", err)
		}
		if err := os.WriteFile(chartPath, png, 0o644); err != nil {
			return fmt.Errorf("write bar chart: %w", err)
		}
		opts.ChartURL = chartPath
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return report.WriteJSON(out, res, full, true)
	}
	if err := report.WriteMarkdown(out, res, opts); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}
