package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docfreq/internal/logger"
)

// version is set at build time via ldflags.
var version = ""

func getVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docfreq",
		Short: "Word frequency analysis for documents",
		Long: `docfreq extracts the text of a document (PDF, DOCX, Markdown, HTML, CSV or
plain text), drops English stopwords and reports the most frequent words as
a table, a bar chart and a word cloud.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log pipeline stages to stderr")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewStopwordsCmd())
	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cliLogger logs to stderr as text; quiet unless --verbose is set.
func cliLogger(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return logger.NewWithWriter(io.Discard, "docfreq", "error", "text")
	}
	return logger.NewWithWriter(cmd.ErrOrStderr(), "docfreq", "debug", "text")
}
