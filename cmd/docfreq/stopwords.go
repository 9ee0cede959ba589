package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docfreq/internal/tokenize"
)

// NewStopwordsCmd prints the stopword set, one word per line.
func NewStopwordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stopwords",
		Short: "Print the English stopwords removed before counting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, w := range tokenize.Stopwords() {
				if _, err := fmt.Fprintln(out, w); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
