package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/wiki"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Fetch an article and show the sections the quiz is built from (no database, no LLM)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, err := wiki.ValidateURL(args[0])
		if err != nil {
			return userError(fmt.Errorf("%w: %v", quiz.ErrInvalidInput, err))
		}

		page, err := newScraper(cfg).Scrape(cmd.Context(), url)
		if err != nil {
			return userError(&quiz.UpstreamError{URL: url, Err: err})
		}

		fmt.Printf("Title:     %s\n", page.Title)
		fmt.Printf("Text:      %d chars\n", len(page.Text))
		fmt.Printf("Sections:  %d\n\n", len(page.Sections))

		preview, _ := cmd.Flags().GetInt("preview")
		for i, s := range page.Sections {
			fmt.Printf("%2d. %s (%d chars)\n", i+1, s.Title, len(s.Text))
			if preview > 0 {
				fmt.Printf("    %s\n", truncate(strings.ReplaceAll(s.Text, "\n", " "), preview))
			}
		}
		return nil
	},
}

func init() {
	scrapeCmd.Flags().Int("preview", 80, "Characters of each section to show (0 to hide)")
}
