package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt <id>",
	Short: "Score answers against a stored quiz",
	Long: `Score answers against a stored quiz and record the attempt.

Answers are given per question index, e.g.

  wikiquiz attempt 3 --answer 0=A --answer 1=c --answer 4=D

Unanswered questions count as wrong.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetStringArray("answer")
		answers, err := parseAnswers(raw)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		score, err := newStoreService(st).Attempt(cmd.Context(), id, answers)
		if err != nil {
			return userError(err)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(score)
		}

		fmt.Printf("Score: %d/%d (%.2f%%)\n\n", score.Score, score.Total, score.Percentage)
		for _, r := range score.Breakdown {
			mark := "✓"
			if !r.IsCorrect {
				mark = "✗"
			}
			given := "-"
			if r.UserAnswer != nil {
				given = *r.UserAnswer
			}
			fmt.Printf("%s  Q%d  you: %-3s answer: %s\n", mark, r.QuestionIndex+1, given, r.CorrectAnswer)
			if !r.IsCorrect && r.Explanation != "" {
				fmt.Printf("      %s\n", r.Explanation)
			}
		}
		return nil
	},
}

// parseAnswers turns "0=A" pairs into the sparse index -> label map.
func parseAnswers(raw []string) (map[string]string, error) {
	answers := make(map[string]string, len(raw))
	for _, pair := range raw {
		idx, label, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(idx) == "" {
			return nil, fmt.Errorf("invalid answer %q: want <index>=<label>", pair)
		}
		answers[strings.TrimSpace(idx)] = strings.TrimSpace(label)
	}
	return answers, nil
}

func init() {
	attemptCmd.Flags().StringArrayP("answer", "a", nil, "Answer as <question index>=<label>, repeatable")
	attemptCmd.Flags().Bool("json", false, "Print the score as JSON")
}
