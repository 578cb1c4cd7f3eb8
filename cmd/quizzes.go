package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
)

var quizzesCmd = &cobra.Command{
	Use:   "quizzes",
	Short: "Browse generated quizzes",
}

var quizzesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		quizzes, err := newStoreService(st).List(cmd.Context(), limit)
		if err != nil {
			return userError(err)
		}
		if len(quizzes) == 0 {
			fmt.Println("No quizzes yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-30s  %s\n", "ID", "Created", "Title", "URL")
		fmt.Println(strings.Repeat("─", 100))
		for _, q := range quizzes {
			fmt.Printf("%-5d  %-16s  %-30s  %s\n",
				q.ID, q.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(q.Title, 30), q.URL)
		}
		return nil
	},
}

var quizzesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored quiz as JSON, with related topics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withService(cmd, func(ctx context.Context, svc *quiz.Service) error {
			res, err := svc.Get(ctx, id)
			if err != nil {
				return userError(err)
			}
			if full, _ := cmd.Flags().GetBool("text"); !full {
				res.ScrapedText = ""
			}
			return printJSON(res)
		})
	},
}

var quizzesAttemptsCmd = &cobra.Command{
	Use:   "attempts <id>",
	Short: "List scored attempts for a quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := newStoreService(st).Attempts(cmd.Context(), id, limit)
		if err != nil {
			return userError(err)
		}
		if len(attempts) == 0 {
			fmt.Println("No attempts yet.")
			return nil
		}

		fmt.Printf("%-5s  %-16s  %-7s  %s\n", "ID", "Submitted", "Score", "Percent")
		fmt.Println(strings.Repeat("─", 44))
		for _, a := range attempts {
			fmt.Printf("%-5d  %-16s  %-7s  %.2f%%\n",
				a.ID, a.CreatedAt.Local().Format("2006-01-02 15:04"),
				fmt.Sprintf("%d/%d", a.Score, a.Total), quiz.Percentage(a.Score, a.Total))
		}
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid quiz id %q", s)
	}
	return id, nil
}

func init() {
	quizzesListCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show (0 for all)")
	quizzesShowCmd.Flags().Bool("text", false, "Include the scraped article text")
	quizzesAttemptsCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show (0 for all)")

	quizzesCmd.AddCommand(quizzesListCmd)
	quizzesCmd.AddCommand(quizzesShowCmd)
	quizzesCmd.AddCommand(quizzesAttemptsCmd)
}
