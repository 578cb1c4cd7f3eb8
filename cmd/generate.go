package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate <url>",
	Short: "Generate (or fetch from cache) the quiz for a Wikipedia article and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(cmd, func(ctx context.Context, svc *quiz.Service) error {
			res, err := svc.Generate(ctx, args[0])
			if err != nil {
				return userError(err)
			}
			return printJSON(res)
		})
	},
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
