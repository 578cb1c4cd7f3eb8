package cmd

import (
	"github.com/spf13/cobra"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/app"
	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/logger"
)

var playCmd = &cobra.Command{
	Use:   "play [url]",
	Short: "Take quizzes in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var url string
		if len(args) == 1 {
			url = args[0]
		}
		return runPlay(cmd, url)
	},
}

// runPlay launches the terminal player. Logs go to a file so they do not
// draw over the UI.
func runPlay(cmd *cobra.Command, url string) error {
	ctx := cmd.Context()
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	provider, err := newProvider(ctx, cfg, st)
	if err != nil {
		return err
	}

	closeLog, err := logger.ToFile(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	return app.Run(ctx, newService(cfg, st, provider), url)
}
