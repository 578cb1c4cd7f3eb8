package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/AYYAGARIKRISHNASRIKAR/wiki-quiz-generator/internal/quiz"
)

// userError logs err in full and returns the categorized message, the same
// text the HTTP API would send.
func userError(err error) error {
	cat, msg := quiz.Categorize(err)
	log.Debug().Err(err).Str("category", string(cat)).Msg("command failed")
	return fmt.Errorf("%s: %s", cat, msg)
}
