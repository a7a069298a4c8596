package options

import (
	"github.com/spf13/cobra"
)

// QuizOptions
type QuizOptions struct {
	// Answer is 1-based; 0 prompts.
	Answer int
}

func AddQuizArgs(cmd *cobra.Command, o *QuizOptions) {
	cmd.Flags().IntVarP(&o.Answer, "answer", "a", 0,
		"Answer with option N instead of prompting.")
}
