package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "brainy",
	Short: "Brainy AI - extract questions from documents and solve them",
	Long: `Brainy AI sends an image of an academic document together with your prompt
to a Gemini model and prints the extracted questions with their solutions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// shownError marks an error whose user message a command already printed.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

// Execute runs the root command and prints any error the command did not
// report itself (bad flags, configuration, instruction file).
func Execute() error {
	err := rootCmd.Execute()
	var shown shownError
	if err != nil && !errors.As(err, &shown) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
