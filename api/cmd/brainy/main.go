// Brainy CLI - solve the questions in a document image from the terminal.
package main

import (
	"os"

	"brainy-ai/api/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
