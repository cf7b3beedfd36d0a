package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"brainy-ai/api/internal/config"
	"brainy-ai/api/internal/prompt"
	"brainy-ai/api/internal/solve"
	"brainy-ai/api/internal/solve/gemini"
)

var (
	solvePrompt string
	solveImage  string
	solveModel  string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Extract and solve the questions in a document image",
	Long: `Extract the questions found in a JPG or PNG document image and print their solutions.

Examples:
  brainy solve --image worksheet.png --prompt "algebra"
  brainy solve --image page.jpg          (asks for the prompt interactively)`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVar(&solvePrompt, "prompt", "", "Key terms and details for the document")
	solveCmd.Flags().StringVar(&solveImage, "image", "", "Path to a JPG or PNG image of the document")
	solveCmd.Flags().StringVar(&solveModel, "model", "", "Gemini model (default from config)")
}

// newGateway is swapped in tests.
var newGateway = func(ctx context.Context, cfg *config.Config) (solve.Gateway, io.Closer, error) {
	e, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}
	return e, e, nil
}

// stdinIsTerminal is swapped in tests.
var stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if solveModel != "" {
		cfg.GeminiModel = solveModel
	}
	instruction, err := prompt.Load(cfg.InstructionFile)
	if err != nil {
		return err
	}

	text := solvePrompt
	if strings.TrimSpace(text) == "" && stdinIsTerminal() {
		if text, err = readPrompt(); err != nil {
			return fmt.Errorf("failed to read prompt: %w", err)
		}
	}

	upload, closeImage := openImage(solveImage)
	defer closeImage()

	gw, closer, err := newGateway(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	res, err := solve.NewSolver(gw, instruction, solve.DefaultPolicy()).Solve(cmd.Context(), text, upload)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), solve.UserMessage(err))
		return shownError{err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	return nil
}

// openImage returns nil for an empty path. A file that cannot be opened is
// still a present image, just an unreadable one.
func openImage(path string) (*solve.Upload, func()) {
	if strings.TrimSpace(path) == "" {
		return nil, func() {}
	}
	up := &solve.Upload{
		Filename: filepath.Base(path),
		MIMEType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
	}
	f, err := os.Open(path)
	if err != nil {
		log.Printf("open image: %v", err)
		return up, func() {}
	}
	up.Body = f
	return up, func() { _ = f.Close() }
}

func readPrompt() (string, error) {
	rl, err := readline.New("Prompt> ")
	if err != nil {
		return "", err
	}
	defer rl.Close()

	line, err := rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}
