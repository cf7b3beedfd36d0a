package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainy-ai/api/internal/config"
	"brainy-ai/api/internal/solve"
)

var testPNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x0a\x00\x00\x00\x0a")

type fakeGateway struct {
	calls int
	last  solve.UserRequest
	model string
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) GenerateSolution(_ context.Context, req solve.UserRequest, _ string, _ solve.SafetyPolicy) (solve.Result, error) {
	g.calls++
	g.last = req
	return solve.Result{Kind: solve.ResultText, Text: "Question: 2+2? Solution: 4"}, nil
}

func setup(t *testing.T) *fakeGateway {
	t.Helper()
	t.Setenv("BRAINY_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv("GOOGLE_API_KEY", "test-key")
	t.Setenv("INSTRUCTION_FILE", "")

	gw := &fakeGateway{}
	origGateway, origTerminal := newGateway, stdinIsTerminal
	newGateway = func(_ context.Context, cfg *config.Config) (solve.Gateway, io.Closer, error) {
		gw.model = cfg.GeminiModel
		return gw, io.NopCloser(nil), nil
	}
	stdinIsTerminal = func() bool { return false }
	t.Cleanup(func() {
		newGateway, stdinIsTerminal = origGateway, origTerminal
		solvePrompt, solveImage, solveModel = "", "", ""
	})
	return gw
}

func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := Execute()
	return out.String(), errOut.String(), err
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, testPNG, 0o644))
	return p
}

func TestSolveCommand(t *testing.T) {
	gw := setup(t)
	img := writeImage(t, "page.png")

	out, _, err := run("solve", "--image", img, "--prompt", "algebra", "--model", "gemini-test")
	require.NoError(t, err)
	assert.Equal(t, "Question: 2+2? Solution: 4\n", out)
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, "algebra", gw.last.PromptText)
	assert.Equal(t, "image/png", gw.last.ImageMIMEType)
	assert.Equal(t, "gemini-test", gw.model)
}

func TestSolveCommand_MissingPrompt(t *testing.T) {
	gw := setup(t)
	img := writeImage(t, "page.png")

	_, errOut, err := run("solve", "--image", img)
	assert.ErrorIs(t, err, solve.ErrMissingPrompt)
	assert.Contains(t, errOut, solve.UserMessage(solve.ErrMissingPrompt))
	assert.Zero(t, gw.calls)
}

func TestSolveCommand_MissingImage(t *testing.T) {
	gw := setup(t)

	_, _, err := run("solve", "--prompt", "history")
	assert.ErrorIs(t, err, solve.ErrMissingImage)
	assert.Zero(t, gw.calls)
}

func TestSolveCommand_UnreadableImage(t *testing.T) {
	gw := setup(t)

	_, _, err := run("solve", "--prompt", "history", "--image", filepath.Join(t.TempDir(), "gone.png"))
	assert.ErrorIs(t, err, solve.ErrUnreadableImage)
	assert.Zero(t, gw.calls)
}

func TestSolveCommand_MissingAPIKey(t *testing.T) {
	setup(t)
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	out, errOut, err := run("solve", "--prompt", "x", "--image", writeImage(t, "a.png"))
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "GOOGLE_API_KEY")
}

func TestSolveCommand_UnknownFlag(t *testing.T) {
	gw := setup(t)

	_, errOut, err := run("solve", "--bogus")
	require.Error(t, err)
	assert.Contains(t, errOut, "unknown flag: --bogus")
	assert.Zero(t, gw.calls)
}

func TestSolveCommand_MissingInstructionFile(t *testing.T) {
	gw := setup(t)
	t.Setenv("INSTRUCTION_FILE", filepath.Join(t.TempDir(), "missing.txt"))

	_, errOut, err := run("solve", "--prompt", "x", "--image", writeImage(t, "a.png"))
	require.Error(t, err)
	assert.Contains(t, errOut, "missing.txt")
	assert.Zero(t, gw.calls)
}

func TestSolveCommand_UserMessagePrintedOnce(t *testing.T) {
	setup(t)

	_, errOut, err := run("solve", "--prompt", "history")
	assert.ErrorIs(t, err, solve.ErrMissingImage)
	assert.Equal(t, solve.UserMessage(solve.ErrMissingImage)+"\n", errOut)
}
