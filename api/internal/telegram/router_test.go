package telegram

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brainy-ai/api/internal/solve"
)

var testJPEG = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

type fakeBot struct {
	mu   sync.Mutex
	sent []string
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		b.sent = append(b.sent, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return "https://files.example/" + fileID, nil
}

type fakeGateway struct {
	calls int
	last  solve.UserRequest
	text  string
	err   error
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) GenerateSolution(_ context.Context, req solve.UserRequest, _ string, _ solve.SafetyPolicy) (solve.Result, error) {
	g.calls++
	g.last = req
	if g.err != nil {
		return solve.Result{}, g.err
	}
	return solve.Result{Kind: solve.ResultText, Text: g.text}, nil
}

func newTestRouter(gw *fakeGateway) (*Router, *fakeBot, *[]string) {
	bot := &fakeBot{}
	r := NewRouter(bot, solve.NewSolver(gw, "INSTRUCTION", solve.DefaultPolicy()))
	var fetched []string
	r.Download = func(_ context.Context, url string) ([]byte, error) {
		fetched = append(fetched, url)
		return testJPEG, nil
	}
	return r, bot, &fetched
}

func photoUpdate(caption string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: 42},
		Caption: caption,
		Photo: []tgbotapi.PhotoSize{
			{FileID: "small", Width: 90, Height: 90},
			{FileID: "large", Width: 1280, Height: 1280},
		},
	}}
}

func TestHandleUpdate_PhotoWithCaption(t *testing.T) {
	gw := &fakeGateway{text: "Question: 2+2? Solution: 4"}
	r, bot, fetched := newTestRouter(gw)

	r.HandleUpdate(context.Background(), photoUpdate("algebra"))

	require.Equal(t, 1, gw.calls)
	assert.Equal(t, "algebra", gw.last.PromptText)
	assert.Equal(t, testJPEG, gw.last.Image)
	assert.Equal(t, "image/jpeg", gw.last.ImageMIMEType)
	assert.Equal(t, []string{"https://files.example/large"}, *fetched)

	require.Len(t, bot.sent, 2)
	assert.Contains(t, bot.sent[0], "generating Solutions")
	assert.Equal(t, "Here is the solution:\n\nQuestion: 2+2? Solution: 4", bot.sent[1])
}

func TestHandleUpdate_PhotoWithoutCaption(t *testing.T) {
	gw := &fakeGateway{}
	r, bot, fetched := newTestRouter(gw)

	r.HandleUpdate(context.Background(), photoUpdate(""))

	assert.Zero(t, gw.calls)
	assert.Empty(t, *fetched, "no download for incomplete submissions")
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], solve.UserMessage(solve.ErrMissingPrompt))
}

func TestHandleUpdate_TextOnly(t *testing.T) {
	gw := &fakeGateway{}
	r, bot, _ := newTestRouter(gw)

	r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 42},
		Text: "history",
	}})

	assert.Zero(t, gw.calls)
	require.Len(t, bot.sent, 1)
	assert.Contains(t, bot.sent[0], solve.UserMessage(solve.ErrMissingImage))
}

func TestHandleUpdate_ImageDocument(t *testing.T) {
	gw := &fakeGateway{text: "ok"}
	r, _, fetched := newTestRouter(gw)
	r.Download = func(context.Context, string) ([]byte, error) {
		*fetched = append(*fetched, "doc")
		return []byte("\x89PNG\r\n\x1a\n0000"), nil
	}

	r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: 7},
		Caption:  "physics",
		Document: &tgbotapi.Document{FileID: "doc-1", FileName: "scan.png", MimeType: "image/png"},
	}})

	require.Equal(t, 1, gw.calls)
	assert.Equal(t, "image/png", gw.last.ImageMIMEType)
}

func TestHandleUpdate_DownloadFailure(t *testing.T) {
	gw := &fakeGateway{}
	r, bot, _ := newTestRouter(gw)
	r.Download = func(context.Context, string) ([]byte, error) {
		return nil, errors.New("status 404")
	}

	r.HandleUpdate(context.Background(), photoUpdate("algebra"))

	assert.Zero(t, gw.calls)
	assert.Contains(t, bot.sent[len(bot.sent)-1], solve.UserMessage(solve.ErrUnreadableImage))
}

func TestHandleUpdate_ExternalError(t *testing.T) {
	gw := &fakeGateway{err: &solve.ExternalServiceError{Provider: "fake", Err: errors.New("503")}}
	r, bot, _ := newTestRouter(gw)

	r.HandleUpdate(context.Background(), photoUpdate("algebra"))

	assert.Contains(t, bot.sent[len(bot.sent)-1], "unavailable")
}

func TestHandleUpdate_Commands(t *testing.T) {
	r, bot, _ := newTestRouter(&fakeGateway{})

	for _, cmd := range []string{"/start", "/health", "/nope"} {
		r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
			Chat:     &tgbotapi.Chat{ID: 1},
			Text:     cmd,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		}})
	}

	require.Len(t, bot.sent, 3)
	assert.Contains(t, bot.sent[0], "Welcome to Brainy AI")
	assert.Equal(t, "✅ OK: fake", bot.sent[1])
	assert.True(t, strings.HasPrefix(bot.sent[2], "Unknown command"))
}

func TestSendResult_Truncates(t *testing.T) {
	r, bot, _ := newTestRouter(&fakeGateway{})

	r.SendResult(1, strings.Repeat("x", 5000))

	require.Len(t, bot.sent, 1)
	assert.LessOrEqual(t, len(bot.sent[0]), maxMessageLen+len("…"))
	assert.True(t, strings.HasSuffix(bot.sent[0], "…"))
}

func TestLazyFile(t *testing.T) {
	calls := 0
	f := &lazyFile{fetch: func() ([]byte, error) {
		calls++
		return []byte("abc"), nil
	}}
	assert.Zero(t, calls)

	buf := make([]byte, 2)
	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(buf[:n]))
	n, _ = f.Read(buf)
	assert.Equal(t, "c", string(buf[:n]))
	assert.Equal(t, 1, calls)
}
