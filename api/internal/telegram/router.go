package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"brainy-ai/api/internal/solve"
	"brainy-ai/api/internal/util"
)

// Bot is the subset of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Router struct {
	Bot    Bot
	Solver *solve.Solver
	// Download fetches a Telegram file URL; defaults to an HTTP GET.
	Download func(ctx context.Context, url string) ([]byte, error)

	queues chatQueues
}

func NewRouter(bot Bot, solver *solve.Solver) *Router {
	return &Router{Bot: bot, Solver: solver, Download: download}
}

// Dispatch hands upd to HandleUpdate without blocking. Updates of one chat
// are handled sequentially in the order Dispatch saw them.
func (r *Router) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID
	if r.queues.push(cid, upd) {
		go r.queues.drain(ctx, cid, r.HandleUpdate)
	}
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.HandleCommand(cid, msg.Command())
		return
	}

	prompt := msg.Caption
	if prompt == "" {
		prompt = msg.Text
	}
	upload := r.uploadFrom(ctx, msg)

	if upload != nil && strings.TrimSpace(prompt) != "" {
		r.send(cid, "Reading your Questions and generating Solutions...")
	}
	res, err := r.Solver.Solve(ctx, prompt, upload)
	if err != nil {
		r.SendError(cid, err)
		return
	}
	r.SendResult(cid, res.Text)
}

func (r *Router) HandleCommand(chatID int64, cmd string) {
	switch cmd {
	case "start", "help":
		r.send(chatID, welcomeText)
	case "health":
		r.send(chatID, "✅ OK: "+r.Solver.Gateway().Name())
	default:
		r.send(chatID, "Unknown command. Send a photo of your document with a caption describing what you need.")
	}
}

// uploadFrom returns nil when the message carries no image. The file is
// fetched lazily, so incomplete submissions never download anything.
func (r *Router) uploadFrom(ctx context.Context, msg *tgbotapi.Message) *solve.Upload {
	var fileID, mime, name string
	switch {
	case len(msg.Photo) > 0:
		// самое большое превью идёт последним
		fileID = msg.Photo[len(msg.Photo)-1].FileID
		mime = "image/jpeg"
	case msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/"):
		fileID = msg.Document.FileID
		mime = msg.Document.MimeType
		name = msg.Document.FileName
	default:
		return nil
	}
	return &solve.Upload{
		Filename: name,
		MIMEType: mime,
		Body: &lazyFile{fetch: func() ([]byte, error) {
			url, err := r.Bot.GetFileDirectURL(fileID)
			if err != nil {
				return nil, err
			}
			return r.Download(ctx, url)
		}},
	}
}

func (r *Router) send(chatID int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("telegram send to %d: %v", chatID, err)
	}
}

func (r *Router) SendResult(chatID int64, text string) {
	r.send(chatID, util.Truncate("Here is the solution:\n\n"+text, maxMessageLen))
}

func (r *Router) SendError(chatID int64, err error) {
	r.send(chatID, fmt.Sprintf("⚠️ %s", solve.UserMessage(err)))
}

const welcomeText = `Welcome to Brainy AI!
Effortlessly extract questions from academic documents and get detailed solutions.

Send a photo of your document (JPG or PNG) with a caption describing what you need, for example "algebra homework".
Commands: /health`
