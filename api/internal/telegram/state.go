package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	maxMessageLen = 3900
)

// chatQueues runs the updates of one chat one at a time, in arrival order.
// Different chats proceed in parallel. A chat's worker exits once its queue
// drains and is started again by the next update.
type chatQueues struct {
	mu      sync.Mutex
	pending map[int64][]tgbotapi.Update
}

// push queues upd and reports whether the caller must start a worker.
func (q *chatQueues) push(chatID int64, upd tgbotapi.Update) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[int64][]tgbotapi.Update)
	}
	list, running := q.pending[chatID]
	q.pending[chatID] = append(list, upd)
	return !running
}

// pop returns the next update of the chat, or false when the queue is empty;
// in that case the chat's worker slot is released.
func (q *chatQueues) pop(chatID int64) (tgbotapi.Update, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	list := q.pending[chatID]
	if len(list) == 0 {
		delete(q.pending, chatID)
		return tgbotapi.Update{}, false
	}
	upd := list[0]
	q.pending[chatID] = list[1:]
	return upd, true
}

func (q *chatQueues) drain(ctx context.Context, chatID int64, handle func(context.Context, tgbotapi.Update)) {
	for {
		upd, ok := q.pop(chatID)
		if !ok {
			return
		}
		handle(ctx, upd)
	}
}
