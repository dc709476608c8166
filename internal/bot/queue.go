package bot

import (
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// userQueue runs updates of the same user one at a time, in arrival order.
// Different users are handled in parallel.
type userQueue struct {
	mutex   sync.Mutex
	pending map[int64][]tgbotapi.Update
	handle  func(tgbotapi.Update)
}

func newUserQueue(handle func(tgbotapi.Update)) *userQueue {
	return &userQueue{
		pending: make(map[int64][]tgbotapi.Update),
		handle:  handle,
	}
}

// Push queues the update; a worker is started when the user has none running.
func (q *userQueue) Push(update tgbotapi.Update) {
	key := updateKey(update)

	q.mutex.Lock()
	queued, running := q.pending[key]
	q.pending[key] = append(queued, update)
	q.mutex.Unlock()

	if !running {
		go q.drain(key)
	}
}

// drain owns the user's entry in pending until the queue runs empty.
func (q *userQueue) drain(key int64) {
	for {
		q.mutex.Lock()
		queued := q.pending[key]
		if len(queued) == 0 {
			delete(q.pending, key)
			q.mutex.Unlock()
			return
		}
		next := queued[0]
		q.pending[key] = queued[1:]
		q.mutex.Unlock()

		q.handle(next)
	}
}

func updateKey(update tgbotapi.Update) int64 {
	msg := update.Message
	switch {
	case msg == nil:
		return 0
	case msg.From != nil:
		return msg.From.ID
	case msg.Chat != nil:
		return msg.Chat.ID
	default:
		return 0
	}
}
