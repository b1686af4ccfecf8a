package gateway

import (
	"context"
	log "log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	pollTimeout  = 60 // seconds, Telegram long-poll wait
	fetchBackoff = 3 * time.Second
)

// Poller is the pull-mode gateway: a single loop fetching update batches
// and processing them sequentially in arrival order. The offset cursor
// advances past each consumed update so a batch is never fetched twice;
// end-to-end delivery stays at-least-once because an update whose reply
// failed to send is not re-fetched here.
type Poller struct {
	api       *tgbotapi.BotAPI
	processor *Processor
}

func NewPoller(api *tgbotapi.BotAPI, processor *Processor) *Poller {
	return &Poller{api: api, processor: processor}
}

// Run polls until ctx is cancelled. Fetch errors back off and retry; they
// never kill the loop.
func (p *Poller) Run(ctx context.Context) error {
	log.Info("start polling updates")

	offset := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := p.api.GetUpdates(tgbotapi.UpdateConfig{
			Offset:  offset,
			Timeout: pollTimeout,
		})
		if err != nil {
			log.Error("fetch updates failed", log.Any("err", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(fetchBackoff):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			p.processor.HandleUpdate(ctx, update)
		}
	}
}
