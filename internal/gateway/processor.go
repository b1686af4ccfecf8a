package gateway

import (
	"context"
	log "log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"accountability-coach/internal/bot"
	"accountability-coach/internal/dedupe"
	"accountability-coach/internal/logger"
)

// ReplySender sends one outbound message. *tgbotapi.BotAPI satisfies it;
// tests plug in a recorder.
type ReplySender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Processor is the shared downstream of both ingestion modes: it takes a
// raw update, routes it, and sends the reply. Reply-send failures are
// logged and swallowed so transport retries stay a platform concern.
type Processor struct {
	router *bot.Router
	sender ReplySender
	guard  *dedupe.Guard
}

func NewProcessor(router *bot.Router, sender ReplySender, guard *dedupe.Guard) *Processor {
	return &Processor{router: router, sender: sender, guard: guard}
}

// HandleUpdate processes one update end to end. Malformed or non-message
// updates are a logged no-op, never an error.
func (p *Processor) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	ctx = logger.WithTraceID(ctx, uuid.NewString())

	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		log.InfoContext(ctx, "skipping update without text message",
			log.Int("update_id", update.UpdateID),
		)
		return
	}

	if p.guard.Seen(ctx, update.UpdateID) {
		log.InfoContext(ctx, "skipping redelivered update",
			log.Int("update_id", update.UpdateID),
			log.Int64("chat_id", msg.Chat.ID),
		)
		return
	}

	reply := p.router.Dispatch(ctx, msg.Chat.ID, msg.Text)

	if _, err := p.sender.Send(tgbotapi.NewMessage(msg.Chat.ID, reply)); err != nil {
		log.ErrorContext(ctx, "send reply failed",
			log.Int64("chat_id", msg.Chat.ID),
			log.Any("err", err),
		)
	}
}
