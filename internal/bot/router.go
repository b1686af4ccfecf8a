package bot

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"accountability-coach/internal/repository"
	"accountability-coach/internal/service"
)

// Command is the closed set of commands the bot understands. Parsing
// anything else collapses into CmdUnknown, which shares the fallback reply
// with plain non-command text.
type Command int

const (
	CmdUnknown Command = iota
	CmdStart
	CmdPing
	CmdLog
	CmdStatus
)

// ParseCommand splits a raw message into a command and its argument. The
// command token is matched case-sensitively with the leading slash stripped;
// a @BotName suffix (Telegram group convention) is dropped. The argument is
// the rest of the message with runs of whitespace collapsed.
func ParseCommand(text string) (Command, string) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "/") {
		return CmdUnknown, ""
	}

	fields := strings.Fields(trimmed)
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}
	arg := strings.Join(fields[1:], " ")

	switch name {
	case "start":
		return CmdStart, arg
	case "ping":
		return CmdPing, arg
	case "log":
		return CmdLog, arg
	case "status":
		return CmdStatus, arg
	default:
		return CmdUnknown, ""
	}
}

// Router turns one inbound message into exactly one reply text. It is
// stateless between invocations; everything durable lives in the store.
type Router struct {
	store *repository.Store
}

func NewRouter(store *repository.Store) *Router {
	return &Router{store: store}
}

// Dispatch routes the message for the given chat. Business errors never
// escape: store failures are logged and become the generic failure reply.
func (r *Router) Dispatch(ctx context.Context, chatID int64, text string) string {
	cmd, arg := ParseCommand(text)

	reply, err := r.handle(ctx, chatID, cmd, arg)
	if err != nil {
		log.ErrorContext(ctx, "handler failed",
			log.Int64("chat_id", chatID),
			log.Int("command", int(cmd)),
			log.Any("err", err),
		)
		return ReplyFailure
	}
	return reply
}

func (r *Router) handle(ctx context.Context, chatID int64, cmd Command, arg string) (string, error) {
	switch cmd {
	case CmdStart:
		return r.handleStart(ctx, chatID)
	case CmdPing:
		return ReplyPong, nil
	case CmdLog:
		return r.handleLog(ctx, chatID, arg)
	case CmdStatus:
		return r.handleStatus(ctx, chatID)
	case CmdUnknown:
		return ReplyFallback, nil
	default:
		return ReplyFallback, nil
	}
}

func (r *Router) handleStart(ctx context.Context, chatID int64) (string, error) {
	resolver := service.NewIdentityService(r.store.Users)
	if _, err := resolver.Resolve(ctx, chatID); err != nil {
		return "", err
	}
	return ReplyGreeting, nil
}

// handleLog resolves the identity and appends the entry in one transaction,
// so a failed append never leaves a half-visible write.
func (r *Router) handleLog(ctx context.Context, chatID int64, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		return ReplyLogUsage, nil
	}

	err := r.store.Transaction(ctx, func(tx *repository.Store) error {
		user, err := service.NewIdentityService(tx.Users).Resolve(ctx, chatID)
		if err != nil {
			return err
		}
		_, err = tx.Logs.Append(ctx, user.ID, arg)
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmptyText) {
			return ReplyLogUsage, nil
		}
		return "", err
	}
	return fmt.Sprintf(replySavedLogFmt, arg), nil
}

// handleStatus deliberately does not auto-create the user: a chat that
// never spoke gets pointed at /start instead of a zero count.
func (r *Router) handleStatus(ctx context.Context, chatID int64) (string, error) {
	user, err := r.store.Users.FindByExternalID(ctx, chatID)
	if errors.Is(err, repository.ErrNotFound) {
		return ReplyStartFirst, nil
	}
	if err != nil {
		return "", err
	}

	count, err := r.store.Logs.CountByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(replyStatusFmt, count), nil
}
