package bot

// User-visible reply texts. The wording is part of the bot's contract, so
// keep it stable.
const (
	ReplyGreeting = "👋 Hi! I’m your accountability coach.\n" +
		"Use /log <what you ate/did> (e.g., /log 2 eggs + dal).\n" +
		"Try /status to see your count."
	ReplyPong       = "pong"
	ReplyLogUsage   = "Usage: /log 2 eggs + dal + rice"
	ReplyStartFirst = "Send /start first."
	ReplyFallback   = "I understand: /start, /ping, /log, /status"
	ReplyFailure    = "⚠️ Something went wrong, please try again."

	replySavedLogFmt = "✅ Saved log: %s"
	replyStatusFmt   = "📊 You’ve logged %d entries."
)
