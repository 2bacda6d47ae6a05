package application

import (
	"context"
	"strconv"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"

	"go.uber.org/zap"
)

const (
	CmdStart  = "start"
	CmdPrice  = "price"
	CmdID     = "id"
	CmdUpdate = "update"
)

const (
	replyGreeting      = "Hello!"
	replyChannelEdited = "Channel message updated."
	replyChannelSent   = "Sent new message to channel."
	replyChannelFailed = "Failed to update channel message."
	replyNothingToDo   = "No message to update."
)

// Event is an inbound chat action, already stripped of platform types.
type Event struct {
	UpdateID int
	ChatID   int64
	ChatKind domain.ChatKind
	UserID   int64
	// Command is the bot command without the leading slash, empty for other messages.
	Command string
	// NewMemberIDs lists users that joined the chat in a membership event.
	NewMemberIDs []int64
}

type DispatcherConfig struct {
	AdminID   int64
	ChannelID int64
	// BotID is the bot's own user id, used to spot "bot added to chat" events.
	BotID int64
}

type Dispatcher struct {
	cfg       DispatcherConfig
	messenger Messenger
	quotes    *QuoteService
	tracker   *Tracker
	idem      IdempotencyStore
	log       *zap.Logger
}

func NewDispatcher(cfg DispatcherConfig, messenger Messenger, quotes *QuoteService, tracker *Tracker, idem IdempotencyStore, log *zap.Logger) *Dispatcher {
	if idem == nil {
		idem = NoopIdempotency{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{cfg: cfg, messenger: messenger, quotes: quotes, tracker: tracker, idem: idem, log: log}
}

func (d *Dispatcher) Handle(ctx context.Context, ev Event) {
	log := d.log.With(
		zap.Int("update_id", ev.UpdateID),
		zap.Int64("chat_id", ev.ChatID),
		zap.String("chat_kind", string(ev.ChatKind)),
		zap.Int64("user_id", ev.UserID),
	)

	ok, err := d.idem.TryReserve(ctx, "update:"+strconv.Itoa(ev.UpdateID))
	if err != nil {
		log.Warn("dispatch.dedupe_failed", zap.Error(err))
	} else if !ok {
		log.Info("dispatch.duplicate_update")
		return
	}

	if d.botJoined(ev) {
		log.Info("dispatch.bot_added")
		d.tracker.PublishOrUpdate(ctx, ev.ChatID, d.quoteText(ctx))
		return
	}

	if ev.Command == "" {
		return
	}
	log = log.With(zap.String("command", ev.Command))
	log.Info("dispatch.command")

	switch ev.Command {
	case CmdStart:
		d.reply(ctx, log, ev.ChatID, replyGreeting)
	case CmdPrice:
		d.reply(ctx, log, ev.ChatID, d.quoteText(ctx))
	case CmdID:
		d.reply(ctx, log, ev.ChatID, strconv.FormatInt(ev.ChatID, 10))
	case CmdUpdate:
		d.handleUpdate(ctx, log, ev)
	}
}

func (d *Dispatcher) handleUpdate(ctx context.Context, log *zap.Logger, ev Event) {
	switch {
	case ev.ChatKind == domain.ChatPrivate && ev.UserID == d.cfg.AdminID:
		out := d.tracker.PublishOrUpdate(ctx, d.cfg.ChannelID, d.quoteText(ctx))
		switch out.Kind {
		case OutcomeEdited:
			d.reply(ctx, log, ev.ChatID, replyChannelEdited)
		case OutcomeSent:
			d.reply(ctx, log, ev.ChatID, replyChannelSent)
		default:
			log.Error("dispatch.channel_update_failed", zap.Error(out.Err))
			d.reply(ctx, log, ev.ChatID, replyChannelFailed)
		}
	case ev.ChatKind == domain.ChatPrivate:
		d.reply(ctx, log, ev.ChatID, d.quoteText(ctx))
	case ev.ChatKind.IsGroup():
		out := d.tracker.PublishOrUpdate(ctx, ev.ChatID, d.quoteText(ctx))
		if !out.OK() {
			log.Error("dispatch.group_update_failed", zap.Error(out.Err))
		}
	default:
		d.reply(ctx, log, ev.ChatID, replyNothingToDo)
	}
}

func (d *Dispatcher) botJoined(ev Event) bool {
	if d.cfg.BotID == 0 {
		return false
	}
	for _, id := range ev.NewMemberIDs {
		if id == d.cfg.BotID {
			return true
		}
	}
	return false
}

func (d *Dispatcher) quoteText(ctx context.Context) string {
	return FormatQuote(d.quotes.Quote(ctx))
}

func (d *Dispatcher) reply(ctx context.Context, log *zap.Logger, chatID int64, text string) {
	if _, err := d.messenger.Send(ctx, chatID, text); err != nil {
		log.Warn("dispatch.reply_failed", zap.Error(err))
	}
}
