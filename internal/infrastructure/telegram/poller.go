package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// Handler consumes inbound events.
type Handler interface {
	Handle(ctx context.Context, ev application.Event)
}

// Poller long-polls getUpdates and feeds events to the handler one at a time.
type Poller struct {
	api     *tgbotapi.BotAPI
	handler Handler
	timeout int
	log     *zap.Logger
}

func NewPoller(c *Client, handler Handler, timeoutSec int, log *zap.Logger) *Poller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{api: c.api, handler: handler, timeout: timeoutSec, log: log}
}

// Start blocks until ctx is cancelled.
func (p *Poller) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = p.timeout
	u.AllowedUpdates = []string{"message", "channel_post"}

	updates := p.api.GetUpdatesChan(u)
	defer p.api.StopReceivingUpdates()

	p.log.Info("poller.started", zap.String("bot", p.api.Self.UserName))
	for {
		select {
		case <-ctx.Done():
			p.log.Info("poller.stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := ToEvent(upd, p.api.Self.UserName)
			if !ok {
				continue
			}
			p.handler.Handle(ctx, ev)
		}
	}
}

// ToEvent strips an update down to what the dispatcher needs. Updates without a
// message or channel post are dropped, as are commands addressed to another bot
// ("/price@other_bot").
func ToEvent(upd tgbotapi.Update, botName string) (application.Event, bool) {
	msg := upd.Message
	if msg == nil {
		msg = upd.ChannelPost
	}
	if msg == nil || msg.Chat == nil {
		return application.Event{}, false
	}
	ev := application.Event{
		UpdateID: upd.UpdateID,
		ChatID:   msg.Chat.ID,
		ChatKind: domain.ChatKind(msg.Chat.Type),
	}
	if msg.From != nil {
		ev.UserID = msg.From.ID
	}
	if msg.IsCommand() && addressedTo(msg.CommandWithAt(), botName) {
		ev.Command = msg.Command()
	}
	for _, m := range msg.NewChatMembers {
		ev.NewMemberIDs = append(ev.NewMemberIDs, m.ID)
	}
	return ev, true
}

func addressedTo(commandWithAt, botName string) bool {
	_, target, found := strings.Cut(commandWithAt, "@")
	if !found {
		return true
	}
	return strings.EqualFold(target, botName)
}
