package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// Client is the Telegram Bot API adapter. api carries long polling; out carries
// sendMessage and editMessageText with a short per-request timeout, since
// tgbotapi ignores contexts and an in-flight call cannot be cancelled.
type Client struct {
	api *tgbotapi.BotAPI
	out *tgbotapi.BotAPI
}

var _ application.Messenger = (*Client)(nil)

// New authenticates with getMe. endpoint is a "…/bot%s/%s" format; empty means
// the public Bot API. requestTimeout bounds each send or edit; zero reuses
// httpClient as is.
func New(token, endpoint string, httpClient *http.Client, requestTimeout time.Duration, debug bool) (*Client, error) {
	if token == "" {
		return nil, application.ErrMissingToken
	}
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	api.Debug = debug
	c := &Client{api: api, out: api}
	if requestTimeout > 0 {
		c.out = outbound(api, endpoint, httpClient, requestTimeout)
	}
	return c, nil
}

func outbound(api *tgbotapi.BotAPI, endpoint string, base *http.Client, timeout time.Duration) *tgbotapi.BotAPI {
	out := &tgbotapi.BotAPI{
		Token:  api.Token,
		Debug:  api.Debug,
		Buffer: api.Buffer,
		Self:   api.Self,
		Client: &http.Client{Transport: base.Transport, Jar: base.Jar, Timeout: timeout},
	}
	out.SetAPIEndpoint(endpoint)
	return out
}

// BotID is the bot's own user id, used to spot it among new chat members.
func (c *Client) BotID() int64 { return c.api.Self.ID }

func (c *Client) Username() string { return c.api.Self.UserName }

func (c *Client) Send(ctx context.Context, chatID int64, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg, err := c.out.Send(tgbotapi.NewMessage(chatID, text))
	if err != nil {
		return 0, classifyErr(err)
	}
	return msg.MessageID, nil
}

func (c *Client) Edit(ctx context.Context, chatID int64, messageID int, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := c.out.Request(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		return classifyErr(err)
	}
	return nil
}

var (
	notModifiedMarkers = []string{"message is not modified"}
	uneditableMarkers  = []string{"message to edit not found", "message can't be edited", "message_id_invalid"}
	forbiddenMarkers   = []string{"not enough rights", "chat not found", "bot was kicked", "bot is not a member", "have no rights", "chat_write_forbidden"}
)

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// classifyErr maps Bot API answers onto domain sentinels. Errors that never
// reached the API (network, timeouts, bad JSON) are returned as is.
func classifyErr(err error) error {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("telegram transport: %w", err)
	}
	desc := strings.ToLower(apiErr.Message)
	switch {
	case containsAny(desc, notModifiedMarkers):
		return fmt.Errorf("%w: %s", domain.ErrMessageNotModified, apiErr.Message)
	case containsAny(desc, uneditableMarkers):
		return fmt.Errorf("%w: %s", domain.ErrMessageUneditable, apiErr.Message)
	case apiErr.Code == http.StatusForbidden || containsAny(desc, forbiddenMarkers):
		return fmt.Errorf("%w: %s", domain.ErrChatForbidden, apiErr.Message)
	default:
		return fmt.Errorf("%w: %d %s", domain.ErrPlatformRejected, apiErr.Code, apiErr.Message)
	}
}
