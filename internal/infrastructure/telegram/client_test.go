package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// fakeBotAPI answers Bot API calls under /bot<token>/<method>.
type fakeBotAPI struct {
	mu      sync.Mutex
	calls   []string
	forms   []map[string]string
	answers map[string]string
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	_ = r.ParseForm()
	form := map[string]string{}
	for k := range r.PostForm {
		form[k] = r.PostForm.Get(k)
	}
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.forms = append(f.forms, form)
	answer, ok := f.answers[method]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case method == "getMe":
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":555,"is_bot":true,"first_name":"Dollar","username":"dollar_bot"}}`))
	case ok:
		_, _ = w.Write([]byte(answer))
	default:
		_, _ = w.Write([]byte(`{"ok":false,"error_code":404,"description":"Not Found"}`))
	}
}

func newTestClient(t *testing.T, answers map[string]string) (*Client, *fakeBotAPI) {
	t.Helper()
	fake := &fakeBotAPI{answers: answers}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	c, err := New("123:abc", srv.URL+"/bot%s/%s", srv.Client(), 5*time.Second, false)
	require.NoError(t, err)
	return c, fake
}

func apiError(code int, desc string) string {
	b, _ := json.Marshal(map[string]any{"ok": false, "error_code": code, "description": desc})
	return string(b)
}

func TestNew_MissingToken(t *testing.T) {
	t.Parallel()
	_, err := New("", "http://127.0.0.1:1/bot%s/%s", nil, 0, false)
	require.ErrorIs(t, err, application.ErrMissingToken)
}

func TestClient_Identity(t *testing.T) {
	t.Parallel()
	c, _ := newTestClient(t, nil)
	require.Equal(t, int64(555), c.BotID())
	require.Equal(t, "dollar_bot", c.Username())
}

func TestClient_Send(t *testing.T) {
	t.Parallel()
	c, fake := newTestClient(t, map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":42,"date":0,"chat":{"id":-100,"type":"channel"}}}`,
	})
	id, err := c.Send(context.Background(), -100, "hello")
	require.NoError(t, err)
	require.Equal(t, 42, id)

	last := fake.forms[len(fake.forms)-1]
	require.Equal(t, "-100", last["chat_id"])
	require.Equal(t, "hello", last["text"])
}

func TestClient_Send_BoundedByRequestTimeout(t *testing.T) {
	t.Parallel()
	fake := &fakeBotAPI{answers: map[string]string{
		"sendMessage": `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":-100,"type":"channel"}}}`,
	}}
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/sendMessage") {
			select {
			case <-time.After(3 * time.Second):
			case <-r.Context().Done():
				return
			}
		}
		fake.ServeHTTP(w, r)
	})
	srv := httptest.NewServer(slow)
	t.Cleanup(srv.Close)
	c, err := New("123:abc", srv.URL+"/bot%s/%s", srv.Client(), 100*time.Millisecond, false)
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Send(context.Background(), -100, "hello")
	require.Error(t, err)
	require.False(t, domain.IsPlatformAnswer(err))
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_Edit(t *testing.T) {
	t.Parallel()
	c, fake := newTestClient(t, map[string]string{
		"editMessageText": `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":-100,"type":"channel"}}}`,
	})
	require.NoError(t, c.Edit(context.Background(), -100, 7, "new"))

	last := fake.forms[len(fake.forms)-1]
	require.Equal(t, "editMessageText", fake.calls[len(fake.calls)-1])
	require.Equal(t, "7", last["message_id"])
	require.Equal(t, "new", last["text"])
}

func TestClient_Edit_ClassifiesAnswers(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		body string
		want error
	}{
		{"not modified", apiError(400, "Bad Request: message is not modified: specified new message content and reply markup are exactly the same"), domain.ErrMessageNotModified},
		{"deleted", apiError(400, "Bad Request: message to edit not found"), domain.ErrMessageUneditable},
		{"too old", apiError(400, "Bad Request: message can't be edited"), domain.ErrMessageUneditable},
		{"kicked", apiError(403, "Forbidden: bot was kicked from the channel chat"), domain.ErrChatForbidden},
		{"rights", apiError(400, "Bad Request: not enough rights to edit messages"), domain.ErrChatForbidden},
		{"flood", apiError(429, "Too Many Requests: retry after 5"), domain.ErrPlatformRejected},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c, _ := newTestClient(t, map[string]string{"editMessageText": tc.body})
			err := c.Edit(context.Background(), -100, 7, "x")
			require.ErrorIs(t, err, tc.want)
			require.True(t, domain.IsPlatformAnswer(err))
		})
	}
}

func TestClassifyErr_Transport(t *testing.T) {
	t.Parallel()
	err := classifyErr(errors.New("dial tcp: connection refused"))
	require.Error(t, err)
	require.False(t, domain.IsPlatformAnswer(err))

	err = classifyErr(&tgbotapi.Error{Code: 400, Message: "Bad Request: MESSAGE_ID_INVALID"})
	require.ErrorIs(t, err, domain.ErrMessageUneditable)
}

func TestClient_CancelledContext(t *testing.T) {
	t.Parallel()
	c, fake := newTestClient(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Send(ctx, 1, "x")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, []string{"getMe"}, fake.calls)
}
