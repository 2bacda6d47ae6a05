package application

import (
	"context"
	"errors"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

var (
	ErrRepo = errors.New("repo error")
)

type fakeTrackedRepo struct {
	store     map[int64]domain.TrackedMessage
	getErr    error
	upsertErr error
	upserts   int
}

func (f *fakeTrackedRepo) Get(_ context.Context, chatID int64) (domain.TrackedMessage, error) {
	if f.getErr != nil {
		return domain.TrackedMessage{}, f.getErr
	}
	m, ok := f.store[chatID]
	if !ok {
		return domain.TrackedMessage{}, domain.ErrNotFound
	}
	return m, nil
}

func (f *fakeTrackedRepo) Upsert(_ context.Context, m domain.TrackedMessage) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.store == nil {
		f.store = map[int64]domain.TrackedMessage{}
	}
	f.store[m.ChatID] = m
	return nil
}

type sentMsg struct {
	ChatID int64
	Text   string
}

type editedMsg struct {
	ChatID    int64
	MessageID int
	Text      string
}

type fakeMessenger struct {
	nextID  int
	sendErr error
	editErr error
	sent    []sentMsg
	edited  []editedMsg
}

func (f *fakeMessenger) Send(_ context.Context, chatID int64, text string) (int, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, sentMsg{ChatID: chatID, Text: text})
	return f.nextID, nil
}

func (f *fakeMessenger) Edit(_ context.Context, chatID int64, messageID int, text string) error {
	f.edited = append(f.edited, editedMsg{ChatID: chatID, MessageID: messageID, Text: text})
	return f.editErr
}

func (f *fakeMessenger) textsTo(chatID int64) []string {
	var out []string
	for _, m := range f.sent {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

type fakeSource struct {
	out []string
	err []error
	n   int
}

func (f *fakeSource) Fetch(context.Context) (string, error) {
	i := f.n
	f.n++
	var err error
	if i < len(f.err) {
		err = f.err[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(f.out) {
		return f.out[i], nil
	}
	return "", nil
}

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type fakeIdem struct{ seen map[string]bool }

func (f *fakeIdem) TryReserve(_ context.Context, k string) (bool, error) {
	if f.seen == nil {
		f.seen = map[string]bool{}
	}
	if f.seen[k] {
		return false, nil
	}
	f.seen[k] = true
	return true, nil
}
