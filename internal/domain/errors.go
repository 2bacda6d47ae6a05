package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// Scraping failures. Both are recoverable: callers fall back to the cached value.
	ErrFetch   = errors.New("fetch failed")
	ErrExtract = errors.New("extract failed")

	// Chat platform failures reported by the Telegram API.
	ErrMessageNotModified = errors.New("message is not modified")
	ErrMessageUneditable  = errors.New("message cannot be edited")
	ErrChatForbidden      = errors.New("chat forbidden")
	ErrPlatformRejected   = errors.New("platform rejected request")
)

// IsPlatformAnswer reports whether err carries an explicit answer from the chat
// platform, as opposed to a transport failure where the outcome is unknown.
func IsPlatformAnswer(err error) bool {
	return errors.Is(err, ErrMessageNotModified) ||
		errors.Is(err, ErrMessageUneditable) ||
		errors.Is(err, ErrChatForbidden) ||
		errors.Is(err, ErrPlatformRejected)
}
