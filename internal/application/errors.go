package application

import (
	"errors"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

var ErrNotFound = domain.ErrNotFound
var ErrMissingToken = errors.New("bot token is not set (API)")
