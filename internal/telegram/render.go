package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/lo"

	"github.com/chowbot/chowbot/internal/order"
)

// markupFor converts the engine's button rows into an inline keyboard. The
// second value is false when there is nothing to attach; Telegram rejects
// empty keyboards, so callers skip the markup entirely in that case.
func markupFor(rows [][]order.Button) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	keyboard := lo.Map(rows, func(row []order.Button, _ int) []tgbotapi.InlineKeyboardButton {
		return lo.Map(row, func(b order.Button, _ int) tgbotapi.InlineKeyboardButton {
			return tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data)
		})
	})
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...), true
}

// userFrom maps a Telegram sender to the engine's identity type. FirstName
// is always set for real accounts; the username covers the rest.
func userFrom(u *tgbotapi.User) order.User {
	name := u.FirstName
	if name == "" {
		name = u.UserName
	}
	return order.User{ID: u.ID, Name: name}
}
