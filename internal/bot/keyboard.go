package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/telefly/internal/model"
)

// callbackSeparator отделяет шаг диалога от ID варианта в callback data: "await_budget:2"
const callbackSeparator = ":"

func getMenuKeyboard(menu model.Menu, step string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(menu))
	for _, options := range menu {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(options))
		for _, option := range options {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(option.Label, callbackData(step, option.ID)))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// emptyKeyboard убирает все кнопки с сообщения
func emptyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
}

func callbackData(step, id string) string {
	if step == "" {
		return id
	}
	return step + callbackSeparator + id
}

// parseCallbackData возвращает шаг и ID варианта. Данные без шага целиком считаются ID.
func parseCallbackData(data string) (string, string) {
	step, id, ok := strings.Cut(data, callbackSeparator)
	if !ok {
		return "", data
	}
	return step, id
}
