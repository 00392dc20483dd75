package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/telefly/internal/service"
)

func (b *Bot) Send(chatID int64, reply service.Reply) (int, error) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if len(reply.Menu) > 0 {
		msg.ReplyMarkup = getMenuKeyboard(reply.Menu, reply.Step)
	}

	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

// Edit заменяет текст сообщения. Без меню кнопки с сообщения пропадают.
func (b *Bot) Edit(chatID int64, messageID int, reply service.Reply) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, reply.Text)
	if reply.Markdown {
		edit.ParseMode = tgbotapi.ModeMarkdown
	}
	if len(reply.Menu) > 0 {
		keyboard := getMenuKeyboard(reply.Menu, reply.Step)
		edit.ReplyMarkup = &keyboard
	}

	_, err := b.api.Request(edit)
	return err
}

func (b *Bot) ClearButtons(chatID int64, messageID int) error {
	_, err := b.api.Request(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, emptyKeyboard()))
	return err
}

func (b *Bot) SendPhoto(chatID int64, name string, data []byte, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	photo.Caption = caption

	_, err := b.api.Send(photo)
	return err
}
