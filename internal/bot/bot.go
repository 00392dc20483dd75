package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/telefly/internal/service"
)

// Handler обрабатывает события диалога
type Handler interface {
	Handle(ctx context.Context, out service.Messenger, ev service.Event) error
}

type Bot struct {
	api     *tgbotapi.BotAPI
	handler Handler
	logger  *logrus.Logger
}

func NewBot(token string, handler Handler, logger *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:     api,
		handler: handler,
		logger:  logger,
	}, nil
}

// Start запускает бота в режиме long polling и работает до отмены контекста.
// Обновления обрабатываются по одному.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	b.logger.WithField("bot", b.api.Self.UserName).Info("Bot.Start")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handleUpdate(ctx, update); err != nil {
				// Логируем ошибку, но продолжаем работу
				b.logger.WithError(err).WithField("update_id", update.UpdateID).Error("Bot.HandleUpdate.Error")
			}
		}
	}
}

// DecodeUpdate разбирает тело webhook-запроса от Telegram
func DecodeUpdate(body []byte) (tgbotapi.Update, error) {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return tgbotapi.Update{}, fmt.Errorf("failed to decode update: %w", err)
	}
	return update, nil
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(ctx context.Context, update tgbotapi.Update) error {
	return b.handleUpdate(ctx, update)
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	ev, ok := eventFromUpdate(update)
	if !ok {
		return nil
	}

	err := b.handler.Handle(ctx, b, ev)

	// Отвечаем на callback, чтобы убрать loading indicator
	if update.CallbackQuery != nil {
		if _, cbErr := b.api.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); cbErr != nil {
			b.logger.WithError(cbErr).Warn("Bot.AnswerCallback.Error")
		}
	}

	return err
}

// eventFromUpdate переводит обновление Telegram в событие диалога.
// Сообщения без текста и нажатия вне чата пропускаются.
func eventFromUpdate(update tgbotapi.Update) (service.Event, bool) {
	if query := update.CallbackQuery; query != nil {
		if query.From == nil || query.Message == nil || query.Message.Chat == nil {
			return service.Event{}, false
		}
		step, id := parseCallbackData(query.Data)
		return service.Event{
			UserID:    query.From.ID,
			ChatID:    query.Message.Chat.ID,
			Kind:      service.EventButton,
			Data:      id,
			Step:      step,
			MessageID: query.Message.MessageID,
		}, true
	}

	message := update.Message
	if message == nil || message.From == nil || message.Chat == nil || message.Text == "" {
		return service.Event{}, false
	}

	ev := service.Event{
		UserID: message.From.ID,
		ChatID: message.Chat.ID,
		Text:   message.Text,
	}
	if message.IsCommand() {
		ev.Kind = service.EventCommand
		ev.Command = strings.ToLower(message.Command())
		return ev, true
	}

	ev.Kind = service.EventText
	return ev, true
}
