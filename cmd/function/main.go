package main

import (
	"context"
	"net/http"

	"github.com/ivanoskov/telefly/internal/bot"
	"github.com/ivanoskov/telefly/internal/charts"
	"github.com/ivanoskov/telefly/internal/config"
	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/logging"
	"github.com/ivanoskov/telefly/internal/repository"
	"github.com/ivanoskov/telefly/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler обрабатывает одно webhook-обновление. Файловое хранилище
// здесь бесполезно, поэтому функцию стоит запускать с SESSION_BACKEND=supabase или postgres.
func Handler(ctx context.Context, request Request) (*Response, error) {
	update, err := bot.DecodeUpdate([]byte(request.Body))
	if err != nil {
		return response(http.StatusBadRequest, err.Error()), nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}
	logger := logging.SetupLogging(cfg.LogLevel)

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		return errorResponse(err)
	}
	defer repo.Close()

	ledger := func(baseURL, token string) service.Ledger {
		return firefly.NewClient(baseURL, token, http.DefaultClient)
	}
	controller := service.NewController(repo, ledger, charts.NewChartGenerator(), logger)

	b, err := bot.NewBot(cfg.TelegramToken, controller, logger)
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook(ctx, update); err != nil {
		logger.WithError(err).Error("Handler.HandleWebhook")
		return errorResponse(err)
	}

	return response(http.StatusOK, ""), nil
}

func errorResponse(err error) (*Response, error) {
	return response(http.StatusInternalServerError, err.Error()), nil
}

func response(status int, body string) *Response {
	return &Response{
		StatusCode: status,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}

func main() {
	// Точка входа для локального тестирования
}
