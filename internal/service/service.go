package service

import (
	"context"
	"time"

	"github.com/ivanoskov/telefly/internal/charts"
	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/model"
)

// SessionStore определяет интерфейс хранилища сессий
type SessionStore interface {
	GetSession(ctx context.Context, userID int64) (*model.Session, error)
	SaveSession(ctx context.Context, session *model.Session) error
}

// Ledger - методы Firefly III, которые нужны диалогу
type Ledger interface {
	ListAccounts(ctx context.Context, accountType firefly.AccountType) ([]firefly.Resource, error)
	ListCategories(ctx context.Context) ([]firefly.Resource, error)
	ListBudgets(ctx context.Context) ([]firefly.Resource, error)
	StoreTransaction(ctx context.Context, split firefly.TransactionSplit) (*firefly.StoredSplit, error)
	ExpensesByCategory(ctx context.Context, start, end time.Time) ([]firefly.InsightEntry, error)
}

// LedgerFactory создаёт клиент Firefly III по настройкам пользователя
type LedgerFactory func(baseURL, token string) Ledger

// ChartRenderer рисует круговую диаграмму в PNG
type ChartRenderer interface {
	GenerateCategoryPieChart(title string, slices []charts.Slice) ([]byte, error)
}

// Reply - исходящее сообщение: текст и, возможно, меню из кнопок
type Reply struct {
	Text     string
	Markdown bool
	Menu     model.Menu
	// Step - шаг диалога, которому принадлежат кнопки меню. Возвращается в Event.Step при нажатии.
	Step string
}

// Messenger отправляет и редактирует сообщения в чате
type Messenger interface {
	Send(chatID int64, reply Reply) (int, error)
	Edit(chatID int64, messageID int, reply Reply) error
	ClearButtons(chatID int64, messageID int) error
	SendPhoto(chatID int64, name string, data []byte, caption string) error
}

type EventKind int

const (
	EventText EventKind = iota
	EventCommand
	EventButton
)

func (k EventKind) String() string {
	switch k {
	case EventText:
		return "text"
	case EventCommand:
		return "command"
	case EventButton:
		return "button"
	}
	return "unknown"
}

// Event - входящее сообщение или нажатие кнопки
type Event struct {
	UserID int64
	ChatID int64
	Kind   EventKind
	// Text - текст сообщения для EventText
	Text string
	// Command - имя команды без слэша для EventCommand
	Command string
	// Data - ID нажатой кнопки для EventButton
	Data string
	// Step - шаг, для которого было построено меню с нажатой кнопкой
	Step string
	// MessageID - сообщение, к которому была прикреплена нажатая кнопка
	MessageID int
}
