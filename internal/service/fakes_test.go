package service

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/telefly/internal/charts"
	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/model"
)

const (
	testUserID = int64(42)
	testChatID = int64(1042)
)

var testNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

// memStore хранит сессии в сериализованном виде, как настоящее хранилище
type memStore struct {
	sessions map[int64][]byte
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[int64][]byte)}
}

func (s *memStore) GetSession(ctx context.Context, userID int64) (*model.Session, error) {
	data, ok := s.sessions[userID]
	if !ok {
		return model.NewSession(userID), nil
	}
	session := &model.Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *memStore) SaveSession(ctx context.Context, session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.UserID] = data
	return nil
}

type fakeLedger struct {
	baseURL string
	token   string

	accounts   map[firefly.AccountType][]firefly.Resource
	categories []firefly.Resource
	budgets    []firefly.Resource
	listErr    error

	stored      []firefly.TransactionSplit
	storeResult *firefly.StoredSplit
	storeErr    error

	insights      []firefly.InsightEntry
	insightErr    error
	insightPeriod [2]time.Time
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		accounts: map[firefly.AccountType][]firefly.Resource{
			firefly.AccountAsset:   {{ID: "7", Name: "Checking"}, {ID: "8", Name: "Savings"}},
			firefly.AccountExpense: {{ID: "3", Name: "Cafe"}, {ID: "4", Name: "Shop"}},
		},
		categories: []firefly.Resource{{ID: "5", Name: "Food"}},
		budgets:    []firefly.Resource{{ID: "2", Name: "Monthly"}},
		storeResult: &firefly.StoredSplit{
			Amount:                "12.500000000000",
			CurrencySymbol:        "€",
			CurrencyDecimalPlaces: 2,
			Description:           "Lunch",
			SourceName:            "Checking",
			DestinationName:       "Cafe",
		},
	}
}

func (l *fakeLedger) ListAccounts(ctx context.Context, accountType firefly.AccountType) ([]firefly.Resource, error) {
	if l.listErr != nil {
		return nil, l.listErr
	}
	return l.accounts[accountType], nil
}

func (l *fakeLedger) ListCategories(ctx context.Context) ([]firefly.Resource, error) {
	if l.listErr != nil {
		return nil, l.listErr
	}
	return l.categories, nil
}

func (l *fakeLedger) ListBudgets(ctx context.Context) ([]firefly.Resource, error) {
	if l.listErr != nil {
		return nil, l.listErr
	}
	return l.budgets, nil
}

func (l *fakeLedger) StoreTransaction(ctx context.Context, split firefly.TransactionSplit) (*firefly.StoredSplit, error) {
	l.stored = append(l.stored, split)
	if l.storeErr != nil {
		return nil, l.storeErr
	}
	return l.storeResult, nil
}

func (l *fakeLedger) ExpensesByCategory(ctx context.Context, start, end time.Time) ([]firefly.InsightEntry, error) {
	l.insightPeriod = [2]time.Time{start, end}
	if l.insightErr != nil {
		return nil, l.insightErr
	}
	return l.insights, nil
}

type outMessage struct {
	MessageID int
	Edited    bool
	Reply     Reply
}

type sentPhoto struct {
	Name    string
	Caption string
}

type fakeMessenger struct {
	nextID   int
	messages []outMessage
	cleared  []int
	photos   []sentPhoto

	sendErr error
	editErr error
}

func (m *fakeMessenger) Send(chatID int64, reply Reply) (int, error) {
	if m.sendErr != nil {
		return 0, m.sendErr
	}
	m.nextID++
	m.messages = append(m.messages, outMessage{MessageID: m.nextID, Reply: reply})
	return m.nextID, nil
}

func (m *fakeMessenger) Edit(chatID int64, messageID int, reply Reply) error {
	if m.editErr != nil {
		return m.editErr
	}
	m.messages = append(m.messages, outMessage{MessageID: messageID, Edited: true, Reply: reply})
	return nil
}

func (m *fakeMessenger) ClearButtons(chatID int64, messageID int) error {
	m.cleared = append(m.cleared, messageID)
	return nil
}

func (m *fakeMessenger) SendPhoto(chatID int64, name string, data []byte, caption string) error {
	m.photos = append(m.photos, sentPhoto{Name: name, Caption: caption})
	return nil
}

// rendered возвращает последнее содержимое сообщения
func (m *fakeMessenger) rendered(messageID int) outMessage {
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].MessageID == messageID {
			return m.messages[i]
		}
	}
	return outMessage{}
}

func (m *fakeMessenger) last() outMessage {
	if len(m.messages) == 0 {
		return outMessage{}
	}
	return m.messages[len(m.messages)-1]
}

type fakeCharts struct {
	slices []charts.Slice
	err    error
}

func (c *fakeCharts) GenerateCategoryPieChart(title string, slices []charts.Slice) ([]byte, error) {
	c.slices = slices
	if c.err != nil {
		return nil, c.err
	}
	return []byte("png"), nil
}

type harness struct {
	t      *testing.T
	ctrl   *Controller
	store  *memStore
	ledger *fakeLedger
	out    *fakeMessenger
	charts *fakeCharts
	opened int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := logrus.New()
	logger.Out = io.Discard

	h := &harness{
		t:      t,
		store:  newMemStore(),
		ledger: newFakeLedger(),
		out:    &fakeMessenger{nextID: 100},
		charts: &fakeCharts{},
	}
	factory := func(baseURL, token string) Ledger {
		h.opened++
		h.ledger.baseURL = baseURL
		h.ledger.token = token
		return h.ledger
	}
	h.ctrl = NewController(h.store, factory, h.charts, logger)
	h.ctrl.now = func() time.Time { return testNow }
	return h
}

func (h *harness) handle(ev Event) {
	h.t.Helper()
	require.NoError(h.t, h.handleErr(ev))
}

func (h *harness) handleErr(ev Event) error {
	ev.UserID = testUserID
	ev.ChatID = testChatID
	return h.ctrl.Handle(context.Background(), h.out, ev)
}

func (h *harness) text(text string) {
	h.t.Helper()
	h.handle(Event{Kind: EventText, Text: text})
}

func (h *harness) command(name string) {
	h.t.Helper()
	h.handle(Event{Kind: EventCommand, Command: name, Text: "/" + name})
}

// press нажимает кнопку на последнем показанном меню
func (h *harness) press(data string) {
	h.t.Helper()
	h.handle(h.button(h.session().PendingMessage, data))
}

// button - нажатие на клавиатуру в том виде, в каком сообщение было показано последним
func (h *harness) button(messageID int, data string) Event {
	return Event{Kind: EventButton, Data: data, Step: h.out.rendered(messageID).Reply.Step, MessageID: messageID}
}

func (h *harness) session() *model.Session {
	h.t.Helper()
	session, err := h.store.GetSession(context.Background(), testUserID)
	require.NoError(h.t, err)
	return session
}

func (h *harness) configure() {
	h.t.Helper()
	h.command("start")
	h.text("https://ledger.example")
	h.text("tok123")
	h.press("7")
}
