package model

import (
	"fmt"
	"time"
)

// State определяет шаг диалога, на котором находится пользователь
type State int

const (
	StateIdle State = iota
	StateAwaitURL
	StateAwaitToken
	StateAwaitSourceAccount
	StateAwaitDestination
	StateAwaitCategory
	StateAwaitBudget
)

var stateNames = [...]string{
	StateIdle:               "idle",
	StateAwaitURL:           "await_url",
	StateAwaitToken:         "await_token",
	StateAwaitSourceAccount: "await_source_account",
	StateAwaitDestination:   "await_destination",
	StateAwaitCategory:      "await_category",
	StateAwaitBudget:        "await_budget",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// InTransaction сообщает, что на этом шаге должен существовать черновик транзакции
func (s State) InTransaction() bool {
	return s == StateAwaitDestination || s == StateAwaitCategory || s == StateAwaitBudget
}

func (s State) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(stateNames) {
		return nil, fmt.Errorf("unknown state %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", string(text))
}

// Session хранит настройки и текущее состояние диалога пользователя
type Session struct {
	UserID          int64             `json:"user_id"`
	LedgerURL       string            `json:"firefly_url,omitempty"`
	Token           string            `json:"firefly_token,omitempty"`
	SpendingAccount string            `json:"spending_account,omitempty"`
	State           State             `json:"state"`
	PendingMessage  int               `json:"pending_message_id,omitempty"`
	Draft           *TransactionDraft `json:"draft,omitempty"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// NewSession возвращает пустую сессию для пользователя, который пишет впервые
func NewSession(userID int64) *Session {
	return &Session{UserID: userID, State: StateIdle}
}

// Configured сообщает, закончена ли настройка бота
func (s *Session) Configured() bool {
	return s.SpendingAccount != ""
}

// Reset возвращает диалог в исходное состояние, не трогая настройки
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = nil
	s.PendingMessage = 0
}
