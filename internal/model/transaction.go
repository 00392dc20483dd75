package model

import "time"

const (
	TransactionTypeWithdrawal = "withdrawal"
	dateLayout                = "2006-01-02"
)

// Ref ссылается на объект в Firefly III либо по ID, либо по имени.
// Объект с указанным именем создаётся на стороне Firefly III, если его ещё нет.
type Ref struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

func ByID(id string) *Ref {
	return &Ref{ID: id}
}

func ByName(name string) *Ref {
	return &Ref{Name: name}
}

// TransactionDraft - транзакция, которая собирается по шагам диалога
type TransactionDraft struct {
	Type        string `json:"type"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	SourceID    string `json:"source_id"`
	Destination *Ref   `json:"destination,omitempty"`
	Category    *Ref   `json:"category,omitempty"`
	BudgetID    string `json:"budget_id,omitempty"`
}

// NewDraft создаёт черновик расхода с текущей датой
func NewDraft(amount, description, sourceID string, now time.Time) *TransactionDraft {
	return &TransactionDraft{
		Type:        TransactionTypeWithdrawal,
		Date:        now.Format(dateLayout),
		Amount:      amount,
		Description: description,
		SourceID:    sourceID,
	}
}
