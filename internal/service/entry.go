package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/model"
)

var entryPattern = regexp.MustCompile(`(?s)^([0-9]+(?:[.,][0-9]+)?) (.+)$`)

// ParseEntry разбирает сообщение вида "<сумма> <описание>".
// Запятая в сумме заменяется на точку, исходное количество знаков сохраняется.
func ParseEntry(text string) (amount, description string, ok bool) {
	match := entryPattern.FindStringSubmatch(text)
	if match == nil {
		return "", "", false
	}

	amount = strings.Replace(match[1], ",", ".", 1)
	if _, err := decimal.NewFromString(amount); err != nil {
		return "", "", false
	}

	description = strings.TrimSpace(match[2])
	if description == "" {
		return "", "", false
	}
	return amount, description, true
}

// selectedID возвращает ID выбранной кнопки; "(none)" и нечисловые ID не считаются выбором
func selectedID(data string) (string, bool) {
	id, err := strconv.Atoi(data)
	if err != nil || id <= 0 {
		return "", false
	}
	return data, true
}

func toSplit(draft *model.TransactionDraft) firefly.TransactionSplit {
	split := firefly.TransactionSplit{
		Type:        draft.Type,
		Date:        draft.Date,
		Amount:      draft.Amount,
		Description: draft.Description,
		SourceID:    draft.SourceID,
		BudgetID:    draft.BudgetID,
	}
	if draft.Destination != nil {
		split.DestinationID = draft.Destination.ID
		split.DestinationName = draft.Destination.Name
	}
	if draft.Category != nil {
		split.CategoryID = draft.Category.ID
		split.CategoryName = draft.Category.Name
	}
	return split
}
