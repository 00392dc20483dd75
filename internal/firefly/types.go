package firefly

// AccountType - фильтр типа счёта в Firefly III
type AccountType string

const (
	AccountAsset   AccountType = "asset"
	AccountExpense AccountType = "expense"
)

// Resource - счёт, категория или бюджет: всё, что нужно для кнопки меню
type Resource struct {
	ID   string
	Name string
}

// TransactionSplit - тело одной части транзакции для POST /api/v1/transactions
type TransactionSplit struct {
	Type            string `json:"type"`
	Date            string `json:"date"`
	Amount          string `json:"amount"`
	Description     string `json:"description"`
	SourceID        string `json:"source_id,omitempty"`
	DestinationID   string `json:"destination_id,omitempty"`
	DestinationName string `json:"destination_name,omitempty"`
	CategoryID      string `json:"category_id,omitempty"`
	CategoryName    string `json:"category_name,omitempty"`
	BudgetID        string `json:"budget_id,omitempty"`
}

// StoredSplit - сохранённая часть транзакции в том виде, в каком её вернул Firefly III
type StoredSplit struct {
	Amount                string `json:"amount"`
	CurrencySymbol        string `json:"currency_symbol"`
	CurrencyCode          string `json:"currency_code"`
	CurrencyDecimalPlaces int    `json:"currency_decimal_places"`
	Description           string `json:"description"`
	SourceName            string `json:"source_name"`
	DestinationName       string `json:"destination_name"`
	CategoryName          string `json:"category_name"`
	BudgetName            string `json:"budget_name"`
}

// InsightEntry - сумма расходов по одной категории за период
type InsightEntry struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Difference      string  `json:"difference"`
	DifferenceFloat float64 `json:"difference_float"`
	CurrencyCode    string  `json:"currency_code"`
}

type listResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"data"`
	Meta struct {
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

type storeRequest struct {
	Transactions []TransactionSplit `json:"transactions"`
}

type storeResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Transactions []StoredSplit `json:"transactions"`
		} `json:"attributes"`
	} `json:"data"`
}
