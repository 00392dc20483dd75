package service

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/telefly/internal/firefly"
)

const (
	configureText = "Hi! Let's configure your bot.\n\nWhat is your Firefly III URL?"

	invalidURLText = "That does not look like a Firefly III URL. Please send an address starting with http:// or https://."

	tokenTextFormat = "What is your [Personal Access Token](%s/profile)?"

	sourceAccountText = "From which account do you want to spend?"

	noAssetAccountsText = "There are no asset accounts in your Firefly III. Create one, then send your token again or use /cancel."

	configuredText = "All set! Simply type your expense and a description. E.g., `10 Coffee with friends`. Or use /help to get more details."

	destinationText = "Where or to whom did you pay the money (*Expense account*)?\nYou can also type your answer."

	categoryText = "Which *category* does it fall in?\nYou can also type your answer."

	budgetText = "Is there a *budget* for this?\nPlease, select from the list."

	cancelledText = "Cancelled"

	notConfiguredText = "The bot is not fully configured. Use /configure to initiate the configuration process."

	helpText = "Just type in your an expense with a description, to start creating a transaction. E.g., `5 Coffee with friends`.\n\n" +
		"Afterwards, you will be asked to provide destination account, category and budget. You can select from the presented list or, " +
		"in case of destination account and category, type in your answer. If there is no account or category with typed in name, " +
		"it will be created automatically.\n\n" +
		"You can cancel the creation of transaction at any time, by simply sending /cancel.\n\n" +
		"Use /report to see this month's expenses by category.\n\n" +
		"Use /configure to change your Firefly III URL, personal access token, and account."

	aboutText = "*Telefly III - A Telegram bot for Firefly III*\n\n" +
		"This is a Telegram bot for [Firefly III](https://www.firefly-iii.org/), which you can use to submit your expenses on the go. " +
		"You start entering a new transaction by sending an amount and a description (e.g., `5 Coffee with friends`). " +
		"Afterwards, *Telefly III* will ask you about the destination account, category, and budget. " +
		"These will be fetched from your Firefly III installation and presented as a list of buttons. " +
		"In case of destination account and category, you can either select an option from the list, or you can type your answer directly. " +
		"If there's no such account or category, it will be created automatically. " +
		"As for the budget, you can only select the one from the list. " +
		"There's also an option not to specify category or budget by selecting *(none)*."

	createdTextFormat = "The following transaction was created successfully:\n" +
		"_%s_ -> *%s-%s* -> _%s_\n" +
		"Description: _%s_\n" +
		"Category: _%s_\n" +
		"Budget: _%s_"
)

func escape(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}

// failureText формирует сообщение об ошибке Firefly III
func failureText(action string, err error) string {
	return fmt.Sprintf("Failed to %s: *%s*", action, escape(firefly.Reason(err)))
}

// formatAmount округляет сумму до количества знаков валюты
func formatAmount(amount string, places int) string {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}
	return value.StringFixed(int32(places))
}

func orNone(name string) string {
	if name == "" {
		return noneLabel
	}
	return name
}

func createdText(split *firefly.StoredSplit) string {
	return fmt.Sprintf(createdTextFormat,
		escape(split.SourceName),
		escape(split.CurrencySymbol),
		formatAmount(split.Amount, split.CurrencyDecimalPlaces),
		escape(split.DestinationName),
		escape(split.Description),
		escape(orNone(split.CategoryName)),
		escape(orNone(split.BudgetName)),
	)
}
