package service

import (
	"fmt"
	"strings"

	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/model"
)

type stepFunc func(c *Controller, t *turn) error

// transitions - обработчик события для каждого состояния диалога.
// Команды обрабатываются до таблицы, нажатия на устаревшие меню отбрасываются.
var transitions = map[model.State]stepFunc{
	model.StateIdle:               (*Controller).onIdle,
	model.StateAwaitURL:           (*Controller).onURL,
	model.StateAwaitToken:         (*Controller).onToken,
	model.StateAwaitSourceAccount: (*Controller).onSourceAccount,
	model.StateAwaitDestination:   (*Controller).onDestination,
	model.StateAwaitCategory:      (*Controller).onCategory,
	model.StateAwaitBudget:        (*Controller).onBudget,
}

func (c *Controller) onIdle(t *turn) error {
	amount, description, ok := ParseEntry(t.ev.Text)
	if !ok || !t.session.Configured() {
		return c.help(t)
	}

	t.session.Draft = model.NewDraft(amount, description, t.session.SpendingAccount, c.now())
	return c.requestDestination(t)
}

func (c *Controller) onURL(t *turn) error {
	if t.ev.Kind != EventText {
		return nil
	}

	ledgerURL, ok := normalizeURL(t.ev.Text)
	if !ok {
		return c.send(t, Reply{Text: invalidURLText})
	}

	t.session.LedgerURL = ledgerURL
	t.session.State = model.StateAwaitToken
	return c.send(t, Reply{Text: fmt.Sprintf(tokenTextFormat, ledgerURL), Markdown: true})
}

func (c *Controller) onToken(t *turn) error {
	if t.ev.Kind != EventText {
		return nil
	}

	t.session.Token = strings.TrimSpace(t.ev.Text)
	return c.requestSourceAccount(t)
}

func (c *Controller) onSourceAccount(t *turn) error {
	if t.ev.Kind != EventButton {
		return c.requestSourceAccount(t)
	}

	t.session.SpendingAccount = t.ev.Data
	t.session.State = model.StateIdle
	return c.conclude(t, Reply{Text: configuredText, Markdown: true})
}

func (c *Controller) onDestination(t *turn) error {
	if t.ev.Kind == EventButton {
		t.session.Draft.Destination = model.ByID(t.ev.Data)
		return c.requestCategory(t)
	}

	name := strings.TrimSpace(t.ev.Text)
	if name == "" {
		return c.requestDestination(t)
	}
	t.session.Draft.Destination = model.ByName(name)
	return c.requestCategory(t)
}

func (c *Controller) onCategory(t *turn) error {
	if t.ev.Kind == EventButton {
		t.session.Draft.Category = nil
		if id, ok := selectedID(t.ev.Data); ok {
			t.session.Draft.Category = model.ByID(id)
		}
		return c.requestBudget(t)
	}

	name := strings.TrimSpace(t.ev.Text)
	if name == "" {
		return c.requestCategory(t)
	}
	t.session.Draft.Category = model.ByName(name)
	return c.requestBudget(t)
}

// onBudget принимает только кнопки: бюджет нельзя создать по имени
func (c *Controller) onBudget(t *turn) error {
	if t.ev.Kind != EventButton {
		return c.requestBudget(t)
	}

	t.session.Draft.BudgetID = ""
	if id, ok := selectedID(t.ev.Data); ok {
		t.session.Draft.BudgetID = id
	}
	return c.submit(t)
}

func (c *Controller) requestSourceAccount(t *turn) error {
	accounts, err := t.api(c).ListAccounts(t.ctx, firefly.AccountAsset)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", t.ev.UserID).Warn("Controller.RequestSourceAccount.Error")
		c.stripPending(t)
		t.session.State = model.StateAwaitToken
		return c.send(t, Reply{Text: failureText("fetch accounts", err) + "\nSend your token again or use /cancel.", Markdown: true})
	}
	if len(accounts) == 0 {
		c.stripPending(t)
		t.session.State = model.StateAwaitToken
		return c.send(t, Reply{Text: noAssetAccountsText})
	}

	t.session.State = model.StateAwaitSourceAccount
	return c.prompt(t, Reply{Text: sourceAccountText, Menu: BuildMenu(menuOptions(accounts), false)})
}

func (c *Controller) requestDestination(t *turn) error {
	accounts, err := t.api(c).ListAccounts(t.ctx, firefly.AccountExpense)
	if err != nil {
		return c.abort(t, "fetch accounts", err)
	}

	t.session.State = model.StateAwaitDestination
	return c.prompt(t, Reply{Text: destinationText, Markdown: true, Menu: BuildMenu(menuOptions(accounts), false)})
}

func (c *Controller) requestCategory(t *turn) error {
	categories, err := t.api(c).ListCategories(t.ctx)
	if err != nil {
		return c.abort(t, "fetch categories", err)
	}

	t.session.State = model.StateAwaitCategory
	return c.prompt(t, Reply{Text: categoryText, Markdown: true, Menu: BuildMenu(menuOptions(categories), true)})
}

func (c *Controller) requestBudget(t *turn) error {
	budgets, err := t.api(c).ListBudgets(t.ctx)
	if err != nil {
		return c.abort(t, "fetch budgets", err)
	}

	t.session.State = model.StateAwaitBudget
	return c.prompt(t, Reply{Text: budgetText, Markdown: true, Menu: BuildMenu(menuOptions(budgets), true)})
}

// submit отправляет черновик в Firefly III. Черновик отбрасывается при любом исходе.
func (c *Controller) submit(t *turn) error {
	split := toSplit(t.session.Draft)
	t.session.Draft = nil
	t.written = true

	stored, err := t.api(c).StoreTransaction(t.ctx, split)
	if err != nil {
		return c.abort(t, "create a transaction", err)
	}

	t.session.Reset()
	return c.conclude(t, Reply{Text: createdText(stored), Markdown: true})
}
