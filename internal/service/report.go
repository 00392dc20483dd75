package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ivanoskov/telefly/internal/charts"
	"github.com/ivanoskov/telefly/internal/firefly"
)

const maxReportLines = 20

type expenseLine struct {
	label  string
	amount decimal.Decimal
	code   string
}

// report отправляет диаграмму расходов по категориям за текущий месяц
func (c *Controller) report(t *turn) error {
	if !t.session.Configured() {
		return c.help(t)
	}

	now := c.now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	period := now.Format("January 2006")

	entries, err := t.api(c).ExpensesByCategory(t.ctx, start, now)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", t.ev.UserID).Warn("Controller.Report.Error")
		return c.send(t, Reply{Text: failureText("fetch expenses", err), Markdown: true})
	}

	lines := expenseLines(entries)
	if len(lines) == 0 {
		return c.send(t, Reply{Text: fmt.Sprintf("No expenses recorded in %s yet.", period)})
	}

	title := "Expenses in " + period
	caption := reportCaption(title, lines)

	slices := make([]charts.Slice, 0, len(lines))
	for _, line := range lines {
		value, _ := line.amount.Float64()
		slices = append(slices, charts.Slice{
			Label: fmt.Sprintf("%s: %s %s", line.label, line.amount.StringFixed(2), line.code),
			Value: value,
		})
	}

	image, err := c.charts.GenerateCategoryPieChart(title, slices)
	if err != nil {
		c.logger.WithError(err).WithField("user_id", t.ev.UserID).Warn("Controller.Report.ChartError")
		return c.send(t, Reply{Text: caption})
	}

	if err := t.out.SendPhoto(t.ev.ChatID, "expenses.png", image, caption); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}
	return nil
}

// expenseLines переводит расходы в положительные суммы и сортирует по убыванию
func expenseLines(entries []firefly.InsightEntry) []expenseLine {
	lines := make([]expenseLine, 0, len(entries))
	for _, entry := range entries {
		amount, err := decimal.NewFromString(entry.Difference)
		if err != nil {
			amount = decimal.NewFromFloat(entry.DifferenceFloat)
		}
		amount = amount.Abs()
		if amount.IsZero() {
			continue
		}

		label := entry.Name
		if label == "" {
			label = noneLabel
		}
		lines = append(lines, expenseLine{label: label, amount: amount, code: entry.CurrencyCode})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].amount.GreaterThan(lines[j].amount)
	})
	return lines
}

func reportCaption(title string, lines []expenseLine) string {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n")
	for i, line := range lines {
		if i == maxReportLines {
			fmt.Fprintf(&b, "and %d more", len(lines)-maxReportLines)
			break
		}
		fmt.Fprintf(&b, "%s: %s %s\n", line.label, line.amount.StringFixed(2), line.code)
	}
	return strings.TrimRight(b.String(), "\n")
}
