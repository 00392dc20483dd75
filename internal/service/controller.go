package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ivanoskov/telefly/internal/firefly"
	"github.com/ivanoskov/telefly/internal/model"
)

// Controller ведёт диалог настройки и ввода транзакций
type Controller struct {
	store  SessionStore
	ledger LedgerFactory
	charts ChartRenderer
	logger *logrus.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[int64]*userLock
}

// userLock удаляется из Controller.locks, когда его больше никто не ждёт
type userLock struct {
	mu   sync.Mutex
	refs int
}

// NewController создаёт новый экземпляр Controller
func NewController(store SessionStore, ledger LedgerFactory, charts ChartRenderer, logger *logrus.Logger) *Controller {
	return &Controller{
		store:  store,
		ledger: ledger,
		charts: charts,
		logger: logger,
		now:    time.Now,
		locks:  make(map[int64]*userLock),
	}
}

// turn - всё, что нужно одному шагу обработки события
type turn struct {
	ctx     context.Context
	out     Messenger
	ev      Event
	session *model.Session
	ledger  Ledger
	// written выставляется перед записью в Firefly III: после неё сессию надо сохранить при любой ошибке чата
	written bool
}

func (t *turn) api(c *Controller) Ledger {
	if t.ledger == nil {
		t.ledger = c.ledger(t.session.LedgerURL, t.session.Token)
	}
	return t.ledger
}

// Handle обрабатывает одно событие. События одного пользователя обрабатываются строго по очереди.
// Ошибки Firefly III показываются пользователю, наружу возвращаются только ошибки хранилища и чата.
func (c *Controller) Handle(ctx context.Context, out Messenger, ev Event) error {
	unlock := c.lock(ev.UserID)
	defer unlock()

	traceID := uuid.NewString()
	ctx = firefly.WithTraceID(ctx, traceID)

	session, err := c.store.GetSession(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	t := &turn{ctx: ctx, out: out, ev: ev, session: session}
	from := session.State

	if err := c.dispatch(t); err != nil {
		if t.written {
			if saveErr := c.save(ctx, session); saveErr != nil {
				return errors.Join(err, saveErr)
			}
		}
		return err
	}

	if err := c.save(ctx, session); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"user_id":    ev.UserID,
		"event":      ev.Kind.String(),
		"state_from": from.String(),
		"state_to":   session.State.String(),
		"trace_id":   traceID,
	}).Info("Controller.Handle.Complete")
	return nil
}

func (c *Controller) save(ctx context.Context, session *model.Session) error {
	session.UpdatedAt = c.now()
	if err := c.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (c *Controller) lock(userID int64) func() {
	c.mu.Lock()
	l, ok := c.locks[userID]
	if !ok {
		l = &userLock{}
		c.locks[userID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, userID)
		}
		c.mu.Unlock()
	}
}

func (c *Controller) dispatch(t *turn) error {
	if t.ev.Kind == EventCommand {
		return c.handleCommand(t)
	}

	if t.ev.Kind == EventButton {
		if t.ev.MessageID != t.session.PendingMessage {
			c.clearStale(t)
			return nil
		}
		// Меню уже перерисовано для следующего шага, а нажатие пришло со старой клавиатуры
		if t.ev.Step != t.session.State.String() {
			c.logger.WithFields(logrus.Fields{
				"user_id": t.ev.UserID,
				"step":    t.ev.Step,
				"state":   t.session.State.String(),
			}).Debug("Controller.Dispatch.OutdatedButton")
			return nil
		}
	}

	if t.session.State.InTransaction() && t.session.Draft == nil {
		c.logger.WithField("user_id", t.ev.UserID).Warn("Controller.Dispatch.MissingDraft")
		t.session.Reset()
	}

	step, ok := transitions[t.session.State]
	if !ok {
		t.session.Reset()
		step = transitions[model.StateIdle]
	}
	return step(c, t)
}

func (c *Controller) handleCommand(t *turn) error {
	switch t.ev.Command {
	case "start", "configure":
		return c.beginSetup(t)
	case "cancel":
		return c.cancel(t)
	case "about":
		return c.about(t)
	case "report":
		return c.report(t)
	default:
		return c.help(t)
	}
}

func (c *Controller) beginSetup(t *turn) error {
	c.stripPending(t)
	t.session.Reset()
	t.session.State = model.StateAwaitURL
	return c.send(t, Reply{Text: configureText})
}

// cancel сбрасывает черновик и меню. В исходном состоянии отменять нечего, и показывается справка.
func (c *Controller) cancel(t *turn) error {
	if t.session.State == model.StateIdle {
		return c.help(t)
	}

	c.stripPending(t)
	t.session.Reset()
	return c.send(t, Reply{Text: cancelledText})
}

func (c *Controller) help(t *turn) error {
	if !t.session.Configured() {
		return c.send(t, Reply{Text: notConfiguredText})
	}
	return c.send(t, Reply{Text: helpText, Markdown: true})
}

func (c *Controller) about(t *turn) error {
	return c.send(t, Reply{Text: aboutText, Markdown: true})
}

// prompt показывает вопрос. После нажатия кнопки редактируется то же сообщение,
// после текста старое меню очищается и отправляется новое сообщение.
func (c *Controller) prompt(t *turn, reply Reply) error {
	reply.Step = t.session.State.String()
	if t.ev.Kind == EventButton && t.ev.MessageID != 0 {
		if err := t.out.Edit(t.ev.ChatID, t.ev.MessageID, reply); err != nil {
			return fmt.Errorf("failed to edit message: %w", err)
		}
		t.session.PendingMessage = t.ev.MessageID
		return nil
	}

	c.stripPending(t)
	messageID, err := t.out.Send(t.ev.ChatID, reply)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	if len(reply.Menu) > 0 {
		t.session.PendingMessage = messageID
	}
	return nil
}

// conclude показывает итоговое сообщение без кнопок
func (c *Controller) conclude(t *turn, reply Reply) error {
	reply.Menu = nil
	reply.Step = ""
	if t.ev.Kind == EventButton && t.ev.MessageID != 0 {
		t.session.PendingMessage = 0
		if err := t.out.Edit(t.ev.ChatID, t.ev.MessageID, reply); err != nil {
			return fmt.Errorf("failed to edit message: %w", err)
		}
		return nil
	}

	c.stripPending(t)
	return c.send(t, reply)
}

func (c *Controller) send(t *turn, reply Reply) error {
	if _, err := t.out.Send(t.ev.ChatID, reply); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// stripPending убирает кнопки с последнего меню. Ошибка только логируется.
func (c *Controller) stripPending(t *turn) {
	if t.session.PendingMessage == 0 {
		return
	}
	if err := t.out.ClearButtons(t.ev.ChatID, t.session.PendingMessage); err != nil {
		c.logger.WithError(err).WithField("user_id", t.ev.UserID).Warn("Controller.StripPending.Error")
	}
	t.session.PendingMessage = 0
}

// clearStale убирает кнопки со старого меню, нажатие на которое уже ничего не значит
func (c *Controller) clearStale(t *turn) {
	if t.ev.MessageID == 0 {
		return
	}
	if err := t.out.ClearButtons(t.ev.ChatID, t.ev.MessageID); err != nil {
		c.logger.WithError(err).WithField("user_id", t.ev.UserID).Warn("Controller.ClearStale.Error")
	}
}

// abort сообщает об ошибке Firefly III и отбрасывает черновик
func (c *Controller) abort(t *turn, action string, err error) error {
	c.logger.WithError(err).WithField("user_id", t.ev.UserID).Warnf("Controller.%s.Error", t.session.State)
	t.session.Draft = nil
	err = c.conclude(t, Reply{Text: failureText(action, err), Markdown: true})
	t.session.Reset()
	return err
}

func normalizeURL(text string) (string, bool) {
	raw := strings.TrimRight(strings.TrimSpace(text), "/")
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", false
	}
	return raw, true
}
