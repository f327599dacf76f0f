package telegram

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/chowbot/chowbot/internal/bot"
	"github.com/chowbot/chowbot/internal/command"
)

// Transport owns the long-poll loop. It is the single consumer the engine
// relies on for serialization: updates are handled strictly one at a time,
// so the engine and registries never need locks.
type Transport struct {
	api         *tgbotapi.BotAPI
	engine      *bot.Bot
	parser      *command.Parser
	log         *slog.Logger
	pollTimeout int

	started   time.Time
	updates   atomic.Int64
	commands  atomic.Int64
	callbacks atomic.Int64

	// engine gauges mirrored after each update so Snapshot never touches
	// the engine from another goroutine
	conversations atomic.Int64
	orders        atomic.Int64
}

// New authenticates against the Bot API and builds the transport around the
// resulting identity (the parser needs the bot's username to strip mentions).
func New(token string, debug bool, pollTimeout int, engine *bot.Bot, log *slog.Logger) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	api.Debug = debug
	log.Info("Authorized", "bot", api.Self.UserName)

	return &Transport{
		api:         api,
		engine:      engine,
		parser:      command.NewParser(api.Self.UserName),
		log:         log,
		pollTimeout: pollTimeout,
		started:     time.Now(),
	}, nil
}

// Run consumes updates until ctx is cancelled.
func (t *Transport) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = t.pollTimeout

	updates := t.api.GetUpdatesChan(cfg)
	t.log.Info("Long poll started", "bot", t.api.Self.UserName, "timeout", t.pollTimeout)

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			t.log.Info("Long poll stopped")
			return nil
		case update := <-updates:
			t.handleUpdate(update)
		}
	}
}

func (t *Transport) handleUpdate(update tgbotapi.Update) {
	t.updates.Add(1)
	hadOrders := t.engine.HasActiveOrders()

	switch {
	case update.CallbackQuery != nil:
		t.handleCallback(update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		t.handleMessage(update.Message)
	}

	t.publishStats()
	if hasOrders := t.engine.HasActiveOrders(); hasOrders != hadOrders {
		t.log.Info("Active order state changed", "active", hasOrders)
	}
}

func (t *Transport) handleMessage(msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	t.commands.Add(1)
	chatID := msg.Chat.ID

	cmd, perr := t.parser.Parse(msg.Text, t.engine.ActiveOrderNames(chatID))
	var res bot.CommandResult
	if perr != nil {
		res = bot.CommandResult{Message: perr.Message}
	} else {
		res = t.engine.Execute(chatID, userFrom(msg.From), cmd)
	}
	t.log.Debug("Command handled", "chat", chatID, "ok", res.Success)

	reply := tgbotapi.NewMessage(chatID, res.Message)
	reply.ReplyToMessageID = msg.MessageID
	if markup, ok := markupFor(res.Buttons); ok {
		reply.ReplyMarkup = markup
	}
	if _, err := t.api.Send(reply); err != nil {
		t.log.Error("Sending reply failed", "chat", chatID, "err", err)
	}
}

func (t *Transport) handleCallback(q *tgbotapi.CallbackQuery) {
	t.callbacks.Add(1)
	if q.From == nil || q.Message == nil {
		t.log.Warn("Callback without message context", "callback", q.ID)
		return
	}
	chatID := q.Message.Chat.ID

	res, ack := t.engine.HandleCallback(chatID, userFrom(q.From), q.Data, t.isViewReply(q.Message))
	t.log.Debug("Callback handled", "chat", chatID, "ok", res.Success)

	if _, err := t.api.Request(tgbotapi.NewCallback(q.ID, ack)); err != nil {
		t.log.Error("Answering callback failed", "chat", chatID, "err", err)
	}
	if !res.Success {
		// A rejected tap leaves the displayed message as it was.
		return
	}

	var edit tgbotapi.Chattable
	if markup, ok := markupFor(res.Buttons); ok {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, q.Message.MessageID, res.Message, markup)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, q.Message.MessageID, res.Message)
	}
	if _, err := t.api.Send(edit); err != nil {
		t.log.Error("Editing message failed", "chat", chatID, "err", err)
	}
}

// isViewReply reports whether m was sent by the bot in reply to a /view
// command. Taps on such messages re-render every order, not just the tapped
// one. The parser does the matching so mention and case handling stay in one
// place.
func (t *Transport) isViewReply(m *tgbotapi.Message) bool {
	if m.ReplyToMessage == nil || m.ReplyToMessage.Text == "" {
		return false
	}
	cmd, perr := t.parser.Parse(m.ReplyToMessage.Text, nil)
	if perr != nil {
		return false
	}
	_, isView := cmd.(command.View)
	return isView
}

func (t *Transport) publishStats() {
	s := t.engine.Stats()
	t.conversations.Store(int64(s.Conversations))
	t.orders.Store(int64(s.Orders))
}

// Snapshot reports the transport counters and mirrored engine gauges. Safe
// to call from other goroutines.
func (t *Transport) Snapshot() map[string]any {
	return map[string]any{
		"uptime_seconds":       int64(time.Since(t.started).Seconds()),
		"updates":              t.updates.Load(),
		"commands":             t.commands.Load(),
		"callbacks":            t.callbacks.Load(),
		"active_conversations": t.conversations.Load(),
		"active_orders":        t.orders.Load(),
	}
}
