package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/popdeck/pop/internal/concurrency"
	"github.com/popdeck/pop/internal/config"
	"github.com/popdeck/pop/internal/errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier shows notifications as Telegram messages with an inline
// keyboard per button. Keyboard callbacks flow back as button clicks.
type TelegramNotifier struct {
	token         string
	chatID        int64
	updateTimeout int
	buttonHandler ButtonHandler

	bot     *tgbotapi.BotAPI
	updates tgbotapi.UpdatesChannel

	mu   sync.Mutex
	live map[string]int // notification ID -> telegram message ID
}

func NewTelegramNotifier(cfg config.TelegramConfig, buttonHandler ButtonHandler) *TelegramNotifier {
	updateTimeout := cfg.UpdateTimeout
	if updateTimeout <= 0 {
		updateTimeout = config.DefaultTelegramUpdateTimeout
	}
	return &TelegramNotifier{
		token:         cfg.BotToken,
		chatID:        cfg.ChatID,
		updateTimeout: updateTimeout,
		buttonHandler: buttonHandler,
		live:          make(map[string]int),
	}
}

func (t *TelegramNotifier) Name() string {
	return "telegram"
}

// Start connects the bot and begins consuming callback updates.
func (t *TelegramNotifier) Start(ctx context.Context) error {
	var err error
	t.bot, err = tgbotapi.NewBotAPI(t.token)
	if err != nil {
		return errors.Wrap(err, "failed to init telegram bot")
	}

	slog.Info("Telegram notifier started", "user", t.bot.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = t.updateTimeout

	t.updates = t.bot.GetUpdatesChan(u)

	concurrency.SafeGo(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update := <-t.updates:
				t.handleUpdate(ctx, update)
			}
		}
	}, nil)

	return nil
}

func (t *TelegramNotifier) Stop(ctx context.Context) error {
	if t.bot != nil {
		t.bot.StopReceivingUpdates()
	}
	return nil
}

func (t *TelegramNotifier) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery

	// Acknowledge so the client stops its spinner
	if _, err := t.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		slog.Warn("Failed to ack telegram callback", "error", err)
	}

	notificationID, buttonIndex, err := parseCallbackData(callback.Data)
	if err != nil {
		slog.Warn("Unrecognized telegram callback payload", "data", callback.Data)
		return
	}

	if t.buttonHandler != nil {
		t.buttonHandler(ctx, notificationID, buttonIndex)
	}
}

func (t *TelegramNotifier) Show(ctx context.Context, n Notification) error {
	if t.bot == nil {
		return errors.Unavailable("telegram bot not started")
	}

	text := n.Message
	if n.Title != "" {
		text = fmt.Sprintf("*%s*\n%s", n.Title, n.Message)
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if len(n.Buttons) > 0 {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(n.Buttons))
		for i, label := range n.Buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackData(n.ID, i)))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(row)
	}

	// Same ID replaces the live notification
	if err := t.Clear(ctx, n.ID); err != nil {
		slog.Debug("Failed to clear previous notification", "id", n.ID, "error", err)
	}

	sent, err := t.bot.Send(msg)
	if err != nil {
		return errors.MapError(err)
	}

	t.mu.Lock()
	t.live[n.ID] = sent.MessageID
	t.mu.Unlock()

	slog.Debug("Telegram notification sent", "id", n.ID, "message_id", sent.MessageID)
	return nil
}

func (t *TelegramNotifier) Clear(ctx context.Context, id string) error {
	if t.bot == nil {
		return nil
	}

	t.mu.Lock()
	messageID, ok := t.live[id]
	delete(t.live, id)
	t.mu.Unlock()

	if !ok {
		return nil
	}

	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(t.chatID, messageID)); err != nil {
		return errors.MapError(err)
	}
	return nil
}

func (t *TelegramNotifier) Health(ctx context.Context) error {
	if t.bot == nil {
		return errors.Transient("telegram bot not initialized")
	}

	if _, err := t.bot.GetMe(); err != nil {
		return errors.Transient("telegram connection failed: " + err.Error())
	}

	return nil
}

func callbackData(notificationID string, buttonIndex int) string {
	return fmt.Sprintf("%s:%d", notificationID, buttonIndex)
}

func parseCallbackData(data string) (string, int, error) {
	idx := strings.LastIndex(data, ":")
	if idx <= 0 {
		return "", 0, errors.InvalidInput("malformed callback data")
	}

	buttonIndex, err := strconv.Atoi(data[idx+1:])
	if err != nil {
		return "", 0, errors.InvalidInput("malformed callback index")
	}
	return data[:idx], buttonIndex, nil
}
