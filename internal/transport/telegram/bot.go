package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/internal/service/chat"
	"github.com/sandevgo/raider/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

type Bot struct {
	bot     *tele.Bot
	chat    *chat.Chat
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	chat *chat.Chat,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return newBot(ctx, b, cfg.GetTelegramOwnerID(), chat), nil
}

func newBot(ctx context.Context, b *tele.Bot, ownerID int64, chat *chat.Chat) *Bot {
	bot := &Bot{
		bot:     b,
		chat:    chat,
		sender:  newSender(b),
		ownerID: ownerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if !bot.allowed(c.Sender()) {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)

	return bot
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) allowed(u *tele.User) bool {
	return u != nil && u.ID == b.ownerID
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx, _ := c.Get(baseContextKey).(context.Context)
	if ctx == nil {
		ctx = context.Background()
	}
	sessionID := sessionID(c.Chat())
	ctx = log.WithFields(ctx, "session", sessionID)

	text := c.Text()
	if !strings.HasPrefix(strings.TrimSpace(text), "/") {
		// Notify user we are working
		_ = c.Notify(tele.Typing)
	}

	reply := b.chat.Handle(ctx, sessionID, text)
	return b.sender.sendMarkdown(ctx, c.Recipient(), reply, false)
}

func sessionID(chat *tele.Chat) string {
	if chat == nil {
		return "telegram-unknown"
	}
	return fmt.Sprintf("telegram-%d", chat.ID)
}
