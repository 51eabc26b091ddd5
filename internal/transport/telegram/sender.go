package telegram

import (
	"context"
	"strings"

	"github.com/sandevgo/raider/pkg/conv"
	"github.com/sandevgo/raider/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if needed.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string, silent bool) error {
	logger := log.FromCtx(ctx)

	for i, chunk := range renderChunks(md) {
		opts := []interface{}{tele.ModeHTML}
		if silent && i == 0 {
			opts = append(opts, tele.Silent)
		}

		if _, err := s.bot.Send(to, chunk, opts...); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

func renderChunks(md string) []string {
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))
	if html == "" {
		return nil
	}
	return conv.SplitMessage(html, maxTelegramMsgLen)
}
