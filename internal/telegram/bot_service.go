// Package telegram integrates with the Telegram Bot API to alert moderators
// about reported chat messages and let them resolve reports from the chat.
package telegram

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"meetgogo/backend/internal/models"
	"meetgogo/backend/internal/moderation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotService posts report alerts into a moderator chat and handles the
// /reports and /resolve commands there.
type BotService struct {
	BotAPI     *tgbotapi.BotAPI
	Moderation *moderation.Service
	// ModChatID is the Telegram chat all alerts and commands go through.
	ModChatID int64
}

func NewBotService(token string, modChatID int64, mod *moderation.Service) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)

	return &BotService{
		BotAPI:     bot,
		Moderation: mod,
		ModChatID:  modChatID,
	}, nil
}

// NotifyReport implements moderation.Notifier.
func (s *BotService) NotifyReport(r *models.MessageReport) {
	text := fmt.Sprintf(
		"🚩 New report #%d\nEvent: %s\nMessage: %d\nReporter: %s\nReason: %s\n\nResolve with /resolve %d",
		r.ID, r.EventID, r.MessageID, r.ReporterID, r.Reason, r.ID,
	)
	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(s.ModChatID, text)); err != nil {
		log.Printf("ERROR: Failed to send report alert to Telegram: %v", err)
	}
}

// Run polls Telegram for moderator commands. Blocks until the update
// channel closes.
func (s *BotService) Run() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := s.BotAPI.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil || update.Message.Chat.ID != s.ModChatID {
			continue
		}
		s.handleCommand(update.Message)
	}
}

func (s *BotService) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "reports":
		s.reply(s.listReports())
	case "resolve":
		s.reply(s.resolveReport(strings.TrimSpace(msg.CommandArguments())))
	}
}

func (s *BotService) listReports() string {
	reports, err := s.Moderation.OpenReports(context.Background())
	if err != nil {
		log.Printf("ERROR: Failed to list open reports: %v", err)
		return "Failed to load reports."
	}
	if len(reports) == 0 {
		return "No open reports."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Open reports (%d):\n", len(reports))
	for _, r := range reports {
		fmt.Fprintf(&b, "#%d event %s message %d — %s\n", r.ID, r.EventID, r.MessageID, r.Reason)
	}
	return b.String()
}

func (s *BotService) resolveReport(arg string) string {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return "Usage: /resolve <report id>"
	}
	if err := s.Moderation.Resolve(context.Background(), uint(id)); err != nil {
		log.Printf("ERROR: Failed to resolve report %d: %v", id, err)
		return fmt.Sprintf("Failed to resolve report #%d.", id)
	}
	return fmt.Sprintf("Report #%d resolved.", id)
}

func (s *BotService) reply(text string) {
	if _, err := s.BotAPI.Send(tgbotapi.NewMessage(s.ModChatID, text)); err != nil {
		log.Printf("ERROR: Failed to reply in moderator chat: %v", err)
	}
}
