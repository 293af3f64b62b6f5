package services

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"ispcrm/internal/models"
)

// Notifier pings managers when a project lands in waiting_approval.
// Both channels are optional; delivery failures are logged, never
// propagated into the request that triggered them.
type Notifier struct {
	mail   EmailSender
	users  UserRepository
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewNotifier(mail EmailSender, users UserRepository, bot *tgbotapi.BotAPI, chatID int64) *Notifier {
	return &Notifier{mail: mail, users: users, bot: bot, chatID: chatID}
}

func (n *Notifier) ProjectPendingApproval(projectID int, leadName, salesName string) {
	if n == nil {
		return
	}
	if n.mail != nil && n.users != nil {
		emails, err := n.users.ListEmailsByRole(models.RoleManager)
		if err != nil {
			log.Warn().Err(err).Msg("notifier: list manager emails failed")
		} else if err := n.mail.SendApprovalRequest(emails, projectID, leadName, salesName); err != nil {
			log.Warn().Err(err).Int("project_id", projectID).Msg("notifier: email failed")
		}
	}
	if n.bot != nil && n.chatID != 0 {
		text := fmt.Sprintf("Project #%d for %s needs approval (submitted by %s)", projectID, leadName, salesName)
		if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
			log.Warn().Err(err).Int("project_id", projectID).Msg("notifier: telegram failed")
		}
	}
}
