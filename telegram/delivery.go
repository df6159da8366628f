package telegram

import (
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrVoiceForbidden means the recipient's privacy settings disallow
// voice messages. Callers branch on this with errors.Is; every other
// delivery failure propagates unchanged.
var ErrVoiceForbidden = errors.New("recipient privacy settings forbid voice messages")

// sender is the slice of the bot API the handlers actually use.
// Narrow on purpose so tests can substitute a fake.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Delivery uploads audio artifacts and manages sent messages.
type Delivery struct {
	api sender
}

// SendVoice uploads the staged file as a voice message with the given
// caption and returns the delivered message.
func (d *Delivery) SendVoice(chatID int64, path string, caption string) (tgbotapi.Message, error) {
	cfg := tgbotapi.NewVoice(chatID, tgbotapi.FilePath(path))
	cfg.Caption = caption

	msg, err := d.api.Send(cfg)
	if err != nil {
		if isVoiceForbidden(err) {
			return tgbotapi.Message{}, fmt.Errorf("failed to send voice to %d; %w", chatID, ErrVoiceForbidden)
		}
		return tgbotapi.Message{}, fmt.Errorf("failed to send voice to %d; %w", chatID, err)
	}
	return msg, nil
}

func (d *Delivery) DeleteMessage(chatID int64, messageID int) error {
	if _, err := d.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("failed to delete message %d; %w", messageID, err)
	}
	return nil
}

// AnswerInline answers an inline query with the given result set.
func (d *Delivery) AnswerInline(queryID string, results ...interface{}) error {
	cfg := tgbotapi.InlineConfig{
		InlineQueryID: queryID,
		Results:       results,
		IsPersonal:    true,
	}
	if _, err := d.api.Request(cfg); err != nil {
		return fmt.Errorf("failed to answer inline query; %w", err)
	}
	return nil
}

// isVoiceForbidden recognizes the platform's privacy rejection. The
// API only exposes it as a description string, so the substring check
// lives here and nowhere else.
func isVoiceForbidden(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return strings.Contains(tgErr.Message, "VOICE_MESSAGES_FORBIDDEN")
	}
	return strings.Contains(err.Error(), "VOICE_MESSAGES_FORBIDDEN")
}
