package telegram

import (
	"errors"
	"io"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"voicy/staging"
	"voicy/voice"
)

const usageText = "Hello! Use the inline query to generate voice messages, " +
	"or send a message to generate a voice message. " +
	"Telegram text length limits: 256 symbols for inline queries, 3000 symbols for messages."

// onMessage handles an incoming chat message
func (bot *ChatBot) onMessage(m *tgbotapi.Message) {
	// ignore other bots (and echoes of ourselves)
	if m.From == nil || m.From.IsBot {
		return
	}

	if m.IsCommand() {
		switch m.Command() {
		case "start":
			bot.onStart(m)
		case "voice":
			bot.onVoiceCommand(m)
		}
		return
	}

	bot.onText(m)
}

func (bot *ChatBot) onStart(m *tgbotapi.Message) {
	logrus.WithField("user", m.From.ID).Infoln("user started the bot")

	if _, err := bot.reply(m, usageText); err != nil {
		logrus.WithError(err).Errorln("failed to send usage text")
	}
}

// onVoiceCommand presents the catalog as a quick-reply keyboard,
// two voices per row. Selection itself happens in onVoiceChosen.
func (bot *ChatBot) onVoiceCommand(m *tgbotapi.Message) {
	logrus.WithField("user", m.From.ID).Infoln("user requested voice selection")

	voices := bot.catalog.List()
	var rows [][]tgbotapi.KeyboardButton
	for i := 0; i < len(voices); i += 2 {
		row := []tgbotapi.KeyboardButton{tgbotapi.NewKeyboardButton(voices[i].Name)}
		if i+1 < len(voices) {
			row = append(row, tgbotapi.NewKeyboardButton(voices[i+1].Name))
		}
		rows = append(rows, row)
	}

	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.OneTimeKeyboard = true

	msg := tgbotapi.NewMessage(m.Chat.ID, "Please choose a voice:")
	msg.ReplyToMessageID = m.MessageID
	msg.ReplyMarkup = keyboard
	if _, err := bot.api.Send(msg); err != nil {
		logrus.WithError(err).Errorln("failed to send voice keyboard")
	}
}

func (bot *ChatBot) onVoiceChosen(m *tgbotapi.Message) {
	chosen, err := voice.SelectByName(bot.catalog, bot.prefs, m.From.ID, m.Text)
	if errors.Is(err, voice.ErrUnknownVoice) {
		if _, err := bot.reply(m, "Invalid voice choice. Please try again."); err != nil {
			logrus.WithError(err).Errorln("failed to send re-prompt")
		}
		return
	}

	logrus.
		WithField("user", m.From.ID).
		WithField("voice", chosen.ID).
		Infoln("user chose voice")

	msg := tgbotapi.NewMessage(m.Chat.ID, "Voice set to "+chosen.Name+".")
	msg.ReplyToMessageID = m.MessageID
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(false)
	if _, err := bot.api.Send(msg); err != nil {
		logrus.WithError(err).Errorln("failed to confirm voice choice")
	}
}

// onText routes free text: exact catalog-name matches select a voice,
// everything else becomes a voice message.
func (bot *ChatBot) onText(m *tgbotapi.Message) {
	if _, ok := bot.catalog.ByName(m.Text); ok {
		bot.onVoiceChosen(m)
		return
	}

	if m.Text == "" {
		return
	}

	// in groups only react when explicitly addressed
	mention := "@" + bot.username
	if (m.Chat.IsGroup() || m.Chat.IsSuperGroup()) && !strings.HasPrefix(m.Text, mention) {
		return
	}

	text := strings.TrimSpace(strings.TrimPrefix(m.Text, mention))
	if text == "" {
		return
	}

	bot.speak(m, text)
}

// speak runs the message flow: status reply, synthesize, stage,
// upload with the text as caption, immediate artifact removal.
func (bot *ChatBot) speak(m *tgbotapi.Message, text string) {
	voiceID := bot.prefs.Get(m.From.ID)

	logrus.
		WithField("user", m.From.ID).
		WithField("voice", voiceID).
		WithField("text", text).
		Infoln("generating voice message")

	status, err := bot.reply(m, "Generating voice message...")
	if err != nil {
		logrus.WithError(err).Warnln("failed to send status message")
	}

	art, err := bot.stage(text, voiceID)
	if err != nil {
		logrus.WithError(err).Errorln("failed to generate voice message")
		if bot.notifySynthFailures {
			bot.reply(m, "Sorry, I could not generate that voice message. Please try again later.")
		}
		bot.removeStatus(m.Chat.ID, status)
		return
	}
	defer art.Remove()

	_, err = bot.delivery.SendVoice(m.Chat.ID, art.Path(), text)
	switch {
	case errors.Is(err, ErrVoiceForbidden):
		if _, err := bot.reply(m, "Your privacy settings do not allow me to send voice messages."); err != nil {
			logrus.WithError(err).Errorln("failed to send privacy notice")
		}
	case err != nil:
		logrus.WithError(err).Errorln("failed to deliver voice message")
	default:
		logrus.WithField("user", m.From.ID).Infoln("voice message sent")
	}

	bot.removeStatus(m.Chat.ID, status)
}

// onInlineQuery uploads the clip to the querying user first - the
// platform requires the caller to own a media item before it can be
// referenced as a cached inline result - then answers with that
// reference and schedules cleanup of both the file and the private
// copy.
func (bot *ChatBot) onInlineQuery(q *tgbotapi.InlineQuery) {
	if q.Query == "" {
		return
	}

	voiceID := bot.prefs.Get(q.From.ID)

	logrus.
		WithField("user", q.From.ID).
		WithField("voice", voiceID).
		WithField("query", q.Query).
		Infoln("generating inline voice message")

	art, err := bot.stage(q.Query, voiceID)
	if err != nil {
		logrus.WithError(err).Errorln("failed to generate inline voice message")
		return
	}

	sent, err := bot.delivery.SendVoice(q.From.ID, art.Path(), q.Query)
	if errors.Is(err, ErrVoiceForbidden) {
		art.Remove()
		article := tgbotapi.NewInlineQueryResultArticle(
			uuid.NewString(),
			"Voice messages are disabled in your privacy settings",
			"Please enable voice messages in your privacy settings to use this bot.",
		)
		if err := bot.delivery.AnswerInline(q.ID, article); err != nil {
			logrus.WithError(err).Errorln("failed to answer inline query with privacy notice")
		}
		return
	}
	if err != nil {
		art.Remove()
		logrus.WithError(err).Errorln("failed to upload inline voice message")
		return
	}

	fileID := ""
	if sent.Voice != nil {
		fileID = sent.Voice.FileID
	}
	result := tgbotapi.NewInlineQueryResultCachedVoice(
		uuid.NewString(),
		fileID,
		"Voice message by @"+bot.username,
	)

	chatID := q.From.ID
	messageID := sent.MessageID
	bot.janitor.Schedule(bot.cleanupDelay, func() {
		art.Remove()
		if err := bot.delivery.DeleteMessage(chatID, messageID); err != nil {
			logrus.WithError(err).Warnln("failed to delete private voice copy")
		}
	})

	if err := bot.delivery.AnswerInline(q.ID, result); err != nil {
		logrus.WithError(err).Errorln("failed to answer inline query")
		return
	}

	logrus.WithField("user", q.From.ID).Infoln("inline voice message sent")
}

func (bot *ChatBot) onChosenInlineResult(r *tgbotapi.ChosenInlineResult) {
	logrus.WithField("result_id", r.ResultID).Infoln("inline result chosen")
}

// --- helpers

func (bot *ChatBot) stage(text string, voiceID string) (*staging.Artifact, error) {
	return staging.Stage(func(w io.Writer) error {
		return bot.tts.Synthesize(bot.ctx, text, voiceID, w)
	})
}

func (bot *ChatBot) reply(m *tgbotapi.Message, text string) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyToMessageID = m.MessageID
	return bot.api.Send(msg)
}

func (bot *ChatBot) removeStatus(chatID int64, status tgbotapi.Message) {
	if status.MessageID == 0 {
		return
	}
	if err := bot.delivery.DeleteMessage(chatID, status.MessageID); err != nil {
		logrus.WithError(err).Warnln("failed to delete status message")
	}
}
