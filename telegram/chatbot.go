package telegram

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"voicy/staging"
	"voicy/voice"
)

// how long the platform gets to fetch an inline attachment before the
// private copy and the staged file are cleaned up
const defaultCleanupDelay = 5 * time.Second

// Options carries the collaborators a ChatBot needs.
type Options struct {
	Catalog *voice.Catalog
	Prefs   voice.Preferences
	TTS     voice.Synthesizer
	Janitor *staging.Janitor

	// notify the user when synthesis fails on the message flow
	NotifySynthFailures bool
	// zero means defaultCleanupDelay
	CleanupDelay time.Duration
}

type ChatBot struct {
	ctx      context.Context
	session  *tgbotapi.BotAPI
	api      sender
	delivery *Delivery
	catalog  *voice.Catalog
	prefs    voice.Preferences
	tts      voice.Synthesizer
	janitor  *staging.Janitor
	username string

	notifySynthFailures bool
	cleanupDelay        time.Duration
}

// StartChatbot connects to Telegram and returns a bot ready to Run.
func StartChatbot(ctx context.Context, token string, opts Options) (*ChatBot, error) {
	session, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to start session; %w", err)
	}

	bot := newChatBot(ctx, session, session.Self.UserName, opts)
	bot.session = session

	logrus.WithField("username", session.Self.UserName).Infoln("logged in to telegram")

	return bot, nil
}

// newChatBot wires the bot against the narrow sender interface so
// tests can drive the handlers with a fake API.
func newChatBot(ctx context.Context, api sender, username string, opts Options) *ChatBot {
	delay := opts.CleanupDelay
	if delay == 0 {
		delay = defaultCleanupDelay
	}

	return &ChatBot{
		ctx:                 ctx,
		api:                 api,
		delivery:            &Delivery{api: api},
		catalog:             opts.Catalog,
		prefs:               opts.Prefs,
		tts:                 opts.TTS,
		janitor:             opts.Janitor,
		username:            username,
		notifySynthFailures: opts.NotifySynthFailures,
		cleanupDelay:        delay,
	}
}

// Run consumes updates until the bot's context is cancelled. Each
// update is handled on its own goroutine; the handlers share no state
// beyond the preference store.
func (bot *ChatBot) Run() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := bot.session.GetUpdatesChan(u)

	// closes the updates channel, which ends the range below
	go func() {
		<-bot.ctx.Done()
		bot.session.StopReceivingUpdates()
	}()

	for update := range updates {
		bot.dispatch(update)
	}

	return nil
}

func (bot *ChatBot) dispatch(update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		go bot.onMessage(update.Message)
	case update.InlineQuery != nil:
		go bot.onInlineQuery(update.InlineQuery)
	case update.ChosenInlineResult != nil:
		bot.onChosenInlineResult(update.ChosenInlineResult)
	}
}
