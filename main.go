package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"voicy/staging"
	"voicy/telegram"
	"voicy/voice"
)

type config struct {
	botToken            string
	elevenLabsKey       string
	voicesFile          string
	notifySynthFailures bool
}

func loadConfigFromEnv() (*config, error) {
	// .env is optional, real env vars win either way
	_ = godotenv.Load()

	token, exists := os.LookupEnv("TELEGRAM_BOT_TOKEN")
	if !exists {
		return nil, fmt.Errorf("missing env var TELEGRAM_BOT_TOKEN")
	}
	key, exists := os.LookupEnv("ELEVENLABS_API_KEY")
	if !exists {
		return nil, fmt.Errorf("missing env var ELEVENLABS_API_KEY")
	}
	voicesFile, exists := os.LookupEnv("VOICES_FILE")
	if !exists {
		voicesFile = "voices.yaml"
	}
	notify := os.Getenv("NOTIFY_SYNTH_FAILURES") != "false"

	return &config{
		botToken:            token,
		elevenLabsKey:       key,
		voicesFile:          voicesFile,
		notifySynthFailures: notify,
	}, nil
}

func newInterruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

func main() {
	cfg, err := loadConfigFromEnv()
	if err != nil {
		logrus.WithError(err).Fatalln("bad configuration")
	}

	catalog, err := voice.LoadCatalog(cfg.voicesFile)
	if err != nil {
		logrus.WithError(err).WithField("file", cfg.voicesFile).Fatalln("failed to load voice catalog")
	}
	logrus.
		WithField("voices", len(catalog.List())).
		WithField("default", catalog.Default().Name).
		Infoln("voice catalog loaded")

	ctx, cancel := newInterruptContext(context.Background())
	defer cancel()

	janitor := staging.NewJanitor()

	bot, err := telegram.StartChatbot(ctx, cfg.botToken, telegram.Options{
		Catalog:             catalog,
		Prefs:               voice.NewMemoryPrefs(catalog.Default()),
		TTS:                 &voice.ElevenLabs{APIKey: cfg.elevenLabsKey},
		Janitor:             janitor,
		NotifySynthFailures: cfg.notifySynthFailures,
	})
	if err != nil {
		logrus.WithError(err).Fatalln("failed to start chatbot")
	}

	logrus.Infoln("starting the bot")

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return janitor.Run(gctx)
	})
	group.Go(func() error {
		return bot.Run()
	})

	if err := group.Wait(); err != nil {
		logrus.WithError(err).Errorln("bot stopped with error")
		os.Exit(1)
	}

	logrus.Infoln("bot stopped")
}
