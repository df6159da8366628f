package voice

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/haguro/elevenlabs-go"
)

const defaultModelID = "eleven_multilingual_v2"

// ElevenLabs synthesizes speech through the ElevenLabs API.
type ElevenLabs struct {
	APIKey  string
	ModelID string
	Timeout time.Duration
}

var _ Synthesizer = &ElevenLabs{}

func (api *ElevenLabs) Synthesize(ctx context.Context, text string, voiceID string, w io.Writer) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	timeout := api.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	model := api.ModelID
	if model == "" {
		model = defaultModelID
	}

	client := elevenlabs.NewClient(ctx, api.APIKey, timeout)

	ttsReq := elevenlabs.TextToSpeechRequest{
		Text:    text,
		ModelID: model,
	}

	if err := client.TextToSpeechStream(w, voiceID, ttsReq); err != nil {
		return &SynthesisError{Err: err}
	}

	return nil
}
