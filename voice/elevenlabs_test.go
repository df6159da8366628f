package voice

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElevenLabsEmptyText(t *testing.T) {
	var speaker Synthesizer = &ElevenLabs{}

	var buf bytes.Buffer
	err := speaker.Synthesize(context.Background(), "   ", "21m00Tcm4TlvDq8ikWAM", &buf)
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Zero(t, buf.Len())
}

// hits the real API - only runs when a key is configured
func TestElevenLabsLive(t *testing.T) {
	key := os.Getenv("ELEVENLABS_API_KEY")
	if key == "" {
		t.Skip("ELEVENLABS_API_KEY not set")
	}

	var speaker Synthesizer = &ElevenLabs{APIKey: key}

	var buf bytes.Buffer
	err := speaker.Synthesize(context.Background(), "Hello there.", "21m00Tcm4TlvDq8ikWAM", &buf)
	assert.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
