package voice

import (
	"context"
	"errors"
	"io"
)

// ErrEmptyText is returned when a caller asks to synthesize nothing.
// The platform strips messages down before they reach us, so this is
// a caller bug rather than a provider failure.
var ErrEmptyText = errors.New("no text to synthesize")

// SynthesisError wraps any failure coming back from the TTS provider
// so callers can branch on the kind without inspecting message text.
type SynthesisError struct {
	Err error
}

func (e *SynthesisError) Error() string {
	return "synthesis failed; " + e.Err.Error()
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// Synthesizer converts text to speech with the given voice and
// streams the generated audio to the writer in MP3 format.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voiceID string, w io.Writer) error
}
