package telegram

import (
	"errors"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
)

func TestSendVoice(t *testing.T) {
	api := &fakeAPI{}
	d := &Delivery{api: api}

	msg, err := d.SendVoice(42, "/tmp/clip.mp3", "hello")
	assert.NoError(t, err)
	assert.NotZero(t, msg.MessageID)
	assert.Equal(t, "cached-file-id", msg.Voice.FileID)

	voices := api.voices()
	assert.Len(t, voices, 1)
	assert.Equal(t, "hello", voices[0].Caption)
	assert.Equal(t, tgbotapi.FilePath("/tmp/clip.mp3"), voices[0].File)
}

func TestSendVoiceForbidden(t *testing.T) {
	api := &fakeAPI{voiceErr: forbiddenErr}
	d := &Delivery{api: api}

	_, err := d.SendVoice(42, "/tmp/clip.mp3", "hello")
	assert.ErrorIs(t, err, ErrVoiceForbidden)
}

func TestSendVoiceForbiddenPlainError(t *testing.T) {
	// some transports flatten the API error into a plain string
	api := &fakeAPI{voiceErr: fmt.Errorf("Bad Request: VOICE_MESSAGES_FORBIDDEN")}
	d := &Delivery{api: api}

	_, err := d.SendVoice(42, "/tmp/clip.mp3", "hello")
	assert.ErrorIs(t, err, ErrVoiceForbidden)
}

func TestSendVoiceOtherError(t *testing.T) {
	cause := &tgbotapi.Error{Code: 400, Message: "Bad Request: chat not found"}
	api := &fakeAPI{voiceErr: cause}
	d := &Delivery{api: api}

	_, err := d.SendVoice(42, "/tmp/clip.mp3", "hello")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrVoiceForbidden)

	var tgErr *tgbotapi.Error
	assert.True(t, errors.As(err, &tgErr), "original error propagates")
}

func TestDeleteMessage(t *testing.T) {
	api := &fakeAPI{}
	d := &Delivery{api: api}

	assert.NoError(t, d.DeleteMessage(42, 7))

	dels := api.deletes()
	assert.Len(t, dels, 1)
	assert.EqualValues(t, 42, dels[0].ChatID)
	assert.Equal(t, 7, dels[0].MessageID)
}

func TestAnswerInline(t *testing.T) {
	api := &fakeAPI{}
	d := &Delivery{api: api}

	article := tgbotapi.NewInlineQueryResultArticle("id-1", "title", "text")
	assert.NoError(t, d.AnswerInline("query-9", article))

	answers := api.inlineAnswers()
	assert.Len(t, answers, 1)
	assert.Equal(t, "query-9", answers[0].InlineQueryID)
	assert.True(t, answers[0].IsPersonal)
	assert.Len(t, answers[0].Results, 1)
}
