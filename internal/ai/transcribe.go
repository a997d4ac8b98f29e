package ai

import (
	"bytes"
	"context"
	"strings"

	"github.com/openai/openai-go"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// Transcribe chuyển audio thành text qua Whisper.
// Không bao giờ trả error: mọi thất bại (rate limit, auth, timeout, kết quả rỗng)
// đều trả về transcription fallback theo ngôn ngữ, có đánh dấu Fallback + FailureClass.
// Audio rỗng là lỗi của caller và phải được chặn TRƯỚC khi gọi adapter này.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType, language string) Transcription {
	log := logger.WithModule("ai")

	if len(audio) == 0 {
		// Phòng thủ: caller phải validate trước, nhưng adapter vẫn không được panic
		return FallbackTranscription(language, FailureEmpty)
	}

	filename := "voice.mp3"
	if strings.Contains(mimeType, "wav") {
		filename = "voice.wav"
	} else if strings.Contains(mimeType, "ogg") {
		filename = "voice.ogg"
	} else if strings.Contains(mimeType, "m4a") || strings.Contains(mimeType, "mp4") {
		filename = "voice.m4a"
	}

	params := openai.AudioTranscriptionNewParams{
		Model: openai.AudioModel(c.transcribeModel),
		File:  openai.File(bytes.NewReader(audio), filename, mimeType),
	}
	lang := normalizeLang(language)
	if language != "" {
		params.Language = openai.String(lang)
	}

	resp, err := c.api.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		class := classifyError(err)
		log.WithError(err).WithField("failureClass", class).Warn("🎙️ [TRANSCRIBE] Whisper call failed, using fallback")
		return FallbackTranscription(language, class)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		log.WithField("failureClass", FailureEmpty).Warn("🎙️ [TRANSCRIBE] Empty transcript, using fallback")
		return FallbackTranscription(language, FailureEmpty)
	}

	return Transcription{Text: text, Language: lang}
}
