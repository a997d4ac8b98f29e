package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// Describe mô tả hình ảnh món ăn bằng chat completion với image content part.
// Không bao giờ trả error: ảnh rỗng hoặc lỗi provider đều trả về
// mô tả mặc định trung tính theo ngôn ngữ.
func (c *Client) Describe(ctx context.Context, image []byte, mimeType, language string) VisualDescription {
	log := logger.WithModule("ai")

	if len(image) == 0 {
		return FallbackVisualDescription(language, FailureNone)
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(visionSystemPrompt),
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(buildVisionPrompt(language)),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
			}),
		},
	})
	if err != nil {
		class := classifyError(err)
		log.WithError(err).WithField("failureClass", class).Warn("📷 [VISION] Describe call failed, using fallback")
		return FallbackVisualDescription(language, class)
	}

	if len(resp.Choices) == 0 {
		return FallbackVisualDescription(language, FailureEmpty)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return FallbackVisualDescription(language, FailureEmpty)
	}

	return VisualDescription{Text: text}
}
