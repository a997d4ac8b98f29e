package ai

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/tidwall/gjson"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// captionLimits là giới hạn ký tự caption theo platform
var captionLimits = map[string]int{
	"instagram":   2200,
	"short_video": 300,
	"feed_post":   5000,
}

// GenerateDrafts sinh một draft cho mỗi platform được yêu cầu.
// Không bao giờ trả error và LUÔN trả về đúng len(req.Platforms) drafts:
// platform nào thiếu hoặc không hợp lệ trong output của model
// thì được thay bằng fallback draft của platform đó.
func (c *Client) GenerateDrafts(ctx context.Context, req DraftRequest) []PlatformDraft {
	log := logger.WithModule("ai")

	if len(req.Platforms) == 0 {
		return nil
	}

	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.chatModel),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(draftSystemPrompt),
			openai.UserMessage(buildDraftPrompt(req)),
		},
	})
	if err != nil {
		class := classifyError(err)
		log.WithError(err).WithField("failureClass", class).Warn("✍️ [GENERATE] Draft generation failed, using fallbacks")
		return allFallbackDrafts(req)
	}

	if len(resp.Choices) == 0 {
		return allFallbackDrafts(req)
	}

	return ParseDrafts(resp.Choices[0].Message.Content, req)
}

// allFallbackDrafts trả về fallback cho toàn bộ platforms yêu cầu
func allFallbackDrafts(req DraftRequest) []PlatformDraft {
	drafts := make([]PlatformDraft, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		drafts = append(drafts, FallbackDraft(p, req.Language))
	}
	return drafts
}

// ParseDrafts parse output JSON của model (chấp nhận code fences)
// và validate từng draft. Exported để test không cần provider.
func ParseDrafts(raw string, req DraftRequest) []PlatformDraft {
	raw = stripCodeFences(raw)

	parsed := map[string]PlatformDraft{}
	if gjson.Valid(raw) {
		for _, d := range gjson.Get(raw, "drafts").Array() {
			platform := strings.ToLower(strings.TrimSpace(d.Get("platform").String()))
			draft, ok := validateDraft(platform, d, req.Language)
			if ok {
				parsed[platform] = draft
			}
		}
	}

	// Mỗi platform yêu cầu phải có draft: thiếu thì dùng fallback
	drafts := make([]PlatformDraft, 0, len(req.Platforms))
	for _, p := range req.Platforms {
		if draft, ok := parsed[p]; ok {
			drafts = append(drafts, draft)
		} else {
			drafts = append(drafts, FallbackDraft(p, req.Language))
		}
	}
	return drafts
}

// validateDraft kiểm tra và chuẩn hóa một draft từ output của model
func validateDraft(platform string, d gjson.Result, language string) (PlatformDraft, bool) {
	limit, known := captionLimits[platform]
	if !known {
		return PlatformDraft{}, false
	}

	caption := strings.TrimSpace(d.Get("caption").String())
	if caption == "" {
		return PlatformDraft{}, false
	}
	if len([]rune(caption)) > limit {
		caption = string([]rune(caption)[:limit])
	}

	var tags []string
	for _, t := range d.Get("tags").Array() {
		tag := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(t.String(), "#")))
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if len(tags) == 8 {
			break
		}
	}
	if len(tags) == 0 {
		tags = append([]string(nil), fallbackTags[platform]...)
	}

	score := int(d.Get("viralityScore").Int())
	if !d.Get("viralityScore").Exists() {
		score = 50
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	postTime := d.Get("bestPostTime").String()
	if !validPostTime(postTime) {
		postTime = "18:00"
	}

	return PlatformDraft{
		Platform:      platform,
		Caption:       caption,
		Tags:          tags,
		ViralityScore: score,
		BestPostTime:  postTime,
	}, true
}

// validPostTime kiểm tra định dạng HH:MM
func validPostTime(s string) bool {
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	hh := (int(s[0]-'0') * 10) + int(s[1]-'0')
	mm := (int(s[3]-'0') * 10) + int(s[4]-'0')
	for _, c := range []byte{s[0], s[1], s[3], s[4]} {
		if c < '0' || c > '9' {
			return false
		}
	}
	return hh >= 0 && hh <= 23 && mm >= 0 && mm <= 59
}

// stripCodeFences bỏ ```json ... ``` nếu model bọc output trong code block
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}
