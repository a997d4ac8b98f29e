package ai

import (
	"fmt"
	"strings"
)

// Prompt templates cho generation và vision.
// Model được yêu cầu trả về JSON thuần để parse bằng gjson.

const draftSystemPrompt = `You are a social media copywriter for restaurants.
You write short, appetizing, platform-appropriate content.
Always answer with a single JSON object and nothing else.`

const visionSystemPrompt = `You describe food photos for social media marketing.
Answer with one vivid, appetizing sentence in the requested language. No hashtags.`

// platformGuides mô tả giọng điệu cho từng platform
var platformGuides = map[string]string{
	"instagram":   "engaging caption with emojis, max 2200 characters",
	"short_video": "punchy hook for a short vertical video, max 300 characters",
	"feed_post":   "warm community-oriented post, max 5000 characters",
}

// buildDraftPrompt dựng user prompt cho generation adapter
func buildDraftPrompt(req DraftRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Restaurant: %s (%s cuisine)\n", req.RestaurantName, req.Cuisine)
	fmt.Fprintf(&b, "Language: %s\n", req.Language)
	fmt.Fprintf(&b, "What the owner said: %q\n", req.Transcript)
	if req.VisualDescription != "" {
		fmt.Fprintf(&b, "Photo description: %q\n", req.VisualDescription)
	}
	if req.EditInstructions != "" {
		fmt.Fprintf(&b, "Revision instructions from the owner: %q\n", req.EditInstructions)
	}

	b.WriteString("\nGenerate one draft per platform:\n")
	for _, p := range req.Platforms {
		guide := platformGuides[p]
		fmt.Fprintf(&b, "- %s: %s\n", p, guide)
	}

	b.WriteString(`
Answer with JSON only, in this exact shape:
{"drafts":[{"platform":"...","caption":"...","tags":["tag1","tag2"],"viralityScore":0,"bestPostTime":"HH:MM"}]}
viralityScore is an integer 0-100. tags are 1-8 lowercase words without '#'.`)

	return b.String()
}

// buildVisionPrompt dựng user prompt cho vision adapter
func buildVisionPrompt(language string) string {
	return fmt.Sprintf("Describe this dish in one appetizing sentence, in language %q.", normalizeLang(language))
}
