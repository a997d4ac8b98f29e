package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDrafts(t *testing.T) {
	req := DraftRequest{Language: "en", Platforms: []string{"instagram", "short_video"}}

	t.Run("✅ output hợp lệ parse đủ các platforms", func(t *testing.T) {
		raw := `{"drafts":[
			{"platform":"instagram","caption":"Lobster night!","tags":["#Lobster","Seafood"],"viralityScore":85,"bestPostTime":"19:30"},
			{"platform":"short_video","caption":"Watch this sizzle","tags":["foodtok"],"viralityScore":70,"bestPostTime":"12:00"}
		]}`

		drafts := ParseDrafts(raw, req)
		require.Len(t, drafts, 2)

		assert.Equal(t, "instagram", drafts[0].Platform)
		assert.Equal(t, "Lobster night!", drafts[0].Caption)
		assert.Equal(t, []string{"lobster", "seafood"}, drafts[0].Tags)
		assert.Equal(t, 85, drafts[0].ViralityScore)
		assert.Equal(t, "19:30", drafts[0].BestPostTime)
		assert.False(t, drafts[0].Fallback)

		assert.Equal(t, "short_video", drafts[1].Platform)
	})

	t.Run("✅ output bọc trong code fences vẫn parse được", func(t *testing.T) {
		raw := "```json\n{\"drafts\":[{\"platform\":\"instagram\",\"caption\":\"Hello\",\"tags\":[\"x\"],\"viralityScore\":60,\"bestPostTime\":\"18:00\"}]}\n```"

		drafts := ParseDrafts(raw, DraftRequest{Language: "en", Platforms: []string{"instagram"}})
		require.Len(t, drafts, 1)
		assert.Equal(t, "Hello", drafts[0].Caption)
		assert.False(t, drafts[0].Fallback)
	})

	t.Run("✅ platform thiếu trong output được thay bằng fallback", func(t *testing.T) {
		raw := `{"drafts":[{"platform":"instagram","caption":"Only one","tags":["a"],"viralityScore":50,"bestPostTime":"18:00"}]}`

		drafts := ParseDrafts(raw, req)
		require.Len(t, drafts, 2)
		assert.False(t, drafts[0].Fallback)
		assert.True(t, drafts[1].Fallback)
		assert.Equal(t, "short_video", drafts[1].Platform)
		assert.NotEmpty(t, drafts[1].Caption)
	})

	t.Run("✅ JSON hỏng rơi toàn bộ về fallback", func(t *testing.T) {
		drafts := ParseDrafts("not json at all {{", req)
		require.Len(t, drafts, 2)
		for _, d := range drafts {
			assert.True(t, d.Fallback)
			assert.NotEmpty(t, d.Caption)
			assert.Equal(t, 50, d.ViralityScore)
			assert.Equal(t, "18:00", d.BestPostTime)
		}
	})

	t.Run("✅ caption quá dài bị cắt theo limit của platform", func(t *testing.T) {
		long := strings.Repeat("a", 500)
		raw := `{"drafts":[{"platform":"short_video","caption":"` + long + `","tags":["x"],"viralityScore":50,"bestPostTime":"18:00"}]}`

		drafts := ParseDrafts(raw, DraftRequest{Language: "en", Platforms: []string{"short_video"}})
		require.Len(t, drafts, 1)
		assert.Len(t, []rune(drafts[0].Caption), 300)
	})

	t.Run("✅ viralityScore ngoài khoảng bị clamp về 0-100", func(t *testing.T) {
		raw := `{"drafts":[
			{"platform":"instagram","caption":"High","tags":["a"],"viralityScore":150,"bestPostTime":"18:00"},
			{"platform":"short_video","caption":"Low","tags":["a"],"viralityScore":-20,"bestPostTime":"18:00"}
		]}`

		drafts := ParseDrafts(raw, req)
		require.Len(t, drafts, 2)
		assert.Equal(t, 100, drafts[0].ViralityScore)
		assert.Equal(t, 0, drafts[1].ViralityScore)
	})

	t.Run("✅ viralityScore thiếu nhận mặc định 50", func(t *testing.T) {
		raw := `{"drafts":[{"platform":"instagram","caption":"No score","tags":["a"],"bestPostTime":"18:00"}]}`

		drafts := ParseDrafts(raw, DraftRequest{Language: "en", Platforms: []string{"instagram"}})
		require.Len(t, drafts, 1)
		assert.Equal(t, 50, drafts[0].ViralityScore)
		assert.False(t, drafts[0].Fallback)
	})

	t.Run("✅ bestPostTime sai định dạng về 18:00", func(t *testing.T) {
		raw := `{"drafts":[{"platform":"instagram","caption":"Bad time","tags":["a"],"viralityScore":50,"bestPostTime":"25:99"}]}`

		drafts := ParseDrafts(raw, DraftRequest{Language: "en", Platforms: []string{"instagram"}})
		require.Len(t, drafts, 1)
		assert.Equal(t, "18:00", drafts[0].BestPostTime)
	})

	t.Run("✅ tags quá 8 bị cắt, tags rỗng dùng fallback", func(t *testing.T) {
		raw := `{"drafts":[
			{"platform":"instagram","caption":"Many tags","tags":["1","2","3","4","5","6","7","8","9","10"],"viralityScore":50,"bestPostTime":"18:00"},
			{"platform":"short_video","caption":"No tags","tags":[],"viralityScore":50,"bestPostTime":"18:00"}
		]}`

		drafts := ParseDrafts(raw, req)
		require.Len(t, drafts, 2)
		assert.Len(t, drafts[0].Tags, 8)
		assert.Equal(t, fallbackTags["short_video"], drafts[1].Tags)
	})

	t.Run("❌ caption rỗng làm draft không hợp lệ", func(t *testing.T) {
		raw := `{"drafts":[{"platform":"instagram","caption":"  ","tags":["a"],"viralityScore":50,"bestPostTime":"18:00"}]}`

		drafts := ParseDrafts(raw, DraftRequest{Language: "en", Platforms: []string{"instagram"}})
		require.Len(t, drafts, 1)
		assert.True(t, drafts[0].Fallback)
	})

	t.Run("❌ platform lạ trong output bị bỏ qua", func(t *testing.T) {
		raw := `{"drafts":[{"platform":"tiktok","caption":"Wrong platform","tags":["a"],"viralityScore":50,"bestPostTime":"18:00"}]}`

		drafts := ParseDrafts(raw, DraftRequest{Language: "en", Platforms: []string{"instagram"}})
		require.Len(t, drafts, 1)
		assert.Equal(t, "instagram", drafts[0].Platform)
		assert.True(t, drafts[0].Fallback)
	})
}

func TestFallbacks(t *testing.T) {
	t.Run("✅ fallback non-empty cho mọi ngôn ngữ hỗ trợ", func(t *testing.T) {
		for _, lang := range []string{"en", "fr", "es"} {
			tr := FallbackTranscription(lang, FailureTransient)
			assert.NotEmpty(t, tr.Text, lang)
			assert.True(t, tr.Fallback)
			assert.Equal(t, FailureTransient, tr.FailureClass)

			vd := FallbackVisualDescription(lang, FailureRateLimited)
			assert.NotEmpty(t, vd.Text, lang)

			for _, platform := range []string{"instagram", "short_video", "feed_post"} {
				d := FallbackDraft(platform, lang)
				assert.NotEmpty(t, d.Caption, platform+"/"+lang)
				assert.NotEmpty(t, d.Tags)
				assert.Equal(t, 50, d.ViralityScore)
				assert.Equal(t, "18:00", d.BestPostTime)
				assert.True(t, d.Fallback)
			}
		}
	})

	t.Run("✅ ngôn ngữ lạ rơi về tiếng Anh", func(t *testing.T) {
		tr := FallbackTranscription("de", FailureEmpty)
		assert.Equal(t, "en", tr.Language)
		assert.Equal(t, fallbackTranscripts["en"], tr.Text)

		assert.Equal(t, fallbackTranscripts["fr"], FallbackTranscription("fr-CA", FailureEmpty).Text)
	})

	t.Run("✅ platform lạ dùng caption của feed_post", func(t *testing.T) {
		d := FallbackDraft("unknown_platform", "en")
		assert.Equal(t, fallbackCaptions["feed_post"]["en"], d.Caption)
	})
}

func TestValidPostTime(t *testing.T) {
	assert.True(t, validPostTime("18:00"))
	assert.True(t, validPostTime("00:00"))
	assert.True(t, validPostTime("23:59"))
	assert.False(t, validPostTime("24:00"))
	assert.False(t, validPostTime("18:60"))
	assert.False(t, validPostTime("6:00"))
	assert.False(t, validPostTime(""))
	assert.False(t, validPostTime("ab:cd"))
}
