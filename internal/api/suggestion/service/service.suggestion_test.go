package suggestionsvc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	suggestionmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
)

func titlesOf(ideas []workflowmodels.IdeaSnapshot) []string {
	out := make([]string, 0, len(ideas))
	for _, idea := range ideas {
		out = append(out, idea.Title)
	}
	return out
}

func TestBuildDailyIdeas(t *testing.T) {
	// Thứ Năm 2026-03-05: weekend brunch và happy hour đều được cộng điểm weekday
	thursday := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	profile := suggestionmodels.RestaurantProfile{
		UserID:  "user-1",
		Name:    "Chez Marcel",
		Cuisine: "French",
		Performance: map[string]int{
			"instagram": 90,
		},
	}

	t.Run("✅ trả về đúng 5 ý tưởng xếp hạng 1-5 điểm giảm dần", func(t *testing.T) {
		ideas := BuildDailyIdeas(profile, thursday)
		require.Len(t, ideas, 5)

		for i, idea := range ideas {
			assert.Equal(t, i+1, idea.Rank)
			assert.NotEmpty(t, idea.Title)
			assert.NotEmpty(t, idea.Description)
			assert.NotEmpty(t, idea.Platform)
		}
		for i := 1; i < len(ideas); i++ {
			assert.GreaterOrEqual(t, ideas[i-1].Score, ideas[i].Score)
		}
	})

	t.Run("✅ deterministic: cùng profile cùng ngày ra cùng kết quả", func(t *testing.T) {
		assert.Equal(t, BuildDailyIdeas(profile, thursday), BuildDailyIdeas(profile, thursday))
	})

	t.Run("✅ tên nhà hàng được chèn vào description", func(t *testing.T) {
		ideas := BuildDailyIdeas(profile, thursday)

		found := false
		for _, idea := range ideas {
			if strings.Contains(idea.Description, "Chez Marcel") {
				found = true
				break
			}
		}
		assert.True(t, found, "ít nhất một ý tưởng nhắc tên nhà hàng")
	})

	t.Run("✅ profile không tên dùng placeholder", func(t *testing.T) {
		anon := suggestionmodels.RestaurantProfile{UserID: "user-2", Cuisine: "italian"}
		ideas := BuildDailyIdeas(anon, thursday)
		require.Len(t, ideas, 5)

		found := false
		for _, idea := range ideas {
			if strings.Contains(idea.Description, "your restaurant") {
				found = true
				break
			}
		}
		assert.True(t, found)
	})

	t.Run("✅ weekday bonus đổi thứ hạng theo ngày", func(t *testing.T) {
		monday := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		assert.NotEqual(t,
			titlesOf(BuildDailyIdeas(profile, monday)),
			titlesOf(BuildDailyIdeas(profile, thursday)))
	})

	t.Run("✅ cuisine bonus đưa ý tưởng hợp ẩm thực vào top 5", func(t *testing.T) {
		assert.Contains(t, titlesOf(BuildDailyIdeas(profile, thursday)), "Quick recipe tip")
	})
}
