package suggestionsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	suggestionmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/models"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
)

// ideaTemplate là một mẫu ý tưởng nội dung với các tín hiệu scoring
type ideaTemplate struct {
	Title       string
	Description string // %s = tên nhà hàng hoặc cuisine
	Platform    string
	Base        int            // điểm gốc
	Weekdays    []time.Weekday // ngày phù hợp, rỗng = mọi ngày
	Cuisines    []string       // cuisine phù hợp, rỗng = mọi cuisine
}

// ideaTemplates là bộ mẫu cố định. Scoring deterministic:
// cùng profile + cùng ngày luôn ra cùng 5 ý tưởng cùng thứ tự.
var ideaTemplates = []ideaTemplate{
	{Title: "Behind the scenes", Description: "Show your kitchen team prepping today's %s favorites", Platform: "short_video", Base: 55},
	{Title: "Daily special spotlight", Description: "A close-up of today's special at %s with a one-line story", Platform: "instagram", Base: 60},
	{Title: "Weekend brunch teaser", Description: "Tease the weekend brunch menu at %s", Platform: "instagram", Base: 50, Weekdays: []time.Weekday{time.Thursday, time.Friday, time.Saturday}},
	{Title: "Meet the chef", Description: "A short intro of the chef behind %s and their signature dish", Platform: "feed_post", Base: 45},
	{Title: "Customer favorite", Description: "Repost the dish your regulars at %s order again and again", Platform: "instagram", Base: 50},
	{Title: "Quick recipe tip", Description: "One %s cooking tip your followers can try at home", Platform: "short_video", Base: 48, Cuisines: []string{"italian", "french", "mexican", "japanese"}},
	{Title: "Monday comfort food", Description: "Start the week with the coziest dish at %s", Platform: "feed_post", Base: 42, Weekdays: []time.Weekday{time.Monday}},
	{Title: "Fresh ingredients story", Description: "Where %s sources its freshest ingredients this season", Platform: "feed_post", Base: 44},
	{Title: "Happy hour reminder", Description: "Remind followers about happy hour at %s", Platform: "instagram", Base: 46, Weekdays: []time.Weekday{time.Wednesday, time.Thursday, time.Friday}},
	{Title: "Dessert close-up", Description: "A slow, irresistible shot of the best dessert at %s", Platform: "short_video", Base: 52},
}

// SuggestionService xây daily suggestions từ restaurant profile
type SuggestionService struct {
	profiles *RestaurantProfileService
}

// NewSuggestionService tạo mới SuggestionService
func NewSuggestionService() (*SuggestionService, error) {
	profiles, err := NewRestaurantProfileService()
	if err != nil {
		return nil, err
	}
	return &SuggestionService{profiles: profiles}, nil
}

// Profiles trả về profile service bên dưới (dùng chung cho handler)
func (s *SuggestionService) Profiles() *RestaurantProfileService {
	return s.profiles
}

// BuildDailyIdeas chấm điểm mọi template theo profile và ngày,
// trả về đúng 5 ý tưởng xếp hạng 1-5.
func BuildDailyIdeas(profile suggestionmodels.RestaurantProfile, now time.Time) []workflowmodels.IdeaSnapshot {
	type scored struct {
		tpl   ideaTemplate
		score int
	}

	weekday := now.Weekday()
	cuisine := strings.ToLower(profile.Cuisine)

	scoredIdeas := make([]scored, 0, len(ideaTemplates))
	for _, tpl := range ideaTemplates {
		score := tpl.Base

		for _, wd := range tpl.Weekdays {
			if wd == weekday {
				score += 15
				break
			}
		}
		for _, c := range tpl.Cuisines {
			if c == cuisine {
				score += 20
				break
			}
		}
		// Platform đang chạy tốt gần đây được ưu tiên
		if perf, ok := profile.Performance[tpl.Platform]; ok {
			score += perf / 10
		}

		scoredIdeas = append(scoredIdeas, scored{tpl: tpl, score: score})
	}

	sort.SliceStable(scoredIdeas, func(i, j int) bool {
		return scoredIdeas[i].score > scoredIdeas[j].score
	})

	name := profile.Name
	if name == "" {
		name = "your restaurant"
	}

	count := 5
	if len(scoredIdeas) < count {
		count = len(scoredIdeas)
	}

	ideas := make([]workflowmodels.IdeaSnapshot, 0, count)
	for i := 0; i < count; i++ {
		tpl := scoredIdeas[i].tpl
		ideas = append(ideas, workflowmodels.IdeaSnapshot{
			Rank:        i + 1,
			Title:       tpl.Title,
			Description: fmt.Sprintf(tpl.Description, name),
			Platform:    tpl.Platform,
			Score:       scoredIdeas[i].score,
		})
	}
	return ideas
}

// buildDailyContext dựng DailyContext từ một profile
func buildDailyContext(profile suggestionmodels.RestaurantProfile, now time.Time) workflowmodels.DailyContext {
	return workflowmodels.DailyContext{
		UserID:         profile.UserID,
		RestaurantName: profile.Name,
		Cuisine:        profile.Cuisine,
		Phone:          profile.Phone,
		Language:       profile.Language,
		Ideas:          BuildDailyIdeas(profile, now),
	}
}

// BuildDailyForUser dựng daily context cho một user
func (s *SuggestionService) BuildDailyForUser(ctx context.Context, userID string, now time.Time) (workflowmodels.DailyContext, error) {
	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return workflowmodels.DailyContext{}, err
	}
	return buildDailyContext(profile, now), nil
}

// BuildDailyForPhone dựng daily context cho một số điện thoại
// (implement IdeaProvider của workflow engine).
func (s *SuggestionService) BuildDailyForPhone(ctx context.Context, phone string, now time.Time) (workflowmodels.DailyContext, error) {
	profile, err := s.profiles.FindByPhone(ctx, phone)
	if err != nil {
		return workflowmodels.DailyContext{}, err
	}
	return buildDailyContext(profile, now), nil
}
