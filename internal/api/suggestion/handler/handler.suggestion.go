// Package suggestionhdl chứa handlers cho domain Suggestion.
package suggestionhdl

import (
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	suggestiondto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/dto"
	suggestionmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/models"
	suggestionsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/service"
	workflowsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
)

// SuggestionHandler cung cấp route cho restaurant profiles và daily suggestions
type SuggestionHandler struct {
	basehdl.BaseHandler[suggestionmodels.RestaurantProfile, suggestiondto.RestaurantProfileCreateInput, suggestiondto.RestaurantProfileUpdateInput]
	suggestions *suggestionsvc.SuggestionService
}

// NewSuggestionHandler tạo mới SuggestionHandler
func NewSuggestionHandler() (*SuggestionHandler, error) {
	suggestions, err := suggestionsvc.NewSuggestionService()
	if err != nil {
		return nil, err
	}

	h := &SuggestionHandler{suggestions: suggestions}
	h.Service = suggestions.Profiles()
	h.FilterOptions = basehdl.DefaultFilterOptions()
	return h, nil
}

// TriggerDaily xử lý POST /suggestions/daily — dựng 5 ý tưởng cho user
// và mở daily suggestion workflow qua SMS. Thường được scheduler gọi.
func (h *SuggestionHandler) TriggerDaily(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input suggestiondto.DailyTriggerInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		if err := h.ValidateInput(&input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		dc, err := h.suggestions.BuildDailyForUser(c.Context(), input.UserID, time.Now())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		engine := workflowsvc.DefaultEngine()
		if engine == nil {
			return basehdl.HandleResponse(c, nil, common.ErrSystem)
		}

		wf, err := engine.CreateDailySuggestions(c.Context(), dc)
		return basehdl.HandleResponse(c, wf, err)
	})
}

// PreviewDaily xử lý GET /suggestions/daily/:userId — xem 5 ý tưởng
// của hôm nay mà không mở workflow (tiện debug scoring).
func (h *SuggestionHandler) PreviewDaily(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		dc, err := h.suggestions.BuildDailyForUser(c.Context(), c.Params("userId"), time.Now())
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
		return basehdl.HandleResponse(c, dc.Ideas, nil)
	})
}
