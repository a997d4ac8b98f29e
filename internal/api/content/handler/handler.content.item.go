// Package contenthdl chứa handlers cho domain Content.
package contenthdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	contentdto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/dto"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	contentsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/service"
)

// ContentItemHandler cung cấp các route cho content items.
// Items được tạo bởi submission pipeline, HTTP surface chỉ đọc + sửa caption/tags.
type ContentItemHandler struct {
	basehdl.BaseHandler[contentmodels.ContentItem, contentdto.ContentItemCreateInput, contentdto.ContentItemUpdateInput]
	service *contentsvc.ContentItemService
}

// NewContentItemHandler tạo mới ContentItemHandler
func NewContentItemHandler() (*ContentItemHandler, error) {
	service, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, err
	}

	h := &ContentItemHandler{service: service}
	h.Service = service
	h.FilterOptions = basehdl.DefaultFilterOptions()
	return h, nil
}

// FindByUser xử lý GET /content-items/by-user/:userId
func (h *ContentItemHandler) FindByUser(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID := c.Params("userId")
		limit := int64(fiber.Query(c, "limit", 20))
		items, err := h.service.FindRecentByUser(c.Context(), userID, limit)
		return basehdl.HandleResponse(c, items, err)
	})
}
