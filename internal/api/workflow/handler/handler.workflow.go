// Package workflowhdl chứa handlers cho domain Workflow.
package workflowhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	contentsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/service"
	suggestionsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/service"
	workflowdto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/dto"
	workflowsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// WorkflowHandler cung cấp các route vận hành cho workflows.
// Transitions chỉ đi qua engine (SMS hoặc operator action), không có PUT tự do.
type WorkflowHandler struct {
	store    *workflowsvc.MongoStore
	content  *contentsvc.ContentItemService
	profiles *suggestionsvc.RestaurantProfileService
}

// NewWorkflowHandler tạo mới WorkflowHandler
func NewWorkflowHandler() (*WorkflowHandler, error) {
	store, err := workflowsvc.NewMongoStore()
	if err != nil {
		return nil, err
	}
	content, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, err
	}
	profiles, err := suggestionsvc.NewRestaurantProfileService()
	if err != nil {
		return nil, err
	}

	return &WorkflowHandler{store: store, content: content, profiles: profiles}, nil
}

// CreateApproval xử lý POST /workflows/approval — tạo approval workflow
// cho một content item và gửi preview qua SMS.
func (h *WorkflowHandler) CreateApproval(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input workflowdto.ApprovalCreateInput
		if err := c.Bind().Body(&input); err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.CodeInvalidFormat, "Body không đúng định dạng JSON", common.StatusBadRequest, err))
		}
		if global.Validate != nil {
			if err := global.Validate.Struct(&input); err != nil {
				return basehdl.HandleResponse(c, nil,
					common.NewError(common.CodeInvalidInput, common.MsgValidationFailed, common.StatusBadRequest, err))
			}
		}

		itemID, err := utility.String2ObjectID(input.ItemID)
		if err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.CodeInvalidFormat, "ItemID không hợp lệ", common.StatusBadRequest, err))
		}

		item, err := h.content.FindOneById(c.Context(), itemID)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		phone := input.Phone
		if phone == "" {
			profile, perr := h.profiles.FindByUserID(c.Context(), item.UserID)
			if perr != nil {
				return basehdl.HandleResponse(c, nil,
					common.NewError(common.CodeInvalidInput, "Không có số điện thoại nhận duyệt cho item này", common.StatusBadRequest, perr))
			}
			phone = profile.Phone
		}

		engine := workflowsvc.DefaultEngine()
		if engine == nil {
			return basehdl.HandleResponse(c, nil, common.ErrSystem)
		}

		wf, err := engine.CreateApproval(c.Context(), item, phone)
		return basehdl.HandleResponse(c, wf, err)
	})
}

// FindOneById xử lý GET /workflows/:id
func (h *WorkflowHandler) FindOneById(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.CodeInvalidFormat, "ID không hợp lệ", common.StatusBadRequest, err))
		}
		wf, err := h.store.FindByID(c.Context(), id)
		return basehdl.HandleResponse(c, wf, err)
	})
}

// FindByUser xử lý GET /workflows/by-user/:userId
func (h *WorkflowHandler) FindByUser(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		userID := c.Params("userId")
		limit := int64(fiber.Query(c, "limit", 20))
		workflows, err := h.store.FindByUser(c.Context(), userID, limit)
		return basehdl.HandleResponse(c, workflows, err)
	})
}

// Resend xử lý POST /workflows/:id/resend — gửi lại tin nhắn hiện hành
func (h *WorkflowHandler) Resend(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(c.Params("id"))
		if err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.CodeInvalidFormat, "ID không hợp lệ", common.StatusBadRequest, err))
		}

		engine := workflowsvc.DefaultEngine()
		if engine == nil {
			return basehdl.HandleResponse(c, nil, common.ErrSystem)
		}

		reply, err := engine.ResendPreview(c.Context(), id)
		return basehdl.HandleResponse(c, fiber.Map{"message": reply}, err)
	})
}
