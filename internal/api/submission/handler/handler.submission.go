// Package submissionhdl chứa handlers cho domain Submission.
package submissionhdl

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/ai"
	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	contentmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/models"
	contentsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/content/service"
	submissiondto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/submission/dto"
	submissionsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/submission/service"
	suggestionsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/suggestion/service"
	workflowmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/models"
	workflowsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// engineApprovals ủy quyền sang default engine tại thời điểm request,
// để thứ tự khởi tạo engine và routes không phụ thuộc nhau.
type engineApprovals struct{}

func (engineApprovals) CreateApproval(ctx context.Context, item contentmodels.ContentItem, phone string) (workflowmodels.Workflow, error) {
	engine := workflowsvc.DefaultEngine()
	if engine == nil {
		return workflowmodels.Workflow{}, common.ErrSystem
	}
	return engine.CreateApproval(ctx, item, phone)
}

// SubmissionHandler cung cấp route cho voice submission pipeline
type SubmissionHandler struct {
	pipeline *submissionsvc.SubmissionService
}

// NewSubmissionHandler tạo handler với pipeline nối đủ dependencies thật
func NewSubmissionHandler() (*SubmissionHandler, error) {
	content, err := contentsvc.NewContentItemService()
	if err != nil {
		return nil, err
	}
	profiles, err := suggestionsvc.NewRestaurantProfileService()
	if err != nil {
		return nil, err
	}

	client, err := ai.NewClient(global.Config)
	if err != nil {
		return nil, err
	}
	timeout := time.Duration(global.Config.PipelineTimeoutSeconds) * time.Second

	pipeline := submissionsvc.NewSubmissionService(content, profiles, client, client, client, engineApprovals{}, timeout)
	return &SubmissionHandler{pipeline: pipeline}, nil
}

// SubmitVoice xử lý POST /submissions/voice.
// Input hợp lệ thì luôn 200: AI fallback không phải lỗi của client.
func (h *SubmissionHandler) SubmitVoice(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		var input submissiondto.SubmitRequest
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

		result, err := h.pipeline.Process(c.Context(), input)
		return basehdl.HandleResponse(c, result, err)
	})
}
