// Package webhookhdl chứa handler nhận webhook SMS inbound.
package webhookhdl

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	webhookdto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/webhook/dto"
	webhookmodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/webhook/models"
	webhooksvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/webhook/service"
	workflowsvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/workflow/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// WebhookHandler nhận tin nhắn SMS inbound từ provider
type WebhookHandler struct {
	logs *webhooksvc.WebhookLogService
}

// NewWebhookHandler tạo mới WebhookHandler
func NewWebhookHandler() (*WebhookHandler, error) {
	logs, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{logs: logs}, nil
}

// ack trả về 200 với body RỖNG. Webhook LUÔN trả 200 sau khi đã nhận
// được payload — trả lỗi chỉ khiến provider retry vô ích, dedupe đã có
// unique index trên providerMessageId lo. Body phải rỗng: provider kiểu
// Twilio diễn giải nội dung response, envelope JSON sẽ bị hiểu nhầm.
func (h *WebhookHandler) ack(c fiber.Ctx) error {
	return c.Status(common.StatusOK).Send(nil)
}

// ReceiveSMS xử lý POST /webhook/sms
func (h *WebhookHandler) ReceiveSMS(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		log := logger.WithRequest(c)

		var input webhookdto.InboundSMSInput
		if err := c.Bind().Body(&input); err != nil {
			log.WithError(err).Warn("📱 [WEBHOOK] Payload không parse được, vẫn acknowledge")
			return h.ack(c)
		}
		if input.From == "" || input.Body == "" {
			log.Warn("📱 [WEBHOOK] Thiếu From/Body, vẫn acknowledge")
			return h.ack(c)
		}

		from := utility.NormalizePhone(input.From)

		// Provider nào không gửi MessageSid thì sinh id tổng hợp để
		// unique index trên providerMessageId không đụng nhau.
		messageID := input.MessageSid
		if messageID == "" {
			messageID = "local-" + uuid.NewString()
		}

		entry, isNew, err := h.logs.CreateIfNew(c.Context(), webhookmodels.WebhookLog{
			Provider:          "sms",
			ProviderMessageID: messageID,
			FromPhone:         from,
			Body:              input.Body,
		})
		if err != nil {
			log.WithError(err).Error("📱 [WEBHOOK] Ghi webhook log thất bại")
			return h.ack(c)
		}
		if !isNew {
			log.WithField("messageSid", messageID).Info("📱 [WEBHOOK] Tin trùng, đã xử lý trước đó")
			return h.ack(c)
		}

		engine := workflowsvc.DefaultEngine()
		if engine == nil {
			log.Error("📱 [WEBHOOK] Workflow engine chưa khởi tạo")
			return h.ack(c)
		}

		reply, herr := engine.HandleInbound(c.Context(), from, input.Body, messageID)
		if herr != nil {
			log.WithError(herr).WithField("from", from).Error("📱 [WEBHOOK] Xử lý inbound thất bại")
		}
		if uerr := h.logs.UpdateProcessedStatus(c.Context(), entry, reply, herr); uerr != nil {
			log.WithError(uerr).Warn("📱 [WEBHOOK] Cập nhật webhook log thất bại")
		}

		return h.ack(c)
	})
}
