// Package deliveryhdl chứa handlers cho domain Delivery.
package deliveryhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/handler"
	deliverydto "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/dto"
	deliverymodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/models"
	deliverysvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/utility"
)

// DeliveryHandler cung cấp các route vận hành cho delivery queue
type DeliveryHandler struct {
	basehdl.BaseHandler[deliverymodels.DeliveryQueueItem, deliverydto.DeliveryQueueCreateInput, deliverydto.DeliveryQueueUpdateInput]
	queue   *deliverysvc.DeliveryQueueService
	history *deliverysvc.DeliveryHistoryService
}

// NewDeliveryHandler tạo mới DeliveryHandler
func NewDeliveryHandler() (*DeliveryHandler, error) {
	queue, err := deliverysvc.NewDeliveryQueueService()
	if err != nil {
		return nil, err
	}
	history, err := deliverysvc.NewDeliveryHistoryService()
	if err != nil {
		return nil, err
	}

	h := &DeliveryHandler{queue: queue, history: history}
	h.Service = queue
	h.FilterOptions = basehdl.DefaultFilterOptions()
	return h, nil
}

// Resend xử lý POST /delivery/resend/:id - đưa item failed về pending
func (h *DeliveryHandler) Resend(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := h.ParseIDParam(c)
		if err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}

		item, err := h.queue.Requeue(c.Context(), id)
		return basehdl.HandleResponse(c, item, err)
	})
}

// FindHistory xử lý GET /delivery/history/:queueItemId
func (h *DeliveryHandler) FindHistory(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		id, err := utility.String2ObjectID(c.Params("queueItemId"))
		if err != nil {
			return basehdl.HandleResponse(c, nil,
				common.NewError(common.CodeInvalidFormat, "ID không hợp lệ", common.StatusBadRequest, err))
		}

		entries, err := h.history.FindByQueueItem(c.Context(), id)
		return basehdl.HandleResponse(c, entries, err)
	})
}
