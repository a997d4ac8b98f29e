// Package messaging cung cấp gateway gửi tin outbound cho workflow engine.
// Gateway không gửi trực tiếp mà enqueue vào delivery queue, delivery
// processor sẽ gửi async với retry.
package messaging

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	deliverymodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/models"
	deliverysvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
)

// QueuedGateway enqueue tin nhắn vào delivery queue thay vì gửi trực tiếp.
// Thỏa mãn interface Gateway của workflow engine.
type QueuedGateway struct {
	queue *deliverysvc.DeliveryQueueService
	log   *logrus.Logger
}

// NewQueuedGateway tạo mới QueuedGateway
func NewQueuedGateway(queue *deliverysvc.DeliveryQueueService) *QueuedGateway {
	return &QueuedGateway{
		queue: queue,
		log:   logger.GetAppLogger(),
	}
}

// SendText enqueue một tin nhắn text cho recipient.
// Recipient chứa "@" thì đi kênh email, còn lại là SMS.
func (g *QueuedGateway) SendText(ctx context.Context, to, body string) error {
	channel := deliverymodels.ChannelSMS
	subject := ""
	if strings.Contains(to, "@") {
		channel = deliverymodels.ChannelEmail
		subject = "ChefSocial"
	}

	item := deliverymodels.DeliveryQueueItem{
		Recipient:   to,
		ChannelType: channel,
		Subject:     subject,
		Content:     body,
	}

	inserted, err := g.queue.InsertOne(ctx, item)
	if err != nil {
		g.log.WithError(err).WithFields(logrus.Fields{
			"recipient": to,
			"channel":   channel,
		}).Error("📦 [GATEWAY] Failed to enqueue message")
		return err
	}

	g.log.WithFields(logrus.Fields{
		"queueItemId": inserted.ID.Hex(),
		"recipient":   to,
		"channel":     channel,
	}).Debug("📦 [GATEWAY] Message enqueued")
	return nil
}
