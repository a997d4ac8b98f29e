// Package delivery chứa processor gửi tin async từ delivery queue.
// Processor poll queue theo chu kỳ, claim batch items, gửi qua kênh
// tương ứng (sms/email) và ghi lại kết quả vào delivery history.
package delivery

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cardinalconseils/chefsocial-voice-sub000/config"
	deliverymodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/models"
	deliverysvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/service"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/logger"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/messaging/channels"
)

// Processor gửi tin từ delivery queue
type Processor struct {
	cfg     *config.Configuration
	queue   *deliverysvc.DeliveryQueueService
	history *deliverysvc.DeliveryHistoryService
	log     *logrus.Logger
	stop    chan struct{}
}

// NewProcessor tạo mới Processor
func NewProcessor(cfg *config.Configuration, queue *deliverysvc.DeliveryQueueService, history *deliverysvc.DeliveryHistoryService) *Processor {
	return &Processor{
		cfg:     cfg,
		queue:   queue,
		history: history,
		log:     logger.GetAppLogger(),
		stop:    make(chan struct{}),
	}
}

// Start chạy vòng lặp poll queue. Gọi trong goroutine riêng.
func (p *Processor) Start() {
	pollInterval := time.Duration(p.cfg.DeliveryPollSeconds) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	p.log.WithField("pollInterval", pollInterval.String()).
		Info("📦 [DELIVERY] Processor started")

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			p.log.Info("📦 [DELIVERY] Processor stopped")
			return
		case <-ticker.C:
			p.processBatch()
		}
	}
}

// Stop dừng processor
func (p *Processor) Stop() {
	close(p.stop)
}

// processBatch xử lý một batch items đến hạn. Recover để panic của
// một tick không giết cả processor.
func (p *Processor) processBatch() {
	defer func() {
		if r := recover(); r != nil {
			p.log.WithField("panic", r).Error("📦 [DELIVERY] Recovered from panic in batch processing")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	batchSize := p.cfg.DeliveryBatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	items, err := p.queue.FindDue(ctx, batchSize)
	if err != nil {
		p.log.WithError(err).Error("📦 [DELIVERY] Failed to fetch due items")
		return
	}
	if len(items) == 0 {
		return
	}

	ids := make([]primitive.ObjectID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	if err := p.queue.MarkProcessing(ctx, ids); err != nil {
		p.log.WithError(err).Error("📦 [DELIVERY] Failed to claim batch")
		return
	}

	p.log.WithField("count", len(items)).Debug("📦 [DELIVERY] Processing batch")

	for _, item := range items {
		p.processItem(ctx, item)
	}
}

// processItem gửi một item và cập nhật trạng thái + history
func (p *Processor) processItem(ctx context.Context, item deliverymodels.DeliveryQueueItem) {
	var sendErr error
	switch item.ChannelType {
	case deliverymodels.ChannelSMS:
		sendErr = channels.SendSMS(ctx, p.cfg, item.Recipient, item.Content)
	case deliverymodels.ChannelEmail:
		subject := item.Subject
		if subject == "" {
			subject = "ChefSocial"
		}
		sendErr = channels.SendEmail(p.cfg, item.Recipient, subject, item.Content)
	default:
		p.log.WithFields(logrus.Fields{
			"queueItemId": item.ID.Hex(),
			"channel":     item.ChannelType,
		}).Error("📦 [DELIVERY] Unknown channel type")
		return
	}

	if sendErr != nil {
		p.log.WithError(sendErr).WithFields(logrus.Fields{
			"queueItemId": item.ID.Hex(),
			"channel":     item.ChannelType,
			"retryCount":  item.RetryCount,
		}).Warn("📦 [DELIVERY] Send failed, scheduling retry")

		if err := p.queue.MarkRetry(ctx, item, sendErr); err != nil {
			p.log.WithError(err).Error("📦 [DELIVERY] Failed to mark retry")
		}
		if err := p.history.RecordAttempt(ctx, item, "failed", sendErr); err != nil {
			p.log.WithError(err).Error("📦 [DELIVERY] Failed to record history")
		}
		return
	}

	if err := p.queue.MarkSent(ctx, item.ID); err != nil {
		p.log.WithError(err).Error("📦 [DELIVERY] Failed to mark sent")
	}
	if err := p.history.RecordAttempt(ctx, item, "sent", nil); err != nil {
		p.log.WithError(err).Error("📦 [DELIVERY] Failed to record history")
	}

	p.log.WithFields(logrus.Fields{
		"queueItemId": item.ID.Hex(),
		"channel":     item.ChannelType,
		"recipient":   item.Recipient,
	}).Info("📦 [DELIVERY] Message sent")
}
