// Package deliverysvc chứa service data access cho domain Delivery.
package deliverysvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/base/service"
	deliverymodels "github.com/cardinalconseils/chefsocial-voice-sub000/internal/api/delivery/models"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/common"
	"github.com/cardinalconseils/chefsocial-voice-sub000/internal/global"
)

// DeliveryQueueService quản lý delivery queue
type DeliveryQueueService struct {
	*basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryQueueItem]
}

// NewDeliveryQueueService tạo mới DeliveryQueueService
func NewDeliveryQueueService() (*DeliveryQueueService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryQueue)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_queue collection: %v", common.ErrNotFound)
	}

	return &DeliveryQueueService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[deliverymodels.DeliveryQueueItem](collection),
	}, nil
}

// FindDue tìm các items đến hạn gửi: pending đến hạn retry,
// hoặc processing quá lâu (worker chết giữa chừng) cần reclaim.
func (s *DeliveryQueueService) FindDue(ctx context.Context, limit int) ([]deliverymodels.DeliveryQueueItem, error) {
	now := time.Now().UnixMilli()
	staleThreshold := now - 5*60*1000 // 5 phút

	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"status": deliverymodels.QueueStatusPending},
					{
						"status":    deliverymodels.QueueStatusProcessing,
						"updatedAt": bson.M{"$lt": staleThreshold},
					},
				},
			},
			{
				"$or": []bson.M{
					{"nextRetryAt": nil},
					{"nextRetryAt": bson.M{"$lte": now}},
				},
			},
		},
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "priority", Value: 1},
			{Key: "createdAt", Value: 1},
		}).
		SetLimit(int64(limit))

	return s.Find(ctx, filter, opts)
}

// MarkProcessing chuyển nhiều items sang processing trước khi gửi
func (s *DeliveryQueueService) MarkProcessing(ctx context.Context, ids []primitive.ObjectID) error {
	filter := bson.M{"_id": bson.M{"$in": ids}}
	update := bson.M{"$set": bson.M{
		"status":    deliverymodels.QueueStatusProcessing,
		"updatedAt": time.Now().UnixMilli(),
	}}
	_, err := s.UpdateMany(ctx, filter, update)
	return err
}

// MarkSent đánh dấu item đã gửi thành công
func (s *DeliveryQueueService) MarkSent(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, id, &basesvc.UpdateData{Set: map[string]interface{}{
		"status": deliverymodels.QueueStatusSent,
		"error":  "",
	}})
	return err
}

// MarkRetry lên lịch retry với backoff, hoặc failed nếu hết lượt
func (s *DeliveryQueueService) MarkRetry(ctx context.Context, item deliverymodels.DeliveryQueueItem, sendErr error) error {
	retryCount := item.RetryCount + 1

	set := map[string]interface{}{
		"retryCount": retryCount,
		"error":      sendErr.Error(),
	}

	if retryCount >= item.MaxRetries {
		set["status"] = deliverymodels.QueueStatusFailed
	} else {
		// Exponential backoff: 2^retryCount giây
		backoffSeconds := int64(1) << uint(retryCount)
		set["status"] = deliverymodels.QueueStatusPending
		set["nextRetryAt"] = time.Now().UnixMilli() + backoffSeconds*1000
	}

	_, err := s.UpdateById(ctx, item.ID, &basesvc.UpdateData{Set: set})
	return err
}

// Requeue đưa một item failed về pending để gửi lại (operator resend)
func (s *DeliveryQueueService) Requeue(ctx context.Context, id primitive.ObjectID) (deliverymodels.DeliveryQueueItem, error) {
	filter := bson.M{"_id": id, "status": deliverymodels.QueueStatusFailed}
	update := bson.M{"$set": bson.M{
		"status":      deliverymodels.QueueStatusPending,
		"retryCount":  0,
		"nextRetryAt": nil,
		"error":       "",
		"updatedAt":   time.Now().UnixMilli(),
	}}
	return s.FindOneAndUpdate(ctx, filter, update, nil)
}

// CleanupOldItems xóa items đã sent/failed quá N ngày
func (s *DeliveryQueueService) CleanupOldItems(ctx context.Context, daysOld int) (int64, error) {
	cutoff := time.Now().UnixMilli() - int64(daysOld)*24*60*60*1000
	filter := bson.M{
		"status":    bson.M{"$in": []string{deliverymodels.QueueStatusSent, deliverymodels.QueueStatusFailed}},
		"updatedAt": bson.M{"$lt": cutoff},
	}
	result, err := s.Collection().DeleteMany(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return result.DeletedCount, nil
}
