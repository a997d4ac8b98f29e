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

// DeliveryHistoryService quản lý lịch sử gửi tin
type DeliveryHistoryService struct {
	*basesvc.BaseServiceMongoImpl[deliverymodels.DeliveryHistory]
}

// NewDeliveryHistoryService tạo mới DeliveryHistoryService
func NewDeliveryHistoryService() (*DeliveryHistoryService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DeliveryHistory)
	if !exist {
		return nil, fmt.Errorf("failed to get delivery_history collection: %v", common.ErrNotFound)
	}

	return &DeliveryHistoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[deliverymodels.DeliveryHistory](collection),
	}, nil
}

// RecordAttempt ghi lại một lần gửi (thành công hoặc thất bại)
func (s *DeliveryHistoryService) RecordAttempt(ctx context.Context, item deliverymodels.DeliveryQueueItem, status string, sendErr error) error {
	history := deliverymodels.DeliveryHistory{
		QueueItemID: item.ID,
		ChannelType: item.ChannelType,
		Recipient:   item.Recipient,
		Status:      status,
		Content:     item.Content,
		RetryCount:  item.RetryCount,
	}
	if sendErr != nil {
		history.Error = sendErr.Error()
	}
	if status == "sent" {
		now := time.Now().UnixMilli()
		history.SentAt = &now
	}

	_, err := s.InsertOne(ctx, history)
	return err
}

// FindByQueueItem trả về lịch sử gửi của một queue item
func (s *DeliveryHistoryService) FindByQueueItem(ctx context.Context, queueItemID primitive.ObjectID) ([]deliverymodels.DeliveryHistory, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, bson.M{"queueItemId": queueItemID}, opts)
}
