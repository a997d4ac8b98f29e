package deliverymodels

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryHistory ghi lại kết quả mỗi lần gửi (thành công lẫn thất bại)
type DeliveryHistory struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	QueueItemID primitive.ObjectID `json:"queueItemId" bson:"queueItemId"`
	ChannelType string             `json:"channelType" bson:"channelType"`
	Recipient   string             `json:"recipient" bson:"recipient"`
	Status      string             `json:"status" bson:"status"` // sent, failed
	Content     string             `json:"content" bson:"content"`
	Error       string             `json:"error,omitempty" bson:"error,omitempty"`
	RetryCount  int                `json:"retryCount" bson:"retryCount"`
	SentAt      *int64             `json:"sentAt,omitempty" bson:"sentAt,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
